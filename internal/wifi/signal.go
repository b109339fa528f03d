package wifi

const (
	// WeightFloorDBm maps to the lowest heat weight.
	WeightFloorDBm = -95
	// WeightCeilDBm and anything stronger map to full weight.
	WeightCeilDBm = -30

	MinWeight = 0.1
	MaxWeight = 1.0
)

// SignalWeight converts a signal in dBm into a heatmap intensity in [0.1, 1].
func SignalWeight(dbm int) float64 {
	normalized := float64(dbm-WeightFloorDBm) / float64(WeightCeilDBm-WeightFloorDBm)
	if normalized < MinWeight {
		return MinWeight
	}
	if normalized > MaxWeight {
		return MaxWeight
	}

	return normalized
}
