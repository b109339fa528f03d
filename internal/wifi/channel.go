package wifi

import "math"

// Channel maps a frequency to its 802.11 channel number. Frequencies outside
// any known channel plan are returned as whole MHz, which WiGLE also accepts.
func Channel(frequency float64) int {
	if math.IsNaN(frequency) || frequency <= 0 {
		return 0
	}

	f := MHz(frequency)
	switch {
	case f == 2484:
		return 14
	case f > 2407 && f < 2484:
		return int((f - 2407) / 5)
	case f >= 4910 && f <= 4980:
		return int((f - 4000) / 5)
	case f >= 5150 && f <= 5895:
		return int((f - 5000) / 5)
	case f == 5935:
		return 2
	case f >= 5955 && f <= 7115:
		return int((f - 5950) / 5)
	case f >= 58320 && f <= 70200:
		return int((f - 56160) / 2160)
	default:
		return int(f)
	}
}
