// Package wifi classifies 802.11 radio observations: which band a frequency
// belongs to, which channel it maps to, and how strong a signal is.
package wifi

import (
	"fmt"
	"math"
	"strings"
)

// Band is a WiFi band label as shown in layer names and exports.
type Band string

const (
	Band24      Band = "2.4"
	Band5       Band = "5"
	Band6       Band = "6"
	BandUnknown Band = "unknown"
)

// Bands lists the selectable bands in display order.
var Bands = []Band{Band24, Band5, Band6}

// MHz normalizes a frequency reported in kHz, MHz or GHz to MHz.
// Kismet stores kHz (2412000), other tools MHz (2412) or GHz (2.412).
func MHz(frequency float64) float64 {
	switch {
	case frequency > 100000:
		return frequency / 1000
	case frequency > 100:
		return frequency
	default:
		return frequency * 1000
	}
}

// BandOf returns the band a frequency falls into. Range bounds are inclusive.
func BandOf(frequency float64) Band {
	if math.IsNaN(frequency) || frequency <= 0 {
		return BandUnknown
	}

	mhz := MHz(frequency)
	switch {
	case mhz >= 2400 && mhz <= 2500:
		return Band24
	case mhz >= 5150 && mhz <= 5895:
		return Band5
	case mhz >= 5925 && mhz <= 7125:
		return Band6
	default:
		return BandUnknown
	}
}

// ParseBand accepts the labels users can filter on.
func ParseBand(raw string) (Band, error) {
	b := Band(strings.TrimSpace(raw))
	for _, known := range Bands {
		if b == known {
			return b, nil
		}
	}

	return "", fmt.Errorf("invalid band %q (choose from 2.4, 5, 6)", raw)
}

func (b Band) String() string {
	return string(b)
}
