// Package filter selects which packets end up on the map.
package filter

import (
	"strings"

	"kismap/internal/kismet"
	"kismap/internal/wifi"
)

// DefaultMinSignal is the CLI's default threshold in dBm.
const DefaultMinSignal = -100

// Criteria holds the user's filters. Empty lists match everything and a zero
// MinSignal disables the signal threshold.
type Criteria struct {
	Bands      []wifi.Band
	MinSignal  int
	Types      []string
	SSIDs      []string
	MACs       []string
	AllDevices bool
}

// Validate rejects bands that can never match a packet.
func (c Criteria) Validate() error {
	for _, b := range c.Bands {
		if _, err := wifi.ParseBand(string(b)); err != nil {
			return err
		}
	}

	return nil
}

// Match reports whether p passes every filter.
func (c Criteria) Match(p kismet.Packet) bool {
	if len(c.Bands) > 0 && !contains(c.Bands, p.Band) {
		return false
	}
	if c.MinSignal != 0 && p.Signal < c.MinSignal {
		return false
	}
	if len(c.Types) > 0 && !contains(c.Types, p.Type) {
		return false
	}
	if len(c.SSIDs) > 0 && !contains(c.SSIDs, p.SSID) {
		return false
	}
	if len(c.MACs) > 0 && !containsFold(c.MACs, p.MAC) {
		return false
	}
	// Packets from unknown transmitters are kept; only known non-APs drop.
	if !c.AllDevices && p.Type != "" && !strings.Contains(p.Type, "AP") {
		return false
	}

	return true
}

// Apply returns the matching packets in their original order.
func (c Criteria) Apply(packets []kismet.Packet) []kismet.Packet {
	out := make([]kismet.Packet, 0, len(packets))
	for _, p := range packets {
		if c.Match(p) {
			out = append(out, p)
		}
	}

	return out
}

func contains[T comparable](list []T, v T) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}

	return false
}

func containsFold(list []string, v string) bool {
	for _, item := range list {
		if strings.EqualFold(strings.TrimSpace(item), v) {
			return true
		}
	}

	return false
}
