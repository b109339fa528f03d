package wifi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignalWeight(t *testing.T) {
	tests := []struct {
		dbm  int
		want float64
	}{
		{dbm: -20, want: 1},
		{dbm: -30, want: 1},
		{dbm: -95, want: 0.1},
		{dbm: -120, want: 0.1},
		{dbm: -62, want: 33.0 / 65.0},
		{dbm: -40, want: 55.0 / 65.0},
		// just above the floor still clamps up to the minimum weight
		{dbm: -90, want: 0.1},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, SignalWeight(tt.dbm), 1e-9, "dbm=%d", tt.dbm)
	}
}

func TestSignalWeightMonotonic(t *testing.T) {
	prev := SignalWeight(-150)
	for dbm := -149; dbm <= 10; dbm++ {
		w := SignalWeight(dbm)
		assert.GreaterOrEqual(t, w, prev, "dbm=%d", dbm)
		assert.GreaterOrEqual(t, w, MinWeight)
		assert.LessOrEqual(t, w, MaxWeight)
		prev = w
	}
}
