package wifi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChannel(t *testing.T) {
	tests := []struct {
		frequency float64
		want      int
	}{
		{frequency: 0, want: 0},
		{frequency: 2412000, want: 1},
		{frequency: 2437000, want: 6},
		{frequency: 2472000, want: 13},
		{frequency: 2484000, want: 14},
		{frequency: 4920000, want: 184},
		{frequency: 5180000, want: 36},
		{frequency: 5825000, want: 165},
		{frequency: 5935000, want: 2},
		{frequency: 5955000, want: 1},
		{frequency: 6115000, want: 33},
		{frequency: 60480000, want: 2},
		{frequency: 2437, want: 6},
		{frequency: 915000, want: 915},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Channel(tt.frequency), "frequency=%v", tt.frequency)
	}
}
