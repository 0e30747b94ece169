package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCancellationWindow(t *testing.T) {
	tests := []struct {
		raw     string
		minDays int
		maxDays int
		ok      bool
	}{
		{"120 - 90 Days", 90, 120, true},
		{"90-120 days", 90, 120, true},
		{"60 Days", 60, 60, true},
		{"between 30 and 180 days prior", 30, 180, true},
		{"", 0, 0, false},
		{"per contract", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			minDays, maxDays, ok := ParseCancellationWindow(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.minDays, minDays)
			assert.Equal(t, tt.maxDays, maxDays)
		})
	}
}
