package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		input  string
		amount float64
		unit   string
	}{
		{"1 tablet", 1, "tablet"},
		{"2 tablets", 2, "tablets"},
		{"1/2 tablet", 0.5, "tablet"},
		{"1.5 ml", 1.5, "ml"},
		{"10 units", 10, "units"},
		{"2", 2, ""},
		{"  3  drops  ", 3, "drops"},
		{"one tablet", 1, "one tablet"},
		{"", 1, ""},
		{"a/b tablet", 1, "a/b tablet"},
		{"1/0 tablet", 1, "1/0 tablet"},
		{"-2 tablets", 1, "-2 tablets"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			q := ParseQuantity(tt.input)
			assert.InDelta(t, tt.amount, q.Amount, 1e-9)
			assert.Equal(t, tt.unit, q.Unit)
		})
	}
}
