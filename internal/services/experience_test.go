package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreExperience(t *testing.T) {
	tests := []struct {
		name     string
		required *float64
		actual   *float64
		expected float64
	}{
		{
			name:     "no requirement stated",
			required: nil,
			actual:   nil,
			expected: 100,
		},
		{
			name:     "no requirement with known experience",
			required: nil,
			actual:   floatPtr(2),
			expected: 100,
		},
		{
			name:     "requirement stated but experience unknown",
			required: floatPtr(5),
			actual:   nil,
			expected: 50,
		},
		{
			name:     "meets requirement exactly",
			required: floatPtr(5),
			actual:   floatPtr(5),
			expected: 100,
		},
		{
			name:     "exceeds requirement",
			required: floatPtr(3),
			actual:   floatPtr(10),
			expected: 100,
		},
		{
			name:     "two years short",
			required: floatPtr(5),
			actual:   floatPtr(3),
			expected: 80,
		},
		{
			name:     "fractional gap",
			required: floatPtr(5),
			actual:   floatPtr(4.5),
			expected: 95,
		},
		{
			name:     "huge gap floors at zero",
			required: floatPtr(20),
			actual:   floatPtr(1),
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, ScoreExperience(tt.required, tt.actual), 0.0001)
		})
	}
}
