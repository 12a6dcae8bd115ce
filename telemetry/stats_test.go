package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistribution(t *testing.T) {
	tests := []struct {
		name                string
		values              []float64
		mean, p10, p50, p90 float64
	}{
		{"empty", nil, 0, 0, 0, 0},
		{"single", []float64{5}, 5, 5, 5, 5},
		{"odd", []float64{5, 1, 4, 2, 3}, 3, 1, 3, 5},
		{"ten", []float64{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}, 5.5, 1, 5, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, _, p10, p50, p90 := Distribution(tt.values)
			assert.InDelta(t, tt.mean, mean, 1e-9)
			assert.InDelta(t, tt.p10, p10, 1e-9)
			assert.InDelta(t, tt.p50, p50, 1e-9)
			assert.InDelta(t, tt.p90, p90, 1e-9)
		})
	}
}

func TestDistributionStd(t *testing.T) {
	_, std, _, _, _ := Distribution([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	assert.InDelta(t, 2.0, std, 1e-9)
}

func TestDistributionDoesNotSortInput(t *testing.T) {
	values := []float64{3, 1, 2}
	Distribution(values)
	assert.Equal(t, []float64{3, 1, 2}, values)
}
