package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMedians(t *testing.T) {
	tests := []struct {
		name              string
		in                []float64
		median, low, high float64
	}{
		{"single", []float64{4}, 4, 4, 4},
		{"odd", []float64{3, 1, 2}, 2, 2, 2},
		{"even", []float64{4, 1, 3, 2}, 2.5, 2, 3},
		{"duplicates", []float64{10, 10, 100, 10}, 10, 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.median, Median(tt.in), 1e-9)
			assert.InDelta(t, tt.low, MedianLow(tt.in), 1e-9)
			assert.InDelta(t, tt.high, MedianHigh(tt.in), 1e-9)
		})
	}
}

func TestMedians_DoNotReorderInput(t *testing.T) {
	in := []float64{3, 1, 2}
	_ = Median(in)
	_ = MedianLow(in)
	_ = MedianHigh(in)
	assert.Equal(t, []float64{3, 1, 2}, in)
}

func TestEmptySamples(t *testing.T) {
	assert.True(t, math.IsNaN(Mean(nil)))
	assert.True(t, math.IsNaN(Median(nil)))
	assert.True(t, math.IsNaN(MedianLow(nil)))
	assert.True(t, math.IsNaN(MedianHigh(nil)))
	assert.True(t, math.IsNaN(StdDev([]float64{1})))

	_, ok := Mode(nil)
	assert.False(t, ok)
}

func TestMeanStdDev(t *testing.T) {
	xs := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	assert.InDelta(t, 5.0, Mean(xs), 1e-9)
	// sample (n-1) standard deviation
	assert.InDelta(t, 2.138089935, StdDev(xs), 1e-6)
}

func TestMode(t *testing.T) {
	tests := []struct {
		name string
		in   []int
		want int
	}{
		{"single", []int{7}, 7},
		{"clear winner", []int{3, 1, 3, 2, 3}, 3},
		{"tie goes to first seen", []int{5, 2, 2, 5}, 5},
		{"late tie", []int{1, 4, 4, 1, 9, 9}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Mode(tt.in)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFloats(t *testing.T) {
	assert.Equal(t, []float64{1, 2, 3}, Floats([]int{1, 2, 3}))
	assert.Empty(t, Floats(nil))
}
