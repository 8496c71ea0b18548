package stats

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// Mean returns the arithmetic mean of xs, or NaN when xs is empty.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	return stat.Mean(xs, nil)
}

// StdDev returns the sample standard deviation of xs.
// It returns NaN when xs has fewer than two values.
func StdDev(xs []float64) float64 {
	if len(xs) < 2 {
		return math.NaN()
	}
	return stat.StdDev(xs, nil)
}

// Median returns the middle value of xs, averaging the two middle values when
// the count is even. NaN when xs is empty.
func Median(xs []float64) float64 {
	s := sorted(xs)
	n := len(s)
	switch {
	case n == 0:
		return math.NaN()
	case n%2 == 1:
		return s[n/2]
	default:
		return (s[n/2-1] + s[n/2]) / 2
	}
}

// MedianLow returns the lower of the two middle values for an even count and
// the middle value otherwise. NaN when xs is empty.
func MedianLow(xs []float64) float64 {
	s := sorted(xs)
	n := len(s)
	switch {
	case n == 0:
		return math.NaN()
	case n%2 == 1:
		return s[n/2]
	default:
		return s[n/2-1]
	}
}

// MedianHigh returns the higher of the two middle values for an even count and
// the middle value otherwise. NaN when xs is empty.
func MedianHigh(xs []float64) float64 {
	s := sorted(xs)
	if len(s) == 0 {
		return math.NaN()
	}
	return s[len(s)/2]
}

// Mode returns the most common value of xs. Ties go to the value seen first.
// The second result is false when xs is empty.
func Mode(xs []int) (int, bool) {
	if len(xs) == 0 {
		return 0, false
	}

	counts := make(map[int]int, len(xs))
	top := 0
	for _, x := range xs {
		counts[x]++
		top = max(top, counts[x])
	}

	for _, x := range xs {
		if counts[x] == top {
			return x, true
		}
	}
	return xs[0], true
}

// Floats converts integer samples to float64.
func Floats(xs []int) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = float64(x)
	}
	return out
}

func sorted(xs []float64) []float64 {
	s := slices.Clone(xs)
	slices.Sort(s)
	return s
}
