package stats

import "slices"

// Outlier multipliers applied to the interquartile range.
const (
	SlowIQRFactor        = 1.5
	ProblematicIQRFactor = 3.0
)

// PitStopAnalysis summarises a season of pit-stop durations, in seconds.
type PitStopAnalysis struct {
	Count                int     `json:"count" yaml:"count"`
	Mean                 float64 `json:"mean" yaml:"mean"`
	Median               float64 `json:"median" yaml:"median"`
	Q1                   float64 `json:"q1" yaml:"q1"`
	Q3                   float64 `json:"q3" yaml:"q3"`
	IQR                  float64 `json:"iqr" yaml:"iqr"`
	SlowThreshold        float64 `json:"slow_threshold" yaml:"slow_threshold"`
	ProblematicThreshold float64 `json:"problematic_threshold" yaml:"problematic_threshold"`
	Slow                 int     `json:"slow" yaml:"slow"`
	Problematic          int     `json:"problematic" yaml:"problematic"`
}

// HasData reports whether any durations were analysed. Without data the
// numeric fields are zero and must not be reported as statistics.
func (a PitStopAnalysis) HasData() bool {
	return a.Count > 0
}

// ClassifyPitStops computes IQR-based thresholds over durations and counts the
// stops above them.
//
// Quartiles use the exclusive-median split: the lower half is the first n/2
// values, the upper half starts at index (n+1)/2, so the middle value of an odd
// count belongs to neither. Q1 is the low median of the lower half and Q3 the
// high median of the upper half. A single duration has empty halves and an IQR
// of zero.
func ClassifyPitStops(durations []float64) PitStopAnalysis {
	if len(durations) == 0 {
		return PitStopAnalysis{}
	}

	s := slices.Clone(durations)
	slices.Sort(s)
	n := len(s)

	a := PitStopAnalysis{
		Count:  n,
		Mean:   Mean(s),
		Median: Median(s),
	}

	lower, upper := s[:n/2], s[(n+1)/2:]
	if len(lower) > 0 && len(upper) > 0 {
		a.Q1 = MedianLow(lower)
		a.Q3 = MedianHigh(upper)
		a.IQR = a.Q3 - a.Q1
	}

	a.SlowThreshold = a.Median + SlowIQRFactor*a.IQR
	a.ProblematicThreshold = a.Median + ProblematicIQRFactor*a.IQR

	for _, d := range s {
		if d > a.SlowThreshold {
			a.Slow++
		}
		if d > a.ProblematicThreshold {
			a.Problematic++
		}
	}

	return a
}

// MillisToSeconds converts raw pit-stop durations to seconds, dropping
// non-positive values.
func MillisToSeconds(millis []int64) []float64 {
	out := make([]float64, 0, len(millis))
	for _, ms := range millis {
		if ms <= 0 {
			continue
		}
		out = append(out, float64(ms)/1000)
	}
	return out
}
