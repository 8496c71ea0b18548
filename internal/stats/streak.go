// Package stats holds the small statistics toolkit used by the season overview:
// streak tracking, order statistics and pit-stop outlier classification.
package stats

// Streak tracks the longest run of consecutive values accepted by a predicate.
// Values must be fed in chronological order.
type Streak struct {
	longest   int
	current   int
	continued func(*int) bool
}

// NewStreak creates a Streak that continues while pred holds.
func NewStreak(pred func(*int) bool) *Streak {
	return &Streak{continued: pred}
}

// Update feeds the next value of the sequence.
func (s *Streak) Update(v *int) {
	if s.continued(v) {
		s.current++
		return
	}

	if s.current > s.longest {
		s.longest = s.current
	}
	s.current = 0
}

// Longest returns the longest run seen so far, including a run that is still
// active at the end of the sequence.
func (s *Streak) Longest() int {
	return max(s.longest, s.current)
}

// Win accepts a first place.
func Win(pos *int) bool {
	return pos != nil && *pos == 1
}

// Podium accepts a top-3 finish.
func Podium(pos *int) bool {
	return pos != nil && *pos != 0 && *pos <= 3
}

// Points accepts a top-10 finish.
func Points(pos *int) bool {
	return pos != nil && *pos != 0 && *pos <= 10
}
