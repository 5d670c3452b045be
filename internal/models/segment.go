package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Segment is one exercise's occurrence within a workout. It references the
// exercise by ID and owns the sets logged for it.
type Segment struct {
	ID       SegmentID  `json:"id"`
	Exercise ExerciseID `json:"exercise"`
	Sets     []Set      `json:"sets"`
}

// NewSegment creates an empty segment for the given exercise with a fresh
// identifier.
func NewSegment(exercise ExerciseID) Segment {
	return Segment{ID: NewID[Segment](), Exercise: exercise, Sets: []Set{}}
}

// Clone returns a deep copy of the segment.
func (s Segment) Clone() Segment {
	out := s
	if s.Sets != nil {
		out.Sets = make([]Set, len(s.Sets))
		for i, set := range s.Sets {
			out.Sets[i] = set.Duplicated(false)
		}
	}
	return out
}

// CommonWeight is the weight shared by more than one set. A weight logged by
// a single set never counts as common.
func (s Segment) CommonWeight() (Weight, bool) {
	counts := make(map[Weight]int, len(s.Sets))
	for _, set := range s.Sets {
		counts[set.Weight]++
	}
	var best Weight
	bestCount := 0
	for _, set := range s.Sets {
		if c := counts[set.Weight]; c > bestCount {
			best, bestCount = set.Weight, c
		}
	}
	if bestCount > 1 {
		return best, true
	}
	return Weight{}, false
}

// DisplayWeight is the representative weight of the segment: the common
// weight when one exists, otherwise the heaviest set's weight.
func (s Segment) DisplayWeight() (Weight, bool) {
	if w, ok := s.CommonWeight(); ok {
		return w, true
	}
	if len(s.Sets) == 0 {
		return Weight{}, false
	}
	max := s.Sets[0].Weight
	for _, set := range s.Sets[1:] {
		if set.Weight.TotalWeight() > max.TotalWeight() {
			max = set.Weight
		}
	}
	return max, true
}

// CommonRepetitions is the repetition count shared by more than one set.
func (s Segment) CommonRepetitions() (int, bool) {
	counts := make(map[int]int, len(s.Sets))
	for _, set := range s.Sets {
		counts[set.Repetitions]++
	}
	best := 0
	bestCount := 0
	for _, set := range s.Sets {
		if c := counts[set.Repetitions]; c > bestCount {
			best, bestCount = set.Repetitions, c
		}
	}
	if bestCount > 1 {
		return best, true
	}
	return 0, false
}

// DisplayRepetitions renders the segment's repetitions: the common count when
// one exists, otherwise a slash-joined per-set breakdown like "8/10/12".
func (s Segment) DisplayRepetitions() string {
	if len(s.Sets) == 0 {
		return ""
	}
	if reps, ok := s.CommonRepetitions(); ok {
		return strconv.Itoa(reps)
	}
	return s.repetitionsBreakdown()
}

// CompositionString renders set count times repetitions, like "3x10", when a
// common repetition count exists, otherwise the per-set breakdown.
func (s Segment) CompositionString() string {
	if len(s.Sets) == 0 {
		return ""
	}
	if reps, ok := s.CommonRepetitions(); ok {
		return fmt.Sprintf("%dx%d", len(s.Sets), reps)
	}
	return s.repetitionsBreakdown()
}

func (s Segment) repetitionsBreakdown() string {
	parts := make([]string, len(s.Sets))
	for i, set := range s.Sets {
		parts[i] = strconv.Itoa(set.Repetitions)
	}
	return strings.Join(parts, "/")
}
