package models

// Set is one logged repetition group within a segment.
type Set struct {
	ID          SetID  `json:"id"`
	Weight      Weight `json:"weight"`
	Repetitions int    `json:"repetitions"`
	// RateOfPerceivedExertion is an optional subjective 0-10 rating.
	RateOfPerceivedExertion *int `json:"rateOfPerceivedExertion,omitempty"`
}

// NewSet creates a set with a fresh identifier.
func NewSet(weight Weight, repetitions int) Set {
	return Set{ID: NewID[Set](), Weight: weight, Repetitions: repetitions}
}

// WithRPE returns a copy of the set with the exertion rating applied.
func (s Set) WithRPE(rpe int) Set {
	out := s
	out.RateOfPerceivedExertion = &rpe
	return out
}

// Duplicated returns a deep copy of the set. When newID is true the copy
// gets a freshly generated identifier, which is how a quick follow-up set is
// created from an existing one.
func (s Set) Duplicated(newID bool) Set {
	out := s
	if s.RateOfPerceivedExertion != nil {
		rpe := *s.RateOfPerceivedExertion
		out.RateOfPerceivedExertion = &rpe
	}
	if newID {
		out.ID = NewID[Set]()
	}
	return out
}

// Equal compares all fields, exertion rating by value.
func (s Set) Equal(other Set) bool {
	if s.ID != other.ID || s.Weight != other.Weight || s.Repetitions != other.Repetitions {
		return false
	}
	if (s.RateOfPerceivedExertion == nil) != (other.RateOfPerceivedExertion == nil) {
		return false
	}
	if s.RateOfPerceivedExertion != nil && *s.RateOfPerceivedExertion != *other.RateOfPerceivedExertion {
		return false
	}
	return true
}
