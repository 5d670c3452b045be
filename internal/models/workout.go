package models

import "time"

// Workout is a dated session of ordered segments. Segment order is the
// user's order and is preserved across edits.
type Workout struct {
	ID       WorkoutID `json:"id"`
	Date     time.Time `json:"date"`
	Segments []Segment `json:"segments"`
}

// NewWorkout creates an empty workout dated now with a fresh identifier.
func NewWorkout() Workout {
	return Workout{ID: NewID[Workout](), Date: time.Now(), Segments: []Segment{}}
}

// Clone returns a deep copy of the workout.
func (w Workout) Clone() Workout {
	out := w
	if w.Segments != nil {
		out.Segments = make([]Segment, len(w.Segments))
		for i, segment := range w.Segments {
			out.Segments[i] = segment.Clone()
		}
	}
	return out
}
