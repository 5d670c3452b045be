package models

// Exercise is a reusable named movement definition. Segments reference it by
// ID, so renaming an exercise is visible everywhere without rewriting
// workouts.
type Exercise struct {
	ID      ExerciseID `json:"id"`
	Name    string     `json:"name"`
	Comment *string    `json:"comment,omitempty"`
}

// NewExercise creates an exercise with a fresh identifier.
func NewExercise(name string) Exercise {
	return Exercise{ID: NewID[Exercise](), Name: name}
}

// Clone returns a deep copy of the exercise.
func (e Exercise) Clone() Exercise {
	out := e
	if e.Comment != nil {
		comment := *e.Comment
		out.Comment = &comment
	}
	return out
}
