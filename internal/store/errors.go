package store

import (
	"fmt"

	"github.com/claude/fitjournal/internal/models"
)

// ExerciseInUseError is returned by DeleteExercise when the exercise is
// still referenced by at least one segment. It carries the exercise so the
// caller can name it to the user.
type ExerciseInUseError struct {
	Exercise models.Exercise
}

func (e *ExerciseInUseError) Error() string {
	return fmt.Sprintf("exercise %q is used in segments", e.Exercise.Name)
}
