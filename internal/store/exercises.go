package store

import (
	"slices"
	"time"

	"github.com/claude/fitjournal/internal/models"
)

// Exercises returns a copy of all exercises in insertion order.
func (s *WorkoutStore) Exercises() []models.Exercise {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Exercise, len(s.exercises))
	for i, e := range s.exercises {
		out[i] = e.Clone()
	}
	return out
}

// Exercise returns the exercise with the given ID, or nil.
func (s *WorkoutStore) Exercise(id models.ExerciseID) *models.Exercise {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.exerciseIndex(id); i >= 0 {
		e := s.exercises[i].Clone()
		return &e
	}
	return nil
}

func (s *WorkoutStore) exerciseIndex(id models.ExerciseID) int {
	return slices.IndexFunc(s.exercises, func(e models.Exercise) bool { return e.ID == id })
}

// CreateExercise appends the exercise and schedules a save. It never fails.
func (s *WorkoutStore) CreateExercise(exercise models.Exercise) models.Exercise {
	s.mu.Lock()
	s.exercises = append(s.exercises, exercise.Clone())
	s.mu.Unlock()
	s.scheduleExercisesSave()
	return exercise
}

// UpdateExercise replaces the exercise with the same ID in place. Returns
// nil when no such exercise exists.
func (s *WorkoutStore) UpdateExercise(exercise models.Exercise) *models.Exercise {
	s.mu.Lock()
	i := s.exerciseIndex(exercise.ID)
	if i < 0 {
		s.mu.Unlock()
		return nil
	}
	s.exercises[i] = exercise.Clone()
	s.mu.Unlock()
	s.scheduleExercisesSave()
	return &exercise
}

// UpdateExerciseFunc applies the mutation to a copy of the exercise and
// writes it back under a single lock acquisition.
func (s *WorkoutStore) UpdateExerciseFunc(id models.ExerciseID, update func(*models.Exercise)) *models.Exercise {
	s.mu.Lock()
	i := s.exerciseIndex(id)
	if i < 0 {
		s.mu.Unlock()
		return nil
	}
	e := s.exercises[i].Clone()
	update(&e)
	e.ID = id
	s.exercises[i] = e.Clone()
	s.mu.Unlock()
	s.scheduleExercisesSave()
	return &e
}

// CanDeleteExercise reports whether no segment in any workout references the
// exercise.
func (s *WorkoutStore) CanDeleteExercise(id models.ExerciseID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.exerciseInUse(id)
}

func (s *WorkoutStore) exerciseInUse(id models.ExerciseID) bool {
	for _, w := range s.workouts {
		for _, segment := range w.Segments {
			if segment.Exercise == id {
				return true
			}
		}
	}
	return false
}

// DeleteExercise removes the exercise unless a segment still references it,
// in which case it returns an ExerciseInUseError and changes nothing.
// Deleting a missing exercise is a no-op.
func (s *WorkoutStore) DeleteExercise(id models.ExerciseID) error {
	s.mu.Lock()
	i := s.exerciseIndex(id)
	if i < 0 {
		s.mu.Unlock()
		return nil
	}
	if s.exerciseInUse(id) {
		err := &ExerciseInUseError{Exercise: s.exercises[i].Clone()}
		s.mu.Unlock()
		return err
	}
	s.exercises = slices.Delete(s.exercises, i, i+1)
	s.mu.Unlock()
	s.scheduleExercisesSave()
	return nil
}

// SegmentsUsing returns every segment across all workouts that references
// the exercise, in workout order.
func (s *WorkoutStore) SegmentsUsing(id models.ExerciseID) []models.Segment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Segment
	for _, w := range s.workouts {
		for _, segment := range w.Segments {
			if segment.Exercise == id {
				out = append(out, segment.Clone())
			}
		}
	}
	return out
}

// LatestSegment returns the most recent segment referencing the exercise,
// judged by workout date, or nil when the exercise was never performed.
func (s *WorkoutStore) LatestSegment(id models.ExerciseID) *models.Segment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var latest *models.Segment
	var latestDate time.Time
	for _, w := range s.workouts {
		for _, segment := range w.Segments {
			if segment.Exercise != id {
				continue
			}
			if latest == nil || w.Date.After(latestDate) {
				seg := segment.Clone()
				latest = &seg
				latestDate = w.Date
			}
		}
	}
	return latest
}

// LatestSet returns the last set of the most recent segment referencing the
// exercise, or nil.
func (s *WorkoutStore) LatestSet(id models.ExerciseID) *models.Set {
	segment := s.LatestSegment(id)
	if segment == nil || len(segment.Sets) == 0 {
		return nil
	}
	set := segment.Sets[len(segment.Sets)-1].Duplicated(false)
	return &set
}

// MaxWeight returns the heaviest weight ever recorded for the exercise,
// compared by total load. The second return is false when no set exists.
func (s *WorkoutStore) MaxWeight(id models.ExerciseID) (models.Weight, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var best models.Weight
	found := false
	for _, w := range s.workouts {
		for _, segment := range w.Segments {
			if segment.Exercise != id {
				continue
			}
			for _, set := range segment.Sets {
				if !found || set.Weight.TotalWeight() > best.TotalWeight() {
					best = set.Weight
					found = true
				}
			}
		}
	}
	return best, found
}

// History returns every set recorded for the exercise grouped by workout
// date. Dates of workouts with no matching sets are absent.
func (s *WorkoutStore) History(id models.ExerciseID) map[time.Time][]models.Set {
	s.mu.RLock()
	defer s.mu.RUnlock()
	history := make(map[time.Time][]models.Set)
	for _, w := range s.workouts {
		for _, segment := range w.Segments {
			if segment.Exercise != id {
				continue
			}
			for _, set := range segment.Sets {
				history[w.Date] = append(history[w.Date], set.Duplicated(false))
			}
		}
	}
	return history
}
