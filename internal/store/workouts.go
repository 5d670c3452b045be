package store

import (
	"slices"
	"sort"

	"github.com/claude/fitjournal/internal/models"
)

// Workouts returns a copy of all workouts in insertion/move order.
func (s *WorkoutStore) Workouts() []models.Workout {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Workout, len(s.workouts))
	for i, w := range s.workouts {
		out[i] = w.Clone()
	}
	return out
}

// Workout returns the workout with the given ID, or nil.
func (s *WorkoutStore) Workout(id models.WorkoutID) *models.Workout {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.workoutIndex(id); i >= 0 {
		w := s.workouts[i].Clone()
		return &w
	}
	return nil
}

// Segments returns the segments of a workout, or nil if the workout does
// not exist.
func (s *WorkoutStore) Segments(workoutID models.WorkoutID) []models.Segment {
	w := s.Workout(workoutID)
	if w == nil {
		return nil
	}
	return w.Segments
}

// Segment returns a specific segment of a workout, or nil.
func (s *WorkoutStore) Segment(segmentID models.SegmentID, workoutID models.WorkoutID) *models.Segment {
	for _, segment := range s.Segments(workoutID) {
		if segment.ID == segmentID {
			return &segment
		}
	}
	return nil
}

// Sets returns the sets of a segment, or nil if the workout or segment does
// not exist.
func (s *WorkoutStore) Sets(segmentID models.SegmentID, workoutID models.WorkoutID) []models.Set {
	segment := s.Segment(segmentID, workoutID)
	if segment == nil {
		return nil
	}
	return segment.Sets
}

// Set returns a specific set, or nil if any ancestor is missing.
func (s *WorkoutStore) Set(setID models.SetID, segmentID models.SegmentID, workoutID models.WorkoutID) *models.Set {
	for _, set := range s.Sets(segmentID, workoutID) {
		if set.ID == setID {
			return &set
		}
	}
	return nil
}

// index helpers; callers hold s.mu.

func (s *WorkoutStore) workoutIndex(id models.WorkoutID) int {
	return slices.IndexFunc(s.workouts, func(w models.Workout) bool { return w.ID == id })
}

func (s *WorkoutStore) segmentIndex(segmentID models.SegmentID, workoutID models.WorkoutID) (int, int) {
	wi := s.workoutIndex(workoutID)
	if wi < 0 {
		return -1, -1
	}
	si := slices.IndexFunc(s.workouts[wi].Segments, func(seg models.Segment) bool { return seg.ID == segmentID })
	if si < 0 {
		return -1, -1
	}
	return wi, si
}

func (s *WorkoutStore) setIndex(setID models.SetID, segmentID models.SegmentID, workoutID models.WorkoutID) (int, int, int) {
	wi, si := s.segmentIndex(segmentID, workoutID)
	if wi < 0 {
		return -1, -1, -1
	}
	ti := slices.IndexFunc(s.workouts[wi].Segments[si].Sets, func(set models.Set) bool { return set.ID == setID })
	if ti < 0 {
		return -1, -1, -1
	}
	return wi, si, ti
}

// CreateWorkout appends the workout and schedules a save. It never fails.
func (s *WorkoutStore) CreateWorkout(workout models.Workout) models.Workout {
	s.mu.Lock()
	s.workouts = append(s.workouts, workout.Clone())
	s.mu.Unlock()
	s.scheduleWorkoutsSave()
	return workout
}

// UpdateWorkout replaces the workout with the same ID in place, preserving
// order. Returns nil when no such workout exists.
func (s *WorkoutStore) UpdateWorkout(workout models.Workout) *models.Workout {
	s.mu.Lock()
	i := s.workoutIndex(workout.ID)
	if i < 0 {
		s.mu.Unlock()
		return nil
	}
	s.workouts[i] = workout.Clone()
	s.mu.Unlock()
	s.scheduleWorkoutsSave()
	return &workout
}

// UpdateWorkoutFunc applies the mutation to a copy of the workout and
// writes it back, holding the lock for the whole operation so concurrent
// mutators cannot interleave. Returns nil when no such workout exists.
func (s *WorkoutStore) UpdateWorkoutFunc(id models.WorkoutID, update func(*models.Workout)) *models.Workout {
	s.mu.Lock()
	i := s.workoutIndex(id)
	if i < 0 {
		s.mu.Unlock()
		return nil
	}
	w := s.workouts[i].Clone()
	update(&w)
	w.ID = id
	s.workouts[i] = w.Clone()
	s.mu.Unlock()
	s.scheduleWorkoutsSave()
	return &w
}

// DeleteWorkout removes the workout and everything it owns. Deleting a
// missing workout is a no-op.
func (s *WorkoutStore) DeleteWorkout(id models.WorkoutID) {
	s.mu.Lock()
	before := len(s.workouts)
	s.workouts = slices.DeleteFunc(s.workouts, func(w models.Workout) bool { return w.ID == id })
	changed := len(s.workouts) != before
	s.mu.Unlock()
	if changed {
		s.scheduleWorkoutsSave()
	}
}

// CreateSegment appends the segment to the workout. Returns nil when the
// workout does not exist.
func (s *WorkoutStore) CreateSegment(segment models.Segment, workoutID models.WorkoutID) *models.Segment {
	s.mu.Lock()
	i := s.workoutIndex(workoutID)
	if i < 0 {
		s.mu.Unlock()
		return nil
	}
	s.workouts[i].Segments = append(s.workouts[i].Segments, segment.Clone())
	s.mu.Unlock()
	s.scheduleWorkoutsSave()
	return &segment
}

// UpdateSegment replaces the segment in place. Returns nil when the workout
// or segment does not exist.
func (s *WorkoutStore) UpdateSegment(segment models.Segment, workoutID models.WorkoutID) *models.Segment {
	s.mu.Lock()
	wi, si := s.segmentIndex(segment.ID, workoutID)
	if wi < 0 {
		s.mu.Unlock()
		return nil
	}
	s.workouts[wi].Segments[si] = segment.Clone()
	s.mu.Unlock()
	s.scheduleWorkoutsSave()
	return &segment
}

// UpdateSegmentFunc applies the mutation to a copy of the segment and
// writes it back under a single lock acquisition.
func (s *WorkoutStore) UpdateSegmentFunc(segmentID models.SegmentID, workoutID models.WorkoutID, update func(*models.Segment)) *models.Segment {
	s.mu.Lock()
	wi, si := s.segmentIndex(segmentID, workoutID)
	if wi < 0 {
		s.mu.Unlock()
		return nil
	}
	segment := s.workouts[wi].Segments[si].Clone()
	update(&segment)
	segment.ID = segmentID
	s.workouts[wi].Segments[si] = segment.Clone()
	s.mu.Unlock()
	s.scheduleWorkoutsSave()
	return &segment
}

// MoveSegments reorders a workout's segments: the segments at fromIndices
// are moved as a block to toIndex, where toIndex is interpreted against the
// list before removal. Out-of-range indices are ignored; a missing workout
// is a no-op.
func (s *WorkoutStore) MoveSegments(workoutID models.WorkoutID, fromIndices []int, toIndex int) {
	s.mu.Lock()
	wi := s.workoutIndex(workoutID)
	if wi < 0 {
		s.mu.Unlock()
		return
	}

	segments := s.workouts[wi].Segments
	from := make([]int, 0, len(fromIndices))
	for _, i := range fromIndices {
		if i >= 0 && i < len(segments) {
			from = append(from, i)
		}
	}
	if len(from) == 0 {
		s.mu.Unlock()
		return
	}
	sort.Ints(from)

	moved := make([]models.Segment, 0, len(from))
	picked := make(map[int]bool, len(from))
	for _, i := range from {
		if picked[i] {
			continue
		}
		picked[i] = true
		moved = append(moved, segments[i])
	}

	remaining := make([]models.Segment, 0, len(segments)-len(moved))
	insertAt := min(toIndex, len(segments))
	for i, segment := range segments {
		if picked[i] {
			if i < toIndex {
				insertAt--
			}
			continue
		}
		remaining = append(remaining, segment)
	}
	insertAt = max(0, min(insertAt, len(remaining)))

	reordered := make([]models.Segment, 0, len(segments))
	reordered = append(reordered, remaining[:insertAt]...)
	reordered = append(reordered, moved...)
	reordered = append(reordered, remaining[insertAt:]...)
	s.workouts[wi].Segments = reordered
	s.mu.Unlock()
	s.scheduleWorkoutsSave()
}

// DeleteSegment removes the segment from the workout. Missing ancestors are
// a no-op.
func (s *WorkoutStore) DeleteSegment(segmentID models.SegmentID, workoutID models.WorkoutID) {
	s.mu.Lock()
	wi := s.workoutIndex(workoutID)
	if wi < 0 {
		s.mu.Unlock()
		return
	}
	before := len(s.workouts[wi].Segments)
	s.workouts[wi].Segments = slices.DeleteFunc(s.workouts[wi].Segments, func(seg models.Segment) bool { return seg.ID == segmentID })
	changed := len(s.workouts[wi].Segments) != before
	s.mu.Unlock()
	if changed {
		s.scheduleWorkoutsSave()
	}
}

// CreateSet appends the set to the segment. Returns nil when any ancestor
// is missing.
func (s *WorkoutStore) CreateSet(set models.Set, segmentID models.SegmentID, workoutID models.WorkoutID) *models.Set {
	s.mu.Lock()
	wi, si := s.segmentIndex(segmentID, workoutID)
	if wi < 0 {
		s.mu.Unlock()
		return nil
	}
	s.workouts[wi].Segments[si].Sets = append(s.workouts[wi].Segments[si].Sets, set.Duplicated(false))
	s.mu.Unlock()
	s.scheduleWorkoutsSave()
	return &set
}

// UpdateSet replaces the set in place. Returns nil when any ancestor or the
// set itself is missing.
func (s *WorkoutStore) UpdateSet(set models.Set, segmentID models.SegmentID, workoutID models.WorkoutID) *models.Set {
	s.mu.Lock()
	wi, si, ti := s.setIndex(set.ID, segmentID, workoutID)
	if wi < 0 {
		s.mu.Unlock()
		return nil
	}
	s.workouts[wi].Segments[si].Sets[ti] = set.Duplicated(false)
	s.mu.Unlock()
	s.scheduleWorkoutsSave()
	return &set
}

// UpdateSetFunc applies the mutation to a copy of the set and writes it
// back under a single lock acquisition.
func (s *WorkoutStore) UpdateSetFunc(setID models.SetID, segmentID models.SegmentID, workoutID models.WorkoutID, update func(*models.Set)) *models.Set {
	s.mu.Lock()
	wi, si, ti := s.setIndex(setID, segmentID, workoutID)
	if wi < 0 {
		s.mu.Unlock()
		return nil
	}
	set := s.workouts[wi].Segments[si].Sets[ti].Duplicated(false)
	update(&set)
	set.ID = setID
	s.workouts[wi].Segments[si].Sets[ti] = set.Duplicated(false)
	s.mu.Unlock()
	s.scheduleWorkoutsSave()
	return &set
}

// DeleteSet removes the set from the segment. Missing ancestors are a
// no-op.
func (s *WorkoutStore) DeleteSet(setID models.SetID, segmentID models.SegmentID, workoutID models.WorkoutID) {
	s.mu.Lock()
	wi, si := s.segmentIndex(segmentID, workoutID)
	if wi < 0 {
		s.mu.Unlock()
		return
	}
	before := len(s.workouts[wi].Segments[si].Sets)
	s.workouts[wi].Segments[si].Sets = slices.DeleteFunc(s.workouts[wi].Segments[si].Sets, func(set models.Set) bool { return set.ID == setID })
	changed := len(s.workouts[wi].Segments[si].Sets) != before
	s.mu.Unlock()
	if changed {
		s.scheduleWorkoutsSave()
	}
}
