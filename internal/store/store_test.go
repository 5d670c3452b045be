package store

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/claude/fitjournal/internal/models"
	"github.com/claude/fitjournal/internal/persist"
)

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func newTestStore(t *testing.T, p *persist.MemoryPersistor) *WorkoutStore {
	t.Helper()
	s := New(p, slog.New(slog.DiscardHandler))
	t.Cleanup(s.Close)
	select {
	case <-s.Ready():
	case <-time.After(5 * time.Second):
		t.Fatal("store never finished loading")
	}
	return s
}

func lbs(value float64) models.Weight {
	return models.Weight{Distribution: models.Total(value), Units: models.Pounds}
}

// journal builds a store seeded with one exercise and one workout holding a
// single segment of that exercise with one set.
func journal(t *testing.T) (*WorkoutStore, models.Workout, models.Exercise) {
	t.Helper()
	exercise := models.NewExercise("Bench Press")
	segment := models.NewSegment(exercise.ID)
	segment.Sets = []models.Set{models.NewSet(lbs(135), 5)}
	workout := models.NewWorkout()
	workout.Segments = []models.Segment{segment}

	p := persist.NewMemoryPersistor([]models.Workout{workout}, []models.Exercise{exercise})
	return newTestStore(t, p), workout, exercise
}

func TestLoadsSeedOnConstruction(t *testing.T) {
	s, workout, exercise := journal(t)

	if got := s.Workouts(); len(got) != 1 || got[0].ID != workout.ID {
		t.Fatalf("Workouts() = %+v, want the seeded workout", got)
	}
	if got := s.Exercises(); len(got) != 1 || got[0].ID != exercise.ID {
		t.Fatalf("Exercises() = %+v, want the seeded exercise", got)
	}
}

func TestCreateWorkoutPersists(t *testing.T) {
	p := persist.NewMemoryPersistor(nil, nil)
	s := newTestStore(t, p)

	w := s.CreateWorkout(models.NewWorkout())

	if err := p.WaitForEvent(testContext(t), persist.EventSaveWorkouts, 1); err != nil {
		t.Fatalf("save never reached persistor: %v", err)
	}
	if got := p.Workouts(); len(got) != 1 || got[0].ID != w.ID {
		t.Fatalf("persisted workouts = %+v, want the created workout", got)
	}
}

func TestUpdateMissingWorkoutReturnsNil(t *testing.T) {
	s := newTestStore(t, persist.NewMemoryPersistor(nil, nil))

	if got := s.UpdateWorkout(models.NewWorkout()); got != nil {
		t.Fatalf("UpdateWorkout on missing workout = %+v, want nil", got)
	}
	if got := s.UpdateWorkoutFunc(models.NewID[models.Workout](), func(*models.Workout) {}); got != nil {
		t.Fatalf("UpdateWorkoutFunc on missing workout = %+v, want nil", got)
	}
}

func TestDeleteWorkout(t *testing.T) {
	s, workout, _ := journal(t)

	s.DeleteWorkout(workout.ID)

	if got := s.Workouts(); len(got) != 0 {
		t.Fatalf("Workouts() after delete = %+v, want empty", got)
	}
	// Deleting again is a no-op.
	s.DeleteWorkout(workout.ID)
}

func TestSegmentUpdatePropagates(t *testing.T) {
	s, workout, _ := journal(t)
	segmentID := workout.Segments[0].ID

	updated := s.UpdateSegmentFunc(segmentID, workout.ID, func(seg *models.Segment) {
		seg.Sets = append(seg.Sets, models.NewSet(lbs(155), 3))
	})
	if updated == nil {
		t.Fatal("UpdateSegmentFunc returned nil for an existing segment")
	}

	got := s.Segment(segmentID, workout.ID)
	if got == nil || len(got.Sets) != 2 {
		t.Fatalf("Segment after update = %+v, want 2 sets", got)
	}
}

func TestUpdateSegmentMissingWorkout(t *testing.T) {
	s, workout, _ := journal(t)

	got := s.UpdateSegment(workout.Segments[0], models.NewID[models.Workout]())
	if got != nil {
		t.Fatalf("UpdateSegment under missing workout = %+v, want nil", got)
	}
}

func TestSetLifecycle(t *testing.T) {
	s, workout, _ := journal(t)
	segmentID := workout.Segments[0].ID

	created := s.CreateSet(models.NewSet(lbs(145), 4), segmentID, workout.ID)
	if created == nil {
		t.Fatal("CreateSet returned nil")
	}
	if got := s.Sets(segmentID, workout.ID); len(got) != 2 {
		t.Fatalf("Sets after create = %d, want 2", len(got))
	}

	updated := s.UpdateSetFunc(created.ID, segmentID, workout.ID, func(set *models.Set) {
		set.Repetitions = 6
	})
	if updated == nil || updated.Repetitions != 6 {
		t.Fatalf("UpdateSetFunc = %+v, want repetitions 6", updated)
	}
	if got := s.Set(created.ID, segmentID, workout.ID); got == nil || got.Repetitions != 6 {
		t.Fatalf("Set after update = %+v, want repetitions 6", got)
	}

	s.DeleteSet(created.ID, segmentID, workout.ID)
	if got := s.Sets(segmentID, workout.ID); len(got) != 1 {
		t.Fatalf("Sets after delete = %d, want 1", len(got))
	}
}

func TestLookupsUnderMissingAncestors(t *testing.T) {
	s, workout, _ := journal(t)
	segmentID := workout.Segments[0].ID
	missingWorkout := models.NewID[models.Workout]()

	if got := s.Segments(missingWorkout); got != nil {
		t.Fatalf("Segments under missing workout = %+v, want nil", got)
	}
	if got := s.Sets(segmentID, missingWorkout); got != nil {
		t.Fatalf("Sets under missing workout = %+v, want nil", got)
	}
	if got := s.CreateSet(models.NewSet(lbs(100), 5), segmentID, missingWorkout); got != nil {
		t.Fatalf("CreateSet under missing workout = %+v, want nil", got)
	}
}

func TestMoveSegments(t *testing.T) {
	exercise := models.NewExercise("Squat")
	workout := models.NewWorkout()
	for range 4 {
		workout.Segments = append(workout.Segments, models.NewSegment(exercise.ID))
	}
	ids := make([]models.SegmentID, len(workout.Segments))
	for i, seg := range workout.Segments {
		ids[i] = seg.ID
	}

	tests := []struct {
		name string
		from []int
		to   int
		want []int // permutation of original indices
	}{
		{"single forward", []int{0}, 3, []int{1, 2, 0, 3}},
		{"single backward", []int{3}, 0, []int{3, 0, 1, 2}},
		{"block to end", []int{0, 1}, 4, []int{2, 3, 0, 1}},
		{"out of range ignored", []int{9}, 0, []int{0, 1, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := persist.NewMemoryPersistor([]models.Workout{workout}, []models.Exercise{exercise})
			s := newTestStore(t, p)

			s.MoveSegments(workout.ID, tt.from, tt.to)

			got := s.Segments(workout.ID)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d segments, want %d", len(got), len(tt.want))
			}
			for i, origIdx := range tt.want {
				if got[i].ID != ids[origIdx] {
					t.Errorf("position %d: got segment %s, want %s", i, got[i].ID, ids[origIdx])
				}
			}
		})
	}
}

func TestDeleteExerciseInUse(t *testing.T) {
	s, _, exercise := journal(t)

	if s.CanDeleteExercise(exercise.ID) {
		t.Error("CanDeleteExercise = true for a referenced exercise")
	}

	err := s.DeleteExercise(exercise.ID)
	var inUse *ExerciseInUseError
	if !errors.As(err, &inUse) {
		t.Fatalf("DeleteExercise = %v, want ExerciseInUseError", err)
	}
	if inUse.Exercise.Name != "Bench Press" {
		t.Errorf("error names %q, want the blocked exercise", inUse.Exercise.Name)
	}
	if got := s.Exercises(); len(got) != 1 {
		t.Fatalf("exercise was removed despite being in use")
	}
}

func TestDeleteExerciseUnreferenced(t *testing.T) {
	s, workout, exercise := journal(t)

	s.DeleteSegment(workout.Segments[0].ID, workout.ID)
	if !s.CanDeleteExercise(exercise.ID) {
		t.Fatal("CanDeleteExercise = false after removing the only reference")
	}
	if err := s.DeleteExercise(exercise.ID); err != nil {
		t.Fatalf("DeleteExercise = %v, want nil", err)
	}
	if got := s.Exercises(); len(got) != 0 {
		t.Fatalf("Exercises after delete = %+v, want empty", got)
	}
	// Deleting a missing exercise is a no-op.
	if err := s.DeleteExercise(exercise.ID); err != nil {
		t.Fatalf("deleting a missing exercise = %v, want nil", err)
	}
}

func TestExerciseUpdate(t *testing.T) {
	s, _, exercise := journal(t)

	updated := s.UpdateExerciseFunc(exercise.ID, func(e *models.Exercise) {
		e.Name = "Incline Bench Press"
	})
	if updated == nil || updated.Name != "Incline Bench Press" {
		t.Fatalf("UpdateExerciseFunc = %+v", updated)
	}
	if got := s.Exercise(exercise.ID); got == nil || got.Name != "Incline Bench Press" {
		t.Fatalf("Exercise after update = %+v", got)
	}
	if got := s.UpdateExercise(models.NewExercise("Ghost")); got != nil {
		t.Fatalf("UpdateExercise on missing exercise = %+v, want nil", got)
	}
}

func TestExerciseHistoryAndMaxWeight(t *testing.T) {
	exercise := models.NewExercise("Deadlift")

	older := models.NewWorkout()
	older.Date = time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	olderSeg := models.NewSegment(exercise.ID)
	olderSeg.Sets = []models.Set{models.NewSet(lbs(225), 5), models.NewSet(lbs(275), 3)}
	older.Segments = []models.Segment{olderSeg}

	newer := models.NewWorkout()
	newer.Date = time.Date(2026, 8, 15, 9, 0, 0, 0, time.UTC)
	newerSeg := models.NewSegment(exercise.ID)
	newerSeg.Sets = []models.Set{models.NewSet(lbs(245), 5)}
	newer.Segments = []models.Segment{newerSeg}

	p := persist.NewMemoryPersistor([]models.Workout{older, newer}, []models.Exercise{exercise})
	s := newTestStore(t, p)

	if got := s.SegmentsUsing(exercise.ID); len(got) != 2 {
		t.Fatalf("SegmentsUsing = %d segments, want 2", len(got))
	}

	latest := s.LatestSegment(exercise.ID)
	if latest == nil || latest.ID != newerSeg.ID {
		t.Fatalf("LatestSegment = %+v, want the segment from the newer workout", latest)
	}

	lastSet := s.LatestSet(exercise.ID)
	if lastSet == nil || lastSet.ID != newerSeg.Sets[0].ID {
		t.Fatalf("LatestSet = %+v, want the newer workout's set", lastSet)
	}

	maxWeight, ok := s.MaxWeight(exercise.ID)
	if !ok || maxWeight.TotalWeight() != 275 {
		t.Fatalf("MaxWeight = %+v ok=%v, want 275 lb", maxWeight, ok)
	}

	history := s.History(exercise.ID)
	if len(history) != 2 {
		t.Fatalf("History has %d dates, want 2", len(history))
	}
	if sets := history[older.Date]; len(sets) != 2 {
		t.Errorf("history for older workout = %d sets, want 2", len(sets))
	}
	if sets := history[newer.Date]; len(sets) != 1 {
		t.Errorf("history for newer workout = %d sets, want 1", len(sets))
	}

	if _, ok := s.MaxWeight(models.NewID[models.Exercise]()); ok {
		t.Error("MaxWeight for unknown exercise reported ok")
	}
	if got := s.LatestSegment(models.NewID[models.Exercise]()); got != nil {
		t.Errorf("LatestSegment for unknown exercise = %+v, want nil", got)
	}
}

func TestSaveFailureKeepsMemoryState(t *testing.T) {
	p := persist.NewMemoryPersistor(nil, nil)
	p.SaveErr = errors.New("disk full")
	s := newTestStore(t, p)

	w := s.CreateWorkout(models.NewWorkout())

	if err := p.WaitForEvent(testContext(t), persist.EventSaveWorkouts, 1); err != nil {
		t.Fatalf("save was never attempted: %v", err)
	}
	if got := s.Workout(w.ID); got == nil {
		t.Fatal("workout vanished from memory after a failed save")
	}
	if got := p.Workouts(); len(got) != 0 {
		t.Fatalf("persistor recorded %d workouts despite failing saves", len(got))
	}
}

func TestCloseFlushesPendingSaves(t *testing.T) {
	p := persist.NewMemoryPersistor(nil, nil)
	s := New(p, slog.New(slog.DiscardHandler))
	<-s.Ready()

	w := s.CreateWorkout(models.NewWorkout())
	e := s.CreateExercise(models.NewExercise("Row"))
	s.Close()

	if got := p.Workouts(); len(got) != 1 || got[0].ID != w.ID {
		t.Fatalf("persisted workouts after Close = %+v", got)
	}
	if got := p.Exercises(); len(got) != 1 || got[0].ID != e.ID {
		t.Fatalf("persisted exercises after Close = %+v", got)
	}
}

func TestMutationsCoalesceIntoFullSnapshotSaves(t *testing.T) {
	p := persist.NewMemoryPersistor(nil, nil)
	s := newTestStore(t, p)

	for range 5 {
		s.CreateWorkout(models.NewWorkout())
	}
	s.Close()

	if got := p.Workouts(); len(got) != 5 {
		t.Fatalf("persisted %d workouts, want all 5", len(got))
	}
}

func TestConcurrentSegmentMutatorsAllApply(t *testing.T) {
	s, workout, _ := journal(t)
	segmentID := workout.Segments[0].ID

	const appends = 200
	var wg sync.WaitGroup
	for range appends {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.UpdateSegmentFunc(segmentID, workout.ID, func(seg *models.Segment) {
				seg.Sets = append(seg.Sets, models.NewSet(lbs(135), 5))
			})
		}()
	}
	wg.Wait()

	seg := s.Segment(segmentID, workout.ID)
	if seg == nil {
		t.Fatal("segment disappeared")
	}
	if got := len(seg.Sets); got != appends+1 {
		t.Fatalf("segment has %d sets after %d concurrent appends, want %d", got, appends, appends+1)
	}
}

func TestConcurrentExerciseMutatorsAllApply(t *testing.T) {
	s, _, exercise := journal(t)

	const updates = 200
	var wg sync.WaitGroup
	for range updates {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.UpdateExerciseFunc(exercise.ID, func(e *models.Exercise) {
				e.Name += "."
			})
		}()
	}
	wg.Wait()

	e := s.Exercise(exercise.ID)
	if e == nil {
		t.Fatal("exercise disappeared")
	}
	if got := len(e.Name) - len(exercise.Name); got != updates {
		t.Fatalf("%d of %d concurrent updates applied", got, updates)
	}
}

// blockingPersistor holds the initial workout load until released.
type blockingPersistor struct {
	*persist.MemoryPersistor
	release chan struct{}
}

func (b *blockingPersistor) LoadWorkouts(ctx context.Context) ([]models.Workout, error) {
	select {
	case <-b.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return b.MemoryPersistor.LoadWorkouts(ctx)
}

func TestReadsBeforeInitialLoadAreEmpty(t *testing.T) {
	workout := models.NewWorkout()
	exercise := models.NewExercise("Deadlift")
	p := &blockingPersistor{
		MemoryPersistor: persist.NewMemoryPersistor([]models.Workout{workout}, []models.Exercise{exercise}),
		release:         make(chan struct{}),
	}
	s := New(p, slog.New(slog.DiscardHandler))
	t.Cleanup(s.Close)

	if got := s.Workouts(); len(got) != 0 {
		t.Fatalf("Workouts() before load = %+v, want empty", got)
	}
	if got := s.Exercises(); len(got) != 0 {
		t.Fatalf("Exercises() before load = %+v, want empty", got)
	}
	if got := s.Workout(workout.ID); got != nil {
		t.Fatalf("Workout() before load = %+v, want nil", got)
	}

	close(p.release)
	select {
	case <-s.Ready():
	case <-time.After(5 * time.Second):
		t.Fatal("store never finished loading")
	}

	if got := s.Workouts(); len(got) != 1 || got[0].ID != workout.ID {
		t.Fatalf("Workouts() after load = %+v, want the seeded workout", got)
	}
	if got := s.Exercises(); len(got) != 1 || got[0].ID != exercise.ID {
		t.Fatalf("Exercises() after load = %+v, want the seeded exercise", got)
	}
}
