// Package store holds the in-memory journal and mediates every mutation.
// The store is the single source of truth for the running session: reads
// are served from memory, mutations apply synchronously and fan out to
// asynchronous best-effort persistence.
package store

import (
	"context"
	"log/slog"
	"sync"

	"github.com/claude/fitjournal/internal/models"
)

// Persistor is the persistence seam the store runs on.
type Persistor interface {
	LoadWorkouts(ctx context.Context) ([]models.Workout, error)
	SaveWorkouts(ctx context.Context, workouts []models.Workout) error
	LoadExercises(ctx context.Context) ([]models.Exercise, error)
	SaveExercises(ctx context.Context, exercises []models.Exercise) error
}

// WorkoutStore is the in-memory authority for workouts and exercises.
//
// Construction kicks off an asynchronous initial load; until it completes,
// reads return empty collections. Mutations never wait for persistence: a
// background worker saves the touched collection after each mutation,
// coalescing bursts into one save of the then-current state. Save failures
// are logged and dropped; in-memory state stays authoritative.
type WorkoutStore struct {
	mu        sync.RWMutex
	workouts  []models.Workout
	exercises []models.Exercise

	persistor Persistor
	log       *slog.Logger

	loaded chan struct{}

	saveMu         sync.Mutex
	saveCond       *sync.Cond
	dirtyWorkouts  bool
	dirtyExercises bool
	closing        bool
	workerDone     chan struct{}
}

// New creates a store backed by the given persistor and starts its initial
// load and save worker.
func New(persistor Persistor, log *slog.Logger) *WorkoutStore {
	s := &WorkoutStore{
		persistor:  persistor,
		log:        log,
		loaded:     make(chan struct{}),
		workerDone: make(chan struct{}),
	}
	s.saveCond = sync.NewCond(&s.saveMu)
	go s.loadInitial()
	go s.saveWorker()
	return s
}

// Ready is closed once the initial load finishes. Callers that read before
// then see empty collections.
func (s *WorkoutStore) Ready() <-chan struct{} { return s.loaded }

// Close stops the save worker after flushing any pending save.
func (s *WorkoutStore) Close() {
	s.saveMu.Lock()
	s.closing = true
	s.saveCond.Signal()
	s.saveMu.Unlock()
	<-s.workerDone
}

func (s *WorkoutStore) loadInitial() {
	defer close(s.loaded)
	ctx := context.Background()

	workouts, err := s.persistor.LoadWorkouts(ctx)
	if err != nil {
		s.log.Error("failed to load workouts", "error", err)
	} else {
		s.mu.Lock()
		s.workouts = workouts
		s.mu.Unlock()
	}

	exercises, err := s.persistor.LoadExercises(ctx)
	if err != nil {
		s.log.Error("failed to load exercises", "error", err)
	} else {
		s.mu.Lock()
		s.exercises = exercises
		s.mu.Unlock()
	}
}

// scheduleWorkoutsSave marks the workouts collection dirty for the save
// worker. The worker snapshots the collection itself at save time.
func (s *WorkoutStore) scheduleWorkoutsSave() {
	s.saveMu.Lock()
	s.dirtyWorkouts = true
	s.saveCond.Signal()
	s.saveMu.Unlock()
}

func (s *WorkoutStore) scheduleExercisesSave() {
	s.saveMu.Lock()
	s.dirtyExercises = true
	s.saveCond.Signal()
	s.saveMu.Unlock()
}

// saveWorker runs until Close. Each pass persists whichever collections
// were touched since the last one; every save snapshots the current full
// collection, so bursts of mutations coalesce without losing any effect.
func (s *WorkoutStore) saveWorker() {
	defer close(s.workerDone)
	ctx := context.Background()

	for {
		s.saveMu.Lock()
		for !s.dirtyWorkouts && !s.dirtyExercises && !s.closing {
			s.saveCond.Wait()
		}
		workouts, exercises := s.dirtyWorkouts, s.dirtyExercises
		s.dirtyWorkouts, s.dirtyExercises = false, false
		closing := s.closing
		s.saveMu.Unlock()

		if workouts {
			if err := s.persistor.SaveWorkouts(ctx, s.Workouts()); err != nil {
				s.log.Error("failed to save workouts", "error", err)
			}
		}
		if exercises {
			if err := s.persistor.SaveExercises(ctx, s.Exercises()); err != nil {
				s.log.Error("failed to save exercises", "error", err)
			}
		}

		if closing && !workouts && !exercises {
			return
		}
	}
}
