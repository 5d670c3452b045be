package persist

import (
	"context"
	"slices"
	"sync"

	"github.com/claude/fitjournal/internal/models"
)

// Event is a persistor operation observed by a MemoryPersistor.
type Event string

const (
	EventLoadWorkouts  Event = "loadWorkouts"
	EventSaveWorkouts  Event = "saveWorkouts"
	EventLoadExercises Event = "loadExercises"
	EventSaveExercises Event = "saveExercises"
)

// MemoryPersistor keeps the journal in memory only. It doubles as the spy
// used in tests: every operation is recorded and can be waited for.
type MemoryPersistor struct {
	mu        sync.Mutex
	workouts  []models.Workout
	exercises []models.Exercise
	events    []Event
	changed   chan struct{}

	// SaveErr, when set, is returned by every save. Loads are unaffected.
	SaveErr error
}

// NewMemoryPersistor creates a memory persistor seeded with the given data.
func NewMemoryPersistor(workouts []models.Workout, exercises []models.Exercise) *MemoryPersistor {
	return &MemoryPersistor{
		workouts:  cloneWorkouts(workouts),
		exercises: cloneExercises(exercises),
		changed:   make(chan struct{}),
	}
}

func (m *MemoryPersistor) record(ev Event) {
	m.events = append(m.events, ev)
	close(m.changed)
	m.changed = make(chan struct{})
}

func (m *MemoryPersistor) LoadWorkouts(ctx context.Context) ([]models.Workout, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record(EventLoadWorkouts)
	return cloneWorkouts(m.workouts), nil
}

func (m *MemoryPersistor) SaveWorkouts(ctx context.Context, workouts []models.Workout) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record(EventSaveWorkouts)
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.workouts = cloneWorkouts(workouts)
	return nil
}

func (m *MemoryPersistor) LoadExercises(ctx context.Context) ([]models.Exercise, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record(EventLoadExercises)
	return cloneExercises(m.exercises), nil
}

func (m *MemoryPersistor) SaveExercises(ctx context.Context, exercises []models.Exercise) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record(EventSaveExercises)
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.exercises = cloneExercises(exercises)
	return nil
}

// Events returns the operations observed so far, in order.
func (m *MemoryPersistor) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.events)
}

// Workouts returns the currently persisted workouts.
func (m *MemoryPersistor) Workouts() []models.Workout {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneWorkouts(m.workouts)
}

// Exercises returns the currently persisted exercises.
func (m *MemoryPersistor) Exercises() []models.Exercise {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneExercises(m.exercises)
}

// WaitForEvent blocks until the given event has been observed at least n
// times or the context expires.
func (m *MemoryPersistor) WaitForEvent(ctx context.Context, ev Event, n int) error {
	for {
		m.mu.Lock()
		count := 0
		for _, e := range m.events {
			if e == ev {
				count++
			}
		}
		changed := m.changed
		m.mu.Unlock()

		if count >= n {
			return nil
		}
		select {
		case <-changed:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
