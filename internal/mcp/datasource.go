package mcp

import (
	"context"
	"time"

	"github.com/claude/fitjournal/internal/models"
	"github.com/claude/fitjournal/internal/store"
)

// DataSource abstracts the journal for MCP tools. LocalSource (in-process
// store) and HTTPClient (remote via REST API) both satisfy this interface.
//
// Lookup methods report a missing entity as (nil, nil); errors are reserved
// for transport or storage failures.
type DataSource interface {
	ListWorkouts(ctx context.Context) ([]models.Workout, error)
	GetWorkout(ctx context.Context, id models.WorkoutID) (*models.Workout, error)
	ListExercises(ctx context.Context) ([]models.Exercise, error)
	GetExerciseHistory(ctx context.Context, id models.ExerciseID) (map[time.Time][]models.Set, error)
	GetMaxWeight(ctx context.Context, id models.ExerciseID) (*models.Weight, error)
	GetLatestSegment(ctx context.Context, id models.ExerciseID) (*models.Segment, error)
}

// LocalSource adapts an in-process WorkoutStore to the DataSource seam.
type LocalSource struct {
	Store *store.WorkoutStore
}

// Compile-time check: LocalSource satisfies DataSource.
var _ DataSource = LocalSource{}

func (s LocalSource) ListWorkouts(context.Context) ([]models.Workout, error) {
	return s.Store.Workouts(), nil
}

func (s LocalSource) GetWorkout(_ context.Context, id models.WorkoutID) (*models.Workout, error) {
	return s.Store.Workout(id), nil
}

func (s LocalSource) ListExercises(context.Context) ([]models.Exercise, error) {
	return s.Store.Exercises(), nil
}

func (s LocalSource) GetExerciseHistory(_ context.Context, id models.ExerciseID) (map[time.Time][]models.Set, error) {
	if s.Store.Exercise(id) == nil {
		return nil, nil
	}
	return s.Store.History(id), nil
}

func (s LocalSource) GetMaxWeight(_ context.Context, id models.ExerciseID) (*models.Weight, error) {
	weight, found := s.Store.MaxWeight(id)
	if !found {
		return nil, nil
	}
	return &weight, nil
}

func (s LocalSource) GetLatestSegment(_ context.Context, id models.ExerciseID) (*models.Segment, error) {
	return s.Store.LatestSegment(id), nil
}
