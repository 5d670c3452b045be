package mcp

import (
	"context"

	"github.com/claude/fitjournal/internal/models"
	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var toolListWorkouts = mcp.NewTool("list_workouts",
	mcp.WithDescription("List all workouts in the journal. Each workout includes its date and segments with sets (weight, repetitions, RPE)."),
)

var toolGetWorkout = mcp.NewTool("get_workout",
	mcp.WithDescription("Get a single workout by ID, including all segments and sets."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Workout UUID")),
)

var toolListExercises = mcp.NewTool("list_exercises",
	mcp.WithDescription("List all exercises in the catalog."),
)

var toolGetExerciseHistory = mcp.NewTool("get_exercise_history",
	mcp.WithDescription("Get every set recorded for an exercise, grouped by workout date. Useful for tracking progression over time."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise UUID")),
)

var toolGetMaxWeight = mcp.NewTool("get_max_weight",
	mcp.WithDescription("Get the heaviest weight ever recorded for an exercise, compared by total load (dumbbells count both hands, barbells count plates on both sides plus the bar)."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise UUID")),
)

var toolGetLastPerformance = mcp.NewTool("get_last_performance",
	mcp.WithDescription("Get the most recent segment recorded for an exercise: the sets performed the last time it was trained."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise UUID")),
)

// --- Tool handlers ---

func (h *handlers) listWorkouts(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workouts, err := h.ds.ListWorkouts(ctx)
	if err != nil {
		h.log.Error("mcp list_workouts", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(workouts)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	idStr, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id parameter is required"), nil
	}
	id, err := models.ParseID[models.Workout](idStr)
	if err != nil {
		return mcp.NewToolResultError("invalid workout id: " + err.Error()), nil
	}

	workout, err := h.ds.GetWorkout(ctx, id)
	if err != nil {
		h.log.Error("mcp get_workout", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	if workout == nil {
		return mcp.NewToolResultError("workout not found"), nil
	}

	result, err := mcp.NewToolResultJSON(workout)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listExercises(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercises, err := h.ds.ListExercises(ctx)
	if err != nil {
		h.log.Error("mcp list_exercises", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(exercises)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) exerciseID(req mcp.CallToolRequest) (models.ExerciseID, *mcp.CallToolResult) {
	idStr, err := req.RequireString("exercise")
	if err != nil {
		return models.ExerciseID{}, mcp.NewToolResultError("exercise parameter is required")
	}
	id, err := models.ParseID[models.Exercise](idStr)
	if err != nil {
		return models.ExerciseID{}, mcp.NewToolResultError("invalid exercise id: " + err.Error())
	}
	return id, nil
}

func (h *handlers) getExerciseHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errResult := h.exerciseID(req)
	if errResult != nil {
		return errResult, nil
	}

	history, err := h.ds.GetExerciseHistory(ctx, id)
	if err != nil {
		h.log.Error("mcp get_exercise_history", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	if history == nil {
		return mcp.NewToolResultError("exercise not found"), nil
	}

	result, err := mcp.NewToolResultJSON(history)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getMaxWeight(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errResult := h.exerciseID(req)
	if errResult != nil {
		return errResult, nil
	}

	weight, err := h.ds.GetMaxWeight(ctx, id)
	if err != nil {
		h.log.Error("mcp get_max_weight", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	if weight == nil {
		return mcp.NewToolResultError("no sets recorded for exercise"), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"weight":      weight,
		"totalWeight": weight.TotalWeight(),
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getLastPerformance(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errResult := h.exerciseID(req)
	if errResult != nil {
		return errResult, nil
	}

	segment, err := h.ds.GetLatestSegment(ctx, id)
	if err != nil {
		h.log.Error("mcp get_last_performance", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	if segment == nil {
		return mcp.NewToolResultError("exercise was never performed"), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"segment":     segment,
		"composition": segment.CompositionString(),
		"repetitions": segment.DisplayRepetitions(),
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
