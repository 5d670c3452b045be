package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/claude/fitjournal/internal/models"
	"github.com/mark3labs/mcp-go/mcp"
)

func (h *handlers) recentWorkouts(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	workouts, err := h.ds.ListWorkouts(ctx)
	if err != nil {
		return nil, err
	}

	cutoff := time.Now().AddDate(0, 0, -14)
	recent := make([]models.Workout, 0, len(workouts))
	for _, w := range workouts {
		if w.Date.After(cutoff) {
			recent = append(recent, w)
		}
	}

	data, err := json.Marshal(recent)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (h *handlers) exerciseCatalog(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	exercises, err := h.ds.ListExercises(ctx)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(exercises)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
