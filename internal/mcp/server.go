package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("FitJournal", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("FitJournal workout journal server. Query workouts, segments, sets and the exercise catalog, including per-exercise history and personal records."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolListWorkouts, Handler: h.listWorkouts},
		server.ServerTool{Tool: toolGetWorkout, Handler: h.getWorkout},
		server.ServerTool{Tool: toolListExercises, Handler: h.listExercises},
		server.ServerTool{Tool: toolGetExerciseHistory, Handler: h.getExerciseHistory},
		server.ServerTool{Tool: toolGetMaxWeight, Handler: h.getMaxWeight},
		server.ServerTool{Tool: toolGetLastPerformance, Handler: h.getLastPerformance},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resRecentWorkouts, Handler: h.recentWorkouts},
		server.ServerResource{Resource: resExerciseCatalog, Handler: h.exerciseCatalog},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resRecentWorkouts = mcp.NewResource(
	"fitjournal://recent_workouts",
	"Recent Workouts",
	mcp.WithResourceDescription("Workouts from the last 14 days with their segments and sets"),
	mcp.WithMIMEType("application/json"),
)

var resExerciseCatalog = mcp.NewResource(
	"fitjournal://exercises",
	"Exercise Catalog",
	mcp.WithResourceDescription("All exercises in the journal"),
	mcp.WithMIMEType("application/json"),
)
