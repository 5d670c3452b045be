package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/claude/fitjournal/internal/models"
)

// HTTPClient implements DataSource by calling the FitJournal REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but the
// journal lives on a running server.
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Compile-time check: *HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL. The API
// key may be empty for unprotected servers.
func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// errNotFound marks a 404 so callers can map it to a nil result.
var errNotFound = fmt.Errorf("not found")

func (c *HTTPClient) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, errNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}

	return body, nil
}

func (c *HTTPClient) ListWorkouts(ctx context.Context) ([]models.Workout, error) {
	body, err := c.get(ctx, "/api/v1/workouts")
	if err != nil {
		return nil, err
	}

	var workouts []models.Workout
	if err := json.Unmarshal(body, &workouts); err != nil {
		return nil, fmt.Errorf("httpclient: decode workouts: %w", err)
	}
	return workouts, nil
}

func (c *HTTPClient) GetWorkout(ctx context.Context, id models.WorkoutID) (*models.Workout, error) {
	body, err := c.get(ctx, "/api/v1/workouts/"+id.String())
	if err == errNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var workout models.Workout
	if err := json.Unmarshal(body, &workout); err != nil {
		return nil, fmt.Errorf("httpclient: decode workout: %w", err)
	}
	return &workout, nil
}

func (c *HTTPClient) ListExercises(ctx context.Context) ([]models.Exercise, error) {
	body, err := c.get(ctx, "/api/v1/exercises")
	if err != nil {
		return nil, err
	}

	var exercises []models.Exercise
	if err := json.Unmarshal(body, &exercises); err != nil {
		return nil, fmt.Errorf("httpclient: decode exercises: %w", err)
	}
	return exercises, nil
}

func (c *HTTPClient) GetExerciseHistory(ctx context.Context, id models.ExerciseID) (map[time.Time][]models.Set, error) {
	body, err := c.get(ctx, "/api/v1/exercises/"+id.String()+"/history")
	if err == errNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var history map[time.Time][]models.Set
	if err := json.Unmarshal(body, &history); err != nil {
		return nil, fmt.Errorf("httpclient: decode history: %w", err)
	}
	return history, nil
}

func (c *HTTPClient) GetMaxWeight(ctx context.Context, id models.ExerciseID) (*models.Weight, error) {
	body, err := c.get(ctx, "/api/v1/exercises/"+id.String()+"/max-weight")
	if err == errNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var resp struct {
		Weight models.Weight `json:"weight"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("httpclient: decode max weight: %w", err)
	}
	return &resp.Weight, nil
}

// GetLatestSegment scans the workout list client side; the REST API has no
// dedicated endpoint for it.
func (c *HTTPClient) GetLatestSegment(ctx context.Context, id models.ExerciseID) (*models.Segment, error) {
	workouts, err := c.ListWorkouts(ctx)
	if err != nil {
		return nil, err
	}

	var latest *models.Segment
	var latestDate time.Time
	for _, w := range workouts {
		for _, segment := range w.Segments {
			if segment.Exercise != id {
				continue
			}
			if latest == nil || w.Date.After(latestDate) {
				seg := segment
				latest = &seg
				latestDate = w.Date
			}
		}
	}
	return latest, nil
}
