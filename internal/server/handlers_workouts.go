package server

import (
	"net/http"
	"time"

	"github.com/claude/fitjournal/internal/models"
)

func (s *Server) handleListWorkouts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Workouts())
}

func (s *Server) handleCreateWorkout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date *time.Time `json:"date"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	workout := models.NewWorkout()
	if req.Date != nil {
		workout.Date = *req.Date
	}
	writeJSON(w, http.StatusCreated, s.store.CreateWorkout(workout))
}

func (s *Server) handleGetWorkout(w http.ResponseWriter, r *http.Request) {
	workoutID, ok := urlID[models.Workout](w, r, "workoutID")
	if !ok {
		return
	}
	workout := s.store.Workout(workoutID)
	if workout == nil {
		writeError(w, http.StatusNotFound, "workout not found")
		return
	}
	writeJSON(w, http.StatusOK, workout)
}

func (s *Server) handleUpdateWorkout(w http.ResponseWriter, r *http.Request) {
	workoutID, ok := urlID[models.Workout](w, r, "workoutID")
	if !ok {
		return
	}
	var workout models.Workout
	if !decodeBody(w, r, &workout) {
		return
	}
	workout.ID = workoutID

	updated := s.store.UpdateWorkout(workout)
	if updated == nil {
		writeError(w, http.StatusNotFound, "workout not found")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteWorkout(w http.ResponseWriter, r *http.Request) {
	workoutID, ok := urlID[models.Workout](w, r, "workoutID")
	if !ok {
		return
	}
	s.store.DeleteWorkout(workoutID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCreateSegment(w http.ResponseWriter, r *http.Request) {
	workoutID, ok := urlID[models.Workout](w, r, "workoutID")
	if !ok {
		return
	}
	var req struct {
		Exercise models.ExerciseID `json:"exercise"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Exercise.IsZero() {
		writeError(w, http.StatusBadRequest, "exercise is required")
		return
	}
	if s.store.Exercise(req.Exercise) == nil {
		writeError(w, http.StatusUnprocessableEntity, "exercise not found")
		return
	}

	segment := s.store.CreateSegment(models.NewSegment(req.Exercise), workoutID)
	if segment == nil {
		writeError(w, http.StatusNotFound, "workout not found")
		return
	}
	writeJSON(w, http.StatusCreated, segment)
}

func (s *Server) handleUpdateSegment(w http.ResponseWriter, r *http.Request) {
	workoutID, ok := urlID[models.Workout](w, r, "workoutID")
	if !ok {
		return
	}
	segmentID, ok := urlID[models.Segment](w, r, "segmentID")
	if !ok {
		return
	}
	var segment models.Segment
	if !decodeBody(w, r, &segment) {
		return
	}
	segment.ID = segmentID

	updated := s.store.UpdateSegment(segment, workoutID)
	if updated == nil {
		writeError(w, http.StatusNotFound, "segment not found")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleReorderSegments(w http.ResponseWriter, r *http.Request) {
	workoutID, ok := urlID[models.Workout](w, r, "workoutID")
	if !ok {
		return
	}
	var req struct {
		From []int `json:"from"`
		To   int   `json:"to"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	if s.store.Workout(workoutID) == nil {
		writeError(w, http.StatusNotFound, "workout not found")
		return
	}
	s.store.MoveSegments(workoutID, req.From, req.To)
	writeJSON(w, http.StatusOK, s.store.Segments(workoutID))
}

func (s *Server) handleDeleteSegment(w http.ResponseWriter, r *http.Request) {
	workoutID, ok := urlID[models.Workout](w, r, "workoutID")
	if !ok {
		return
	}
	segmentID, ok := urlID[models.Segment](w, r, "segmentID")
	if !ok {
		return
	}
	s.store.DeleteSegment(segmentID, workoutID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCreateSet(w http.ResponseWriter, r *http.Request) {
	workoutID, ok := urlID[models.Workout](w, r, "workoutID")
	if !ok {
		return
	}
	segmentID, ok := urlID[models.Segment](w, r, "segmentID")
	if !ok {
		return
	}
	var req struct {
		Weight      models.Weight `json:"weight"`
		Repetitions int           `json:"repetitions"`
		RPE         *int          `json:"rateOfPerceivedExertion"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	set := models.NewSet(req.Weight, req.Repetitions)
	set.RateOfPerceivedExertion = req.RPE
	created := s.store.CreateSet(set, segmentID, workoutID)
	if created == nil {
		writeError(w, http.StatusNotFound, "segment not found")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateSet(w http.ResponseWriter, r *http.Request) {
	workoutID, ok := urlID[models.Workout](w, r, "workoutID")
	if !ok {
		return
	}
	segmentID, ok := urlID[models.Segment](w, r, "segmentID")
	if !ok {
		return
	}
	setID, ok := urlID[models.Set](w, r, "setID")
	if !ok {
		return
	}
	var set models.Set
	if !decodeBody(w, r, &set) {
		return
	}
	set.ID = setID

	updated := s.store.UpdateSet(set, segmentID, workoutID)
	if updated == nil {
		writeError(w, http.StatusNotFound, "set not found")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteSet(w http.ResponseWriter, r *http.Request) {
	workoutID, ok := urlID[models.Workout](w, r, "workoutID")
	if !ok {
		return
	}
	segmentID, ok := urlID[models.Segment](w, r, "segmentID")
	if !ok {
		return
	}
	setID, ok := urlID[models.Set](w, r, "setID")
	if !ok {
		return
	}
	s.store.DeleteSet(setID, segmentID, workoutID)
	w.WriteHeader(http.StatusNoContent)
}
