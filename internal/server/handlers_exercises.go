package server

import (
	"errors"
	"net/http"

	"github.com/claude/fitjournal/internal/models"
	"github.com/claude/fitjournal/internal/store"
)

func (s *Server) handleListExercises(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Exercises())
}

func (s *Server) handleCreateExercise(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string  `json:"name"`
		Comment *string `json:"comment"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	exercise := models.NewExercise(req.Name)
	exercise.Comment = req.Comment
	writeJSON(w, http.StatusCreated, s.store.CreateExercise(exercise))
}

func (s *Server) handleGetExercise(w http.ResponseWriter, r *http.Request) {
	exerciseID, ok := urlID[models.Exercise](w, r, "exerciseID")
	if !ok {
		return
	}
	exercise := s.store.Exercise(exerciseID)
	if exercise == nil {
		writeError(w, http.StatusNotFound, "exercise not found")
		return
	}
	writeJSON(w, http.StatusOK, exercise)
}

func (s *Server) handleUpdateExercise(w http.ResponseWriter, r *http.Request) {
	exerciseID, ok := urlID[models.Exercise](w, r, "exerciseID")
	if !ok {
		return
	}
	var exercise models.Exercise
	if !decodeBody(w, r, &exercise) {
		return
	}
	exercise.ID = exerciseID

	updated := s.store.UpdateExercise(exercise)
	if updated == nil {
		writeError(w, http.StatusNotFound, "exercise not found")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteExercise(w http.ResponseWriter, r *http.Request) {
	exerciseID, ok := urlID[models.Exercise](w, r, "exerciseID")
	if !ok {
		return
	}

	err := s.store.DeleteExercise(exerciseID)
	var inUse *store.ExerciseInUseError
	if errors.As(err, &inUse) {
		writeJSON(w, http.StatusConflict, map[string]string{
			"error":    err.Error(),
			"exercise": inUse.Exercise.Name,
		})
		return
	}
	if err != nil {
		s.log.Error("failed to delete exercise", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleExerciseHistory(w http.ResponseWriter, r *http.Request) {
	exerciseID, ok := urlID[models.Exercise](w, r, "exerciseID")
	if !ok {
		return
	}
	if s.store.Exercise(exerciseID) == nil {
		writeError(w, http.StatusNotFound, "exercise not found")
		return
	}
	writeJSON(w, http.StatusOK, s.store.History(exerciseID))
}

func (s *Server) handleExerciseMaxWeight(w http.ResponseWriter, r *http.Request) {
	exerciseID, ok := urlID[models.Exercise](w, r, "exerciseID")
	if !ok {
		return
	}
	if s.store.Exercise(exerciseID) == nil {
		writeError(w, http.StatusNotFound, "exercise not found")
		return
	}
	weight, found := s.store.MaxWeight(exerciseID)
	if !found {
		writeError(w, http.StatusNotFound, "no sets recorded for exercise")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"weight":      weight,
		"totalWeight": weight.TotalWeight(),
	})
}
