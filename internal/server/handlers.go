package server

import (
	"encoding/json"
	"net/http"

	"github.com/claude/fitjournal/internal/models"
	"github.com/go-chi/chi/v5"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// urlID parses the named chi URL parameter as an identifier. On failure it
// writes a 400 response and reports false.
func urlID[Entity any](w http.ResponseWriter, r *http.Request, name string) (models.Identifier[Entity], bool) {
	id, err := models.ParseID[Entity](chi.URLParam(r, name))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+name)
		return id, false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return false
	}
	return true
}
