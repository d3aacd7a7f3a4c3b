package api

import (
	"net/http"
	"strconv"

	"github.com/event-monitor/internal/models"
	"github.com/gorilla/mux"
)

// handleGetPreferences handles GET /api/preferences
func (s *Server) handleGetPreferences(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	respondJSON(w, http.StatusOK, s.preferences.Current(r.Context(), sess))
}

// handleUpdatePreferences handles PUT /api/preferences. A failed durable
// write still returns 200 with persisted=false; the in-memory update stands.
func (s *Server) handleUpdatePreferences(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	var settings models.UserSettings
	if err := parseJSONBody(r, &settings); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}

	result, err := s.preferences.Update(r.Context(), sess, settings)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// handleClearPreferences handles DELETE /api/preferences
func (s *Server) handleClearPreferences(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	result, err := s.preferences.ClearAll(r.Context(), sess)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// handleGetSummary handles GET /api/preferences/summary
func (s *Server) handleGetSummary(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	respondJSON(w, http.StatusOK, s.preferences.Summary(r.Context(), sess))
}

// handleGetHistory handles GET /api/preferences/history
func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	history := s.preferences.History(r.Context(), sess)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"entries": history,
		"count":   len(history),
	})
}

// handleSetWishList handles PUT /api/preferences/wishlist
func (s *Server) handleSetWishList(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req struct {
		Keywords []string `json:"keywords"`
	}
	if err := parseJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}

	result, err := s.preferences.SetWishListKeywords(r.Context(), sess, req.Keywords)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// handleAddMonitorURL handles POST /api/preferences/monitor-urls
func (s *Server) handleAddMonitorURL(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req struct {
		URL string `json:"url"`
	}
	if err := parseJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}

	result, err := s.preferences.AddMonitorURL(r.Context(), sess, req.URL)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, result)
}

// handleRemoveMonitorURL handles DELETE /api/preferences/monitor-urls/{id}
func (s *Server) handleRemoveMonitorURL(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Monitor URL ID must be an integer", nil)
		return
	}

	result, err := s.preferences.RemoveMonitorURL(r.Context(), sess, id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// handleAddCategory handles POST /api/preferences/categories
func (s *Server) handleAddCategory(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := parseJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}

	result, err := s.preferences.AddCustomCategory(r.Context(), sess, req.Name)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, result)
}

// handleRemoveCategory handles DELETE /api/preferences/categories/{name}
func (s *Server) handleRemoveCategory(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	result, err := s.preferences.RemoveCustomCategory(r.Context(), sess, mux.Vars(r)["name"])
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}
