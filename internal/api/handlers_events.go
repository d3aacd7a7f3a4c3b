package api

import (
	"net/http"
	"strconv"

	"github.com/event-monitor/internal/catalog"
	"github.com/event-monitor/internal/errors"
	"github.com/event-monitor/internal/types"
	"github.com/gorilla/mux"
)

// handleLiveEvents handles GET /api/events?window=
func (s *Server) handleLiveEvents(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	window, ok := types.ParseDateWindow(r.URL.Query().Get("window"))
	if !ok {
		respondServiceError(w, r, errors.NewValidationError("window", "must be one of all, 7d, 1mo, 3mo, 6mo, 1y"))
		return
	}

	events := s.events.LiveEvents(r.Context(), sess, window, s.now())
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"events": events,
		"count":  len(events),
		"window": window,
	})
}

// handleWishListEvents handles GET /api/events/wishlist
func (s *Server) handleWishListEvents(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	events := s.events.WishListEvents(r.Context(), sess, s.now())
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"events": events,
		"count":  len(events),
	})
}

// handleCalendar handles GET /api/events/calendar.ics - the visible events as iCalendar
func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	window, ok := types.ParseDateWindow(r.URL.Query().Get("window"))
	if !ok {
		respondServiceError(w, r, errors.NewValidationError("window", "must be one of all, 7d, 1mo, 3mo, 6mo, 1y"))
		return
	}

	now := s.now()
	body := catalog.ExportICS(s.events.VisibleEvents(r.Context(), sess, window, now), now)

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="events.ics"`)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(body))
}

// handleHideEvent handles POST /api/events/{id}/hide
func (s *Server) handleHideEvent(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	id, ok := parseEventID(w, r)
	if !ok {
		return
	}

	result, err := s.preferences.HideEvent(r.Context(), sess, id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// handleUnhideEvent handles DELETE /api/events/{id}/hide
func (s *Server) handleUnhideEvent(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	id, ok := parseEventID(w, r)
	if !ok {
		return
	}

	result, err := s.preferences.UnhideEvent(r.Context(), sess, id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func parseEventID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidInput, "Event ID must be an integer", nil)
		return 0, false
	}
	return id, true
}
