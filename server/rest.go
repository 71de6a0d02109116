package server

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/umputun/cookieconsent/pkg/consent"
	"github.com/umputun/cookieconsent/pkg/domain"
)

// recordResponse is the JSON view of the persisted decision
type recordResponse struct {
	Necessary bool      `json:"necessary"`
	Analytics bool      `json:"analytics"`
	Marketing bool      `json:"marketing"`
	DecidedAt time.Time `json:"decidedAt"`
}

func newRecordResponse(rec domain.ConsentRecord) recordResponse {
	return recordResponse{
		Necessary: rec.Necessary,
		Analytics: rec.Analytics,
		Marketing: rec.Marketing,
		DecidedAt: rec.DecidedAt,
	}
}

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
	}
	renderJSON(w, r, http.StatusOK, status)
}

// consentStateHandler returns the current prompt phase and draft
func (s *Server) consentStateHandler(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, r, http.StatusOK, s.state())
}

// consentRecordHandler returns the persisted decision, 404 if the visitor has not decided
func (s *Server) consentRecordHandler(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.records.Load(r.Context())
	if !ok {
		renderError(w, r, errors.New("no consent decision recorded"), http.StatusNotFound)
		return
	}
	renderJSON(w, r, http.StatusOK, newRecordResponse(rec))
}

// consentDispatchHandler forwards an intent to the controller.
// On storage failure the prompt stays visible and 503 is returned with the unchanged state.
func (s *Server) consentDispatchHandler(w http.ResponseWriter, r *http.Request) {
	intent, err := consent.ParseIntent(r.PathValue("intent"))
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	st, err := s.dispatch(r.Context(), intent)
	if err != nil {
		log.Printf("[WARN] failed to dispatch %s: %v", intent, err)
		renderJSON(w, r, http.StatusServiceUnavailable, struct {
			Error string `json:"error"`
			consent.State
		}{Error: err.Error(), State: st})
		return
	}

	renderJSON(w, r, http.StatusOK, st)
}
