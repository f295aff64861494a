// internal/server/handlers/results.go

package handlers

import (
	"errors"
	"net/http"

	"listingseo/internal/domain/listing"
	"listingseo/internal/logger"
	"listingseo/internal/service/session"
	"listingseo/internal/telemetry"
)

// Sections tells the display surface which optional report sections to render
type Sections struct {
	BackendTerms bool `json:"backendTerms"`
	Competitor   bool `json:"competitor"`
}

type resultsResponse struct {
	Input    listing.Input  `json:"input"`
	Report   listing.Report `json:"report"`
	Sections Sections       `json:"sections"`
}

// GetResults returns the session's last analysis. Callers without one are
// sent back to the optimization form.
func (h *AnalysisHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(r)
	if !ok {
		h.metrics.ObserveLookup(telemetry.LookupMissing)
		http.Redirect(w, r, OptimizePath, http.StatusSeeOther)
		return
	}

	result, err := h.sessions.Load(r.Context(), sid)
	switch {
	case errors.Is(err, session.ErrResultNotFound):
		h.metrics.ObserveLookup(telemetry.LookupMissing)
		http.Redirect(w, r, OptimizePath, http.StatusSeeOther)
		return
	case errors.Is(err, session.ErrResultCorrupt):
		h.metrics.ObserveLookup(telemetry.LookupCorrupt)
		h.logger.Warn("Discarding corrupt analysis",
			logger.String("session_id", sid),
			logger.Error(err),
		)
		http.Redirect(w, r, OptimizePath, http.StatusSeeOther)
		return
	case err != nil:
		h.logger.Error("Error loading analysis",
			logger.String("session_id", sid),
			logger.Error(err),
		)
		respondWithError(w, http.StatusInternalServerError, "Failed to load analysis")
		return
	}

	h.metrics.ObserveLookup(telemetry.LookupHit)
	respondWithJSON(w, http.StatusOK, resultsResponse{
		Input:  result.Input,
		Report: result.Report,
		Sections: Sections{
			BackendTerms: result.Input.HasSearchTerms(),
			Competitor:   result.Input.HasCompetitor(),
		},
	})
}

// ClearResults removes the session's stored analysis
func (h *AnalysisHandler) ClearResults(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(r)
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if err := h.sessions.Clear(r.Context(), sid); err != nil {
		h.logger.Error("Error clearing analysis",
			logger.String("session_id", sid),
			logger.Error(err),
		)
		respondWithError(w, http.StatusInternalServerError, "Failed to clear analysis")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
