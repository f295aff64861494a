// internal/server/handlers/analysis.go

package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"time"

	"github.com/google/uuid"

	"listingseo/internal/domain/listing"
	"listingseo/internal/logger"
	"listingseo/internal/service/session"
	"listingseo/internal/telemetry"
)

// AnalysisFailedMessage is the only error text shown when report generation fails
const AnalysisFailedMessage = "An error occurred while generating your SEO analysis. Please try again."

// Redirect targets for form submissions
const (
	ResultsPath  = "/results"
	OptimizePath = "/optimize"
)

const maxBodyBytes = 1 << 20

// AnalysisHandler handles listing analysis requests and stored results
type AnalysisHandler struct {
	analyzer  listing.Analyzer
	sessions  *session.Manager
	publisher listing.EventPublisher
	metrics   *telemetry.Metrics
	cookies   CookieConfig
	logger    logger.Logger
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(
	analyzer listing.Analyzer,
	sessions *session.Manager,
	publisher listing.EventPublisher,
	metrics *telemetry.Metrics,
	cookies CookieConfig,
	log logger.Logger,
) *AnalysisHandler {
	if log == nil {
		log = logger.NewNop()
	}
	return &AnalysisHandler{
		analyzer:  analyzer,
		sessions:  sessions,
		publisher: publisher,
		metrics:   metrics,
		cookies:   cookies,
		logger:    log,
	}
}

type createAnalysisResponse struct {
	SessionID string          `json:"sessionId"`
	Report    *listing.Report `json:"report"`
}

type validationErrorResponse struct {
	Error  string              `json:"error"`
	Fields listing.FieldErrors `json:"fields"`
}

// CreateAnalysis validates the submitted listing, generates its report and
// stores both in the caller's session
func (h *AnalysisHandler) CreateAnalysis(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	input, isForm, err := decodeInput(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sid, cookie := ensureSession(r, h.cookies)

	if fields := h.validate(input); fields != nil {
		respondWithJSON(w, http.StatusUnprocessableEntity, validationErrorResponse{
			Error:  "Validation failed",
			Fields: fields,
		})
		return
	}

	report, err := h.run(r.Context(), sid, input)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, AnalysisFailedMessage)
		return
	}

	if cookie != nil {
		http.SetCookie(w, cookie)
	}

	if isForm {
		http.Redirect(w, r, ResultsPath, http.StatusSeeOther)
		return
	}

	respondWithJSON(w, http.StatusCreated, createAnalysisResponse{
		SessionID: sid,
		Report:    report,
	})
}

// validate applies the form rules; the analyzer must not run when it
// returns field errors
func (h *AnalysisHandler) validate(input listing.Input) listing.FieldErrors {
	fields := listing.Validate(input)
	if fields != nil {
		h.metrics.ObserveAnalysis(telemetry.OutcomeInvalid, 0, 0)
	}
	return fields
}

// run generates the report, stores it in the session and publishes the
// analysis event
func (h *AnalysisHandler) run(ctx context.Context, sid string, input listing.Input) (*listing.Report, error) {
	start := time.Now()
	report, err := h.analyzer.Analyze(ctx, input)
	if err != nil {
		h.metrics.ObserveAnalysis(telemetry.OutcomeFailed, 0, 0)
		h.logger.Error("Error analyzing listing",
			logger.String("session_id", sid),
			logger.Error(err),
		)
		return nil, err
	}

	if err := h.sessions.Save(ctx, sid, input, report); err != nil {
		h.metrics.ObserveAnalysis(telemetry.OutcomeFailed, 0, 0)
		h.logger.Error("Error saving analysis",
			logger.String("session_id", sid),
			logger.Error(err),
		)
		return nil, err
	}

	elapsed := time.Since(start)
	h.metrics.ObserveAnalysis(telemetry.OutcomeSuccess, report.SEOScore, elapsed)
	h.logger.Info("Listing analyzed",
		logger.String("session_id", sid),
		logger.String("category", input.Category),
		logger.Int("seo_score", report.SEOScore),
		logger.Duration("elapsed", elapsed),
	)

	event := listing.AnalysisEvent{
		ID:              uuid.New().String(),
		SessionID:       sid,
		Category:        input.Category,
		SEOScore:        report.SEOScore,
		HasBackendTerms: input.HasSearchTerms(),
		HasCompetitor:   input.HasCompetitor(),
		CreatedAt:       time.Now().UTC(),
	}
	if err := h.publisher.PublishAnalysis(ctx, event); err != nil {
		h.logger.Warn("Error publishing analysis event",
			logger.String("session_id", sid),
			logger.Error(err),
		)
	}

	return report, nil
}

// decodeInput reads a listing from a JSON or form-encoded body
func decodeInput(r *http.Request) (listing.Input, bool, error) {
	var input listing.Input

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if mediaType == "multipart/form-data" {
			if err := r.ParseMultipartForm(maxBodyBytes); err != nil {
				return input, true, fmt.Errorf("error parsing multipart form: %w", err)
			}
		} else if err := r.ParseForm(); err != nil {
			return input, true, fmt.Errorf("error parsing form: %w", err)
		}

		input = listing.Input{
			Title:          r.PostFormValue("title"),
			Category:       r.PostFormValue("category"),
			BulletPoints:   r.PostFormValue("bulletPoints"),
			Description:    r.PostFormValue("description"),
			SearchTerms:    r.PostFormValue("searchTerms"),
			CompetitorASIN: r.PostFormValue("competitorAsin"),
		}
		return input, true, nil
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		return input, false, fmt.Errorf("error decoding listing: %w", err)
	}
	return input, false, nil
}
