// Package api exposes the analysis sessions, derived metrics, and
// trade-statistics enrichment over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nacora/cargo-analytics/internal/analytics"
	"github.com/nacora/cargo-analytics/internal/enrichment"
	"github.com/nacora/cargo-analytics/internal/ingest"
	"github.com/nacora/cargo-analytics/internal/pkg/logger"
	"github.com/nacora/cargo-analytics/internal/report"
	"github.com/nacora/cargo-analytics/internal/store"
)

// maxUploadBytes caps in-memory multipart parsing for workbook uploads.
const maxUploadBytes = 64 << 20

// Handlers holds the dependencies for all HTTP handlers.
type Handlers struct {
	sessions *store.Store
	enrich   *enrichment.Service
	renderer *report.Renderer

	// now is injectable so date-window behavior is testable.
	now func() time.Time
}

// NewHandlers creates the handler set.
func NewHandlers(sessions *store.Store, enrich *enrichment.Service, renderer *report.Renderer) *Handlers {
	return &Handlers{
		sessions: sessions,
		enrich:   enrich,
		renderer: renderer,
		now:      time.Now,
	}
}

// Response helpers

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// HealthCheck returns basic server health
//
//	GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "healthy",
		"time":   h.now().UTC().Format(time.RFC3339),
	})
}

// CreateSession starts a new empty analysis session
//
//	POST /api/sessions
func (h *Handlers) CreateSession(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Create()
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"id":        sess.ID,
		"createdAt": sess.CreatedAt.Format(time.RFC3339),
	})
}

// GetSession returns the session's dataset summary
//
//	GET /api/sessions/{sessionID}
func (h *Handlers) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	policies, shipments := sess.Counts()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"id":        sess.ID,
		"createdAt": sess.CreatedAt.Format(time.RFC3339),
		"policies":  policies,
		"shipments": shipments,
		"unmatched": len(sess.Unmatched()),
	})
}

// DeleteSession discards a session and all its data
//
//	DELETE /api/sessions/{sessionID}
func (h *Handlers) DeleteSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	h.sessions.Delete(sess.ID)
	w.WriteHeader(http.StatusNoContent)
}

// UploadPolicies ingests a policy-ledger workbook
//
//	POST /api/sessions/{sessionID}/policies  (multipart, field "file")
func (h *Handlers) UploadPolicies(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	file, ok := uploadedFile(w, r)
	if !ok {
		return
	}
	defer file.Close()

	n, err := sess.LoadPolicies(file)
	if err != nil {
		if errors.Is(err, ingest.ErrNoRows) {
			respondError(w, http.StatusUnprocessableEntity, "workbook contains no data rows")
			return
		}
		logger.Warn("api: policy upload rejected", "session", sess.ID, "error", err.Error())
		respondError(w, http.StatusBadRequest, "could not parse workbook: "+err.Error())
		return
	}

	logger.Info("api: policies loaded", "session", sess.ID, "records", n)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"policies":  n,
		"unmatched": sess.Unmatched(),
	})
}

// UploadShipments ingests a shipment-statistics workbook
//
//	POST /api/sessions/{sessionID}/shipments  (multipart, field "file")
func (h *Handlers) UploadShipments(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	file, ok := uploadedFile(w, r)
	if !ok {
		return
	}
	defer file.Close()

	n, err := sess.LoadShipments(file)
	if err != nil {
		logger.Warn("api: shipment upload rejected", "session", sess.ID, "error", err.Error())
		respondError(w, http.StatusBadRequest, "could not parse workbook: "+err.Error())
		return
	}

	logger.Info("api: shipments loaded", "session", sess.ID, "records", n)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"shipments": n,
		"unmatched": sess.Unmatched(),
	})
}

// GetMetrics returns the derived conversion metrics for the filtered view.
// The metrics field is null until both datasets are loaded.
//
//	GET /api/sessions/{sessionID}/metrics?region=&businessUnit=&country=&dateRange=&startDate=&endDate=
func (h *Handlers) GetMetrics(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	f := parseFilters(r)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"filters": f,
		"metrics": sess.Metrics(f, h.now()),
	})
}

// GetIntelligence returns customer segmentation and synergy metrics.
//
//	GET /api/sessions/{sessionID}/intelligence
func (h *Handlers) GetIntelligence(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	f := parseFilters(r)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"filters":      f,
		"intelligence": sess.Intelligence(f, h.now()),
	})
}

// GetFilterOptions returns the distinct filterable values in the data.
//
//	GET /api/sessions/{sessionID}/options
func (h *Handlers) GetFilterOptions(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, sess.Options())
}

// GetUnmatched returns the country names pending manual resolution along
// with the mappings already applied.
//
//	GET /api/sessions/{sessionID}/unmatched
func (h *Handlers) GetUnmatched(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"unmatched": sess.Unmatched(),
		"mappings":  sess.Mappings(),
	})
}

// ApplyMappings merges user country mappings and re-derives all records.
//
//	POST /api/sessions/{sessionID}/mappings
func (h *Handlers) ApplyMappings(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var body struct {
		Mappings map[string]string `json:"mappings"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(body.Mappings) == 0 {
		respondError(w, http.StatusBadRequest, "mappings must not be empty")
		return
	}

	sess.ApplyMappings(body.Mappings)
	logger.Info("api: mappings applied", "session", sess.ID, "count", len(body.Mappings))

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"unmatched": sess.Unmatched(),
		"mappings":  sess.Mappings(),
	})
}

// GetReport renders the printable HTML report for the filtered view.
//
//	GET /api/sessions/{sessionID}/report
func (h *Handlers) GetReport(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	f := parseFilters(r)
	now := h.now()

	html, err := h.renderer.Render(sess.Metrics(f, now), f, now.UTC())
	if err != nil {
		logger.Error("api: report render failed", "session", sess.ID, "error", err.Error())
		respondError(w, http.StatusInternalServerError, "report rendering failed")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(html))
}

// GetEnrichment returns external trade statistics for an economy. The
// lookup is best effort: apart from a malformed code, the endpoint
// always answers 200 with whatever fields could be fetched, falling back
// to an empty partial bundle when the upstreams are down.
//
//	GET /api/enrichment/{iso3}
func (h *Handlers) GetEnrichment(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "iso3")))

	stats, err := h.enrich.Lookup(r.Context(), code)
	switch {
	case err == nil:
		respondJSON(w, http.StatusOK, stats)
	case errors.Is(err, enrichment.ErrBadCode):
		respondError(w, http.StatusBadRequest, "economy code must be three letters")
	default:
		if !errors.Is(err, enrichment.ErrUnavailable) && !errors.Is(err, enrichment.ErrCircuitOpen) {
			logger.Error("api: enrichment lookup failed", "error", err.Error())
		}
		respondJSON(w, http.StatusOK, &enrichment.TradeStats{
			ISO3:      code,
			Partial:   true,
			FetchedAt: h.now().UTC(),
		})
	}
}

// session resolves the sessionID path parameter, writing a 404 on miss.
func (h *Handlers) session(w http.ResponseWriter, r *http.Request) (*store.Session, bool) {
	sess, err := h.sessions.Get(chi.URLParam(r, "sessionID"))
	if err != nil {
		respondError(w, http.StatusNotFound, "session not found")
		return nil, false
	}
	return sess, true
}

// uploadedFile extracts the multipart "file" field, writing a 400 on
// malformed uploads.
func uploadedFile(w http.ResponseWriter, r *http.Request) (multipart.File, bool) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondError(w, http.StatusBadRequest, "expected multipart form upload")
		return nil, false
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, `missing "file" field`)
		return nil, false
	}
	return file, true
}

// parseFilters reads the filter query parameters. Absent parameters
// leave their part of the filter inactive.
func parseFilters(r *http.Request) analytics.Filters {
	q := r.URL.Query()
	return analytics.Filters{
		Region:       q.Get("region"),
		BusinessUnit: q.Get("businessUnit"),
		Country:      q.Get("country"),
		DateRange:    q.Get("dateRange"),
		StartDate:    q.Get("startDate"),
		EndDate:      q.Get("endDate"),
	}
}
