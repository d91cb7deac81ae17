// Package handlers provides HTTP handlers for portfolio analytics requests.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/fincanon/fincanon/internal/modules/analytics"
)

// maxUploadBytes bounds the multipart form held in memory per request.
const maxUploadBytes = 32 << 20 // 32 MB

// Handler handles analytics HTTP requests
type Handler struct {
	engine *analytics.Engine
	log    zerolog.Logger
}

// NewHandler creates a new analytics handler
func NewHandler(engine *analytics.Engine, log zerolog.Logger) *Handler {
	return &Handler{
		engine: engine,
		log:    log.With().Str("handler", "analytics").Logger(),
	}
}

// RegisterRoutes registers analytics routes on the router
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/analyze", h.HandleAnalyze)
}

// HandleAnalyze handles POST /api/analyze. It accepts a multipart CSV upload
// (first column dates, one column per asset, optional Weights row), runs the
// analytics engine, and returns the report. Validation and parse failures
// are 400s; a successfully parsed matrix always yields a 200 report, with
// degenerate metrics null rather than the call failing.
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid multipart form", err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "Missing file field", err)
		return
	}
	defer file.Close()

	matrix, weights, err := analytics.ParseCSV(file)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "Failed to parse CSV", err)
		return
	}

	report, err := h.engine.Analyze(matrix, weights)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "Validation failed", err)
		return
	}

	h.log.Info().
		Str("filename", header.Filename).
		Int("assets", len(matrix.Assets)).
		Int("days", len(matrix.Dates)).
		Msg("Analyzed uploaded portfolio")

	response := map[string]interface{}{
		"data": report,
		"metadata": map[string]interface{}{
			"request_id": uuid.New().String(),
			"timestamp":  time.Now().Format(time.RFC3339),
		},
	}
	h.writeJSON(w, http.StatusOK, response)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string, err error) {
	h.log.Warn().Err(err).Msg(message)
	h.writeJSON(w, status, map[string]interface{}{
		"error":  message,
		"detail": err.Error(),
	})
}
