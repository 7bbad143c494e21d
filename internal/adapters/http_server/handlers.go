package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"review_analytics/internal/app"
	"review_analytics/internal/domain"
)

type Handlers struct {
	Analyze *app.AnalyzeService
	Summary *app.SummaryService
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Post("/analyze", h.analyze)
	s.mux.Get("/summary", h.summary)
}

type analyzeRequest struct {
	ReviewText string `json:"review_text"`
}

type analyzeResponse struct {
	ReviewText     string   `json:"review_text"`
	Tags           []string `json:"tags"`
	ProcessingTime float64  `json:"processing_time"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": msg}); err != nil {
		log.Error().Err(err).Msg("write JSON error response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func (h *Handlers) analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := h.Analyze.Analyze(r.Context(), req.ReviewText)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyReview) {
			writeError(w, http.StatusBadRequest, "Missing review_text")
			return
		}
		writeError(w, http.StatusInternalServerError, "analyze failed")
		return
	}

	writeJSON(w, http.StatusOK, analyzeResponse{
		ReviewText:     rec.Text,
		Tags:           rec.Tags,
		ProcessingTime: rec.ProcessingTime,
	})
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func (h *Handlers) summary(w http.ResponseWriter, r *http.Request) {
	view, err := h.Summary.Summary(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNoReviews) {
			writeJSON(w, http.StatusOK, map[string]string{"message": "No reviews analyzed yet."})
			return
		}
		writeError(w, http.StatusInternalServerError, "summary failed")
		return
	}

	etag, body := calcETagAndBody(view)
	// If client already has this version, short-circuit.
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write summary body")
	}
}
