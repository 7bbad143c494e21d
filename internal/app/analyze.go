package app

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"review_analytics/internal/adapters/observability"
	"review_analytics/internal/domain"
)

// AnalyzeService ingests reviews: validate, classify, time it, append.
type AnalyzeService struct {
	cls   *ClassifierService
	store domain.ReviewStore
}

func NewAnalyzeService(cls *ClassifierService, store domain.ReviewStore) *AnalyzeService {
	return &AnalyzeService{cls: cls, store: store}
}

// Analyze trims and validates the text, classifies it, and appends one
// immutable record. Blank input returns domain.ErrEmptyReview before any
// side effect.
func (s *AnalyzeService) Analyze(ctx context.Context, text string) (domain.ReviewRecord, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.ReviewRecord{}, domain.ErrEmptyReview
	}

	start := time.Now()
	tags := s.cls.Classify(ctx, text)
	elapsed := round(time.Since(start).Seconds(), 3)
	if tags == nil {
		tags = []string{}
	}

	rec := domain.ReviewRecord{Text: text, Tags: tags, ProcessingTime: elapsed}
	s.store.Append(rec)
	observability.ReviewsIngested.Inc()
	log.Info().Float64("processing_time", elapsed).Strs("tags", tags).Msg("review processed")
	return rec, nil
}

func round(v float64, decimals int) float64 {
	p := math.Pow10(decimals)
	return math.Round(v*p) / p
}
