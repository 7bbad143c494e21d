package app

import (
	"context"

	"review_analytics/internal/domain"
)

// SummaryService computes point-in-time aggregates over the review log.
type SummaryService struct {
	store domain.ReviewStore
}

func NewSummaryService(store domain.ReviewStore) *SummaryService {
	return &SummaryService{store: store}
}

// Summary flattens every stored record's tags and reports total count, mean
// processing time (2 decimals), and the top-3 tags. domain.ErrNoReviews on
// an empty store.
func (s *SummaryService) Summary(_ context.Context) (domain.SummaryView, error) {
	records := s.store.Snapshot()
	if len(records) == 0 {
		return domain.SummaryView{}, domain.ErrNoReviews
	}

	var all []string
	var sum float64
	for _, r := range records {
		all = append(all, r.Tags...)
		sum += r.ProcessingTime
	}

	return domain.SummaryView{
		TotalReviews:      len(records),
		TopTags:           TopTags(all, 3),
		AvgProcessingTime: round(sum/float64(len(records)), 2),
	}, nil
}
