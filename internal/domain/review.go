package domain

import "encoding/json"

// ReviewRecord is one ingested review. Created once at ingestion,
// immutable afterwards; the store owns the whole collection.
type ReviewRecord struct {
	Text           string   `json:"text"`
	Tags           []string `json:"tags"`            // 0..3 lowercase tags
	ProcessingTime float64  `json:"processing_time"` // seconds, rounded to 3 decimals
}

// TagCount is one entry of a top-k aggregation.
type TagCount struct {
	Tag   string
	Count int
}

// MarshalJSON encodes the pair as ["tag", count].
func (t TagCount) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{t.Tag, t.Count})
}

// SummaryView is the aggregate over every stored review.
type SummaryView struct {
	TotalReviews      int        `json:"total_reviews"`
	TopTags           []TagCount `json:"top_tags"`
	AvgProcessingTime float64    `json:"avg_processing_time"` // seconds, rounded to 2 decimals
}
