package domain

import (
	"context"
	"errors"
)

var (
	// ErrEmptyReview rejects ingestion of missing/blank review text.
	ErrEmptyReview = errors.New("missing review_text")
	// ErrNoReviews marks a summary over an empty store.
	ErrNoReviews = errors.New("no reviews analyzed yet")
)

// Tagger is the outbound text-classification service. SuggestTags returns
// the raw model output; parsing is the caller's concern. Configured reports
// whether a credential is currently present — it is consulted on every
// classification, never cached at startup.
type Tagger interface {
	Configured() bool
	SuggestTags(ctx context.Context, text string) (string, error)
}

// ReviewStore is the process-lifetime append-only review log.
type ReviewStore interface {
	Append(r ReviewRecord)
	Snapshot() []ReviewRecord
	Len() int
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
