package app_test

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"review_analytics/internal/app"
	"review_analytics/internal/domain"
	"review_analytics/internal/storage/memory"
)

func newFallbackOnly() *app.ClassifierService {
	return app.NewClassifierService(&fakeTagger{}, nil, time.Minute, time.Second)
}

func TestAnalyze_TrimsAndStores(t *testing.T) {
	store := memory.New()
	svc := app.NewAnalyzeService(newFallbackOnly(), store)

	rec, err := svc.Analyze(context.Background(), "  I want a refund for this item  ")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if rec.Text != "I want a refund for this item" {
		t.Fatalf("text not trimmed: %q", rec.Text)
	}
	if want := []string{"refund_request", "customer_service"}; !reflect.DeepEqual(rec.Tags, want) {
		t.Fatalf("tags %v, want %v", rec.Tags, want)
	}
	if rec.ProcessingTime < 0 {
		t.Fatalf("negative processing time: %v", rec.ProcessingTime)
	}
	if store.Len() != 1 {
		t.Fatalf("expected 1 stored record, got %d", store.Len())
	}
	// stored record matches the response exactly
	if got := store.Snapshot()[0]; !reflect.DeepEqual(got, rec) {
		t.Fatalf("stored %+v, returned %+v", got, rec)
	}
}

func TestAnalyze_BlankInputRejected(t *testing.T) {
	store := memory.New()
	svc := app.NewAnalyzeService(newFallbackOnly(), store)

	for _, text := range []string{"", "   ", "\t\n"} {
		if _, err := svc.Analyze(context.Background(), text); !errors.Is(err, domain.ErrEmptyReview) {
			t.Fatalf("Analyze(%q): expected ErrEmptyReview, got %v", text, err)
		}
	}
	if store.Len() != 0 {
		t.Fatalf("blank input must not append, store has %d", store.Len())
	}
}

func TestAnalyze_DuplicatesAreIndependent(t *testing.T) {
	store := memory.New()
	svc := app.NewAnalyzeService(newFallbackOnly(), store)

	for i := 0; i < 2; i++ {
		if _, err := svc.Analyze(context.Background(), "My product was broken on arrival"); err != nil {
			t.Fatalf("err: %v", err)
		}
	}
	if store.Len() != 2 {
		t.Fatalf("expected 2 records, got %d", store.Len())
	}
}

func TestSummary_EmptyStore(t *testing.T) {
	svc := app.NewSummaryService(memory.New())
	if _, err := svc.Summary(context.Background()); !errors.Is(err, domain.ErrNoReviews) {
		t.Fatalf("expected ErrNoReviews, got %v", err)
	}
}

func TestSummary_Aggregates(t *testing.T) {
	store := memory.New()
	store.Append(domain.ReviewRecord{Text: "a", Tags: []string{"late_delivery", "shipping_delay"}, ProcessingTime: 0.111})
	store.Append(domain.ReviewRecord{Text: "b", Tags: []string{"late_delivery"}, ProcessingTime: 0.222})
	store.Append(domain.ReviewRecord{Text: "c", Tags: []string{"general_feedback"}, ProcessingTime: 0.333})

	view, err := app.NewSummaryService(store).Summary(context.Background())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if view.TotalReviews != 3 {
		t.Fatalf("total %d, want 3", view.TotalReviews)
	}
	// mean of 0.111, 0.222, 0.333 = 0.222 -> 0.22
	if math.Abs(view.AvgProcessingTime-0.22) > 1e-9 {
		t.Fatalf("avg %v, want 0.22", view.AvgProcessingTime)
	}
	want := []domain.TagCount{
		{Tag: "late_delivery", Count: 2},
		{Tag: "shipping_delay", Count: 1},
		{Tag: "general_feedback", Count: 1},
	}
	if !reflect.DeepEqual(view.TopTags, want) {
		t.Fatalf("top tags %v, want %v", view.TopTags, want)
	}
}

func TestSummary_TopTagsCapAtThree(t *testing.T) {
	store := memory.New()
	store.Append(domain.ReviewRecord{Tags: []string{"a", "b", "c"}, ProcessingTime: 0.1})
	store.Append(domain.ReviewRecord{Tags: []string{"d", "e"}, ProcessingTime: 0.1})

	view, err := app.NewSummaryService(store).Summary(context.Background())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(view.TopTags) != 3 {
		t.Fatalf("expected 3 top tags, got %d", len(view.TopTags))
	}
}
