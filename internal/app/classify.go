package app

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"review_analytics/internal/adapters/observability"
	"review_analytics/internal/domain"
)

const maxTags = 3

// ClassifierService derives up to 3 lowercase tags for a review. It prefers
// the external model when a credential is present, memoizes external results
// in the optional cache, and falls back to fixed keyword rules on any
// failure. It never returns an error: some tag list always comes back.
type ClassifierService struct {
	tagger  domain.Tagger
	cache   domain.Cache // nil disables memoization
	ttl     time.Duration
	timeout time.Duration
}

func NewClassifierService(t domain.Tagger, cache domain.Cache, ttl, timeout time.Duration) *ClassifierService {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ClassifierService{tagger: t, cache: cache, ttl: ttl, timeout: timeout}
}

func (s *ClassifierService) Classify(ctx context.Context, text string) []string {
	key := tagKey(text)
	if s.cache != nil {
		var tags []string
		if ok, _ := s.cache.Get(ctx, key, &tags); ok {
			observability.ObserveClassification("cache")
			return tags
		}
	}

	if s.tagger != nil && s.tagger.Configured() {
		cctx, cancel := context.WithTimeout(ctx, s.timeout)
		raw, err := s.tagger.SuggestTags(cctx, text)
		cancel()
		if err == nil {
			log.Info().Str("raw", raw).Msg("external classifier output")
			// A parse yielding zero tags still counts as success here; the
			// call itself succeeded, so the fallback rules do not run.
			tags := ParseTagList(raw)
			if s.cache != nil {
				_ = s.cache.Set(ctx, key, tags, int(s.ttl.Seconds()))
			}
			observability.ObserveClassification("external")
			return tags
		}
		log.Warn().Err(err).Msg("external classification failed, using fallback rules")
	}

	observability.ObserveClassification("fallback")
	return FallbackTags(text)
}

// ParseTagList extracts tags from raw model output: brackets stripped, split
// on commas, each token trimmed of whitespace and quotes, empties dropped,
// first 3 kept. No structural validation beyond that; garbage in, garbage
// fragments out.
func ParseTagList(raw string) []string {
	raw = strings.NewReplacer("[", "", "]", "").Replace(raw)
	tags := make([]string, 0, maxTags)
	for _, part := range strings.Split(raw, ",") {
		t := strings.Trim(strings.TrimSpace(part), `"'`)
		if t == "" {
			continue
		}
		tags = append(tags, t)
		if len(tags) == maxTags {
			break
		}
	}
	return tags
}

// FallbackTags applies the keyword rules in fixed priority order; the first
// matching rule wins. Matches are case-insensitive substring checks.
func FallbackTags(text string) []string {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "late") || strings.Contains(lower, "delay"):
		return []string{"late_delivery", "shipping_delay"}
	case strings.Contains(lower, "broken") || strings.Contains(lower, "not working"):
		return []string{"defective_item", "product_failure"}
	case strings.Contains(lower, "refund") || strings.Contains(lower, "return"):
		return []string{"refund_request", "customer_service"}
	default:
		return []string{"general_feedback"}
	}
}

func tagKey(text string) string {
	sum := sha1.Sum([]byte(strings.ToLower(strings.TrimSpace(text))))
	return "tags:" + hex.EncodeToString(sum[:])
}
