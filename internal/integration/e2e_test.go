//go:build integration || !unit

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	goredis "github.com/redis/go-redis/v9"

	server "review_analytics/internal/adapters/http_server"
	openaiad "review_analytics/internal/adapters/openai"
	redisad "review_analytics/internal/adapters/redis"
	"review_analytics/internal/app"
	"review_analytics/internal/storage/memory"
)

// stub chat-completions endpoint; counts hits so we can prove the redis cache
// shortcuts the second identical classification.
func stubOpenAI(t *testing.T, hits *int32, content string) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "chatcmpl-e2e",
			"object": "chat.completion",
			"choices": []map[string]any{
				{"index": 0, "message": map[string]any{"role": "assistant", "content": content}, "finish_reason": "stop"},
			},
		})
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_EndToEnd_CachedClassification(t *testing.T) {
	// Start isolated redis container
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}
	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "redis",
		Tag:        "7.2",
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run redis: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	addr := fmt.Sprintf("127.0.0.1:%s", resource.GetPort("6379/tcp"))
	if err := pool.Retry(func() error {
		c := goredis.NewClient(&goredis.Options{Addr: addr})
		defer c.Close()
		return c.Ping(context.Background()).Err()
	}); err != nil {
		t.Fatalf("connect redis: %v", err)
	}

	var aiHits int32
	ai := stubOpenAI(t, &aiHits, `["great_quality", "fast_shipping"]`)

	// full wiring: external tagger + redis cache + in-memory store
	store := memory.New()
	tagger := openaiad.NewWithBaseURL(func() string { return "e2e-key" }, "gpt-4o-mini", 100, ai.URL+"/v1")
	cache := redisad.New(addr, "", 0)
	cls := app.NewClassifierService(tagger, cache, time.Minute, 5*time.Second)

	srv := server.New()
	srv.MountHandlers(&server.Handlers{
		Analyze: app.NewAnalyzeService(cls, store),
		Summary: app.NewSummaryService(store),
	})
	ts := httptest.NewServer(srv.Mux())
	defer ts.Close()

	post := func() []string {
		body := []byte(`{"review_text": "Amazing product, arrived quickly"}`)
		res, err := http.Post(ts.URL+"/analyze", "application/json", bytes.NewReader(body))
		if err != nil {
			t.Fatalf("POST: %v", err)
		}
		defer res.Body.Close()
		if res.StatusCode != http.StatusOK {
			t.Fatalf("status %d", res.StatusCode)
		}
		var out struct {
			Tags []string `json:"tags"`
		}
		if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
			t.Fatalf("decode: %v", err)
		}
		return out.Tags
	}

	want := []string{"great_quality", "fast_shipping"}
	if got := post(); !reflect.DeepEqual(got, want) {
		t.Fatalf("first tags %v, want %v", got, want)
	}
	if got := post(); !reflect.DeepEqual(got, want) {
		t.Fatalf("second tags %v, want %v", got, want)
	}
	if n := atomic.LoadInt32(&aiHits); n != 1 {
		t.Fatalf("expected 1 upstream call (second served from redis), got %d", n)
	}

	// both records count toward the summary
	res, err := http.Get(ts.URL + "/summary")
	if err != nil {
		t.Fatalf("GET /summary: %v", err)
	}
	defer res.Body.Close()
	var sum struct {
		TotalReviews int     `json:"total_reviews"`
		TopTags      [][]any `json:"top_tags"`
	}
	if err := json.NewDecoder(res.Body).Decode(&sum); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if sum.TotalReviews != 2 {
		t.Fatalf("total_reviews %d, want 2", sum.TotalReviews)
	}
	if len(sum.TopTags) != 2 {
		t.Fatalf("top_tags %v, want 2 entries", sum.TopTags)
	}
	if tag, _ := sum.TopTags[0][0].(string); tag != "great_quality" {
		t.Fatalf("top tag %v, want great_quality", sum.TopTags[0])
	}
	if n, _ := sum.TopTags[0][1].(float64); n != 2 {
		t.Fatalf("top count %v, want 2", sum.TopTags[0])
	}
}
