// Command seeder replays a file of reviews (one per line) against a running
// API, fanning POST /analyze calls out over a bounded worker pool.
package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"review_analytics/internal/adapters/observability"
	"review_analytics/internal/shared"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Str("file", cfg.SeedFile).
		Str("api", cfg.APIBase).
		Int("workers", cfg.Workers).
		Msg("seeder starting")

	f, err := os.Open(cfg.SeedFile)
	if err != nil {
		log.Fatal().Err(err).Msg("open seed file failed")
	}
	defer f.Close()

	var reviews []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		reviews = append(reviews, line)
	}
	if err := sc.Err(); err != nil {
		log.Fatal().Err(err).Msg("read seed file failed")
	}

	hc := &http.Client{Timeout: 30 * time.Second}
	rl := rate.NewLimiter(rate.Limit(cfg.Workers*2), cfg.Workers)
	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var wg sync.WaitGroup

	// acquire before launching the goroutine; release inside it
	for i, text := range reviews {
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(n int, review string) {
			defer wg.Done()
			defer sem.Release(1)

			if err := rl.Wait(ctx); err != nil {
				log.Warn().Int("n", n).Err(err).Msg("rate wait failed")
				return
			}
			if err := post(ctx, hc, cfg.APIBase, review); err != nil {
				log.Warn().Int("n", n).Err(err).Msg("seed failed")
				return
			}
			log.Info().Int("n", n).Msg("seed ok")
		}(i, text)
	}

	wg.Wait()
	log.Info().Int("reviews", len(reviews)).Msg("seeding completed")
}

func post(ctx context.Context, hc *http.Client, base, review string) error {
	body, err := json.Marshal(map[string]string{"review_text": review})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+"/analyze", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status %d", resp.StatusCode)
	}
	return nil
}
