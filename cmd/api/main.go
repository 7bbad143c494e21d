package main

import (
	"net/http"

	"github.com/rs/zerolog/log"

	server "review_analytics/internal/adapters/http_server"
	"review_analytics/internal/adapters/observability"
	openaiad "review_analytics/internal/adapters/openai"
	redisad "review_analytics/internal/adapters/redis"
	"review_analytics/internal/app"
	"review_analytics/internal/shared"
	"review_analytics/internal/storage/memory"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// deps
	store := memory.New()
	tagger := openaiad.New(shared.OpenAIKey, cfg.OpenAIModel, 5)

	cls := app.NewClassifierService(tagger, nil, cfg.CacheTTL, cfg.ClassifyTimeout)
	if cfg.RedisAddr != "" {
		cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		cls = app.NewClassifierService(tagger, cache, cfg.CacheTTL, cfg.ClassifyTimeout)
		log.Info().Str("addr", cfg.RedisAddr).Msg("classification cache enabled")
	}

	analyze := app.NewAnalyzeService(cls, store)
	summary := app.NewSummaryService(store)

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Analyze: analyze, Summary: summary})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
