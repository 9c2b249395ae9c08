// Package main provides the support engine API server entrypoint.
package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/hantec-labs/support-engine/cmd/support-engine-api/handlers"
	"github.com/hantec-labs/support-engine/cmd/support-engine-api/middleware"
	"github.com/hantec-labs/support-engine/internal/cache"
	"github.com/hantec-labs/support-engine/internal/completion"
	"github.com/hantec-labs/support-engine/internal/config"
	"github.com/hantec-labs/support-engine/internal/embedding"
	"github.com/hantec-labs/support-engine/internal/ingest"
	"github.com/hantec-labs/support-engine/internal/observability"
	"github.com/hantec-labs/support-engine/internal/pipeline"
	"github.com/hantec-labs/support-engine/internal/retrieval"
	"github.com/hantec-labs/support-engine/internal/storage"
)

// App wires the service dependencies behind the router.
type App struct {
	Router  http.Handler
	Index   *retrieval.Index
	closers []func() error
}

// Close releases cache and storage connections.
func (a *App) Close() {
	for _, closer := range a.closers {
		_ = closer()
	}
}

// NewApp builds all collaborators from config and mounts the routes.
func NewApp(logger *observability.Logger, cfg *config.Config) (*App, error) {
	app := &App{}

	embedder, err := embedding.NewClient(embedding.Config{
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.Embedding.Model,
		BaseURL: cfg.LLM.BaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("embedding client: %w", err)
	}

	completer, err := completion.NewClient(completion.Config{
		APIKey:      cfg.LLM.APIKey,
		Model:       cfg.LLM.Model,
		BaseURL:     cfg.LLM.BaseURL,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
		Timeout:     cfg.LLM.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("completion client: %w", err)
	}

	cacheClient, err := newCacheClient(cfg)
	if err != nil {
		return nil, err
	}
	app.closers = append(app.closers, cacheClient.Close)

	recorder, err := newRecorder(cfg)
	if err != nil {
		return nil, err
	}
	app.closers = append(app.closers, recorder.Close)

	loader := ingest.NewLoader(
		cfg.Knowledge.Dir,
		ingest.NewChunker(cfg.Knowledge.ChunkSize, cfg.Knowledge.ChunkOverlap),
		logger,
	)
	app.Index = retrieval.NewIndex(logger, embedder, loader.Load)

	p := pipeline.New(pipeline.Options{
		Logger:    logger,
		Searcher:  app.Index,
		Completer: completer,
		Responder: pipeline.NewResponder(cfg.Chat.SupportContact),
		Recorder:  recorder,
		Cache:     cacheClient,
		Thresholds: retrieval.Thresholds{
			High:         cfg.Retrieval.HighThreshold,
			Medium:       cfg.Retrieval.MediumThreshold,
			Low:          cfg.Retrieval.LowThreshold,
			MinDocuments: cfg.Retrieval.MinDocuments,
		},
		CompanyName:       cfg.Chat.CompanyName,
		TopK:              cfg.Retrieval.TopK,
		MaxQueryLength:    cfg.Chat.MaxQueryLength,
		CacheTTL:          cfg.Cache.TTL,
		CompletionTimeout: cfg.LLM.Timeout,
	})

	chatHandler := handlers.NewChatHandler(logger, p, app.Index, recorder)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS([]string{"*"}))
	r.Use(chimiddleware.Timeout(cfg.Server.WriteTimeout))

	r.Route("/api/chat", func(r chi.Router) {
		r.Get("/health", chatHandler.Health)
		r.Get("/stats", chatHandler.Stats)

		r.Group(func(r chi.Router) {
			if cfg.RateLimit.Enabled {
				limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerWindow, cfg.RateLimit.Window)
				r.Use(limiter.Handler)
			}
			r.Post("/", chatHandler.Chat)
		})
	})

	app.Router = r
	return app, nil
}

func newCacheClient(cfg *config.Config) (cache.Client, error) {
	if cfg.Cache.Driver == "redis" {
		client, err := cache.NewRedisClient(cache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
			PoolSize: cfg.Cache.Redis.PoolSize,
		})
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		return client, nil
	}
	return cache.NewMemoryClient(cfg.Cache.MaxEntries), nil
}

func newRecorder(cfg *config.Config) (storage.Recorder, error) {
	switch cfg.Storage.Driver {
	case "sqlite":
		store, err := storage.Open(context.Background(), storage.Config{
			Driver: "sqlite3",
			DSN:    cfg.Storage.SQLite.Path,
		})
		if err != nil {
			return nil, fmt.Errorf("sqlite storage: %w", err)
		}
		return store, nil
	case "postgres":
		store, err := storage.Open(context.Background(), storage.Config{
			Driver: "postgres",
			DSN:    cfg.Storage.Postgres.DSN,
		})
		if err != nil {
			return nil, fmt.Errorf("postgres storage: %w", err)
		}
		return store, nil
	default:
		return storage.NopRecorder{}, nil
	}
}
