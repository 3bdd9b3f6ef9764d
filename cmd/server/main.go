package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/storage/redis/v3"

	"tuberank/internal/audit"
	"tuberank/internal/config"
	"tuberank/internal/db"
	"tuberank/internal/handlers/api"
	"tuberank/internal/jobs"
	"tuberank/internal/metadata"
	"tuberank/internal/metrics"
	"tuberank/internal/rank"
	"tuberank/internal/research"
	"tuberank/internal/scoring"
	"tuberank/internal/server"
	"tuberank/internal/youtube"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()

	// Initialize database
	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("migrations completed")

	// External services
	yt := youtube.New(youtube.Config{
		APIKey: cfg.YouTubeAPIKey,
		Region: cfg.YouTubeRegion,
		RPS:    cfg.YouTubeRPS,
	})

	benchmarks := scoring.Benchmarks{
		DailyViews: cfg.BenchmarkDailyViews,
		Likes:      cfg.BenchmarkLikes,
		Comments:   cfg.BenchmarkComments,
	}
	researcher := research.New(yt, cfg.ResearchMaxResults, benchmarks)

	// Rank tracking
	lookup := rank.NewLookup(yt, cfg.RankSearchWindow)
	checker := rank.NewChecker(database, database, lookup, cfg.RankCheckDelay)
	scheduler := jobs.NewRankScheduler(checker, cfg.RankCheckInterval)
	go scheduler.Start(ctx)

	// Audit queue
	auditor := audit.New(yt)
	auditQueue := jobs.NewAuditQueue(auditor, cfg.AuditWorkers)

	// AI metadata
	generator := metadata.New(cfg.OpenAIAPIKey, cfg.OpenAIModel)

	// Research response cache, enabled when Redis is configured
	var cache api.Cache
	if cfg.RedisURL != "" {
		cache = redis.New(redis.Config{URL: cfg.RedisURL})
		slog.Info("research cache enabled")
	}

	// Metrics
	metrics.Init(database)
	metricsServer := metrics.Start(cfg.MetricsAddr)
	slog.Info("metrics server listening", "addr", cfg.MetricsAddr)

	// HTTP server
	srv := server.New(cfg)
	srv.RegisterRoutes(server.Dependencies{
		DB:        database,
		Research:  researcher,
		Cache:     cache,
		Tags:      yt,
		Metadata:  generator,
		AuditJobs: api.NewAuditHandler(auditQueue),
		Stats:     checker,
		Trigger:   scheduler,
		Details:   yt,
	})

	go func() {
		slog.Info("server listening", "addr", cfg.ServerAddr, "env", cfg.Env)
		if err := srv.Start(); err != nil {
			slog.Error("server stopped", "error", err)
			cancel()
		}
	}()

	// Wait for shutdown signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case s := <-sig:
		slog.Info("shutting down", "signal", s.String())
	case <-ctx.Done():
	}

	cancel()
	if err := srv.Shutdown(); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}
	if err := metricsServer.Stop(context.Background()); err != nil {
		slog.Error("metrics server shutdown failed", "error", err)
	}
	auditQueue.Shutdown()
	slog.Info("shutdown complete")
}
