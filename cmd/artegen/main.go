// Package main is the entry point for the Artegen API server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"artegen/internal/cache"
	"artegen/internal/config"
	"artegen/internal/database"
	"artegen/internal/generation"
	"artegen/internal/handlers"
	"artegen/internal/router"
	"artegen/internal/storage"
	"artegen/internal/store"
	"artegen/internal/trigger"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey. It backs webhook dedup and the request-list
	// cache; without it deliveries still land safely on the SQL status
	// guard, so in development the server starts without it.
	var webhookDedup *cache.WebhookDedup
	var listCache *cache.RequestListCache
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		if !cfg.IsDev() {
			slog.Error("failed to connect to valkey", "error", err)
			os.Exit(1)
		}
		slog.Warn("valkey unavailable — webhook dedup and list caching disabled", "error", err)
	} else {
		defer valkeyClient.Close()
		webhookDedup = cache.NewWebhookDedup(valkeyClient, cache.DefaultDedupTTL)
		listCache = cache.NewRequestListCache(valkeyClient, cache.DefaultRequestListTTL)
	}

	// Initialize data stores.
	generationStore := store.NewGenerationStore(db)
	companyStore := store.NewCompanyStore(db)
	userStore := store.NewUserStore(db)
	planStore := store.NewPlanStore(db)
	templateStore := store.NewTemplateStore(db)
	arteStore := store.NewArteStore(db)

	// Workflow provider trigger (optional — without it requests stay
	// pending until the polling budget runs out).
	triggerClient := trigger.New(cfg.TriggerURL, cfg.TriggerToken, cfg.CallbackURL)
	if triggerClient == nil {
		slog.Warn("trigger url not configured — generations will not reach the provider")
	}

	// Connect to S3-compatible object storage (optional — app works
	// without it, arte image uploads are then disabled).
	storageClient, err := storage.New(
		cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
		cfg.S3Bucket, cfg.S3PublicURL,
	)
	if err != nil {
		slog.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	}
	if storageClient != nil {
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
	} else {
		slog.Warn("s3 storage not configured — arte image uploads disabled")
	}

	// Content-generation service. The interface arguments must stay
	// nil when unconfigured, not typed nil pointers.
	var trig generation.Trigger
	if triggerClient != nil {
		trig = triggerClient
	}
	var dedup generation.Deduper
	if webhookDedup != nil {
		dedup = webhookDedup
	}
	var lists generation.ListCache
	if listCache != nil {
		lists = listCache
	}
	generationService := generation.NewService(generationStore, trig, dedup, lists)

	// Create handler groups with their dependencies.
	r, submitLimiter := router.New(router.Handlers{
		Generations: handlers.NewGenerations(generationService, cfg.PollInterval, cfg.PollTimeout),
		Webhooks:    handlers.NewWebhooks(generationService, cfg.WebhookSecret),
		Companies:   handlers.NewCompanies(companyStore, planStore),
		Users:       handlers.NewUsers(userStore),
		Templates:   handlers.NewTemplates(templateStore),
		Artes:       handlers.NewArtes(arteStore, companyStore, planStore, generationService, storageClient),
		Plans:       handlers.NewPlans(planStore),
	})
	defer submitLimiter.Stop()

	// Create the HTTP server with sensible timeouts. WriteTimeout must
	// accommodate the long-poll endpoint, which holds the connection up
	// to the polling budget (capped at 60s).
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
