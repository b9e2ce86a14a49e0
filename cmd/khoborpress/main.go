// Package main is the entry point for the KhoborPress news server.
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

	"khoborpress/internal/cache"
	"khoborpress/internal/config"
	"khoborpress/internal/database"
	"khoborpress/internal/handlers"
	"khoborpress/internal/imaging"
	"khoborpress/internal/router"
	"khoborpress/internal/session"
	"khoborpress/internal/storage"
	"khoborpress/internal/store"
	"khoborpress/internal/tasks"
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

	// Seed the default admin and categories (no-op if data exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey (sessions, page cache, view counters).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// In non-development environments, mark session cookies as Secure.
	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(valkeyClient, secureCookies)

	// libvips powers media variant generation.
	imaging.Startup(0)
	defer imaging.Shutdown()

	// Initialize data stores.
	userStore := store.NewUserStore(db)
	postStore := store.NewPostStore(db)
	categoryStore := store.NewCategoryStore(db)
	tagStore := store.NewTagStore(db)
	commentStore := store.NewCommentStore(db)
	videoStore := store.NewVideoStore(db)
	opinionStore := store.NewOpinionStore(db)
	adStore := store.NewAdStore(db)
	newsletterStore := store.NewNewsletterStore(db)
	settingStore := store.NewSiteSettingStore(db)
	mediaStore := store.NewMediaStore(db)

	// Connect to S3-compatible object storage (optional, the app works
	// without it; media uploads are then disabled).
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
		slog.Warn("s3 storage not configured, media uploads disabled")
	}

	// Valkey-backed response cache and view counter.
	pageCache := cache.NewPageCache(valkeyClient, cache.DefaultPageTTL)
	viewCounter := cache.NewViewCounter(valkeyClient)

	// Scheduled jobs: view count sync and ad expiry sweep.
	taskRunner := tasks.New(postStore, adStore, viewCounter)
	if err := taskRunner.Start(); err != nil {
		slog.Error("failed to start task scheduler", "error", err)
		os.Exit(1)
	}
	defer taskRunner.Stop()

	// Create handler groups with their dependencies.
	adminHandlers := handlers.NewAdmin(
		postStore, categoryStore, tagStore, commentStore, userStore,
		videoStore, opinionStore, adStore, newsletterStore, settingStore,
		mediaStore, storageClient, pageCache,
	)
	authHandlers := handlers.NewAuth(sessionStore, userStore)
	publicHandlers := handlers.NewPublic(
		postStore, categoryStore, tagStore, commentStore,
		videoStore, opinionStore, adStore, newsletterStore, settingStore,
		pageCache, viewCounter,
	)

	// Set up the Chi router with all middleware and routes.
	r := router.New(sessionStore, adminHandlers, authHandlers, publicHandlers)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 60 * time.Second,
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

	// Flush pending view counts before exit so nothing is lost.
	taskRunner.SyncViewCounts()

	slog.Info("server stopped gracefully")
}
