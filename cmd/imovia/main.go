// Package main is the entry point for the imovia server.
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

	"imovia/internal/cache"
	"imovia/internal/catalog"
	"imovia/internal/config"
	"imovia/internal/database"
	"imovia/internal/handlers"
	"imovia/internal/router"
	"imovia/internal/session"
	"imovia/internal/storage"
	"imovia/internal/store"
)

func main() {
	// Structured logger — verbose in development, info and up elsewhere.
	level := slog.LevelInfo
	if os.Getenv("APP_ENV") == "" || os.Getenv("APP_ENV") == "development" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
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
		"catalog", cfg.CatalogBaseURL,
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

	// Connect to Valkey (Redis-compatible cache + session store).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// Initialize session store backed by Valkey.
	// In non-development environments, mark session cookies as Secure (HTTPS-only).
	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(valkeyClient, secureCookies)

	// Initialize data stores.
	userStore := store.NewUserStore(db)
	contactStore := store.NewContactStore(db)

	// Photo storage on the local filesystem.
	photoStore, err := storage.New(cfg.UploadRoot, cfg.MaxPhotos, cfg.MaxPhotoBytes, cfg.MaxUploadFiles)
	if err != nil {
		slog.Error("failed to initialize photo storage", "error", err)
		os.Exit(1)
	}
	slog.Info("photo storage ready",
		"root", cfg.UploadRoot,
		"max_photos", cfg.MaxPhotos,
	)

	// Catalog client and enrichment service. Photos come straight from the
	// local disk store; no HTTP round trip to our own API.
	catalogClient := catalog.NewClient(cfg.CatalogBaseURL)
	catalogService := catalog.NewService(catalogClient, photoStore)

	// Cached enriched responses in Valkey.
	listingCache := cache.NewListingCache(valkeyClient, cache.DefaultListingTTL)

	// Create handler groups with their dependencies.
	photoHandlers := handlers.NewPhotos(photoStore, listingCache)
	propertyHandlers := handlers.NewProperties(catalogService, listingCache)
	contactHandlers := handlers.NewContact(contactStore)
	authHandlers := handlers.NewAuth(sessionStore, userStore)

	// Set up the Chi router with all middleware and routes.
	r := router.New(router.Deps{
		Sessions:   sessionStore,
		Photos:     photoHandlers,
		Properties: propertyHandlers,
		Contact:    contactHandlers,
		Auth:       authHandlers,
		UploadRoot: cfg.UploadRoot,
		PublicDir:  cfg.PublicDir,
	})

	// Create the HTTP server with sensible timeouts. ReadTimeout must
	// accommodate multi-file photo uploads on slow links.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 30 * time.Second,
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
