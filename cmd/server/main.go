// Command server runs the Smart Q&A widget backend: the embeddable chat
// widget surface plus the tenant-scoped chat API it talks to.
//
// @title        Smart Q&A Widget Backend API
// @version      1.0
// @description  Multi-tenant support-chat widget backend.
// @BasePath     /api
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/smart-qa/go-widget-backend/internal/config"
	httpapi "github.com/smart-qa/go-widget-backend/internal/http"
	"github.com/smart-qa/go-widget-backend/internal/llm"
	"github.com/smart-qa/go-widget-backend/internal/observability"
	"github.com/smart-qa/go-widget-backend/internal/repo"
	"github.com/smart-qa/go-widget-backend/internal/services"
	"github.com/smart-qa/go-widget-backend/internal/sysutil"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// Local development convenience; missing .env is fine.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	// Logging
	zerolog.TimeFieldFormat = time.RFC3339
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
	sysutil.SetLogLevel(cfg.LogLevel)

	ctx := context.Background()

	// Tracing
	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup failed")
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOTel(sctx); err != nil {
			log.Warn().Err(err).Msg("otel shutdown failed")
		}
	}()

	// Storage
	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database failed")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate database failed")
	}

	// Generative model (dev mode never calls it; skip the client entirely)
	var model services.TextGenerator
	if !cfg.DevMode {
		gem, err := llm.NewGemini(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			log.Fatal().Err(err).Msg("gemini client setup failed")
		}
		model = gem
	} else {
		log.Warn().Msg("dev mode enabled: widget gate and model calls are bypassed")
	}

	// HTTP
	gin.SetMode(cfg.GinMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, db, model, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("version", version).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}
