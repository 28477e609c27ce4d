package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/emicklei/go-restful/v3"
	"github.com/joho/godotenv"
	"github.com/povarna/generative-ai-agents/search-agent/internal/api"
	"github.com/povarna/generative-ai-agents/search-agent/internal/api/middleware"
	"github.com/povarna/generative-ai-agents/search-agent/internal/setup"
	applog "github.com/povarna/generative-ai-agents/search-agent/internal/setup/logger"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var version = "dev"

func main() {
	// Setup logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Load env
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found")
	}

	cfg := setup.LoadConfig()
	log.Logger = applog.NewFromFormat(cfg.LogFormat, cfg.LogLevel)
	logger := log.Logger

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Wire dependencies
	deps, err := setup.Wire(ctx, cfg, &logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Unable to load dependencies")
	}
	defer deps.Close()

	// API
	handler := api.NewHandler(deps.Service, &logger)
	container := restful.NewContainer()
	container.Filter(middleware.Logger(&logger))
	container.Filter(middleware.RecoverPanic(&logger))
	api.RegisterRoutes(container, handler)
	api.RegisterDocs(container, version)
	api.RegisterMetrics(container, deps.Metrics.Handler())

	// CORS
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})

	// Server
	addr := fmt.Sprintf(":%s", cfg.APIPort)
	log.Info().Str("address", addr).Msg("Starting Search Agent API")

	server := &http.Server{
		Addr:              addr,
		Handler:           corsHandler.Handler(container),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Graceful shutdown failed")
		}
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("Server failed")
		_ = deps.Close()
		os.Exit(1)
	}
	log.Info().Msg("Server stopped")
}
