package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/povarna/generative-ai-agents/search-agent/internal/mcpadapter"
	"github.com/povarna/generative-ai-agents/search-agent/internal/setup"
	applog "github.com/povarna/generative-ai-agents/search-agent/internal/setup/logger"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var version = "dev"

func main() {
	// Setup logging. Stdout belongs to the stdio transport.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Load env
	_ = godotenv.Load()

	cfg := setup.LoadConfig()
	log.Logger = applog.NewFromFormat(cfg.LogFormat, cfg.LogLevel)
	logger := log.Logger

	// Graceful shutdown on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Wire dependencies
	deps, err := setup.Wire(ctx, cfg, &logger)
	if err != nil {
		logger.Error().Err(err).Msg("Unable to load dependencies")
		os.Exit(1)
	}
	defer deps.Close()

	server := mcpadapter.NewServer(deps.Service, version)

	if cfg.MCPTransport == "http" {
		if err := serveHTTP(ctx, cfg.MCPAddr, server, deps); err != nil {
			logger.Error().Err(err).Msg("Failed to run mcp server")
			_ = deps.Close()
			os.Exit(1)
		}
		return
	}

	// Run over stdio
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		// EOF / "server is closing" is expected when stdin closes
		if errors.Is(err, io.EOF) || strings.Contains(err.Error(), "server is closing") {
			logger.Debug().Err(err).Msg("MCP server stopped")
			return
		}
		logger.Error().Err(err).Msg("Failed to run mcp server")
		_ = deps.Close()
		os.Exit(1)
	}
}

func serveHTTP(ctx context.Context, addr string, server *mcp.Server, deps *setup.Dependencies) error {
	mux := http.NewServeMux()
	mux.Handle("/mcp", mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil))
	mux.Handle("/metrics", deps.Metrics.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"status":"ok"}`)
	})

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	deps.Logger.Info().Str("address", addr).Msg("Starting MCP server over streamable HTTP")
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
