/*
Package main is the entry point for the search-agent CLI.

Usage:

	search-agent search <query> [--limit N]
	search-agent fetch <id>...

The backend is selected with BACKEND (openai, static, redis).
*/
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/povarna/generative-ai-agents/search-agent/internal/cli"
	"github.com/povarna/generative-ai-agents/search-agent/internal/search"
	"github.com/povarna/generative-ai-agents/search-agent/internal/setup"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var version = "dev"

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).Level(zerolog.WarnLevel)

	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var deps *setup.Dependencies
	newService := func(ctx context.Context) (*search.Service, error) {
		cfg := setup.LoadConfig()
		var err error
		deps, err = setup.Wire(ctx, cfg, &log.Logger)
		if err != nil {
			return nil, err
		}
		return deps.Service, nil
	}

	err := cli.NewRootCmd(newService, version).ExecuteContext(ctx)
	if deps != nil {
		_ = deps.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
