package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/povarna/generative-ai-agents/search-agent/internal/batch"
	"github.com/povarna/generative-ai-agents/search-agent/internal/setup"
	"github.com/povarna/generative-ai-agents/search-agent/internal/stream"
	streamredis "github.com/povarna/generative-ai-agents/search-agent/internal/stream/redis"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	startTime := time.Now()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	input := flag.String("input", "", "JSONL file of documents, or - for stdin")
	workers := flag.Int("workers", 4, "Concurrent redis writers")
	dryRun := flag.Bool("dry-run", false, "Validate input without writing")
	publish := flag.Bool("stream", false, "Publish documents to DOCS_STREAM instead of writing them directly")
	follow := flag.Bool("follow", false, "Consume DOCS_STREAM and store every published document until interrupted")

	flag.Parse()

	if *input == "" && !*follow {
		log.Fatal().Msg("required flag -input not provided")
	}

	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found, using environment variables")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var records []batch.InputRecord
	if *input != "" {
		records = readRecords(ctx, *input)
		if *dryRun {
			dryRunAndExit(records)
		}
	}

	cfg := setup.LoadConfig()
	store, client, err := setup.ConnectRedisStore(ctx, cfg, &log.Logger)
	if err != nil {
		log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("Failed to connect to redis")
	}
	defer client.Close()

	failed := 0
	switch {
	case len(records) > 0 && *publish:
		failed = publishRecords(ctx, client, cfg.DocsStream, records)
	case len(records) > 0:
		results := batch.NewProcessor(store, *workers, &log.Logger).Process(ctx, records)
		summary := batch.Summarize(results)
		failed = summary.Failed
		log.Info().
			Int("total", summary.Total).
			Int("written", summary.Written).
			Int("failed", summary.Failed).
			Dur("elapsed", time.Since(startTime)).
			Msg("Seeding finished")
	}

	if *follow {
		consumer, err := stream.NewStreamConsumer(&stream.StreamConfig{
			Stream:       cfg.DocsStream,
			Group:        cfg.DocsStreamGroup,
			ConsumerName: consumerName(),
		}, client, store, &log.Logger)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create stream consumer")
		}
		if err := consumer.Setup(ctx); err != nil {
			log.Fatal().Err(err).Str("stream", cfg.DocsStream).Msg("Failed to set up consumer group")
		}
		if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("Consumer stopped")
		}
		_ = consumer.Stop()
	}

	if failed > 0 {
		os.Exit(1)
	}
}

func readRecords(ctx context.Context, input string) []batch.InputRecord {
	var inputFile io.Reader
	if input == "-" {
		inputFile = os.Stdin
		log.Info().Msg("Reading from stdin")
	} else {
		f, err := os.Open(input)
		if err != nil {
			log.Fatal().Err(err).Str("file", input).Msg("Failed to open input file")
		}
		defer f.Close()
		inputFile = f
		log.Info().Str("file", input).Msg("Reading input file")
	}

	reader := batch.NewReader(inputFile, &log.Logger)
	var records []batch.InputRecord
	for record := range reader.ReadAll(ctx) {
		records = append(records, record)
	}

	log.Info().Int("total", len(records)).Msg("Input file parsed")
	return records
}

func publishRecords(ctx context.Context, client *redis.Client, streamName string, records []batch.InputRecord) int {
	failed := 0
	for _, record := range records {
		if record.Error != nil {
			log.Error().Err(record.Error).Int("line", record.LineNumber).Msg("Skipping invalid record")
			failed++
			continue
		}
		id, err := streamredis.Publish(ctx, client, streamName, record.Document)
		if err != nil {
			log.Error().Err(err).Str("doc_id", record.Document.ID).Msg("Failed to publish document")
			failed++
			continue
		}
		log.Debug().Str("stream", streamName).Str("id", id).Str("doc_id", record.Document.ID).Msg("Published")
	}

	log.Info().Str("stream", streamName).Int("published", len(records)-failed).Int("failed", failed).Msg("Publishing finished")
	return failed
}

func consumerName() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		return "seed"
	}
	return "seed-" + host
}

func dryRunAndExit(records []batch.InputRecord) {
	errorCount := 0
	for _, record := range records {
		if record.Error != nil {
			log.Error().
				Int("line", record.LineNumber).
				Err(record.Error).
				Msg("Validation error")
			errorCount++
		}
	}

	if errorCount > 0 {
		log.Fatal().Int("errors", errorCount).Msg("Validation failed")
	}

	log.Info().Msg("Validation successful")
	os.Exit(0)
}
