package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

type Options struct {
	Addr     string
	Password string
	// Attempts bounds the startup ping loop.
	Attempts int
}

// Connect opens a client and waits for the server with exponential backoff.
// It is meant for process startup only; request-path calls are never retried,
// so the client itself is built with MaxRetries disabled.
func Connect(ctx context.Context, opts Options, logger *zerolog.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           0,
		MaxRetries:   -1,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	attempts := opts.Attempts
	if attempts <= 0 {
		attempts = 1
	}

	var err error
	for i := range attempts {
		if i > 0 {
			backoff := time.Duration(1<<uint(i)) * time.Second
			logger.Info().Dur("backoff", backoff).Msg("Waiting before Redis retry")
			select {
			case <-ctx.Done():
				client.Close()
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		logger.Info().Str("addr", opts.Addr).Int("attempt", i+1).Int("max_attempts", attempts).Msg("Connecting to Redis")

		err = client.Ping(ctx).Err()
		if err == nil {
			logger.Info().Int("attempts_needed", i+1).Msg("Redis connected")
			return client, nil
		}

		logger.Warn().Err(err).Int("attempt", i+1).Msg("Redis ping failed")
	}

	client.Close()
	return nil, fmt.Errorf("failed to connect to Redis after %d attempts: %w", attempts, err)
}
