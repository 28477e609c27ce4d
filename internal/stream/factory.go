package stream

import (
	"fmt"

	"github.com/povarna/generative-ai-agents/search-agent/internal/batch"
	"github.com/povarna/generative-ai-agents/search-agent/internal/stream/redis"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

type StreamConfig struct {
	Provider     string // only redis for now
	Stream       string
	Group        string
	ConsumerName string
}

// NewStreamConsumer returns a consumer that writes every document published on
// the configured stream into sink.
func NewStreamConsumer(cfg *StreamConfig, client *goredis.Client, sink batch.Sink, logger *zerolog.Logger) (StreamConsumer, error) {
	// If provider is empty, fallback to the default configuration.
	provider := cfg.Provider
	if provider == "" {
		provider = "redis"
	}

	switch provider {
	case "redis":
		if client == nil {
			return nil, fmt.Errorf("redis client required")
		}
		if cfg.Stream == "" || cfg.Group == "" {
			return nil, fmt.Errorf("stream and group are required")
		}
		return redis.NewConsumer(client, cfg.Stream, cfg.Group, cfg.ConsumerName, sink, logger), nil
	default:
		return nil, fmt.Errorf("unsupported stream provider: %s", cfg.Provider)
	}
}
