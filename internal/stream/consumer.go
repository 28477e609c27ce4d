package stream

import (
	"context"

	"github.com/povarna/generative-ai-agents/search-agent/internal/stream/redis"
)

// StreamConsumer ingests documents published on a stream until its context ends.
type StreamConsumer interface {
	// Setup creates the consumer group if it does not exist yet.
	Setup(ctx context.Context) error
	// Start blocks, storing every document it reads.
	Start(ctx context.Context) error
	Stop() error
}

var _ StreamConsumer = (*redis.Consumer)(nil)
