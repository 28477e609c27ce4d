package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/povarna/generative-ai-agents/search-agent/internal/batch"
	"github.com/povarna/generative-ai-agents/search-agent/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	payloadField = "payload"

	defaultRetryDelay = time.Second
)

// Consumer reads documents from a Redis stream with a consumer group and
// stores them in a Sink.
type Consumer struct {
	client       *redis.Client
	stream       string
	groupID      string
	consumerName string
	sink         batch.Sink
	retryDelay   time.Duration
	logger       *zerolog.Logger
}

func NewConsumer(client *redis.Client, stream string, groupID string, consumerName string, sink batch.Sink, logger *zerolog.Logger) *Consumer {
	return &Consumer{
		client:       client,
		stream:       stream,
		groupID:      groupID,
		consumerName: consumerName,
		sink:         sink,
		retryDelay:   defaultRetryDelay,
		logger:       logger,
	}
}

func (c *Consumer) Setup(ctx context.Context) error {
	err := c.client.XGroupCreateMkStream(ctx, c.stream, c.groupID, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return err
	}
	return nil
}

func (c *Consumer) Start(ctx context.Context) error {
	c.logger.Info().
		Str("stream", c.stream).
		Str("group", c.groupID).
		Str("consumer", c.consumerName).
		Msg("Consumer started")

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		msgs, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    c.groupID,
			Consumer: c.consumerName,
			Streams:  []string{c.stream, ">"},
			Count:    10,
			Block:    2 * time.Second,
		}).Result()

		if err != nil {
			if errors.Is(err, redis.Nil) {
				// timeout, no message -> loop again
				continue
			}

			if ctx.Err() != nil {
				return ctx.Err() // context cancelled during block
			}

			c.logger.Error().Err(err).Dur("retry_in", c.retryDelay).Msg("Failed to read from stream")
			select {
			case <-time.After(c.retryDelay):
			case <-ctx.Done():
				return ctx.Err()
			}
			continue
		}

		for _, msg := range msgs[0].Messages {
			c.process(ctx, msg)
		}
	}
}

func (c *Consumer) Stop() error {
	return nil
}

func (c *Consumer) process(ctx context.Context, msg redis.XMessage) {
	doc, err := DecodeMessage(msg)
	if err != nil {
		c.logger.Error().Err(err).Str("id", msg.ID).Msg("Dropping unreadable message")
		c.ack(ctx, msg.ID) // bad message: ACK to skip it
		return
	}

	// Left pending on failure so a restart can claim it again.
	if err := c.sink.Put(ctx, doc); err != nil {
		c.logger.Error().Err(err).Str("id", msg.ID).Str("doc_id", doc.ID).Msg("Failed to store document")
		return
	}

	c.logger.Info().Str("id", msg.ID).Str("doc_id", doc.ID).Msg("Document ingested")
	c.ack(ctx, msg.ID)
}

func (c *Consumer) ack(ctx context.Context, msgID string) {
	if err := c.client.XAck(ctx, c.stream, c.groupID, msgID).Err(); err != nil {
		c.logger.Error().Err(err).Str("id", msgID).Msg("Failed to ACK message")
	}
}

// DecodeMessage extracts the document carried in the payload field.
func DecodeMessage(msg redis.XMessage) (models.Document, error) {
	payload, ok := msg.Values[payloadField].(string)
	if !ok {
		return models.Document{}, fmt.Errorf("message %s: missing %s field", msg.ID, payloadField)
	}

	var doc models.Document
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		return models.Document{}, fmt.Errorf("message %s: %w", msg.ID, err)
	}
	if strings.TrimSpace(doc.ID) == "" {
		return models.Document{}, fmt.Errorf("message %s: document id is required", msg.ID)
	}
	return doc, nil
}

// Publish appends doc to stream and returns the entry id.
func Publish(ctx context.Context, client *redis.Client, stream string, doc models.Document) (string, error) {
	payload, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	return client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]any{payloadField: string(payload)},
	}).Result()
}
