package redis

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/povarna/generative-ai-agents/search-agent/internal/batch/mocks"
	"github.com/povarna/generative-ai-agents/search-agent/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.uber.org/mock/gomock"
)

func TestDecodeMessage(t *testing.T) {
	tests := []struct {
		name    string
		values  map[string]any
		wantID  string
		wantErr bool
	}{
		{
			name:   "valid document",
			values: map[string]any{"payload": `{"id":"doc-1","title":"Runbook","text":"restart"}`},
			wantID: "doc-1",
		},
		{name: "missing payload", values: map[string]any{"other": "x"}, wantErr: true},
		{name: "payload not a string", values: map[string]any{"payload": 42}, wantErr: true},
		{name: "invalid json", values: map[string]any{"payload": `{"id":`}, wantErr: true},
		{name: "blank id", values: map[string]any{"payload": `{"id":" ","text":"x"}`}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := DecodeMessage(redis.XMessage{ID: "1-0", Values: tt.values})
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got document %+v", doc)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if doc.ID != tt.wantID {
				t.Errorf("expected id %q, got %q", tt.wantID, doc.ID)
			}
		})
	}
}

func TestConsumer_ProcessLeavesFailedWritesPending(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := mocks.NewMockSink(ctrl)
	sink.EXPECT().Put(gomock.Any(), models.Document{ID: "doc-1", Text: "x"}).Return(errors.New("redis down"))

	logger := zerolog.Nop()
	// Unreachable client: an ACK attempt would only log, so the test asserts on the sink call.
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	defer client.Close()

	c := NewConsumer(client, "docs", "search-agent", "test", sink, &logger)
	c.process(context.Background(), redis.XMessage{ID: "1-0", Values: map[string]any{"payload": `{"id":"doc-1","text":"x"}`}})
}

func TestConsumer_StartWaitsAfterReadError(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := mocks.NewMockSink(ctrl)

	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	defer client.Close()

	c := NewConsumer(client, "docs", "search-agent", "test", sink, &logger)
	c.retryDelay = time.Hour

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	started := time.Now()
	err := c.Start(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if elapsed := time.Since(started); elapsed > 5*time.Second {
		t.Errorf("Start ignored cancellation while waiting, took %s", elapsed)
	}
	if n := strings.Count(buf.String(), "Failed to read from stream"); n != 1 {
		t.Errorf("expected one read error before the retry wait, got %d", n)
	}
}
