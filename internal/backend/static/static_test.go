package static

import (
	"context"
	"errors"
	"testing"

	"github.com/povarna/generative-ai-agents/search-agent/internal/backend"
	"github.com/povarna/generative-ai-agents/search-agent/internal/config"
)

func TestBackend_Search_EchoesQuery(t *testing.T) {
	b := NewBackend(nil)

	hits, err := b.Search(context.Background(), "hello", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(hits))
	}

	first, ok := hits[0].(backend.StaticHit)
	if !ok || first.ID != "echo://static" || first.Text != "Echo!" {
		t.Errorf("unexpected first hit: %#v", hits[0])
	}

	second, ok := hits[1].(backend.StaticHit)
	if !ok || second.ID != "echo://hello" || second.Text != "Echo: hello" {
		t.Errorf("unexpected echo hit: %#v", hits[1])
	}
}

func TestBackend_Search_MatchesSubset(t *testing.T) {
	b := NewBackend(&config.DatasetConfig{Entries: []config.DatasetEntry{
		{ID: "echo://static", Title: "Static echo", Text: "Echo!"},
		{ID: "docs://go", Title: "Go notes", Text: "Interfaces and channels"},
		{ID: "docs://redis", Title: "Redis notes", Text: "Streams and hashes"},
	}})

	hits, err := b.Search(context.Background(), "CHANNELS", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(hits) != 2 {
		t.Fatalf("expected matched entry plus echo, got %d hits", len(hits))
	}
	if hits[0].(backend.StaticHit).ID != "docs://go" {
		t.Errorf("expected docs://go first, got %#v", hits[0])
	}
	if hits[1].(backend.StaticHit).ID != "echo://CHANNELS" {
		t.Errorf("expected echo hit last, got %#v", hits[1])
	}
}

func TestBackend_Content(t *testing.T) {
	b := NewBackend(nil)
	ctx := context.Background()

	content, err := b.Content(ctx, "echo://static")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(content.Parts) != 1 {
		t.Fatalf("expected 1 part, got %d", len(content.Parts))
	}
	if text, _ := content.Parts[0].(backend.TextPart); text.Text != "Echo!" {
		t.Errorf("unexpected content %#v", content.Parts[0])
	}

	_, err = b.Content(ctx, "echo://missing")
	if !errors.Is(err, backend.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	_, err = b.FileInfo(ctx, "echo://missing")
	if !errors.Is(err, backend.ErrNotFound) {
		t.Errorf("expected ErrNotFound from FileInfo, got %v", err)
	}
}

func TestBackend_Search_EchoSurvivesFullLimit(t *testing.T) {
	b := NewBackend(&config.DatasetConfig{Entries: []config.DatasetEntry{
		{ID: "a", Title: "A", Text: "hello a"},
		{ID: "b", Title: "B", Text: "hello b"},
	}})

	tests := []struct {
		name    string
		limit   int
		wantIDs []string
	}{
		{name: "limit equals matches", limit: 2, wantIDs: []string{"a", "echo://hello"}},
		{name: "limit one", limit: 1, wantIDs: []string{"echo://hello"}},
		{name: "room for all", limit: 3, wantIDs: []string{"a", "b", "echo://hello"}},
		{name: "no limit", limit: 0, wantIDs: []string{"a", "b", "echo://hello"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hits, err := b.Search(context.Background(), "hello", tt.limit)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(hits) != len(tt.wantIDs) {
				t.Fatalf("expected %d hits, got %d", len(tt.wantIDs), len(hits))
			}
			for i, id := range tt.wantIDs {
				if got := hits[i].(backend.StaticHit).ID; got != id {
					t.Errorf("hit %d: expected %q, got %q", i, id, got)
				}
			}
		})
	}
}
