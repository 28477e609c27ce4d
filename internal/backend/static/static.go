// Package static serves search/fetch from a small in-memory echo table.
package static

import (
	"context"
	"fmt"
	"strings"

	"github.com/povarna/generative-ai-agents/search-agent/internal/backend"
	"github.com/povarna/generative-ai-agents/search-agent/internal/config"
)

const echoScheme = "echo://"

type Backend struct {
	entries []config.DatasetEntry
	byID    map[string]config.DatasetEntry
}

func NewBackend(dataset *config.DatasetConfig) *Backend {
	if dataset == nil {
		dataset = config.DefaultDataset()
	}

	byID := make(map[string]config.DatasetEntry, len(dataset.Entries))
	for _, entry := range dataset.Entries {
		byID[entry.ID] = entry
	}

	return &Backend{
		entries: dataset.Entries,
		byID:    byID,
	}
}

func (b *Backend) Name() string {
	return "static"
}

// Search returns the entries matching the query, or the whole table when nothing
// matches, followed by a synthesized echo of the query. The echo always takes
// the last of the limit slots.
func (b *Backend) Search(ctx context.Context, query string, limit int) ([]backend.Hit, error) {
	needle := strings.ToLower(strings.TrimSpace(query))

	var matched []config.DatasetEntry
	for _, entry := range b.entries {
		if matches(entry, needle) {
			matched = append(matched, entry)
		}
	}
	if len(matched) == 0 {
		matched = b.entries
	}
	if limit > 0 && len(matched) > limit-1 {
		matched = matched[:limit-1]
	}

	hits := make([]backend.Hit, 0, len(matched)+1)
	for _, entry := range matched {
		hits = append(hits, backend.StaticHit{
			ID:    entry.ID,
			Title: entry.Title,
			Text:  entry.Text,
			URL:   entry.URL,
		})
	}

	echoID := echoScheme + query
	hits = append(hits, backend.StaticHit{
		ID:    echoID,
		Title: fmt.Sprintf("Echo: %s", query),
		Text:  fmt.Sprintf("Echo: %s", query),
		URL:   echoID,
	})

	return hits, nil
}

func (b *Backend) Content(ctx context.Context, id string) (backend.Content, error) {
	entry, ok := b.byID[id]
	if !ok {
		return backend.Content{}, fmt.Errorf("document %s: %w", id, backend.ErrNotFound)
	}

	return backend.Content{
		Parts: []backend.ContentPart{backend.TextPart{Text: entry.Text}},
		URL:   entry.URL,
	}, nil
}

func (b *Backend) FileInfo(ctx context.Context, id string) (*backend.FileInfo, error) {
	entry, ok := b.byID[id]
	if !ok {
		return nil, fmt.Errorf("document %s: %w", id, backend.ErrNotFound)
	}

	return &backend.FileInfo{
		Filename:   entry.Title,
		Attributes: entry.Metadata,
	}, nil
}

func matches(entry config.DatasetEntry, needle string) bool {
	if needle == "" {
		return false
	}
	return strings.Contains(strings.ToLower(entry.ID), needle) ||
		strings.Contains(strings.ToLower(entry.Title), needle) ||
		strings.Contains(strings.ToLower(entry.Text), needle)
}
