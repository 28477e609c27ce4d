// Package redisdocs keeps documents as JSON strings in Redis and serves them as a
// search backend.
package redisdocs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/povarna/generative-ai-agents/search-agent/internal/backend"
	"github.com/povarna/generative-ai-agents/search-agent/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
)

type Store struct {
	client redis.UniversalClient
	prefix string
	logger *zerolog.Logger
}

func NewStore(client redis.UniversalClient, prefix string, logger *zerolog.Logger) *Store {
	return &Store{
		client: client,
		prefix: prefix,
		logger: logger,
	}
}

func (s *Store) Name() string {
	return "redis"
}

func (s *Store) docKey(id string) string {
	return s.prefix + "doc:" + id
}

func (s *Store) indexKey() string {
	return s.prefix + "docs"
}

// Put stores a document and adds it to the id index.
func (s *Store) Put(ctx context.Context, doc models.Document) error {
	if strings.TrimSpace(doc.ID) == "" {
		return fmt.Errorf("document id: %w", backend.ErrInvalidInput)
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.docKey(doc.ID), payload, 0)
	pipe.SAdd(ctx, s.indexKey(), doc.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store document %s: %w", doc.ID, err)
	}
	return nil
}

// Search scans the indexed documents and returns those whose title or text
// contains the query, in id order, up to limit.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]backend.Hit, error) {
	ids, err := s.client.Sort(ctx, s.indexKey(), &redis.Sort{Alpha: true}).Result()
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.docKey(id)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("load documents: %w", err)
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	var hits []backend.Hit
	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			s.logger.Debug().Str("id", ids[i]).Msg("indexed document missing, skipping")
			continue
		}
		if !Matches(raw, needle) {
			continue
		}
		hits = append(hits, backend.RawHit{JSON: raw})
		if limit > 0 && len(hits) >= limit {
			break
		}
	}

	return hits, nil
}

func (s *Store) Content(ctx context.Context, id string) (backend.Content, error) {
	raw, err := s.get(ctx, id)
	if err != nil {
		return backend.Content{}, err
	}
	return ContentFromJSON(raw), nil
}

func (s *Store) FileInfo(ctx context.Context, id string) (*backend.FileInfo, error) {
	raw, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &backend.FileInfo{
		Filename:   gjson.Get(raw, "title").String(),
		Attributes: backend.ObjectFromJSON(gjson.Get(raw, "metadata")),
	}, nil
}

func (s *Store) get(ctx context.Context, id string) (string, error) {
	raw, err := s.client.Get(ctx, s.docKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("document %s: %w", id, backend.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("load document %s: %w", id, err)
	}
	return raw, nil
}

// Matches reports whether a stored document's title or text contains needle.
// needle must already be lower-cased.
func Matches(raw string, needle string) bool {
	if needle == "" {
		return false
	}
	doc := gjson.GetMany(raw, "title", "text")
	for _, field := range doc {
		if strings.Contains(strings.ToLower(field.String()), needle) {
			return true
		}
	}
	return false
}

// ContentFromJSON reads a stored document. A "content" list wins over "text".
func ContentFromJSON(raw string) backend.Content {
	content := backend.Content{URL: gjson.Get(raw, "url").String()}

	if parts := backend.PartsFromJSON(gjson.Get(raw, "content")); len(parts) > 0 {
		content.Parts = parts
		return content
	}
	if text := gjson.Get(raw, "text"); text.Exists() {
		content.Parts = []backend.ContentPart{backend.TextPart{Text: text.String()}}
	}
	return content
}
