package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/povarna/generative-ai-agents/search-agent/internal/backend"
	"github.com/povarna/generative-ai-agents/search-agent/internal/metrics"
	"github.com/povarna/generative-ai-agents/search-agent/internal/models"
	"github.com/povarna/generative-ai-agents/search-agent/internal/normalize"
	"github.com/rs/zerolog"
)

const DefaultLimit = 10

// Service runs search and fetch against one backend and normalizes the results.
// It holds no per-call state.
type Service struct {
	backend      backend.Backend
	normalizer   *normalize.Normalizer
	defaultLimit int
	metrics      *metrics.Metrics
	logger       *zerolog.Logger
}

func NewService(b backend.Backend, normalizer *normalize.Normalizer, defaultLimit int, m *metrics.Metrics, logger *zerolog.Logger) *Service {
	if defaultLimit <= 0 {
		defaultLimit = DefaultLimit
	}
	return &Service{
		backend:      b,
		normalizer:   normalizer,
		defaultLimit: defaultLimit,
		metrics:      m,
		logger:       logger,
	}
}

// Search returns up to limit normalized hits. The configured limit is both the
// default and the maximum. A blank query returns an empty, non-nil slice without
// calling the backend.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]models.SearchResult, error) {
	started := time.Now()
	results := []models.SearchResult{}

	if strings.TrimSpace(query) == "" {
		s.logger.Info().Msg("search: blank query, 0 results")
		s.metrics.Observe("search", metrics.OutcomeOK, time.Since(started))
		return results, nil
	}

	if limit <= 0 || limit > s.defaultLimit {
		limit = s.defaultLimit
	}

	s.logger.Info().
		Str("backend", s.backend.Name()).
		Str("query", query).
		Int("limit", limit).
		Msg("search: start")

	hits, err := s.backend.Search(ctx, query, limit)
	if err != nil {
		s.logger.Error().Err(err).Str("backend", s.backend.Name()).Msg("search: backend call failed")
		s.metrics.Observe("search", outcome(err), time.Since(started))
		return nil, fmt.Errorf("%s backend: %w", s.backend.Name(), err)
	}

	normalized, err := s.normalizer.NormalizeSearchHits(hits)
	if err != nil {
		s.logger.Error().Err(err).Msg("search: failed to process results")
		s.metrics.Observe("search", metrics.OutcomeError, time.Since(started))
		return nil, fmt.Errorf("reading %s results: %w", s.backend.Name(), err)
	}
	results = append(results, normalized...)

	if len(results) > limit {
		results = results[:limit]
	}

	elapsed := time.Since(started)
	s.logger.Info().
		Int("hits", len(results)).
		Dur("elapsed", elapsed).
		Msg("search: done")
	s.metrics.Observe("search", metrics.OutcomeOK, elapsed)

	return results, nil
}

// Fetch returns one full document. A missing document is ErrNotFound; a failed
// metadata lookup only drops the metadata.
func (s *Service) Fetch(ctx context.Context, id string) (models.FetchResult, error) {
	started := time.Now()
	result, err := s.fetch(ctx, id)
	s.metrics.Observe("fetch", outcome(err), time.Since(started))
	return result, err
}

func (s *Service) fetch(ctx context.Context, id string) (models.FetchResult, error) {
	if strings.TrimSpace(id) == "" {
		return models.FetchResult{}, fmt.Errorf("id is required: %w", backend.ErrInvalidInput)
	}

	started := time.Now()
	s.logger.Info().Str("backend", s.backend.Name()).Str("file_id", id).Msg("fetch: start")

	content, err := s.backend.Content(ctx, id)
	if err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			s.logger.Warn().Str("file_id", id).Msg("fetch: document not found")
		} else {
			s.logger.Error().Err(err).Str("file_id", id).Msg("fetch: content retrieval failed")
		}
		return models.FetchResult{}, fmt.Errorf("%s backend: %w", s.backend.Name(), err)
	}

	info, err := s.backend.FileInfo(ctx, id)
	if err != nil {
		s.logger.Warn().Err(err).Str("file_id", id).Msg("fetch: metadata unavailable")
		info = nil
	}

	result := s.normalizer.NormalizeFetchResult(content, info, id)

	s.logger.Info().
		Str("file_id", id).
		Int("bytes", len(result.Text)).
		Dur("elapsed", time.Since(started)).
		Msg("fetch: done")

	return result, nil
}

// FetchBatch fetches every id independently. Blank and missing ids get an error
// entry; any other backend failure aborts the batch.
func (s *Service) FetchBatch(ctx context.Context, ids []string) ([]models.FetchEntry, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("ids are required: %w", backend.ErrInvalidInput)
	}

	entries := make([]models.FetchEntry, 0, len(ids))
	for _, id := range ids {
		result, err := s.Fetch(ctx, id)
		switch {
		case err == nil:
			entries = append(entries, models.FetchEntry{
				ID:       result.ID,
				Content:  result.Text,
				Title:    result.Title,
				URL:      result.URL,
				Metadata: result.Metadata,
			})
		case errors.Is(err, backend.ErrNotFound):
			entries = append(entries, models.FetchEntry{ID: id, Error: models.FetchErrorNotFound})
		case errors.Is(err, backend.ErrInvalidInput):
			entries = append(entries, models.FetchEntry{ID: id, Error: models.FetchErrorInvalidID})
		default:
			return nil, err
		}
	}

	return entries, nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, backend.ErrInvalidInput):
		return metrics.OutcomeInvalid
	case errors.Is(err, backend.ErrNotFound):
		return metrics.OutcomeNotFound
	default:
		return metrics.OutcomeError
	}
}
