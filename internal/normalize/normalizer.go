// Package normalize reshapes backend values into the public search/fetch schema.
package normalize

import (
	"fmt"
	"strings"

	"github.com/povarna/generative-ai-agents/search-agent/internal/backend"
	"github.com/povarna/generative-ai-agents/search-agent/internal/models"
)

const (
	DefaultCitationBase = "https://platform.openai.com"
	NoContent           = "No content available"
	SnippetLimit        = 200
)

type Normalizer struct {
	citationBase string
}

func NewNormalizer(citationBase string) *Normalizer {
	if citationBase == "" {
		citationBase = DefaultCitationBase
	}
	return &Normalizer{citationBase: strings.TrimRight(citationBase, "/")}
}

// CitationURL builds the dashboard link for a document id. No network call.
func (n *Normalizer) CitationURL(id string) string {
	return n.citationBase + "/storage/files/" + id
}

// hitFields is what each variant contributes before fallbacks are applied.
type hitFields struct {
	id    string
	title string
	url   string
}

// NormalizeSearchHit converts the index-th hit of a response. Missing fields get
// placeholders; only an unreadable hit is an error.
func (n *Normalizer) NormalizeSearchHit(hit backend.Hit, index int) (models.SearchResult, error) {
	fields, err := extract(hit)
	if err != nil {
		return models.SearchResult{}, fmt.Errorf("hit %d: %w", index, err)
	}

	id := fields.id
	if id == "" {
		id = fmt.Sprintf("vs_%d", index)
	}

	title := fields.title
	if title == "" {
		title = fmt.Sprintf("Document %d", index+1)
	}

	url := fields.url
	if url == "" {
		url = n.CitationURL(id)
	}

	return models.SearchResult{
		ID:    id,
		Title: title,
		Text:  Truncate(snippet(hit), SnippetLimit),
		URL:   url,
	}, nil
}

func (n *Normalizer) NormalizeSearchHits(hits []backend.Hit) ([]models.SearchResult, error) {
	results := make([]models.SearchResult, 0, len(hits))
	for i, hit := range hits {
		result, err := n.NormalizeSearchHit(hit, i)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

// NormalizeFetchResult assembles a full document. info may be nil when metadata
// could not be retrieved.
func (n *Normalizer) NormalizeFetchResult(content backend.Content, info *backend.FileInfo, id string) models.FetchResult {
	var parts []string
	for _, part := range content.Parts {
		if text, ok := partText(part); ok {
			parts = append(parts, text)
		}
	}

	text := NoContent
	if len(parts) > 0 {
		text = strings.Join(parts, "\n")
	}

	title := fmt.Sprintf("Document %s", id)
	var metadata map[string]any
	if info != nil {
		if info.Filename != "" {
			title = info.Filename
		}
		metadata = info.Attributes
	}

	url := content.URL
	if url == "" {
		url = n.CitationURL(id)
	}

	return models.FetchResult{
		ID:       id,
		Title:    title,
		Text:     text,
		URL:      url,
		Metadata: metadata,
	}
}

// Truncate cuts s to limit characters and appends "..." when it was longer.
func Truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

func extract(hit backend.Hit) (hitFields, error) {
	switch h := hit.(type) {
	case backend.VectorStoreHit:
		return hitFields{id: h.FileID, title: h.Filename}, nil
	case backend.StaticHit:
		return hitFields{id: h.ID, title: h.Title, url: h.URL}, nil
	case backend.RawHit:
		if !h.Valid() {
			return hitFields{}, backend.ErrUnreadableShape
		}
		return hitFields{id: h.ID(), title: h.Title(), url: h.URL()}, nil
	case nil:
		return hitFields{}, backend.ErrUnreadableShape
	default:
		return hitFields{}, fmt.Errorf("%w: unknown hit type %T", backend.ErrUnreadableShape, hit)
	}
}

func snippet(hit backend.Hit) string {
	if withParts, ok := hit.(backend.HasContentParts); ok {
		if parts := withParts.ContentParts(); len(parts) > 0 {
			if text, ok := partText(parts[0]); ok && text != "" {
				return text
			}
		}
	}

	if withText, ok := hit.(backend.HasSnippetText); ok {
		if text := withText.SnippetText(); text != "" {
			return text
		}
	}

	return NoContent
}

func partText(part backend.ContentPart) (string, bool) {
	switch p := part.(type) {
	case backend.TextPart:
		return p.PartText()
	case backend.RawPart:
		return p.PartText()
	case backend.OpaquePart:
		return "", false
	default:
		return "", false
	}
}
