// Package vectorstore is the OpenAI vector store backend.
package vectorstore

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/openai/openai-go/v3"
	"github.com/povarna/generative-ai-agents/search-agent/internal/backend"
	"github.com/tidwall/gjson"
)

// maxNumResults is the largest max_num_results the search endpoint accepts.
const maxNumResults = 50

func (c *Client) Search(ctx context.Context, query string, limit int) ([]backend.Hit, error) {
	params := openai.VectorStoreSearchParams{
		Query: openai.VectorStoreSearchParamsQueryUnion{
			OfString: openai.String(query),
		},
	}
	if limit > 0 {
		params.MaxNumResults = openai.Int(int64(min(limit, maxNumResults)))
	}

	page, err := c.Client.VectorStores.Search(ctx, c.VectorStoreID, params)
	if err != nil {
		if isUnavailable(err) || statusCode(err) == http.StatusNotFound {
			return nil, fmt.Errorf("vector store %s search: %w: %w", c.VectorStoreID, backend.ErrUnavailable, err)
		}
		return nil, fmt.Errorf("vector store %s search: %w", c.VectorStoreID, err)
	}

	hits := make([]backend.Hit, 0, len(page.Data))
	for _, item := range page.Data {
		parts := make([]backend.ContentPart, 0, len(item.Content))
		for _, chunk := range item.Content {
			parts = append(parts, contentPart(string(chunk.Type), chunk.Text))
		}

		hits = append(hits, backend.VectorStoreHit{
			FileID:     item.FileID,
			Filename:   item.Filename,
			Score:      item.Score,
			Content:    parts,
			Attributes: backend.ObjectFromJSON(gjson.Get(item.RawJSON(), "attributes")),
		})
	}

	return hits, nil
}

func (c *Client) Content(ctx context.Context, id string) (backend.Content, error) {
	page, err := c.Client.VectorStores.Files.Content(ctx, c.VectorStoreID, id)
	if err != nil {
		return backend.Content{}, classify(fmt.Sprintf("file %s content", id), err)
	}

	parts := make([]backend.ContentPart, 0, len(page.Data))
	for _, chunk := range page.Data {
		parts = append(parts, contentPart(string(chunk.Type), chunk.Text))
	}

	return backend.Content{Parts: parts}, nil
}

// FileInfo reads the vector store attributes of a file and, separately, its
// filename. A failed filename lookup only leaves the filename empty.
func (c *Client) FileInfo(ctx context.Context, id string) (*backend.FileInfo, error) {
	vsFile, err := c.Client.VectorStores.Files.Get(ctx, c.VectorStoreID, id)
	if err != nil {
		return nil, classify(fmt.Sprintf("file %s attributes", id), err)
	}

	info := &backend.FileInfo{
		Attributes: backend.ObjectFromJSON(gjson.Get(vsFile.RawJSON(), "attributes")),
	}

	file, err := c.Client.Files.Get(ctx, id)
	if err != nil {
		c.logger.Debug().Err(err).Str("file_id", id).Msg("filename lookup failed")
		return info, nil
	}
	info.Filename = file.Filename

	return info, nil
}

func contentPart(kind string, text string) backend.ContentPart {
	if kind != "" && kind != "text" {
		return backend.OpaquePart{Type: kind}
	}
	return backend.TextPart{Text: text}
}

func classify(op string, err error) error {
	switch {
	case statusCode(err) == http.StatusNotFound:
		return fmt.Errorf("%s: %w", op, backend.ErrNotFound)
	case isUnavailable(err):
		return fmt.Errorf("%s: %w: %w", op, backend.ErrUnavailable, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func isUnavailable(err error) bool {
	code := statusCode(err)
	return code == http.StatusMethodNotAllowed || code == http.StatusNotImplemented
}

func statusCode(err error) int {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
