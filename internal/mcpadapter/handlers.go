package mcpadapter

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/povarna/generative-ai-agents/search-agent/internal/models"
	"github.com/povarna/generative-ai-agents/search-agent/internal/search"
)

const instructions = `Search a document collection and retrieve full documents for citation.
Call search first to get candidate ids, then fetch (or fetch_batch) for the full text.`

// SearchInput is the MCP tool input schema for search.
type SearchInput struct {
	Query string `json:"query" jsonschema:"natural language query; blank returns no results"`
}

// FetchInput is the MCP tool input schema for fetch.
type FetchInput struct {
	ID string `json:"id" jsonschema:"document id returned by search"`
}

// FetchBatchInput is the MCP tool input schema for fetch_batch.
type FetchBatchInput struct {
	IDs []string `json:"ids" jsonschema:"document ids returned by search"`
}

// FetchOutput is the fetch tool result. Metadata is a pointer so the inferred
// output schema accepts null when a document has none.
type FetchOutput struct {
	ID       string          `json:"id" jsonschema:"document identifier"`
	Title    string          `json:"title" jsonschema:"document title"`
	Text     string          `json:"text" jsonschema:"full document text"`
	URL      string          `json:"url" jsonschema:"citation url"`
	Metadata *map[string]any `json:"metadata" jsonschema:"file attributes, null when unavailable"`
}

func newFetchOutput(result models.FetchResult) FetchOutput {
	out := FetchOutput{
		ID:    result.ID,
		Title: result.Title,
		Text:  result.Text,
		URL:   result.URL,
	}
	if result.Metadata != nil {
		out.Metadata = &result.Metadata
	}
	return out
}

// NewServer builds the MCP server and registers the search, fetch and
// fetch_batch tools against svc.
func NewServer(svc *search.Service, version string) *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "search-agent",
			Version: version,
		}, &mcp.ServerOptions{
			Instructions: instructions,
		},
	)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search",
		Description: "Search the document collection. Returns id, title, a short snippet and a citation url per hit.",
	}, NewSearchHandler(svc))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "fetch",
		Description: "Fetch the full text and metadata of one document by id.",
	}, NewFetchHandler(svc))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "fetch_batch",
		Description: "Fetch several documents at once. Unknown ids come back with error not_found.",
	}, NewFetchBatchHandler(svc))

	return server
}

// NewSearchHandler returns a tool handler that uses the given service.
// Pass the returned function to mcp.AddTool.
func NewSearchHandler(svc *search.Service) func(context.Context, *mcp.CallToolRequest, SearchInput) (*mcp.CallToolResult, models.SearchResponse, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, models.SearchResponse, error) {
		results, err := svc.Search(ctx, input.Query, 0)
		if err != nil {
			return nil, models.SearchResponse{}, err
		}
		return nil, models.SearchResponse{Results: results}, nil
	}
}

// NewFetchHandler returns a tool handler for single document retrieval.
func NewFetchHandler(svc *search.Service) func(context.Context, *mcp.CallToolRequest, FetchInput) (*mcp.CallToolResult, FetchOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input FetchInput) (*mcp.CallToolResult, FetchOutput, error) {
		result, err := svc.Fetch(ctx, input.ID)
		if err != nil {
			return nil, FetchOutput{}, err
		}
		return nil, newFetchOutput(result), nil
	}
}

// NewFetchBatchHandler returns a tool handler for batch retrieval.
func NewFetchBatchHandler(svc *search.Service) func(context.Context, *mcp.CallToolRequest, FetchBatchInput) (*mcp.CallToolResult, models.FetchBatchResponse, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input FetchBatchInput) (*mcp.CallToolResult, models.FetchBatchResponse, error) {
		entries, err := svc.FetchBatch(ctx, input.IDs)
		if err != nil {
			return nil, models.FetchBatchResponse{}, err
		}
		return nil, models.FetchBatchResponse{Documents: entries}, nil
	}
}
