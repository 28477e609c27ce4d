package models

// SearchRequest is the body of POST /search.
type SearchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty" description:"Max results (default: 10)"`
}

// FetchRequest is the body of POST /fetch. ID is shorthand for a one-element batch.
type FetchRequest struct {
	IDs []string `json:"ids,omitempty"`
	ID  string   `json:"id,omitempty"`
}

// One normalized search hit
type SearchResult struct {
	ID    string `json:"id" jsonschema:"document identifier, usable with fetch"`
	Title string `json:"title" jsonschema:"document title"`
	Text  string `json:"text" jsonschema:"snippet of at most 200 characters"`
	URL   string `json:"url" jsonschema:"citation url"`
}

type SearchResponse struct {
	Results []SearchResult `json:"results"`
}

// Full document returned by fetch
type FetchResult struct {
	ID       string         `json:"id"`
	Title    string         `json:"title"`
	Text     string         `json:"text"`
	URL      string         `json:"url"`
	Metadata map[string]any `json:"metadata"`
}

const (
	FetchErrorNotFound  = "not_found"
	FetchErrorInvalidID = "invalid_id"
)

// FetchEntry is one item of a batch fetch: a document or an error marker.
type FetchEntry struct {
	ID       string         `json:"id"`
	Content  string         `json:"content,omitempty"`
	Title    string         `json:"title,omitempty"`
	URL      string         `json:"url,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
	Error    string         `json:"error,omitempty"`
}

type FetchBatchResponse struct {
	Documents []FetchEntry `json:"documents"`
}

// Document is the record kept by the redis document store.
type Document struct {
	ID       string         `json:"id"`
	Title    string         `json:"title"`
	Text     string         `json:"text"`
	URL      string         `json:"url,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}
