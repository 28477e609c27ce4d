package backend

// Hit is one raw search item. The set of variants is closed: VectorStoreHit,
// StaticHit and RawHit.
type Hit interface {
	isHit()
}

// ContentPart is one piece of a document's content. Variants: TextPart, RawPart,
// OpaquePart.
type ContentPart interface {
	isContentPart()
}

// HasText is implemented by content parts that can carry text.
type HasText interface {
	PartText() (string, bool)
}

// HasContentParts is implemented by hits that carry a list of content chunks.
type HasContentParts interface {
	ContentParts() []ContentPart
}

// HasSnippetText is implemented by hits that carry a direct text field.
type HasSnippetText interface {
	SnippetText() string
}

// VectorStoreHit is a result item from an OpenAI vector store search.
type VectorStoreHit struct {
	FileID     string
	Filename   string
	Score      float64
	Content    []ContentPart
	Attributes map[string]any
}

func (VectorStoreHit) isHit() {}

func (h VectorStoreHit) ContentParts() []ContentPart {
	return h.Content
}

// StaticHit is an entry of the in-memory echo table.
type StaticHit struct {
	ID    string
	Title string
	Text  string
	URL   string
}

func (StaticHit) isHit() {}

func (h StaticHit) SnippetText() string {
	return h.Text
}

// RawHit is a JSON mapping as stored by a document store. Recognized keys are
// id/file_id, title/filename, url, text and content (a list of parts).
type RawHit struct {
	JSON string
}

func (RawHit) isHit() {}

// TextPart is a text chunk.
type TextPart struct {
	Text string
}

func (TextPart) isContentPart() {}

func (p TextPart) PartText() (string, bool) {
	return p.Text, true
}

// RawPart is a JSON mapping chunk; it exposes text only when it has a "text" key.
type RawPart struct {
	JSON string
}

func (RawPart) isContentPart() {}

// OpaquePart is a non-text chunk such as an image reference.
type OpaquePart struct {
	Type string
}

func (OpaquePart) isContentPart() {}

// Content is the full content of a single document.
type Content struct {
	Parts []ContentPart
	// URL overrides the citation link when the backend has its own.
	URL string
}

// FileInfo is the metadata of a single document.
type FileInfo struct {
	Filename   string
	Attributes map[string]any
}
