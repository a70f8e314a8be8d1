package commonModels

type DocType string

var (
	TXT  DocType = "TXT"
	PDF  DocType = "PDF"
	DOCX DocType = "DOCX"
	ERR  DocType = "ERROR"
)

// Document is a named unit of source text plus its metadata.
// Immutable once loaded; it only lives for the duration of an ingestion run.
type Document struct {
	Path     string            `json:"path"`
	Name     string            `json:"doc_name"`
	Content  string            `json:"-"`
	Metadata map[string]string `json:"metadata"`
}

// DocChunk is a contiguous piece of a document. Offset is the rune offset of
// the chunk start inside the source text, Ord its position in insertion order.
type DocChunk struct {
	ChunkId  string            `json:"chunk_id"`
	Content  string            `json:"content"`
	Source   string            `json:"source"`
	Offset   int               `json:"offset"`
	Ord      int               `json:"chunk_order"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// IndexEntry is the stored tuple (chunk, vector). All vectors inside one
// index share the dimensionality fixed by the embedding model that built it.
type IndexEntry struct {
	Chunk  DocChunk  `json:"chunk"`
	Vector []float32 `json:"vector"`
}

// ScoredEntry is one retrieval hit.
type ScoredEntry struct {
	Entry IndexEntry `json:"entry"`
	Score float32    `json:"score"`
}

// Answer is the single result shape of a query: generated text plus the
// deduplicated, order-preserving list of grounding source names.
type Answer struct {
	Text    string   `json:"answer"`
	Sources []string `json:"sources"`
}
