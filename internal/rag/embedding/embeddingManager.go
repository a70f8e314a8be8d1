package embedding

import "context"

// Embedder converts text into fixed-dimension vectors. Implementations wrap
// transport failures with commonModels.ErrEmbeddingService and never retry
// internally - retry policy belongs to the caller.
type Embedder interface {
	// EmbedQuery embeds a single query string.
	EmbedQuery(ctx context.Context, query string) ([]float32, error)
	// EmbedBatch embeds every text, one vector per input in the same order.
	// An empty input yields an empty result and no service call.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}
