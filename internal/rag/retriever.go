package rag

import (
	"context"
	"fmt"
	"time"

	"github.com/syedazoh/RAG-Chatbot/internal/domain/commonModels"
	"github.com/syedazoh/RAG-Chatbot/internal/metrics"
	"github.com/syedazoh/RAG-Chatbot/internal/rag/embedding"
)

// Searcher is the slice of the vector index retrieval needs.
type Searcher interface {
	Search(queryVector []float32, k int) ([]commonModels.ScoredEntry, error)
	Ready() bool
}

// Retriever embeds a query and returns the top-k chunks by similarity.
type Retriever struct {
	embedder embedding.Embedder
	searcher Searcher
	k        int
}

func NewRetriever(e embedding.Embedder, s Searcher, k int) *Retriever {
	return &Retriever{embedder: e, searcher: s, k: k}
}

func (r *Retriever) Retrieve(ctx context.Context, query string) ([]commonModels.ScoredEntry, error) {
	embedStart := time.Now()
	queryVector, err := r.embedder.EmbedQuery(ctx, query)
	metrics.CaptureExecutionMetrics("embedding", time.Since(embedStart))
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	searchStart := time.Now()
	entries, err := r.searcher.Search(queryVector, r.k)
	metrics.CaptureExecutionMetrics("vector_search", time.Since(searchStart))
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *Retriever) Ready() bool {
	return r.searcher.Ready()
}
