package rag_test

import (
	"context"

	"github.com/syedazoh/RAG-Chatbot/internal/domain/commonModels"
)

// MockSearcher implements rag.Searcher
type MockSearcher struct {
	// Control fields to simulate different behaviors
	OnSearch func(queryVector []float32, k int) ([]commonModels.ScoredEntry, error)
	OnReady  func() bool
}

func (m *MockSearcher) Search(queryVector []float32, k int) ([]commonModels.ScoredEntry, error) {
	if m.OnSearch != nil {
		return m.OnSearch(queryVector, k)
	}
	return []commonModels.ScoredEntry{
		{Entry: commonModels.IndexEntry{Chunk: commonModels.DocChunk{Content: "default context", Source: "data.txt"}}, Score: 0.9},
	}, nil
}

func (m *MockSearcher) Ready() bool {
	if m.OnReady != nil {
		return m.OnReady()
	}
	return true
}

type MockEmbedder struct {
	OnEmbedQuery func(ctx context.Context, text string) ([]float32, error)
	OnEmbedBatch func(ctx context.Context, texts []string) ([][]float32, error)
}

func (m *MockEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	if m.OnEmbedQuery != nil {
		return m.OnEmbedQuery(ctx, text)
	}
	return []float32{0.1}, nil
}

func (m *MockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if m.OnEmbedBatch != nil {
		return m.OnEmbedBatch(ctx, texts)
	}
	return make([][]float32, len(texts)), nil
}

// MockComposer implements rag.Composer
type MockComposer struct {
	OnSynthesize func(ctx context.Context, query string, entries []commonModels.ScoredEntry) (commonModels.Answer, error)
}

func (m *MockComposer) Synthesize(ctx context.Context, query string, entries []commonModels.ScoredEntry) (commonModels.Answer, error) {
	if m.OnSynthesize != nil {
		return m.OnSynthesize(ctx, query, entries)
	}
	return commonModels.Answer{Text: "mocked llm response", Sources: []string{"data.txt"}}, nil
}

// MockCache implements cache.AnswerCache
type MockCache struct {
	OnGet  func(ctx context.Context, query string) (commonModels.Answer, bool, error)
	OnSave func(ctx context.Context, query string, answer commonModels.Answer) error
	Saved  chan commonModels.Answer
}

func (m *MockCache) Get(ctx context.Context, query string) (commonModels.Answer, bool, error) {
	if m.OnGet != nil {
		return m.OnGet(ctx, query)
	}
	return commonModels.Answer{}, false, nil
}

func (m *MockCache) Save(ctx context.Context, query string, answer commonModels.Answer) error {
	if m.Saved != nil {
		m.Saved <- answer
	}
	if m.OnSave != nil {
		return m.OnSave(ctx, query, answer)
	}
	return nil
}
