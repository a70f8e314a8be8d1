package openaiEmbedding

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/syedazoh/RAG-Chatbot/internal/config"
	"github.com/syedazoh/RAG-Chatbot/internal/domain/commonModels"
	"github.com/syedazoh/RAG-Chatbot/internal/rag/embedding"
	"github.com/syedazoh/RAG-Chatbot/pkg/logger_i"
)

type client struct {
	openai openai.Client
	model  string
	logger *logger_i.Logger
}

// NewOpenAIEmbedder builds an embedder against an OpenAI-compatible
// embeddings endpoint. baseURL may be empty for the hosted API.
func NewOpenAIEmbedder(modelName string, apikey string, baseURL string) embedding.Embedder {
	opts := []option.RequestOption{option.WithAPIKey(apikey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	logger := logger_i.NewLogger("openai_embedding")
	logger.Info("OpenAI embedding client created", "model", modelName)
	return &client{openai: openai.NewClient(opts...), model: modelName, logger: logger}
}

func (c *client) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	vectors, err := c.EmbedBatch(ctx, []string{query})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (c *client) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}
	log := c.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	res, err := c.openai.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: texts},
		Model: openai.EmbeddingModel(c.model),
	})
	if err != nil {
		log.Error("Error getting embeddings from OpenAI", "error", err.Error())
		return nil, fmt.Errorf("%w: %v", commonModels.ErrEmbeddingService, err)
	}
	if len(res.Data) != len(texts) {
		return nil, fmt.Errorf("%w: got %d embeddings for %d texts",
			commonModels.ErrEmbeddingService, len(res.Data), len(texts))
	}

	vectors := make([][]float32, len(texts))
	for _, d := range res.Data {
		vec := make([]float32, len(d.Embedding))
		for i, v := range d.Embedding {
			vec[i] = float32(v)
		}
		// the API may return data out of order - Index is authoritative
		if d.Index < 0 || int(d.Index) >= len(vectors) {
			return nil, fmt.Errorf("%w: embedding index %d out of range", commonModels.ErrEmbeddingService, d.Index)
		}
		vectors[int(d.Index)] = vec
	}
	return vectors, nil
}
