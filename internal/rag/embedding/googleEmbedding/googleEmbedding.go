package googleEmbedding

import (
	"context"
	"fmt"

	"github.com/syedazoh/RAG-Chatbot/internal/config"
	"github.com/syedazoh/RAG-Chatbot/internal/domain/commonModels"
	"github.com/syedazoh/RAG-Chatbot/internal/rag/embedding"
	"github.com/syedazoh/RAG-Chatbot/pkg/logger_i"
	"google.golang.org/genai"
)

var dimension int32 = config.EmbeddingOutputDimensionality

type client struct {
	genAi  *genai.Client
	model  string
	logger *logger_i.Logger
}

// NewGoogleEmbedder builds a Gemini-backed embedder for the given model.
func NewGoogleEmbedder(ctx context.Context, modelName string, apikey string) (embedding.Embedder, error) {
	logger := logger_i.NewLogger("google_embedding")

	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apikey})
	if err != nil {
		logger.Error("Error creating Google Embedding client:", "error", err)
		return nil, fmt.Errorf("%w: %v", commonModels.ErrEmbeddingService, err)
	}
	logger.Debug("Google Embedding model name: " + modelName)
	logger.Info("Google Embedding client created")
	return &client{genAi: c, model: modelName, logger: logger}, nil
}

func (c *client) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	log := c.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	result, err := c.genAi.Models.EmbedContent(ctx, c.model, genai.Text(query),
		&genai.EmbedContentConfig{OutputDimensionality: &dimension, TaskType: "RETRIEVAL_QUERY"})
	if err != nil {
		log.Error("Error getting query embedding from Google", "error", err.Error())
		return nil, fmt.Errorf("%w: %v", commonModels.ErrEmbeddingService, err)
	}
	if len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("%w: empty embedding response", commonModels.ErrEmbeddingService)
	}
	return result.Embeddings[0].Values, nil
}

func (c *client) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}
	log := c.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	result, err := c.genAi.Models.EmbedContent(ctx, c.model, getContent(texts),
		&genai.EmbedContentConfig{OutputDimensionality: &dimension, TaskType: "RETRIEVAL_DOCUMENT"})
	if err != nil {
		log.Error("Error getting batch embeddings from Google", "error", err.Error())
		return nil, fmt.Errorf("%w: %v", commonModels.ErrEmbeddingService, err)
	}
	if len(result.Embeddings) != len(texts) {
		return nil, fmt.Errorf("%w: got %d embeddings for %d texts",
			commonModels.ErrEmbeddingService, len(result.Embeddings), len(texts))
	}

	vectors := make([][]float32, 0, len(result.Embeddings))
	for _, r := range result.Embeddings {
		vectors = append(vectors, r.Values)
	}
	return vectors, nil
}

func getContent(texts []string) []*genai.Content {
	contentsToSend := make([]*genai.Content, 0, len(texts))
	for _, text := range texts {
		contentsToSend = append(contentsToSend, &genai.Content{
			Parts: []*genai.Part{{Text: text}},
		})
	}
	return contentsToSend
}
