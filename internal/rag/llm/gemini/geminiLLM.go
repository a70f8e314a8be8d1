package gemini

import (
	"context"
	"fmt"

	"github.com/syedazoh/RAG-Chatbot/internal/config"
	"github.com/syedazoh/RAG-Chatbot/internal/domain/commonModels"
	"github.com/syedazoh/RAG-Chatbot/internal/rag/llm"
	"github.com/syedazoh/RAG-Chatbot/pkg/logger_i"
	"google.golang.org/genai"
)

type llmClient struct {
	client    *genai.Client
	modelName string
	logger    *logger_i.Logger
}

func NewClient(ctx context.Context, modelName string, apikey string) (llm.Provider, error) {
	log := logger_i.NewLogger("llm_gemini")

	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apikey})
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}
	log.Info("Gemini client created", "model", modelName)
	return &llmClient{client: c, modelName: modelName, logger: log}, nil
}

func (c *llmClient) Generate(ctx context.Context, prompt string) (string, error) {
	systemInstruction := &genai.Content{
		Parts: []*genai.Part{
			{Text: config.ModelContext},
		},
	}

	contentConfig := &genai.GenerateContentConfig{
		SystemInstruction: systemInstruction,
	}

	result, err := c.client.Models.GenerateContent(
		ctx,
		c.modelName,
		genai.Text(prompt),
		contentConfig,
	)
	if err != nil {
		c.logger.Error("Gemini generation failed", "error", err)
		return "", fmt.Errorf("%w: %v", commonModels.ErrGeneration, err)
	}
	if result == nil || len(result.Candidates) == 0 {
		return "", fmt.Errorf("%w: model returned no candidates", commonModels.ErrGeneration)
	}
	return result.Text(), nil
}
