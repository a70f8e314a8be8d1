package main

import (
	"context"
	"fmt"
	"os"

	"github.com/syedazoh/RAG-Chatbot/internal/config"
	"github.com/syedazoh/RAG-Chatbot/internal/rag/embedding"
	"github.com/syedazoh/RAG-Chatbot/internal/rag/embedding/googleEmbedding"
	"github.com/syedazoh/RAG-Chatbot/internal/rag/embedding/openaiEmbedding"
	"github.com/syedazoh/RAG-Chatbot/internal/rag/index"
	"github.com/syedazoh/RAG-Chatbot/internal/rag/ingest"
	"github.com/syedazoh/RAG-Chatbot/pkg/logger_i"
)

// One-shot corpus rebuild. Exits 0 for Ready and NoDocumentsFound, 1 for
// Failed, so cron and CI can tell a broken run from an empty directory.
func main() {

	logger_i.Init()
	var logger = logger_i.NewLogger("ingest")

	settings, err := config.LoadSettings()
	if err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.IngestTimeout)
	defer cancel()

	embeddingService, err := newEmbedder(ctx, settings)
	if err != nil {
		logger.Error("Embedding service failed to initialize", "error", err)
		os.Exit(1)
	}

	vectorIndex, err := index.New(settings.IndexDir)
	if err != nil {
		logger.Error("Vector index failed to open", "error", err)
		os.Exit(1)
	}

	pipeline := ingest.NewPipeline(settings.DocumentsDir, settings.ChunkSize, settings.ChunkOverlap, embeddingService, vectorIndex)

	report, err := pipeline.Run(ctx)
	fmt.Printf("state=%s documents=%d chunks=%d\n", report.State, report.Documents, report.Chunks)
	if report.Reason != "" {
		fmt.Printf("reason=%s\n", report.Reason)
	}
	if err != nil {
		os.Exit(1)
	}
}

func newEmbedder(ctx context.Context, settings *config.Settings) (embedding.Embedder, error) {
	if settings.EmbeddingProvider == "openai" {
		return openaiEmbedding.NewOpenAIEmbedder(settings.EmbeddingModel, settings.OpenAIAPIKey, settings.OpenAIBaseURL), nil
	}
	return googleEmbedding.NewGoogleEmbedder(ctx, settings.EmbeddingModel, settings.GeminiAPIKey)
}
