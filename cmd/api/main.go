package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/syedazoh/RAG-Chatbot/internal/config"
	"github.com/syedazoh/RAG-Chatbot/internal/data/cache"
	"github.com/syedazoh/RAG-Chatbot/internal/handlers"
	"github.com/syedazoh/RAG-Chatbot/internal/rag"
	"github.com/syedazoh/RAG-Chatbot/internal/rag/embedding"
	"github.com/syedazoh/RAG-Chatbot/internal/rag/embedding/googleEmbedding"
	"github.com/syedazoh/RAG-Chatbot/internal/rag/embedding/openaiEmbedding"
	"github.com/syedazoh/RAG-Chatbot/internal/rag/index"
	"github.com/syedazoh/RAG-Chatbot/internal/rag/ingest"
	"github.com/syedazoh/RAG-Chatbot/internal/rag/llm/gemini"
	"github.com/syedazoh/RAG-Chatbot/internal/rag/synthesizer"
	"github.com/syedazoh/RAG-Chatbot/internal/server"
	"github.com/syedazoh/RAG-Chatbot/pkg/logger_i"
)

var listenAddr string

func main() {

	logger_i.Init()
	var logger = logger_i.NewLogger("main")

	settings, err := config.LoadSettings()
	if err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	flag.StringVar(&listenAddr, "listen-addr", settings.ListenAddr, "server listen address")
	flag.Parse()

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	embeddingService, err := newEmbedder(serviceContext, settings)
	if err != nil {
		logger.Error("Embedding service failed to initialize. Shutting down.", "error", err)
		os.Exit(1)
	}

	llmProvider, err := gemini.NewClient(serviceContext, settings.GeminiModel, settings.GeminiAPIKey)
	if err != nil {
		logger.Error("LLM provider failed to initialize. Shutting down.", "error", err)
		os.Exit(1)
	}

	vectorIndex, err := index.New(settings.IndexDir)
	if err != nil {
		logger.Error("Vector index failed to open. Shutting down.", "error", err)
		os.Exit(1)
	}

	answerCache := newAnswerCache(serviceContext, settings, logger)

	pipeline := ingest.NewPipeline(settings.DocumentsDir, settings.ChunkSize, settings.ChunkOverlap, embeddingService, vectorIndex)
	retriever := rag.NewRetriever(embeddingService, vectorIndex, settings.RetrievalK)
	ragService := rag.NewService(retriever, synthesizer.New(llmProvider), answerCache)
	handler := handlers.NewHandler(ragService, pipeline, vectorIndex)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr, handler)

	<-stopExecution
	logger.Info("Server stopped")
}

func newEmbedder(ctx context.Context, settings *config.Settings) (embedding.Embedder, error) {
	if settings.EmbeddingProvider == "openai" {
		return openaiEmbedding.NewOpenAIEmbedder(settings.EmbeddingModel, settings.OpenAIAPIKey, settings.OpenAIBaseURL), nil
	}
	return googleEmbedding.NewGoogleEmbedder(ctx, settings.EmbeddingModel, settings.GeminiAPIKey)
}

func newAnswerCache(ctx context.Context, settings *config.Settings, logger *logger_i.Logger) cache.AnswerCache {
	if settings.RedisAddr != "" {
		redisCache, err := cache.NewRedisCache(ctx, settings.RedisAddr)
		if err == nil {
			return redisCache
		}
		logger.Error("Redis is offline, using in-memory answer cache", "error", err)
	}
	return cache.InitMemoryCache()
}
