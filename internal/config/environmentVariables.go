package config

import (
	"log/slog"
	"time"
)

const (
	IS_PROD                     = false
	LOG_LEVEL_PROD              = slog.LevelInfo
	TRACE_ID_KEY                = "traceId"
	RATE_LIMIT_PER_SECOND       = 2
	BURST_RATE_LIMIT_PER_SECOND = 5

	//serverTimeouts
	//WriteTimeout must outlast a synchronous /ingest run
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 12 * time.Minute
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":3000"

	//embeddings
	GeminiModelName       = "gemini-2.5-flash-lite-preview-09-2025"
	GoogleEmbeddingModel  = "gemini-embedding-001"
	OpenAIEmbeddingModel  = "text-embedding-3-small"
	EmbeddingBatchSize    = 100
	QueryTimeout          = 30 * time.Second
	IngestTimeout         = 10 * time.Minute

	EmbeddingOutputDimensionality int32 = 1536

	ModelContext = "You are a helpful assistant. Answer only from the provided context. If the context does not contain the answer, say you don't know based on the provided data."

	//chunking defaults - a generous overlap helps semantic continuity
	DefaultChunkSize    = 500
	DefaultChunkOverlap = 50
	DefaultRetrievalK   = 3

	//on-disk layout
	DefaultDocumentsDir = "./documents"
	DefaultIndexDir     = "./index_db"
	IndexFileName       = "index.db"

	//answer cache
	AnswerCacheTTL = 24 * time.Hour
)
