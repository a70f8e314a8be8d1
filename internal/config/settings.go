package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/syedazoh/RAG-Chatbot/internal/domain/commonModels"
)

// Settings is the environment-sourced part of the configuration. Everything
// that is a deployment choice lives here; compile-time knobs stay in the
// const block next door.
type Settings struct {
	ListenAddr string

	GeminiAPIKey string
	GeminiModel  string

	EmbeddingProvider string // "gemini" or "openai"
	EmbeddingModel    string
	OpenAIAPIKey      string
	OpenAIBaseURL     string

	DocumentsDir string
	IndexDir     string

	ChunkSize    int
	ChunkOverlap int
	RetrievalK   int

	RedisAddr string //optional - empty means in-memory answer cache
}

// LoadSettings reads .env (when present) and the process environment and
// validates the result. Invalid chunking parameters or a missing credential
// are fatal here, not later.
func LoadSettings() (*Settings, error) {
	_ = godotenv.Load()

	s := &Settings{
		ListenAddr:        getEnv("LISTEN_ADDR", ServerListenAddr),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		GeminiModel:       getEnv("GEMINI_MODEL", GeminiModelName),
		EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "gemini"),
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:     os.Getenv("OPENAI_BASE_URL"),
		DocumentsDir:      getEnv("DOCUMENTS_DIR", DefaultDocumentsDir),
		IndexDir:          getEnv("INDEX_DIR", DefaultIndexDir),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
	}

	var err error
	if s.ChunkSize, err = getIntEnv("CHUNK_SIZE", DefaultChunkSize); err != nil {
		return nil, err
	}
	if s.ChunkOverlap, err = getIntEnv("CHUNK_OVERLAP", DefaultChunkOverlap); err != nil {
		return nil, err
	}
	if s.RetrievalK, err = getIntEnv("RETRIEVAL_K", DefaultRetrievalK); err != nil {
		return nil, err
	}

	switch s.EmbeddingProvider {
	case "gemini":
		s.EmbeddingModel = getEnv("EMBEDDING_MODEL", GoogleEmbeddingModel)
	case "openai":
		s.EmbeddingModel = getEnv("EMBEDDING_MODEL", OpenAIEmbeddingModel)
	default:
		return nil, commonModels.NewConfigurationError("EMBEDDING_PROVIDER", "must be gemini or openai")
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Settings) Validate() error {
	if s.ChunkSize <= 0 {
		return commonModels.NewConfigurationError("CHUNK_SIZE", "must be a positive integer")
	}
	if s.ChunkOverlap < 0 {
		return commonModels.NewConfigurationError("CHUNK_OVERLAP", "must not be negative")
	}
	if s.ChunkOverlap >= s.ChunkSize {
		return commonModels.NewConfigurationError("CHUNK_OVERLAP", "must be strictly less than CHUNK_SIZE")
	}
	if s.RetrievalK <= 0 {
		return commonModels.NewConfigurationError("RETRIEVAL_K", "must be a positive integer")
	}
	if s.GeminiAPIKey == "" {
		return commonModels.NewConfigurationError("GEMINI_API_KEY", "is required")
	}
	if s.EmbeddingProvider == "openai" && s.OpenAIAPIKey == "" {
		return commonModels.NewConfigurationError("OPENAI_API_KEY", "is required when EMBEDDING_PROVIDER=openai")
	}
	return nil
}

func getEnv(key string, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getIntEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, commonModels.NewConfigurationError(key, "must be an integer")
	}
	return n, nil
}
