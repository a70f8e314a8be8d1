package config

import (
	"errors"
	"testing"

	"github.com/syedazoh/RAG-Chatbot/internal/domain/commonModels"
)

func validSettings() *Settings {
	return &Settings{
		GeminiAPIKey:      "test-key",
		EmbeddingProvider: "gemini",
		ChunkSize:         500,
		ChunkOverlap:      50,
		RetrievalK:        3,
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	if err := validSettings().Validate(); err != nil {
		t.Fatalf("default shape must validate, got %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(s *Settings)
		expectedField string
	}{
		{"Zero_Chunk_Size", func(s *Settings) { s.ChunkSize = 0 }, "CHUNK_SIZE"},
		{"Negative_Overlap", func(s *Settings) { s.ChunkOverlap = -1 }, "CHUNK_OVERLAP"},
		{"Overlap_Equals_Size", func(s *Settings) { s.ChunkOverlap = s.ChunkSize }, "CHUNK_OVERLAP"},
		{"Overlap_Exceeds_Size", func(s *Settings) { s.ChunkOverlap = s.ChunkSize + 10 }, "CHUNK_OVERLAP"},
		{"Zero_K", func(s *Settings) { s.RetrievalK = 0 }, "RETRIEVAL_K"},
		{"Missing_Gemini_Key", func(s *Settings) { s.GeminiAPIKey = "" }, "GEMINI_API_KEY"},
		{"OpenAI_Without_Key", func(s *Settings) { s.EmbeddingProvider = "openai" }, "OPENAI_API_KEY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSettings()
			tt.mutate(s)

			err := s.Validate()
			var confErr *commonModels.ConfigurationError
			if !errors.As(err, &confErr) {
				t.Fatalf("expected a configuration error, got %v", err)
			}
			if confErr.Field != tt.expectedField {
				t.Errorf("expected field %s, got %s", tt.expectedField, confErr.Field)
			}
		})
	}
}

func TestLoadSettingsProviderSwitch(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "k")
	t.Setenv("EMBEDDING_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "ok")
	t.Setenv("EMBEDDING_MODEL", "")

	s, err := LoadSettings()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.EmbeddingModel != OpenAIEmbeddingModel {
		t.Errorf("expected openai default model, got %q", s.EmbeddingModel)
	}
}

func TestLoadSettingsRejectsUnknownProvider(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "k")
	t.Setenv("EMBEDDING_PROVIDER", "cohere")

	if _, err := LoadSettings(); err == nil {
		t.Fatal("unknown provider must be rejected")
	}
}

func TestLoadSettingsRejectsBadInteger(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "k")
	t.Setenv("EMBEDDING_PROVIDER", "gemini")
	t.Setenv("CHUNK_SIZE", "five hundred")

	if _, err := LoadSettings(); err == nil {
		t.Fatal("non-integer CHUNK_SIZE must be rejected")
	}
}
