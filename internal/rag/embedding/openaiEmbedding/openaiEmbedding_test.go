package openaiEmbedding

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/syedazoh/RAG-Chatbot/internal/domain/commonModels"
)

// embeddingServer serves canned OpenAI-style embedding responses. Vectors
// are derived from the input text alone, so identical input always yields
// identical vectors - the same property a real model must have.
func embeddingServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Input []string `json:"input"`
			Model string   `json:"model"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		type datum struct {
			Object    string    `json:"object"`
			Index     int       `json:"index"`
			Embedding []float64 `json:"embedding"`
		}
		resp := struct {
			Object string  `json:"object"`
			Data   []datum `json:"data"`
			Model  string  `json:"model"`
		}{Object: "list", Model: req.Model}

		for i, text := range req.Input {
			sum := sha256.Sum256([]byte(text))
			vec := make([]float64, 8)
			for j := range vec {
				vec[j] = float64(sum[j]) / 255.0
			}
			resp.Data = append(resp.Data, datum{Object: "embedding", Index: i, Embedding: vec})
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestEmbedBatch_OrderAndCount(t *testing.T) {
	ts := embeddingServer(t)
	defer ts.Close()

	e := NewOpenAIEmbedder("text-embedding-3-small", "test-key", ts.URL)

	texts := []string{"first chunk", "second chunk", "third chunk"}
	vectors, err := e.EmbedBatch(context.Background(), texts)
	if err != nil {
		t.Fatalf("EmbedBatch failed: %v", err)
	}
	if len(vectors) != len(texts) {
		t.Fatalf("got %d vectors, want %d", len(vectors), len(texts))
	}
	for i, v := range vectors {
		if len(v) == 0 {
			t.Errorf("vector %d is empty", i)
		}
	}
	if equalVectors(vectors[0], vectors[1]) {
		t.Error("different texts produced identical vectors")
	}
}

func TestEmbedBatch_EmptyInput(t *testing.T) {
	// no server: an empty batch must not hit the network at all
	e := NewOpenAIEmbedder("text-embedding-3-small", "test-key", "http://127.0.0.1:1")

	vectors, err := e.EmbedBatch(context.Background(), nil)
	if err != nil {
		t.Fatalf("EmbedBatch failed on empty input: %v", err)
	}
	if len(vectors) != 0 {
		t.Errorf("expected empty result, got %d vectors", len(vectors))
	}
}

func TestEmbedQuery_Deterministic(t *testing.T) {
	ts := embeddingServer(t)
	defer ts.Close()

	e := NewOpenAIEmbedder("text-embedding-3-small", "test-key", ts.URL)

	first, err := e.EmbedQuery(context.Background(), "What about sunscreen?")
	if err != nil {
		t.Fatalf("EmbedQuery failed: %v", err)
	}
	for run := 0; run < 3; run++ {
		again, err := e.EmbedQuery(context.Background(), "What about sunscreen?")
		if err != nil {
			t.Fatalf("EmbedQuery failed: %v", err)
		}
		if !equalVectors(first, again) {
			t.Fatalf("embedding not stable across calls: %v vs %v", first, again)
		}
	}
}

func TestEmbedBatch_ServiceFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"upstream unavailable"}}`, http.StatusBadGateway)
	}))
	defer ts.Close()

	e := NewOpenAIEmbedder("text-embedding-3-small", "test-key", ts.URL)

	_, err := e.EmbedBatch(context.Background(), []string{"chunk"})
	if err == nil {
		t.Fatal("expected error from failing service")
	}
	if !errors.Is(err, commonModels.ErrEmbeddingService) {
		t.Errorf("error not wrapped as ErrEmbeddingService: %v", err)
	}
}

func equalVectors(a, b []float32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
