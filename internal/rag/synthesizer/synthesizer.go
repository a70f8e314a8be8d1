package synthesizer

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/syedazoh/RAG-Chatbot/internal/domain/commonModels"
	"github.com/syedazoh/RAG-Chatbot/internal/rag/llm"
	"github.com/syedazoh/RAG-Chatbot/pkg/logger_i"
)

const fallbackSource = "Manual Reference"

const promptTemplate = `You are a helpful skincare assistant. Answer the question using only the context below. If the context does not contain the answer, say that you don't know rather than guessing.

Context:
%s

Question: %s`

// Synthesizer turns retrieved chunks into a grounded answer with source
// attribution.
type Synthesizer struct {
	provider llm.Provider
	logger   *logger_i.Logger
}

func New(provider llm.Provider) *Synthesizer {
	return &Synthesizer{provider: provider, logger: logger_i.NewLogger("Synthesizer")}
}

// Synthesize builds the prompt from the entries in rank order and returns the
// model answer with deduplicated sources. An empty entry list still calls the
// model; the template tells it to admit when the context is insufficient.
func (s *Synthesizer) Synthesize(ctx context.Context, query string, entries []commonModels.ScoredEntry) (commonModels.Answer, error) {
	sections := make([]string, len(entries))
	for i, e := range entries {
		sections[i] = e.Entry.Chunk.Content
	}
	prompt := fmt.Sprintf(promptTemplate, strings.Join(sections, "\n\n"), query)

	text, err := s.provider.Generate(ctx, prompt)
	if err != nil {
		if errors.Is(err, commonModels.ErrGeneration) {
			return commonModels.Answer{}, err
		}
		return commonModels.Answer{}, fmt.Errorf("%w: %v", commonModels.ErrGeneration, err)
	}

	return commonModels.Answer{
		Text:    strings.TrimSpace(text),
		Sources: collectSources(entries),
	}, nil
}

// collectSources keeps the first occurrence of each source, preserving rank
// order.
func collectSources(entries []commonModels.ScoredEntry) []string {
	var sources []string
	seen := make(map[string]bool)
	for _, e := range entries {
		source := e.Entry.Chunk.Source
		if source == "" {
			source = fallbackSource
		} else {
			source = filepath.Base(source)
		}
		if !seen[source] {
			seen[source] = true
			sources = append(sources, source)
		}
	}
	return sources
}
