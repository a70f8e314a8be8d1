package rag

import (
	"context"
	"time"

	"github.com/syedazoh/RAG-Chatbot/internal/domain/commonModels"
	"github.com/syedazoh/RAG-Chatbot/internal/metrics"
	"github.com/syedazoh/RAG-Chatbot/pkg/logger_i"
)

func (s *service) queryError(err error, start time.Time, message string) (commonModels.Answer, error) {
	s.logger.Error(message, "error", err)
	metrics.CaptureQueryOutcome("error")
	metrics.CaptureQueryMetrics("error", time.Since(start))
	return commonModels.Answer{}, err
}

func (s *service) executeCacheCheckStep(ctx context.Context, log *logger_i.Logger, query string) (commonModels.Answer, bool) {
	log.Debug("AnswerQuery", "Current Step", "cache_lookup")

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("cache_lookup", time.Since(start)) }()

	answer, found, err := s.cache.Get(ctx, query)
	if err != nil {
		log.Warn("Cache lookup failed", "error", err)
		return commonModels.Answer{}, false
	}
	return answer, found
}

func (s *service) executeRetrievalStep(ctx context.Context, log *logger_i.Logger, query string) ([]commonModels.ScoredEntry, error) {
	log.Debug("AnswerQuery", "Current Step", "retrieval")
	return s.retriever.Retrieve(ctx, query)
}

func (s *service) executeSynthesisStep(ctx context.Context, log *logger_i.Logger, query string, entries []commonModels.ScoredEntry) (commonModels.Answer, error) {
	log.Debug("AnswerQuery", "Current Step", "llm_generation", "matches", len(entries))

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("llm_generation", time.Since(start)) }()

	return s.composer.Synthesize(ctx, query, entries)
}
