package rag

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/syedazoh/RAG-Chatbot/internal/config"
	"github.com/syedazoh/RAG-Chatbot/internal/data/cache"
	"github.com/syedazoh/RAG-Chatbot/internal/domain/commonModels"
	"github.com/syedazoh/RAG-Chatbot/internal/metrics"
	"github.com/syedazoh/RAG-Chatbot/pkg/logger_i"
)

// Composer turns retrieved chunks into a grounded answer.
type Composer interface {
	Synthesize(ctx context.Context, query string, entries []commonModels.ScoredEntry) (commonModels.Answer, error)
}

// Service is the public contract of the query pipeline. Handlers only call
// this; they never touch the index, embedder or model directly.
type Service interface {
	AnswerQuery(ctx context.Context, query string) (commonModels.Answer, error)
	Ready() bool
}

type service struct {
	retriever *Retriever
	composer  Composer
	cache     cache.AnswerCache
	logger    *logger_i.Logger
}

// NewService wires the query pipeline. All dependencies are injected so tests
// can swap any of them for mocks.
func NewService(retriever *Retriever, composer Composer, answerCache cache.AnswerCache) Service {
	return &service{
		retriever: retriever,
		composer:  composer,
		cache:     answerCache,
		logger:    logger_i.NewLogger("RAG Service :"),
	}
}

func (s *service) AnswerQuery(ctx context.Context, query string) (commonModels.Answer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return commonModels.Answer{}, fmt.Errorf("%w: query is empty", commonModels.ErrInvalidArgument)
	}

	traceId, _ := ctx.Value(config.TRACE_ID_KEY).(string)
	inMethodLogger := s.logger.With("traceId", traceId)

	processContext, cancel := context.WithTimeout(ctx, config.QueryTimeout)
	defer cancel()

	start := time.Now()

	// Cache Check
	cachedAnswer, found := s.executeCacheCheckStep(processContext, inMethodLogger, query)
	if found {
		metrics.CaptureQueryOutcome("cache_hit")
		metrics.CaptureQueryMetrics("success", time.Since(start))
		return cachedAnswer, nil
	}

	// Retrieval
	entries, err := s.executeRetrievalStep(processContext, inMethodLogger, query)
	if err != nil {
		return s.queryError(err, start, "RETRIEVAL_FAILURE")
	}

	// LLM Generation
	answer, err := s.executeSynthesisStep(processContext, inMethodLogger, query, entries)
	if err != nil {
		return s.queryError(err, start, "LLM_GENERATION_FAILURE")
	}

	// Background Cache Save
	go func(ctx context.Context) {
		if err := s.cache.Save(ctx, query, answer); err != nil {
			s.logger.Error("Failed to save to cache", "error", err)
		}
	}(context.WithoutCancel(ctx))

	metrics.CaptureQueryOutcome("success")
	metrics.CaptureQueryMetrics("success", time.Since(start))
	return answer, nil
}

func (s *service) Ready() bool {
	return s.retriever.Ready()
}
