package cache

import (
	"context"

	"github.com/syedazoh/RAG-Chatbot/internal/domain/commonModels"
)

// AnswerCache stores answered queries so repeat questions skip the embedding
// and generation round trips.
type AnswerCache interface {
	Get(ctx context.Context, query string) (commonModels.Answer, bool, error)
	Save(ctx context.Context, query string, answer commonModels.Answer) error
}
