package cache

import (
	"context"
	"sync"

	"github.com/syedazoh/RAG-Chatbot/internal/domain/commonModels"
)

// MemoryCache is the fallback when Redis is offline.
type MemoryCache struct {
	answerMutex *sync.RWMutex
	answerMap   map[string]commonModels.Answer
}

func InitMemoryCache() *MemoryCache {
	return &MemoryCache{
		answerMutex: new(sync.RWMutex),
		answerMap:   make(map[string]commonModels.Answer),
	}
}

func (c *MemoryCache) Get(ctx context.Context, query string) (commonModels.Answer, bool, error) {
	c.answerMutex.RLock()
	defer c.answerMutex.RUnlock()
	answer, found := c.answerMap[query]
	return answer, found, nil
}

func (c *MemoryCache) Save(ctx context.Context, query string, answer commonModels.Answer) error {
	c.answerMutex.Lock()
	defer c.answerMutex.Unlock()
	c.answerMap[query] = answer
	return nil
}
