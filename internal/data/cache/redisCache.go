package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/syedazoh/RAG-Chatbot/internal/config"
	"github.com/syedazoh/RAG-Chatbot/internal/domain/commonModels"
	"github.com/syedazoh/RAG-Chatbot/pkg/logger_i"
)

const answerKeyPrefix = "answer:"

type RedisCache struct {
	client *redis.Client
	logger *logger_i.Logger
}

// NewRedisCache connects to Redis and pings it. A connection failure returns
// an error so the caller can fall back to the in-memory cache.
func NewRedisCache(ctx context.Context, addr string) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:                  addr,
		ContextTimeoutEnabled: true,
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("pinging redis at %s: %w", addr, err)
	}

	log := logger_i.NewLogger("Answer Cache")
	log.Info("Redis answer cache connected", "addr", addr)
	return &RedisCache{client: client, logger: log}, nil
}

func (c *RedisCache) Get(ctx context.Context, query string) (commonModels.Answer, bool, error) {
	var answer commonModels.Answer

	val, err := c.client.Get(ctx, answerKeyPrefix+query).Result()
	if errors.Is(err, redis.Nil) {
		return answer, false, nil
	} else if err != nil {
		return answer, false, err
	}

	if err := json.Unmarshal([]byte(val), &answer); err != nil {
		return answer, false, err
	}

	c.logger.Debug("Answer found in Redis")
	return answer, true, nil
}

func (c *RedisCache) Save(ctx context.Context, query string, answer commonModels.Answer) error {
	data, err := json.Marshal(answer)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, answerKeyPrefix+query, data, config.AnswerCacheTTL).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// NewTestCache wraps an injected client, for miniredis-backed tests.
func NewTestCache(client *redis.Client) *RedisCache {
	return &RedisCache{
		client: client,
		logger: logger_i.NewLogger("test redis"),
	}
}
