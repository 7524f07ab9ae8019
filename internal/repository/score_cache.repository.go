package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
	"tradescore/internal/domain"

	"github.com/go-redis/redis/v8"
)

// ScoreCacheRepository is the hot cache tier for scored trades. A miss
// and an unreachable server are distinct: callers treat the second as a
// miss too, but it comes back as an error so they can log it.
type ScoreCacheRepository interface {
	Get(ctx context.Context, key string) (*domain.ScorePayload, bool, error)
	Set(ctx context.Context, key string, payload domain.ScorePayload, ttl time.Duration) error
}

type scoreCacheRepositoryHandler struct {
	RedisClient *redis.Client
}

func NewScoreCacheRepository(client *redis.Client) ScoreCacheRepository {
	return scoreCacheRepositoryHandler{
		RedisClient: client,
	}
}

func NewRedisClient(addr, password string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
}

func (h scoreCacheRepositoryHandler) Get(ctx context.Context, key string) (*domain.ScorePayload, bool, error) {
	result, err := h.RedisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, false, nil
	} else if err != nil {
		return nil, false, fmt.Errorf("failed to get cached score: %w", err)
	}

	payload := domain.ScorePayload{}
	if err := json.Unmarshal([]byte(result), &payload); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached score: %w", err)
	}

	return &payload, true, nil
}

func (h scoreCacheRepositoryHandler) Set(ctx context.Context, key string, payload domain.ScorePayload, ttl time.Duration) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode score payload: %w", err)
	}

	err = h.RedisClient.Set(ctx, key, data, ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to cache score payload: %w", err)
	}

	return nil
}
