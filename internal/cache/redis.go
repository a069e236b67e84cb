package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"strokesense/internal/models"

	"github.com/redis/go-redis/v9"
)

type RedisClient struct {
	client *redis.Client
	ctx    context.Context
}

func NewRedisClient() (*RedisClient, error) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)
	ctx := context.Background()

	// Test connection
	_, err = client.Ping(ctx).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisClient{
		client: client,
		ctx:    ctx,
	}, nil
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}

// StoreLatestResult keeps the most recent prediction for a user with a TTL,
// so the latest-result endpoint can skip the database on the hot path.
func (r *RedisClient) StoreLatestResult(userID string, prediction *models.Prediction, duration time.Duration) error {
	key := fmt.Sprintf("prediction:latest:%s", userID)

	jsonData, err := json.Marshal(prediction)
	if err != nil {
		return fmt.Errorf("failed to marshal prediction: %w", err)
	}

	if err := r.client.Set(r.ctx, key, jsonData, duration).Err(); err != nil {
		return fmt.Errorf("failed to store prediction: %w", err)
	}
	return nil
}

// GetLatestResult returns the cached prediction for a user, or (nil, nil)
// on a cache miss.
func (r *RedisClient) GetLatestResult(userID string) (*models.Prediction, error) {
	key := fmt.Sprintf("prediction:latest:%s", userID)

	jsonData, err := r.client.Get(r.ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get prediction: %w", err)
	}

	var prediction models.Prediction
	if err := json.Unmarshal([]byte(jsonData), &prediction); err != nil {
		return nil, fmt.Errorf("failed to unmarshal prediction: %w", err)
	}
	return &prediction, nil
}
