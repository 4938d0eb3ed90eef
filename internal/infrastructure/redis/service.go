package redis

import (
	"context"
	"fmt"

	"github.com/deepgram/asklyn/internal/config"
	"github.com/deepgram/asklyn/pkg/logger"
	"github.com/redis/go-redis/v9"
)

type Service struct {
	client *redis.Client
}

// NewService connects to REDIS_URL. It returns nil when Redis is not
// configured or unreachable, and callers fall back to in-memory storage.
func NewService(ctx context.Context) *Service {
	url := config.GetRedisURL()
	if url == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     url,
		Password: config.GetRedisPassword(),
		DB:       0,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log := logger.Fields(logger.REDIS)
		log.Error().
			Err(err).
			Str("addr", url).
			Msg("Failed to establish Redis connection")
		_ = client.Close()
		return nil
	}

	logger.Info(logger.REDIS, "Connected to Redis at %s", url)
	return NewServiceWithClient(client)
}

// NewServiceWithClient wraps an existing client.
func NewServiceWithClient(client *redis.Client) *Service {
	return &Service{client: client}
}

// Append pushes value onto the list at key and returns the new length.
func (s *Service) Append(ctx context.Context, key, value string) (int64, error) {
	logger.Debug(logger.REDIS, "RPUSH %s", key)
	n, err := s.client.RPush(ctx, key, value).Result()
	if err != nil {
		return 0, fmt.Errorf("redis RPUSH %s: %w", key, err)
	}
	return n, nil
}

// List returns every element of the list at key.
func (s *Service) List(ctx context.Context, key string) ([]string, error) {
	logger.Debug(logger.REDIS, "LRANGE %s", key)
	items, err := s.client.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis LRANGE %s: %w", key, err)
	}
	return items, nil
}

// Len returns the length of the list at key; a missing key has length 0.
func (s *Service) Len(ctx context.Context, key string) (int64, error) {
	n, err := s.client.LLen(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("redis LLEN %s: %w", key, err)
	}
	return n, nil
}

// SetAt overwrites the list element at index.
func (s *Service) SetAt(ctx context.Context, key string, index int64, value string) error {
	logger.Debug(logger.REDIS, "LSET %s %d", key, index)
	if err := s.client.LSet(ctx, key, index, value).Err(); err != nil {
		return fmt.Errorf("redis LSET %s: %w", key, err)
	}
	return nil
}

// Delete removes key.
func (s *Service) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis DEL %s: %w", key, err)
	}
	return nil
}

// Ping checks if Redis is accessible
func (s *Service) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (s *Service) Close() error {
	logger.Debug(logger.REDIS, "Closing Redis connection")
	return s.client.Close()
}
