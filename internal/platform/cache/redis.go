package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cp_tracker/internal/domain/model"
	"cp_tracker/internal/platform/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ConnectRedis opens a client and pings it once.
func ConnectRedis(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("could not connect to Redis at %s: %w", cfg.RedisAddr, err)
	}
	zap.L().Info("connected to Redis", zap.String("addr", cfg.RedisAddr))
	return rdb, nil
}

// SubmissionList caches the full submission listing under a single key.
// Writers call Invalidate; readers repopulate on miss. An entry written
// from a read that raced a write is bounded by the TTL.
type SubmissionList struct {
	rdb *redis.Client
	key string
	ttl time.Duration
}

func NewSubmissionList(rdb *redis.Client, key string, ttl time.Duration) *SubmissionList {
	return &SubmissionList{rdb: rdb, key: key, ttl: ttl}
}

func (c *SubmissionList) Get(ctx context.Context) ([]model.Submission, bool, error) {
	raw, err := c.rdb.Get(ctx, c.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("cache get %s: %w", c.key, err)
	}
	var subs []model.Submission
	if err := json.Unmarshal(raw, &subs); err != nil {
		return nil, false, fmt.Errorf("cache decode %s: %w", c.key, err)
	}
	return subs, true, nil
}

func (c *SubmissionList) Set(ctx context.Context, subs []model.Submission) error {
	raw, err := json.Marshal(subs)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", c.key, err)
	}
	if err := c.rdb.Set(ctx, c.key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", c.key, err)
	}
	return nil
}

func (c *SubmissionList) Invalidate(ctx context.Context) error {
	if err := c.rdb.Del(ctx, c.key).Err(); err != nil {
		return fmt.Errorf("cache del %s: %w", c.key, err)
	}
	return nil
}

// Noop is used when no Redis address is configured.
type Noop struct{}

func (Noop) Get(context.Context) ([]model.Submission, bool, error) { return nil, false, nil }
func (Noop) Set(context.Context, []model.Submission) error         { return nil }
func (Noop) Invalidate(context.Context) error                      { return nil }
