package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	trendingPrefix = "campus:events:trending"
	trendingTTL    = 60 * time.Second
)

// TrendingRepository 热门活动的短 TTL 缓存，存序列化后的 JSON。
// Redis 不可用时调用方直接回源数据库。
type TrendingRepository struct{}

func trendingKey(limit int) string {
	return fmt.Sprintf("%s:%d", trendingPrefix, limit)
}

func (r *TrendingRepository) Get(ctx context.Context, limit int) (string, bool, error) {
	if Client == nil {
		return "", false, nil
	}
	val, err := Client.Get(ctx, trendingKey(limit)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, ErrRedisUnavailable
	}
	return val, true, nil
}

func (r *TrendingRepository) Set(ctx context.Context, limit int, payload string) error {
	if Client == nil {
		return nil
	}
	if err := Client.Set(ctx, trendingKey(limit), payload, trendingTTL).Err(); err != nil {
		return ErrRedisUnavailable
	}
	return nil
}
