package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrTokenNotFound    = errors.New("token not found")
	ErrRedisUnavailable = errors.New("redis unavailable")
	ErrExtendFailed     = errors.New("token extend failed")
	ErrTokenDeleted     = errors.New("token delete failed")
)

const (
	tokenPrefix = "campus:login:token"
	tokenExpire = 30 * time.Minute
)

// TokenRepository 登录 token 白名单：每用户只保留最近一次登录的 access token，
// 新登录会把旧会话顶下线。
type TokenRepository struct{}

func tokenKey(userID uint64) string {
	return fmt.Sprintf("%s:%d", tokenPrefix, userID)
}

func (r *TokenRepository) Add(userID uint64, token string) error {
	if err := Client.Set(context.Background(), tokenKey(userID), token, tokenExpire).Err(); err != nil {
		return ErrRedisUnavailable
	}
	return nil
}

func (r *TokenRepository) Get(userID uint64) (string, error) {
	token, err := Client.Get(context.Background(), tokenKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrTokenNotFound
	}
	if err != nil {
		return "", ErrRedisUnavailable
	}
	return token, nil
}

// Extend 每次通过校验后顺延过期时间
func (r *TokenRepository) Extend(userID uint64) error {
	if _, err := Client.Expire(context.Background(), tokenKey(userID), tokenExpire).Result(); err != nil {
		return ErrExtendFailed
	}
	return nil
}

func (r *TokenRepository) Delete(userID uint64) error {
	if err := Client.Del(context.Background(), tokenKey(userID)).Err(); err != nil {
		return ErrTokenDeleted
	}
	return nil
}
