package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// El contador arranca la ventana en el primer fallo y expira con ella.
const redisLoginFailureScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("EXPIRE", KEYS[1], ARGV[1])
end
return current
`

const redisLimiterTimeout = 500 * time.Millisecond

type redisLoginRateLimiter struct {
	client redisCommander
	window time.Duration
	max    int
	prefix string
}

type redisCommander interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// NewRedisLoginRateLimiter comparte el conteo de fallos entre réplicas.
func NewRedisLoginRateLimiter(client *redis.Client, window time.Duration, max int) LoginRateLimiter {
	if client == nil {
		return nil
	}
	if window <= 0 {
		window = time.Minute
	}
	if max <= 0 {
		max = 1
	}
	return &redisLoginRateLimiter{
		client: client,
		window: window,
		max:    max,
		prefix: "login:fail:",
	}
}

func (l *redisLoginRateLimiter) redisKey(key string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(key))
	if normalized == "" {
		return "", false
	}
	return l.prefix + normalized, true
}

// Blocked falla abierto si redis no responde.
func (l *redisLoginRateLimiter) Blocked(key string) bool {
	if l == nil || l.client == nil {
		return false
	}
	rk, ok := l.redisKey(key)
	if !ok {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), redisLimiterTimeout)
	defer cancel()

	raw, err := l.client.Get(ctx, rk).Result()
	if err != nil {
		return false
	}
	count, err := strconv.Atoi(raw)
	if err != nil {
		return false
	}
	return count >= l.max
}

func (l *redisLoginRateLimiter) RecordFailure(key string) {
	if l == nil || l.client == nil {
		return
	}
	rk, ok := l.redisKey(key)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), redisLimiterTimeout)
	defer cancel()

	seconds := int(l.window.Seconds())
	if seconds <= 0 {
		seconds = 60
	}
	_ = l.client.Eval(ctx, redisLoginFailureScript, []string{rk}, seconds).Err()
}

func (l *redisLoginRateLimiter) Reset(key string) {
	if l == nil || l.client == nil {
		return
	}
	rk, ok := l.redisKey(key)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), redisLimiterTimeout)
	defer cancel()
	_ = l.client.Del(ctx, rk).Err()
}
