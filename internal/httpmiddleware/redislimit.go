package httpmiddleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// RedisWindow is a fixed-window per-key limiter shared across instances.
type RedisWindow struct {
	client    *redis.Client
	perMinute int
}

// NewRedisWindow creates a limiter allowing perMinute requests per key.
func NewRedisWindow(client *redis.Client, perMinute int) *RedisWindow {
	return &RedisWindow{client: client, perMinute: perMinute}
}

// Allow increments the current minute's counter for key. Fails open when
// redis is unreachable so an outage does not take the API down with it.
func (l *RedisWindow) Allow(c *gin.Context, key string) bool {
	ctx := c.Request.Context()
	window := time.Now().Format("200601021504")
	redisKey := "ratelimit:" + key + ":" + window

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		logrus.WithError(err).Warn("rate limit check failed, allowing request")
		return true
	}
	if count == 1 {
		l.client.Expire(ctx, redisKey, 2*time.Minute)
	}
	return count <= int64(l.perMinute)
}
