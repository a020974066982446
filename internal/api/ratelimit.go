package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// RateLimitMiddleware enforces `limit` requests per `window`, keyed by the
// authenticated user when one is set, otherwise by remote IP. The counter
// lives in Redis as a fixed window: INCR plus EXPIRE on first hit. When
// Redis is unreachable the middleware fails open so an outage in the
// limiter never takes the API down with it.
func RateLimitMiddleware(rdb *redis.Client, limit int64, window time.Duration, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		var id string
		if raw, exists := c.Get(ContextUserIDKey); exists {
			if uid, ok := raw.(primitive.ObjectID); ok {
				id = "user:" + uid.Hex()
			}
		}
		if id == "" {
			id = "ip:" + c.ClientIP()
		}

		key := fmt.Sprintf("rl:%s:%s", c.FullPath(), id)

		ctx := c.Request.Context()
		cnt, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			log.Warn("rate limit store unavailable, failing open", zap.Error(err))
			c.Next()
			return
		}
		if cnt == 1 {
			rdb.Expire(ctx, key, window)
		}

		if cnt > limit {
			abortWithError(c, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		c.Next()
	}
}
