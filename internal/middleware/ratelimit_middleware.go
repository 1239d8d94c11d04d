package middleware

import (
	"net/http"
	"strconv"
	"time"

	"gymdesk-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitMiddleware caps requests per client IP inside a rolling window,
// counting in redis so the limit holds across instances.
func RateLimitMiddleware(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "rate-limit:" + c.ClientIP()
		ctx := c.Request.Context()

		count, err := rdb.Get(ctx, key).Int()
		if err == redis.Nil {
			rdb.Set(ctx, key, 1, window)
			c.Header("X-RateLimit-Remaining", strconv.Itoa(limit-1))
			c.Next()
			return
		} else if err != nil {
			// Redis being down must not take the API with it.
			c.Next()
			return
		}

		if count >= limit {
			response.Error(c, http.StatusTooManyRequests, "rate limit exceeded", nil)
			return
		}

		rdb.Incr(ctx, key)
		c.Header("X-RateLimit-Remaining", strconv.Itoa(limit-count-1))
		c.Next()
	}
}
