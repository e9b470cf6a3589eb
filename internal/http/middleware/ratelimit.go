package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/akademus/akademus-api/internal/http/response"
	"github.com/akademus/akademus-api/internal/platform/apierr"
	"github.com/akademus/akademus-api/internal/platform/ctxutil"
	"github.com/akademus/akademus-api/internal/platform/logger"
	"github.com/akademus/akademus-api/internal/platform/ratelimit"
)

type RateLimitMiddleware struct {
	log   *logger.Logger
	auth  ratelimit.Limiter
	write ratelimit.Limiter
}

func NewRateLimitMiddleware(log *logger.Logger, auth, write ratelimit.Limiter) *RateLimitMiddleware {
	if auth == nil {
		auth = ratelimit.Unlimited()
	}
	if write == nil {
		write = ratelimit.Unlimited()
	}
	return &RateLimitMiddleware{
		log:   log.With("middleware", "RateLimitMiddleware"),
		auth:  auth,
		write: write,
	}
}

// Auth limits credential endpoints per client IP.
func (rl *RateLimitMiddleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		rl.check(c, rl.auth, "auth:"+c.ClientIP())
	}
}

// Write limits mutating requests per authenticated user, falling back to the
// client IP. It must run after RequireAuth.
func (rl *RateLimitMiddleware) Write() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case "POST", "PUT", "PATCH", "DELETE":
		default:
			c.Next()
			return
		}
		key := "write:" + c.ClientIP()
		if uid := ctxutil.UserID(c.Request.Context()); uid != uuid.Nil {
			key = "write:" + uid.String()
		}
		rl.check(c, rl.write, key)
	}
}

func (rl *RateLimitMiddleware) check(c *gin.Context, lim ratelimit.Limiter, key string) {
	ok, err := lim.Allow(c.Request.Context(), key)
	if err != nil {
		rl.log.Warn("rate limiter unavailable, allowing request", "error", err)
		c.Next()
		return
	}
	if !ok {
		response.RespondAPIError(c, rl.log, apierr.TooManyRequests("too many requests"))
		return
	}
	c.Next()
}
