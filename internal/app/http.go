package app

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	akhttp "github.com/akademus/akademus-api/internal/http"
	httpH "github.com/akademus/akademus-api/internal/http/handlers"
	httpMW "github.com/akademus/akademus-api/internal/http/middleware"
	"github.com/akademus/akademus-api/internal/observability"
	"github.com/akademus/akademus-api/internal/platform/logger"
	"github.com/akademus/akademus-api/internal/platform/ratelimit"
)

type Middleware struct {
	Auth      *httpMW.AuthMiddleware
	RateLimit *httpMW.RateLimitMiddleware
}

type Handlers struct {
	Health *httpH.HealthHandler
	Auth   *httpH.AuthHandler
	User   *httpH.UserHandler
	Course *httpH.CourseHandler
	Node   *httpH.NodeHandler
}

func wireHandlers(log *logger.Logger, cfg Config, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health: httpH.NewHealthHandler(cfg.Version, cfg.Env),
		Auth:   httpH.NewAuthHandler(log, serviceset.Auth),
		User:   httpH.NewUserHandler(log, serviceset.User),
		Course: httpH.NewCourseHandler(log, serviceset.Course),
		Node:   httpH.NewNodeHandler(log, serviceset.Node),
	}
}

func wireMiddleware(log *logger.Logger, serviceset Services, auth, write ratelimit.Limiter) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth:      httpMW.NewAuthMiddleware(log, serviceset.Auth),
		RateLimit: httpMW.NewRateLimitMiddleware(log, auth, write),
	}
}

// wireLimiters returns Redis-backed limiters when REDIS_ADDR is set and
// in-process ones otherwise. The client is nil in the latter case.
func wireLimiters(ctx context.Context, log *logger.Logger, cfg Config) (auth, write ratelimit.Limiter, rdb *goredis.Client, err error) {
	authRule := ratelimit.Rule{Max: cfg.RateLimitAuthPerMinute, Window: time.Minute}
	writeRule := ratelimit.Rule{Max: cfg.RateLimitWritePerMinute, Window: time.Minute}

	if cfg.RedisAddr == "" {
		log.Info("Rate limiting in-process", "auth_per_minute", authRule.Max, "write_per_minute", writeRule.Max)
		return ratelimit.NewMemory(authRule), ratelimit.NewMemory(writeRule), nil, nil
	}

	rdb = goredis.NewClient(&goredis.Options{
		Addr:        cfg.RedisAddr,
		Password:    cfg.RedisPassword,
		DialTimeout: 5 * time.Second,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, nil, fmt.Errorf("redis ping: %w", err)
	}
	log.Info("Rate limiting via redis", "addr", cfg.RedisAddr)
	return ratelimit.NewRedis(rdb, "akademus:rl:auth", authRule),
		ratelimit.NewRedis(rdb, "akademus:rl:write", writeRule),
		rdb, nil
}

func wireServer(log *logger.Logger, cfg Config, metrics *observability.Metrics, handlers Handlers, middleware Middleware) *akhttp.Server {
	return akhttp.NewServer(log, akhttp.ServerConfig{
		Addr:            ":" + cfg.Port,
		ReadTimeout:     cfg.HTTPReadTimeout,
		WriteTimeout:    cfg.HTTPWriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, akhttp.RouterConfig{
		Log:                 log,
		ServiceName:         cfg.Otel.ServiceName,
		CORSOrigins:         cfg.CORSOrigins,
		Metrics:             metrics,
		AuthHandler:         handlers.Auth,
		AuthMiddleware:      middleware.Auth,
		RateLimitMiddleware: middleware.RateLimit,
		UserHandler:         handlers.User,
		CourseHandler:       handlers.Course,
		NodeHandler:         handlers.Node,
		HealthHandler:       handlers.Health,
	})
}
