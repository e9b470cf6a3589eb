package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/akademus/akademus-api/internal/http/handlers"
	httpMW "github.com/akademus/akademus-api/internal/http/middleware"
	"github.com/akademus/akademus-api/internal/observability"
	"github.com/akademus/akademus-api/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	ServiceName string
	CORSOrigins []string
	Metrics     *observability.Metrics

	AuthHandler         *httpH.AuthHandler
	AuthMiddleware      *httpMW.AuthMiddleware
	RateLimitMiddleware *httpMW.RateLimitMiddleware
	UserHandler         *httpH.UserHandler
	CourseHandler       *httpH.CourseHandler
	NodeHandler         *httpH.NodeHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	httpH.UseJSONFieldNames()

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "akademus-api"
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(serviceName))
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/health", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	passThrough := func(c *gin.Context) { c.Next() }
	requireAuth, authLimit, writeLimit := gin.HandlerFunc(passThrough), gin.HandlerFunc(passThrough), gin.HandlerFunc(passThrough)
	if cfg.AuthMiddleware != nil {
		requireAuth = cfg.AuthMiddleware.RequireAuth()
	}
	if cfg.RateLimitMiddleware != nil {
		authLimit = cfg.RateLimitMiddleware.Auth()
		writeLimit = cfg.RateLimitMiddleware.Write()
	}

	// Auth
	if cfg.AuthHandler != nil {
		auth := r.Group("/auth")
		auth.POST("/register", authLimit, cfg.AuthHandler.Register)
		auth.POST("/login", authLimit, cfg.AuthHandler.Login)
		auth.GET("/profile", requireAuth, cfg.AuthHandler.Profile)
	}

	// Users (public administration surface)
	if cfg.UserHandler != nil {
		users := r.Group("/users")
		users.POST("", cfg.UserHandler.Create)
		users.GET("", cfg.UserHandler.List)
		users.GET("/:id", cfg.UserHandler.Get)
		users.PATCH("/:id", cfg.UserHandler.Update)
		users.DELETE("/:id", cfg.UserHandler.Delete)
	}

	protected := r.Group("/")
	protected.Use(requireAuth, writeLimit)
	{
		// Courses
		if cfg.CourseHandler != nil {
			protected.POST("/courses", cfg.CourseHandler.Create)
			protected.GET("/courses", cfg.CourseHandler.List)
			protected.GET("/courses/:id", cfg.CourseHandler.Get)
			protected.PATCH("/courses/:id", cfg.CourseHandler.Update)
			protected.DELETE("/courses/:id", cfg.CourseHandler.Delete)
		}

		// Nodes
		if cfg.NodeHandler != nil {
			protected.POST("/nodes", cfg.NodeHandler.Create)
			protected.GET("/nodes/course/:courseId", cfg.NodeHandler.ListForCourse)
			protected.GET("/nodes/:id", cfg.NodeHandler.Get)
			protected.PUT("/nodes/:id", cfg.NodeHandler.Update)
			protected.DELETE("/nodes/:id", cfg.NodeHandler.Delete)
		}
	}

	return r
}
