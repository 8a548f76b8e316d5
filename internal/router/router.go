package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	authhandler "github.com/jwalitptl/club-admin-api/internal/handler/auth"
	"github.com/jwalitptl/club-admin-api/internal/handler/health"
	promhandler "github.com/jwalitptl/club-admin-api/internal/handler/prometheus"
	"github.com/jwalitptl/club-admin-api/internal/middleware"
	apperrors "github.com/jwalitptl/club-admin-api/pkg/errors"
)

type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

// Handlers are the route owners mounted under /api.
type Handlers struct {
	Auth         *authhandler.Handler
	Health       *health.Handler
	Members      Handler
	Staff        Handler
	Catalog      Handler
	Products     Handler
	Content      Handler
	Appointments Handler
	Schedule     Handler
	Insights     Handler
	Billing      Handler
	Export       Handler
}

type RouterConfig struct {
	RateLimitEnabled bool
	RateLimit        rate.Limit
	RateBurst        int
	LoginPerMinute   int
	CORSConfig       middleware.CORSConfig
	RequestTimeout   time.Duration
	MaxBodySize      int64
	MetricsEnabled   bool
	MetricsPath      string
}

type Router struct {
	engine   *gin.Engine
	auth     *middleware.AuthMiddleware
	handlers Handlers
	metrics  *promhandler.Handler
	config   RouterConfig
}

func NewRouter(
	auth *middleware.AuthMiddleware,
	handlers Handlers,
	metrics *promhandler.Handler,
	config RouterConfig,
) *Router {
	if config.MaxBodySize <= 0 {
		config.MaxBodySize = middleware.DefaultMaxBodySize
	}
	if config.MetricsPath == "" {
		config.MetricsPath = "/metrics"
	}

	engine := gin.New()

	r := &Router{
		engine:   engine,
		auth:     auth,
		handlers: handlers,
		metrics:  metrics,
		config:   config,
	}

	engine.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.Logger(),
	)
	if metrics != nil {
		engine.Use(metrics.Middleware())
	}
	engine.Use(
		middleware.ErrorHandler(),
		middleware.SecurityHeaders(middleware.DefaultSecurityConfig()),
		middleware.CORS(config.CORSConfig),
		middleware.Timeout(middleware.TimeoutConfig{Duration: config.RequestTimeout}),
		middleware.SizeLimit(config.MaxBodySize),
	)

	engine.NoRoute(func(c *gin.Context) {
		c.Error(apperrors.NotFound("route", nil))
	})

	return r
}

func (r *Router) Setup() {
	if r.handlers.Health != nil {
		r.handlers.Health.RegisterRoutes(r.engine)
	}
	if r.metrics != nil && r.config.MetricsEnabled {
		r.engine.GET(r.config.MetricsPath, r.metrics.Handler())
	}

	api := r.engine.Group("/api")
	if r.config.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  r.config.RateLimit,
			Burst: r.config.RateBurst,
		})
		api.Use(limiter.RateLimit())
	}

	// Login is the only unauthenticated API route and gets its own, much
	// tighter, per-client budget.
	public := api.Group("")
	if r.config.LoginPerMinute > 0 {
		login := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  rate.Every(time.Minute / time.Duration(r.config.LoginPerMinute)),
			Burst: r.config.LoginPerMinute,
		})
		public.Use(login.RateLimit())
	}

	protected := api.Group("")
	protected.Use(r.auth.Authenticate())

	if r.handlers.Auth != nil {
		r.handlers.Auth.RegisterRoutes(public, protected)
	}

	for _, h := range []Handler{
		r.handlers.Members,
		r.handlers.Staff,
		r.handlers.Catalog,
		r.handlers.Products,
		r.handlers.Content,
		r.handlers.Appointments,
		r.handlers.Schedule,
		r.handlers.Insights,
		r.handlers.Billing,
		r.handlers.Export,
	} {
		if h != nil {
			h.RegisterRoutes(protected)
		}
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
