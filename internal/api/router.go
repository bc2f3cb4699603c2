package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nekogravitycat/dev-resources-backend/internal/auth"
	"github.com/nekogravitycat/dev-resources-backend/internal/logging"
	"github.com/nekogravitycat/dev-resources-backend/internal/metrics"
	"github.com/nekogravitycat/dev-resources-backend/internal/pkg/kvstore"
	"github.com/nekogravitycat/dev-resources-backend/internal/pkg/requestid"
	"github.com/nekogravitycat/dev-resources-backend/internal/resource"
	resHttp "github.com/nekogravitycat/dev-resources-backend/internal/resource/http"
	"github.com/nekogravitycat/dev-resources-backend/internal/user"
	userHttp "github.com/nekogravitycat/dev-resources-backend/internal/user/http"
)

// Config carries everything the router needs.
type Config struct {
	IsProduction bool
	ProdOrigins  []string

	UserService     user.Service
	ResourceService resource.Service
	JWTManager      *auth.JWTManager
	Store           kvstore.Store
	Metrics         *metrics.Metrics
	Logger          *zap.Logger
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (request id, logging, metrics,
// CORS, auth) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()

	// Global Middleware:
	// - RequestID: Tags every request with X-Request-ID.
	// - Logger: Structured access log through zap.
	// - Metrics: Request count and latency per route.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(
		requestid.Middleware(),
		logging.GinMiddleware(logger),
		metrics.Middleware(cfg.Metrics),
		gin.Recovery(),
	)

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && len(cfg.ProdOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.ProdOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", resHttp.SessionHeader, requestid.HeaderKey}
	corsConfig.ExposeHeaders = []string{resHttp.SessionHeader, requestid.HeaderKey}
	r.Use(cors.New(corsConfig))

	r.GET("/healthz", healthHandler(cfg.Store))
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	// authMiddleware: Rejects requests without a valid JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	// optionalAuth: Identifies the caller when a token is present.
	optionalAuth := auth.OptionalAuth(cfg.JWTManager)

	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager)
	resHandler := resHttp.NewHandler(cfg.ResourceService)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware)
		resHttp.RegisterRoutes(v1, resHandler, optionalAuth)
	}

	return r
}

// healthHandler answers 200 while the store is reachable. A missing probe
// key is the expected outcome.
func healthHandler(store kvstore.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if store != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if _, err := store.Get(ctx, "healthz"); err != nil && !errors.Is(err, kvstore.ErrNotFound) {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "store unreachable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
