package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nekogravitycat/dev-resources-backend/internal/api"
	"github.com/nekogravitycat/dev-resources-backend/internal/auth"
	"github.com/nekogravitycat/dev-resources-backend/internal/metrics"
	"github.com/nekogravitycat/dev-resources-backend/internal/pkg/kvstore"
	"github.com/nekogravitycat/dev-resources-backend/internal/resource"
	"github.com/nekogravitycat/dev-resources-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  []string
	Store        kvstore.Store
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int
	CatalogPath  string
	PageSize     int
	SessionTTL   time.Duration
	Logger       *zap.Logger
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
	Catalog    *resource.Catalog
	Sessions   *resource.SessionStore
	Metrics    *metrics.Metrics
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	// User Module
	userRepo := user.NewKVRepository(cfg.Store)
	userService := user.NewService(userRepo, passwordHasher, logger.Named("user"))

	// Resource Module
	catalog, err := resource.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	sessions := resource.NewSessionStore(cfg.SessionTTL)
	m := metrics.New(sessions)

	resLogger := logger.Named("resource")
	resService := resource.NewService(
		catalog,
		resource.NewKVRepository(cfg.Store, resLogger),
		resource.NewEditor(),
		sessions,
		resource.Options{PageSize: cfg.PageSize, Observer: m, Logger: resLogger},
	)

	// Router
	router := api.NewRouter(api.Config{
		IsProduction:    cfg.IsProduction,
		ProdOrigins:     cfg.ProdOrigins,
		UserService:     userService,
		ResourceService: resService,
		JWTManager:      jwtManager,
		Store:           cfg.Store,
		Metrics:         m,
		Logger:          logger.Named("http"),
	})

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
		Catalog:    catalog,
		Sessions:   sessions,
		Metrics:    m,
	}, nil
}

// OpenStore opens the configured key-value backend.
func OpenStore(ctx context.Context, opts kvstore.Options) (kvstore.Store, error) {
	store, err := kvstore.Open(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", opts.Backend, err)
	}
	return store, nil
}
