package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/shopgraph-backend/internal/data/graph"
	"github.com/yungbote/shopgraph-backend/internal/http/handlers"
	"github.com/yungbote/shopgraph-backend/internal/observability"
	"github.com/yungbote/shopgraph-backend/internal/platform/logger"
	"github.com/yungbote/shopgraph-backend/internal/platform/neo4jdb"
	"github.com/yungbote/shopgraph-backend/internal/platform/rediscache"
	"github.com/yungbote/shopgraph-backend/internal/server"
)

// App owns the serving process's long-lived dependencies: one graph
// driver pool constructed at startup, injected into each handler, and
// released on shutdown.
type App struct {
	Log          *logger.Logger
	Cfg          Config
	Graph        *neo4jdb.Client
	Cache        *rediscache.Cache
	Router       *gin.Engine
	otelShutdown func(context.Context) error
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	cfg := LoadConfig()

	otelShutdown := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: cfg.ServiceName,
		Environment: cfg.Environment,
		Version:     cfg.Version,
	})

	graphClient, err := neo4jdb.NewFromEnv(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init neo4j: %w", err)
	}
	logStartupPing(graphClient, log)

	cache, err := rediscache.NewFromEnv(log)
	if err != nil {
		// The API works without a cache; a misbehaving redis should not
		// keep it from starting.
		log.Warn("Redis cache init failed, serving without cache", "error", err)
		cache = nil
	}

	recoService := graph.NewService(graphClient, cache, log)

	healthHandler := handlers.NewHealthHandler(recoService)
	recoHandler := handlers.NewRecommendationHandler(recoService, log)

	router := server.NewRouter(server.RouterConfig{
		ServiceName:           cfg.ServiceName,
		HealthHandler:         healthHandler,
		RecommendationHandler: recoHandler,
	})

	return &App{
		Log:          log,
		Cfg:          cfg,
		Graph:        graphClient,
		Cache:        cache,
		Router:       router,
		otelShutdown: otelShutdown,
	}, nil
}

// logStartupPing probes the store once so a bad URI shows up in the boot
// log instead of only on the first /health call. The API still starts:
// readiness is the pipeline's concern, and /health keeps reporting until
// the store answers. Returns whether the probe succeeded.
func logStartupPing(pinger handlers.Pinger, log *logger.Logger) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pinger.Ping(ctx); err != nil {
		log.Warn("Neo4j unreachable at startup, /health will report the failure", "error", err)
		return false
	}
	log.Info("Neo4j reachable at startup")
	return true
}

func (a *App) Run() error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	a.Log.Info("Server listening", "port", a.Cfg.Port)
	return a.Router.Run(":" + a.Cfg.Port)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.otelShutdown != nil {
		_ = a.otelShutdown(context.Background())
	}
	if a.Cache != nil {
		_ = a.Cache.Close()
	}
	if a.Graph != nil {
		_ = a.Graph.Close(context.Background())
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
