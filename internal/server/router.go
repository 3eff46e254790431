package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/yungbote/shopgraph-backend/internal/http/handlers"
)

type RouterConfig struct {
	ServiceName           string
	HealthHandler         *handlers.HealthHandler
	RecommendationHandler *handlers.RecommendationHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "shopgraph"
	}
	router.Use(otelgin.Middleware(serviceName))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "X-Requested-With"},
		AllowCredentials: false,
	}))

	router.GET("/", cfg.HealthHandler.Root)
	router.GET("/health", cfg.HealthHandler.HealthCheck)
	router.GET("/recommendations/:customerId", cfg.RecommendationHandler.Recommendations)
	router.GET("/similar/:productId", cfg.RecommendationHandler.Similar)

	return router
}
