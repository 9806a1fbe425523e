package api

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/sublab/subtitle-api/api/health"
	"github.com/sublab/subtitle-api/api/process"
	"github.com/sublab/subtitle-api/api/progress"
	"github.com/sublab/subtitle-api/api/setup"
	"github.com/sublab/subtitle-api/api/types"
	"github.com/sublab/subtitle-api/api/version"
	_ "github.com/sublab/subtitle-api/docs/swagger"
)

// RegisterRoutes registers all API routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, rateLimiters *sync.Map, cleanupStop chan struct{}, cleanupInitialized *sync.Once) error {
	if deps == nil || deps.Config == nil {
		return fmt.Errorf("handler dependencies are not configured")
	}
	if deps.Registry == nil || deps.Processor == nil {
		return fmt.Errorf("job registry and processor are required")
	}

	// Public routes, no rate limiting.
	health.RegisterRoutes(engine, deps)
	version.RegisterRoutes(engine)

	// Swagger documentation route.
	engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/docs/index.html")
	})
	docsGroup := engine.Group("/docs")
	docsGroup.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	engine.NoRoute(NotFoundHandler())

	v1 := engine.Group("/api/v1")

	rl := deps.Config.RateLimiting

	// Submitting work is the expensive path and gets the strict limit.
	processGroup := v1.Group("/process")
	if rl.Enabled {
		processGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, rl.RequestsPerSecond, rl.Burst))
	}
	process.RegisterRoutes(processGroup, deps)

	// Polling is cheap and frequent; give it generous headroom.
	progressGroup := v1.Group("/progress")
	if rl.Enabled {
		progressGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, rl.RequestsPerSecond*4, rl.Burst*4))
	}
	progress.RegisterRoutes(progressGroup, deps)

	setupGroup := v1.Group("/setup")
	setup.RegisterRoutes(setupGroup, deps)

	return nil
}
