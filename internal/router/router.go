package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/northpole-labs/reindeergames/internal/config"
	"github.com/northpole-labs/reindeergames/internal/handler"
	"github.com/northpole-labs/reindeergames/internal/middleware"
	"github.com/northpole-labs/reindeergames/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Game *handler.GameHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(handlers *Handlers, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for turn routes: 60 requests per minute per IP,
	// far above any human play speed.
	turnLimiter := middleware.NewRateLimiter(60, time.Minute)

	// ─── Turn API ──────────────────────────────────────────────────────
	api := router.Group("/api/v1")
	api.Use(turnLimiter.Middleware())
	{
		api.POST("/turn", handlers.Game.ExecuteStatelessTurn)
		api.POST("/sessions/:session_id/turn", handlers.Game.ExecuteTurn)
	}

	return router
}
