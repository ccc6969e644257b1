package api

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"pricescout/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(RateLimit(rate.Limit(1), 10))

	router.GET("/health/", handler.Health)

	authorized := router.Group("/", BasicAuth(cfg.AuthUsers))
	authorized.POST("/search/", handler.Search)

	return router
}
