package version

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Get handles version requests
func Get() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":        "Subtitle API",
			"version":     "1.0.0",
			"description": "API for generating video subtitles with speech recognition",
			"status":      "running",
		})
	}
}

// RegisterRoutes registers the version endpoint on the engine.
func RegisterRoutes(engine *gin.Engine) {
	engine.GET("/version", Get())
}
