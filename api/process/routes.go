package process

import (
	"github.com/gin-gonic/gin"

	"github.com/sublab/subtitle-api/api/types"
)

// RegisterRoutes registers the processing endpoints on the given group.
func RegisterRoutes(group *gin.RouterGroup, deps *types.Dependencies) {
	group.POST("", Upload(deps))
	group.POST("/youtube", YouTube(deps))
}
