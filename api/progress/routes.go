package progress

import (
	"github.com/gin-gonic/gin"

	"github.com/sublab/subtitle-api/api/types"
)

// RegisterRoutes registers the progress polling endpoint on the group.
func RegisterRoutes(group *gin.RouterGroup, deps *types.Dependencies) {
	group.GET("/:id", Get(deps))
}
