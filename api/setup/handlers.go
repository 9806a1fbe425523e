package setup

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sublab/subtitle-api/api/types"
)

// Get reports which external tools and languages the server supports.
//
// @Summary      Server capability report
// @Tags         setup
// @Produce      json
// @Success      200  {object}  capabilities.Report
// @Router       /api/v1/setup [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, deps.Capabilities.Probe())
	}
}

// RegisterRoutes registers the setup endpoint on the group.
func RegisterRoutes(group *gin.RouterGroup, deps *types.Dependencies) {
	group.GET("", Get(deps))
}
