package progress

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sublab/subtitle-api/api/types"
	"github.com/sublab/subtitle-api/internal/messages"
	"github.com/sublab/subtitle-api/internal/models"
	"github.com/sublab/subtitle-api/internal/services/jobs"
)

// Get handles job progress polling.
//
// @Summary      Poll job progress
// @Tags         progress
// @Produce      json
// @Param        id  path  string  true  "Task ID"
// @Success      200  {object}  types.ProgressResponse
// @Failure      404  {object}  types.ErrorResponse
// @Router       /api/v1/progress/{id} [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		jobID := c.Param("id")

		job, err := deps.Registry.Snapshot(jobID)
		if err != nil {
			if err == jobs.ErrJobNotFound {
				c.JSON(http.StatusNotFound, types.ErrorResponse{Error: "Task not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: err.Error()})
			return
		}

		switch job.Status {
		case models.JobStatusCompleted:
			if job.Result == nil || job.Result.SRTContent == "" {
				log.Printf("[WARN] job %s completed without content", jobID)
				c.JSON(http.StatusOK, types.ProgressResponse{
					Status:  string(models.JobStatusError),
					Message: messages.NoContentFound,
					Error:   "no content found in completed task",
				})
				return
			}
			c.JSON(http.StatusOK, types.ProgressResponse{
				Status:   string(models.JobStatusCompleted),
				Progress: 100,
				Message:  job.Message,
				Result: &types.SubtitleResult{
					SRTContent: job.Result.SRTContent,
					Filename:   job.Result.Filename,
				},
			})
		case models.JobStatusError:
			c.JSON(http.StatusOK, types.ProgressResponse{
				Status:  string(models.JobStatusError),
				Message: job.Message,
				Error:   job.Error,
			})
		default:
			c.JSON(http.StatusOK, types.ProgressResponse{
				Status:   string(models.JobStatusProcessing),
				Progress: job.Progress,
				Message:  job.Message,
			})
		}
	}
}
