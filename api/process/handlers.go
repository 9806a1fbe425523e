package process

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sublab/subtitle-api/api/types"
	"github.com/sublab/subtitle-api/internal/messages"
	"github.com/sublab/subtitle-api/internal/models"
	"github.com/sublab/subtitle-api/internal/services/acquisition"
	"github.com/sublab/subtitle-api/pkg/srt"
)

const defaultLanguage = "ar"

// sampleWarning accompanies the synchronous sample-subtitle response
// when the speech recognizer is not installed.
const sampleWarning = "Using sample subtitles because Whisper speech recognition is not available"

// Upload handles subtitle generation requests. A JSON body is treated as
// a YouTube request; a multipart body as a direct video upload.
//
// @Summary      Start subtitle generation
// @Description  Accepts a video upload or a YouTube URL and starts an async job
// @Tags         process
// @Accept       multipart/form-data
// @Accept       json
// @Produce      json
// @Param        video     formData  file    false  "Video file"
// @Param        language  formData  string  false  "Language code (ar, en, tr, fr, es, de)"
// @Success      200  {object}  types.JobAcceptedResponse
// @Failure      400  {object}  types.ErrorResponse
// @Router       /api/v1/process [post]
func Upload(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.Contains(c.ContentType(), "application/json") {
			handleYouTubeJSON(c, deps, true)
			return
		}

		file, err := c.FormFile("video")
		if err != nil {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "No video file uploaded"})
			return
		}
		if file.Filename == "" {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "Missing file or empty filename"})
			return
		}
		language := c.PostForm("language")
		if language == "" {
			language = defaultLanguage
		}

		if !recognitionAvailable(deps) {
			respondSampleSubtitles(c, language)
			return
		}

		job := deps.Registry.Create(messages.StartingVideo)

		workDir, err := os.MkdirTemp(deps.Config.Storage.TempDir, "subtitle-upload-")
		if err != nil {
			deps.Registry.Fail(job.ID, messages.GenericFailure, err.Error())
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "failed to store upload"})
			return
		}
		mediaPath := filepath.Join(workDir, sanitizeFilename(file.Filename))
		if err := c.SaveUploadedFile(file, mediaPath); err != nil {
			_ = os.RemoveAll(workDir)
			deps.Registry.Fail(job.ID, messages.GenericFailure, err.Error())
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "failed to store upload"})
			return
		}

		log.Printf("[DEBUG] job %s: upload %s (%d bytes), language %s", job.ID, file.Filename, file.Size, language)

		filename := file.Filename
		deps.Registry.Dispatch(job.ID, func() {
			deps.Processor.ProcessUpload(job.ID, mediaPath, filename, language)
		})

		c.JSON(http.StatusOK, types.JobAcceptedResponse{
			TaskID:  job.ID,
			Status:  string(models.JobStatusProcessing),
			Message: messages.StartingUpload,
		})
	}
}

// YouTube handles POST /process/youtube.
//
// @Summary      Start YouTube subtitle generation
// @Tags         process
// @Accept       json
// @Produce      json
// @Param        request  body  types.YouTubeProcessRequest  true  "YouTube URL and language"
// @Success      200  {object}  types.JobAcceptedResponse
// @Failure      400  {object}  types.ErrorResponse
// @Router       /api/v1/process/youtube [post]
func YouTube(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		handleYouTubeJSON(c, deps, false)
	}
}

// handleYouTubeJSON validates a YouTube request and dispatches the job.
// The legacy combined endpoint requires an explicit language and answers
// with sample subtitles when recognition is missing; the dedicated
// endpoint defaults to Arabic and always dispatches.
func handleYouTubeJSON(c *gin.Context, deps *types.Dependencies, combined bool) {
	var req types.YouTubeProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "No data provided"})
		return
	}

	if req.YouTubeURL == "" {
		if combined {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "Missing YouTube URL or language"})
		} else {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: messages.MissingYouTubeURL})
		}
		return
	}
	if combined && req.Language == "" {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "Missing YouTube URL or language"})
		return
	}
	if combined && !recognitionAvailable(deps) {
		language := req.Language
		if language == "" {
			language = defaultLanguage
		}
		respondSampleSubtitles(c, language)
		return
	}
	if err := acquisition.ValidateYouTubeURL(req.YouTubeURL); err != nil {
		log.Printf("[WARN] rejected YouTube URL: %s", req.YouTubeURL)
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: messages.InvalidYouTubeURL})
		return
	}

	language := req.Language
	if language == "" {
		language = defaultLanguage
	}

	job := deps.Registry.Create(messages.StartingYouTube)
	log.Printf("[DEBUG] job %s: youtube %s, language %s", job.ID, acquisition.VideoID(req.YouTubeURL), language)

	url := req.YouTubeURL
	deps.Registry.Dispatch(job.ID, func() {
		deps.Processor.ProcessYouTube(job.ID, url, language)
	})

	c.JSON(http.StatusOK, types.JobAcceptedResponse{
		TaskID:  job.ID,
		Status:  string(models.JobStatusProcessing),
		Message: messages.YouTubeAccepted,
	})
}

// recognitionAvailable reports whether speech recognition can run. A
// missing prober means capability checks are disabled and jobs dispatch
// normally.
func recognitionAvailable(deps *types.Dependencies) bool {
	if deps.Capabilities == nil {
		return true
	}
	return deps.Capabilities.Probe().SpeechRecognition
}

// respondSampleSubtitles answers synchronously with a canned document so
// the client still gets usable output on a host without a recognizer.
func respondSampleSubtitles(c *gin.Context, language string) {
	log.Printf("[WARN] speech recognition unavailable, returning sample subtitles")
	c.JSON(http.StatusOK, types.SampleSubtitleResponse{
		Subtitles: srt.Placeholder(language),
		Warning:   sampleWarning,
	})
}

// sanitizeFilename keeps only the base name so a crafted filename cannot
// escape the work directory.
func sanitizeFilename(name string) string {
	name = filepath.Base(filepath.Clean(name))
	if name == "." || name == string(filepath.Separator) || name == "" {
		return "upload.mp4"
	}
	return name
}
