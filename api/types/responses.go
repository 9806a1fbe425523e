package types

// JobAcceptedResponse is returned when a processing job has been queued.
type JobAcceptedResponse struct {
	TaskID  string `json:"task_id"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ProgressResponse reports the state of a job to a polling client. The
// result object is only present once the job completes.
type ProgressResponse struct {
	Status   string          `json:"status"`
	Progress int             `json:"progress"`
	Message  string          `json:"message"`
	Result   *SubtitleResult `json:"result,omitempty"`
	Error    string          `json:"error,omitempty"`
}

// SubtitleResult is the completed-job payload nested under "result".
type SubtitleResult struct {
	SRTContent string `json:"srt_content"`
	Filename   string `json:"filename"`
}

// SampleSubtitleResponse is returned synchronously by the combined
// process endpoint when speech recognition is not installed.
type SampleSubtitleResponse struct {
	Subtitles string `json:"subtitles"`
	Warning   string `json:"warning"`
}

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}

// YouTubeProcessRequest is the JSON body for YouTube processing.
type YouTubeProcessRequest struct {
	YouTubeURL string `json:"youtube_url"`
	Language   string `json:"language"`
}
