package models

import "time"

// JobStatus represents the externally visible state of a job
type JobStatus string

const (
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusError      JobStatus = "error"
)

// JobResult holds the final output of a completed job
type JobResult struct {
	SRTContent string `json:"srt_content"`
	Filename   string `json:"filename"`
}

// Job represents one end-to-end subtitle generation request and its
// mutable progress state. A job is created in processing state, mutated
// only by the single worker goroutine that owns it, and read
// concurrently by polling clients through registry snapshots.
type Job struct {
	ID          string
	Status      JobStatus
	Progress    int    // 0-100, monotonically non-decreasing while processing
	Message     string // localized current-stage description
	Result      *JobResult
	Error       string // technical diagnostic, distinct from Message
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// IsTerminal returns true if the job is in a terminal state
func (j *Job) IsTerminal() bool {
	return j.Status == JobStatusCompleted || j.Status == JobStatusError
}

// Clone returns a deep copy safe to hand to a concurrent reader.
func (j *Job) Clone() Job {
	copied := *j
	if j.Result != nil {
		result := *j.Result
		copied.Result = &result
	}
	return copied
}
