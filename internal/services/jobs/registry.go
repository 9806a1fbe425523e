package jobs

import (
	"errors"
	"log"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sublab/subtitle-api/internal/messages"
	"github.com/sublab/subtitle-api/internal/models"
)

// ErrJobNotFound indicates the job ID is unknown to the registry.
var ErrJobNotFound = errors.New("job not found")

// Registry is an in-memory job store. Jobs live only for the process
// lifetime; clients are expected to poll a job to completion.
type Registry struct {
	mu   sync.RWMutex
	jobs map[string]*models.Job
}

// NewRegistry creates an empty job registry.
func NewRegistry() *Registry {
	return &Registry{jobs: make(map[string]*models.Job)}
}

// Create registers a new job in the processing state and returns a copy.
func (r *Registry) Create(message string) models.Job {
	if message == "" {
		message = messages.Processing
	}
	job := &models.Job{
		ID:        uuid.NewString(),
		Status:    models.JobStatusProcessing,
		Progress:  0,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}

	r.mu.Lock()
	r.jobs[job.ID] = job
	r.mu.Unlock()

	return job.Clone()
}

// Dispatch runs fn in its own goroutine. A panic fails the job instead of
// crashing the process.
func (r *Registry) Dispatch(jobID string, fn func()) {
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("[ERROR] job %s panicked: %v\n%s", jobID, rec, debug.Stack())
				r.Fail(jobID, messages.GenericFailure, "internal error")
			}
		}()
		fn()
	}()
}

// Snapshot returns a copy of the job's current state.
func (r *Registry) Snapshot(jobID string) (models.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	job, ok := r.jobs[jobID]
	if !ok {
		return models.Job{}, ErrJobNotFound
	}
	return job.Clone(), nil
}

// UpdateProgress records progress for a running job. Progress is clamped
// to [0, 99] and never moves backwards; 100 is reserved for completion.
// Terminal jobs are left alone.
func (r *Registry) UpdateProgress(jobID string, progress int, message string) {
	if progress < 0 {
		progress = 0
	}
	if progress > 99 {
		progress = 99
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[jobID]
	if !ok || job.IsTerminal() {
		return
	}
	if progress > job.Progress {
		job.Progress = progress
	}
	if message != "" {
		job.Message = message
	}
}

// Complete marks the job as finished with its result. A completed job
// always carries content; an empty result fails the job instead, so a
// poller never observes status completed with nothing to download. A
// no-op if the job is already terminal or unknown.
func (r *Registry) Complete(jobID string, result *models.JobResult, message string) {
	if message == "" {
		message = messages.SubtitleReady
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[jobID]
	if !ok || job.IsTerminal() {
		return
	}
	now := time.Now().UTC()
	if result == nil || result.SRTContent == "" {
		log.Printf("[ERROR] job %s completed without content, marking failed", jobID)
		job.Status = models.JobStatusError
		job.Message = messages.NoContentFound
		job.Error = "no content found in completed task"
		job.CompletedAt = &now
		return
	}
	job.Status = models.JobStatusCompleted
	job.Progress = 100
	job.Message = message
	job.Result = result
	job.CompletedAt = &now
}

// Fail marks the job as failed. userMessage is shown to the client,
// detail goes into the error field. A no-op if the job is already
// terminal or unknown.
func (r *Registry) Fail(jobID, userMessage, detail string) {
	if userMessage == "" {
		userMessage = messages.GenericFailure
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[jobID]
	if !ok || job.IsTerminal() {
		return
	}
	now := time.Now().UTC()
	job.Status = models.JobStatusError
	job.Message = userMessage
	job.Error = detail
	job.CompletedAt = &now
}

// Sweep removes terminal jobs whose completion is older than retention
// and returns how many were removed. A retention of zero disables the
// sweep.
func (r *Registry) Sweep(retention time.Duration) int {
	if retention <= 0 {
		return 0
	}
	cutoff := time.Now().UTC().Add(-retention)

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, job := range r.jobs {
		if job.IsTerminal() && job.CompletedAt != nil && job.CompletedAt.Before(cutoff) {
			delete(r.jobs, id)
			removed++
		}
	}
	return removed
}

// Count returns the number of tracked jobs.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.jobs)
}
