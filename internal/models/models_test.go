package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJobIsTerminal(t *testing.T) {
	tests := []struct {
		status   JobStatus
		terminal bool
	}{
		{JobStatusProcessing, false},
		{JobStatusCompleted, true},
		{JobStatusError, true},
	}

	for _, tt := range tests {
		job := &Job{Status: tt.status}
		assert.Equal(t, tt.terminal, job.IsTerminal(), "status %s", tt.status)
	}
}

func TestJobClone(t *testing.T) {
	job := &Job{
		ID:       "abc",
		Status:   JobStatusCompleted,
		Progress: 100,
		Result:   &JobResult{SRTContent: "doc", Filename: "video.srt"},
	}

	clone := job.Clone()
	clone.Result.SRTContent = "mutated"

	assert.Equal(t, "doc", job.Result.SRTContent, "clone must not share the result")
	assert.Equal(t, "abc", clone.ID)
}

func TestStructuredJobError(t *testing.T) {
	original := errors.New("exit status 1")
	err := NewAcquisitionError("all_strategies_failed", "localized message", "technical details", original)

	assert.Equal(t, ErrorTypeAcquisition, err.Type)
	assert.Equal(t, "technical details", err.Error())
	assert.ErrorIs(t, err, original)
}

func TestSubtitleDocumentTableName(t *testing.T) {
	assert.Equal(t, "subtitle_documents", SubtitleDocument{}.TableName())
}
