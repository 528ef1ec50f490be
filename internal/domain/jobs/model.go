package jobs

import (
	"time"

	"github.com/google/uuid"

	"github.com/Spok95/site-inventory/internal/domain/errs"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Job tracks one document-analysis run for a construction.
type Job struct {
	ID             uuid.UUID
	ConstructionID uuid.UUID
	FileName       string
	Status         Status
	ErrorMessage   string
	CreatedAt      time.Time
	CompletedAt    *time.Time
}

// Start moves the job to processing. Only a pending job can start.
func (j *Job) Start() error {
	if j.Status != StatusPending {
		return errs.Business("can only start processing from pending status, current %q", j.Status)
	}
	j.Status = StatusProcessing
	return nil
}

// Complete finishes the job successfully. Only a processing job can complete.
func (j *Job) Complete(now time.Time) error {
	if j.Status != StatusProcessing {
		return errs.Business("can only complete from processing status, current %q", j.Status)
	}
	j.Status = StatusCompleted
	j.CompletedAt = &now
	return nil
}

// Fail marks the job failed with a message. Allowed from pending or processing.
func (j *Job) Fail(msg string, now time.Time) error {
	if j.Status.Terminal() {
		return errs.Business("can only fail from pending or processing status, current %q", j.Status)
	}
	if msg == "" {
		return errs.Validation("error message is required for failure")
	}
	j.Status = StatusFailed
	j.ErrorMessage = msg
	j.CompletedAt = &now
	return nil
}
