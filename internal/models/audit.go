package models

import (
	"time"

	"github.com/google/uuid"
)

// Audit job states.
const (
	JobPending    = "pending"
	JobProcessing = "processing"
	JobCompleted  = "completed"
	JobFailed     = "failed"
)

// Audit target types.
const (
	AuditTypeVideo   = "video"
	AuditTypeChannel = "channel"
)

// AuditCheck is one rubric check with its outcome and awarded points.
type AuditCheck struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Points int    `json:"points"`
}

// AuditJob tracks one queued audit request through its lifecycle. The
// Report and Error fields are set only once the job reaches a terminal
// state.
type AuditJob struct {
	ID          uuid.UUID    `json:"id"`
	URL         string       `json:"url"`
	Status      string       `json:"status"`
	Report      *AuditReport `json:"report,omitempty"`
	Error       string       `json:"error,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	CompletedAt *time.Time   `json:"completed_at,omitempty"`
}

// AuditReport is the result of auditing a video or channel against
// best-practice rubric checks.
type AuditReport struct {
	URL             string       `json:"url"`
	Type            string       `json:"type"`
	Score           int          `json:"score"`
	MaxScore        int          `json:"max_score"`
	Checks          []AuditCheck `json:"checks"`
	Recommendations []string     `json:"recommendations"`
	GeneratedAt     time.Time    `json:"generated_at"`
}
