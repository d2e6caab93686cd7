package job

import (
	"time"
)

// Job status constants representing the job lifecycle
const (
	StatusQueued      = "queued"
	StatusDownloading = "downloading"
	StatusCompleted   = "completed"
	StatusFailed      = "failed"
)

// Job represents one user-initiated download and its tracked state.
// ResultPath and WorkDir are owned by the job until reclaimed; they are
// never exposed over the wire.
type Job struct {
	ID         string    `json:"id"`
	URL        string    `json:"url"`
	Status     string    `json:"status"`
	Progress   float64   `json:"progress"`
	StatusText string    `json:"status_text"`
	Error      string    `json:"error,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	ResultPath string    `json:"-"`
	ResultName string    `json:"-"`
	WorkDir    string    `json:"-"`
}

// IsTerminal returns true if the job is in a terminal state
func (j *Job) IsTerminal() bool {
	return j.Status == StatusCompleted || j.Status == StatusFailed
}

// Age returns how long ago the job was created.
func (j *Job) Age(now time.Time) time.Duration {
	return now.Sub(j.CreatedAt)
}
