package websocket

import "github.com/tubefetch/tubefetch/internal/job"

// ProgressTracker adapts job state changes into hub broadcasts. It
// implements job.Notifier.
type ProgressTracker struct {
	hub *Hub
}

// NewProgressTracker creates a new progress tracker.
func NewProgressTracker(hub *Hub) *ProgressTracker {
	return &ProgressTracker{hub: hub}
}

// JobUpdated pushes the job's latest state to connected clients.
func (t *ProgressTracker) JobUpdated(j job.Job) {
	t.hub.Broadcast(&JobMessage{
		Type:       "job_progress",
		JobID:      j.ID,
		Status:     j.Status,
		Progress:   j.Progress,
		StatusText: j.StatusText,
		Error:      j.Error,
	})
}
