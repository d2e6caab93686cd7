package job

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrBusy is returned by Create while another job is still non-terminal.
	ErrBusy = errors.New("another download is already in progress")
	// ErrNotFound is returned for unknown job IDs.
	ErrNotFound = errors.New("job not found")
	// ErrNotReady is returned when a job has no retrievable result yet.
	ErrNotReady = errors.New("job result is not ready")
)

// Store is a concurrency-safe map of job ID to Job plus the single
// active-job slot. The slot and the map are guarded by the same lock so
// admission is linearizable: of any number of concurrent Create calls at
// most one wins, the rest observe ErrBusy with no side effects.
type Store struct {
	mu       sync.Mutex
	jobs     map[string]*Job
	activeID string
}

// NewStore creates an empty job store.
func NewStore() *Store {
	return &Store{
		jobs: make(map[string]*Job),
	}
}

// Create admits a new job if no other job is currently non-terminal.
// On success the job starts out queued and becomes the active job.
func (s *Store) Create(url string) (Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.activeID != "" {
		if active, ok := s.jobs[s.activeID]; ok && !active.IsTerminal() {
			return Job{}, ErrBusy
		}
	}

	j := &Job{
		ID:         uuid.New().String(),
		URL:        url,
		Status:     StatusQueued,
		StatusText: "Queued",
		CreatedAt:  time.Now(),
	}
	s.jobs[j.ID] = j
	s.activeID = j.ID

	return *j, nil
}

// Get returns a snapshot copy of the job with the given ID.
func (s *Store) Get(id string) (Job, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, ok := s.jobs[id]
	if !ok {
		return Job{}, false
	}
	return *j, true
}

// Update atomically mutates the stored job through fn and returns the
// resulting snapshot. It is a no-op for unknown IDs.
func (s *Store) Update(id string, fn func(*Job)) (Job, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, ok := s.jobs[id]
	if !ok {
		return Job{}, false
	}
	fn(j)
	return *j, true
}

// ClearActiveIfMatches unsets the active slot only if it still points at
// the given ID, so a late-finishing job cannot clobber a newer job's slot.
func (s *Store) ClearActiveIfMatches(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.activeID == id {
		s.activeID = ""
	}
}

// Remove deletes the job and clears the active slot if it matches.
// Calling it twice is safe.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.jobs, id)
	if s.activeID == id {
		s.activeID = ""
	}
}

// Snapshot returns copies of all stored jobs.
func (s *Store) Snapshot() []Job {
	s.mu.Lock()
	defer s.mu.Unlock()

	jobs := make([]Job, 0, len(s.jobs))
	for _, j := range s.jobs {
		jobs = append(jobs, *j)
	}
	return jobs
}

// ActiveID returns the current active job ID, or "" if the slot is free.
func (s *Store) ActiveID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeID
}
