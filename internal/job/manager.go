package job

import (
	"context"
	"os"
	"time"

	"github.com/tubefetch/tubefetch/internal/logger"
)

// DefaultJobTimeout bounds a single fetch. It must stay below the
// retention TTL so every job is terminal before the sweeper can reclaim it.
const DefaultJobTimeout = 8 * time.Minute

// FetchSpec describes one download request handed to the Fetcher.
type FetchSpec struct {
	URL    string
	Format string // format selector, e.g. "18" or "137+140"
	Merge  bool   // remux separate video and audio streams into one file
}

// FetchResult is what the fetch operation reports back on success.
type FetchResult struct {
	OutputPath string
}

// Fetcher runs the opaque media fetch operation. It blocks for the full
// duration of the download and reports progress through onProgress.
type Fetcher interface {
	Fetch(ctx context.Context, spec FetchSpec, destDir string, onProgress func(ProgressEvent)) (FetchResult, error)
}

// Notifier observes job state changes, e.g. to push them to connected
// websocket clients. Implementations must not block.
type Notifier interface {
	JobUpdated(j Job)
}

// Manager composes the store, the executor and the retrieval path. It is
// the only interface the HTTP layer talks to.
type Manager struct {
	store    *Store
	fetcher  Fetcher
	workRoot string
	timeout  time.Duration
	notifier Notifier
	log      *logger.Logger
}

// ManagerConfig holds configuration for the job manager.
type ManagerConfig struct {
	WorkRoot   string
	JobTimeout time.Duration
	Notifier   Notifier
	Logger     *logger.Logger
}

// NewManager creates a job manager writing scratch directories under
// cfg.WorkRoot.
func NewManager(fetcher Fetcher, cfg *ManagerConfig) *Manager {
	if cfg == nil {
		cfg = &ManagerConfig{}
	}

	timeout := cfg.JobTimeout
	if timeout <= 0 {
		timeout = DefaultJobTimeout
	}

	log := cfg.Logger
	if log == nil {
		log = logger.Default().WithComponent("job")
	}

	workRoot := cfg.WorkRoot
	if workRoot == "" {
		workRoot = os.TempDir()
	}

	return &Manager{
		store:    NewStore(),
		fetcher:  fetcher,
		workRoot: workRoot,
		timeout:  timeout,
		notifier: cfg.Notifier,
		log:      log,
	}
}

// Store exposes the underlying job store for the sweeper.
func (m *Manager) Store() *Store {
	return m.store
}

// Submit admits a new job and spawns its executor. It returns ErrBusy
// while another job is non-terminal and never blocks on the download.
func (m *Manager) Submit(spec FetchSpec) (string, error) {
	j, err := m.store.Create(spec.URL)
	if err != nil {
		return "", err
	}

	m.log.Info(context.Background(), "job admitted", map[string]interface{}{
		"job_id": j.ID,
		"url":    spec.URL,
		"format": spec.Format,
	})

	go m.run(j.ID, spec)

	return j.ID, nil
}

// Status returns a snapshot of the job or ErrNotFound.
func (m *Manager) Status(id string) (Job, error) {
	j, ok := m.store.Get(id)
	if !ok {
		return Job{}, ErrNotFound
	}
	return j, nil
}

// OpenResult opens the finished artifact for delivery. The returned
// cleanup func must be called after the file has been transmitted; it
// deletes the job's work directory and removes the job from the store.
func (m *Manager) OpenResult(id string) (*os.File, string, func(), error) {
	j, ok := m.store.Get(id)
	if !ok {
		return nil, "", nil, ErrNotFound
	}
	if j.Status != StatusCompleted || j.ResultPath == "" {
		return nil, "", nil, ErrNotReady
	}

	f, err := os.Open(j.ResultPath)
	if err != nil {
		return nil, "", nil, ErrNotReady
	}

	cleanup := func() {
		m.reclaim(j.ID, j.WorkDir)
	}

	return f, j.ResultName, cleanup, nil
}

// reclaim deletes a job's scratch directory and drops its record.
// Deletion failures are logged and swallowed; they must never fail the
// request that triggered the cleanup.
func (m *Manager) reclaim(id, workDir string) {
	if workDir != "" {
		if err := os.RemoveAll(workDir); err != nil {
			m.log.Error(context.Background(), "failed to delete work directory", err, map[string]interface{}{
				"job_id":   id,
				"work_dir": workDir,
			})
		}
	}
	m.store.Remove(id)
}

// updateAndNotify applies a mutation and pushes the new snapshot to the
// notifier, if any.
func (m *Manager) updateAndNotify(id string, fn func(*Job)) {
	j, ok := m.store.Update(id, fn)
	if !ok {
		return
	}
	if m.notifier != nil {
		m.notifier.JobUpdated(j)
	}
}
