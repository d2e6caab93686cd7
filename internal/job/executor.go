package job

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tubefetch/tubefetch/internal/metrics"
)

// run drives one job through its state machine on a background goroutine:
// queued -> downloading -> completed|failed. It blocks for the full
// duration of the fetch; the caller must not wait on it.
func (m *Manager) run(id string, spec FetchSpec) {
	// Free the admission slot on every exit path, panics included, so a
	// new job can be admitted the moment this one is terminal.
	defer m.store.ClearActiveIfMatches(id)

	workDir := filepath.Join(m.workRoot, id)

	defer func() {
		if r := recover(); r != nil {
			m.log.Error(context.Background(), "executor panicked", fmt.Errorf("%v", r), map[string]interface{}{
				"job_id": id,
			})
			m.fail(id, workDir, fmt.Errorf("download aborted: %v", r))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()

	if err := os.MkdirAll(workDir, 0o755); err != nil {
		m.fail(id, workDir, fmt.Errorf("failed to create work directory: %w", err))
		return
	}

	m.updateAndNotify(id, func(j *Job) {
		j.Status = StatusDownloading
		j.StatusText = "Initializing..."
		j.WorkDir = workDir
	})

	result, err := m.fetcher.Fetch(ctx, spec, workDir, func(ev ProgressEvent) {
		m.applyProgress(id, ev)
	})
	if err != nil {
		m.fail(id, workDir, err)
		return
	}

	outputPath, err := verifyOutput(workDir, result.OutputPath)
	if err != nil {
		m.fail(id, workDir, err)
		return
	}

	m.updateAndNotify(id, func(j *Job) {
		j.Status = StatusCompleted
		j.Progress = 100
		j.StatusText = "Completed"
		j.ResultPath = outputPath
		j.ResultName = filepath.Base(outputPath)
	})
	metrics.Default().IncCounter("jobs_completed")

	m.log.Info(context.Background(), "job completed", map[string]interface{}{
		"job_id": id,
		"output": outputPath,
	})
}

// fail records the terminal failure and deletes the work directory
// synchronously; failed jobs must not leave scratch files for the sweeper.
func (m *Manager) fail(id, workDir string, cause error) {
	m.log.Error(context.Background(), "job failed", cause, map[string]interface{}{
		"job_id": id,
	})

	var transitioned bool
	m.updateAndNotify(id, func(j *Job) {
		if j.IsTerminal() {
			return
		}
		j.Status = StatusFailed
		j.StatusText = "Failed"
		j.Error = cause.Error()
		transitioned = true
	})
	if transitioned {
		metrics.Default().IncCounter("jobs_failed")
	}

	if workDir != "" {
		if err := os.RemoveAll(workDir); err != nil {
			m.log.Error(context.Background(), "failed to delete work directory", err, map[string]interface{}{
				"job_id":   id,
				"work_dir": workDir,
			})
		}
	}
}

// verifyOutput checks that the declared output exists and is non-empty.
// After remuxing the declared extension can be stale, so it falls back to
// the largest regular file in the work directory before giving up.
func verifyOutput(workDir, declared string) (string, error) {
	if declared != "" {
		if fi, err := os.Stat(declared); err == nil && fi.Mode().IsRegular() && fi.Size() > 0 {
			return declared, nil
		}
	}

	entries, err := os.ReadDir(workDir)
	if err != nil {
		return "", fmt.Errorf("output verification failed: %w", err)
	}

	var best string
	var bestSize int64
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.Size() > bestSize {
			best = filepath.Join(workDir, e.Name())
			bestSize = info.Size()
		}
	}

	if best == "" {
		return "", errors.New("download produced no output file")
	}
	return best, nil
}
