package job

import "fmt"

// Progress event phases reported by the fetch operation.
const (
	PhaseDownloading = "downloading"
	PhaseFinished    = "finished"
)

// ProgressEvent carries raw byte counters from the fetch operation.
// TotalBytes may be zero when the remote does not declare a size.
type ProgressEvent struct {
	Phase           string
	DownloadedBytes int64
	TotalBytes      int64
}

// applyProgress translates a raw progress event into a store update.
// It runs on the executor goroutine and never blocks on I/O.
func (m *Manager) applyProgress(id string, ev ProgressEvent) {
	switch ev.Phase {
	case PhaseDownloading:
		if ev.TotalBytes <= 0 {
			// Unknown total; leave the percentage alone.
			return
		}
		pct := float64(ev.DownloadedBytes) / float64(ev.TotalBytes) * 100
		if pct > 100 {
			pct = 100
		}
		m.updateAndNotify(id, func(j *Job) {
			if j.Status != StatusDownloading || pct < j.Progress {
				return
			}
			j.Progress = pct
			j.StatusText = fmt.Sprintf("Downloading: %.1f%%", pct)
		})

	case PhaseFinished:
		// Raw transfer done; muxing may still follow. The last percent is
		// reserved until the output file is verified present and non-empty.
		m.updateAndNotify(id, func(j *Job) {
			if j.Status != StatusDownloading {
				return
			}
			j.Progress = 99
			j.StatusText = "Processing..."
		})
	}
}
