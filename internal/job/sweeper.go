package job

import (
	"context"
	"os"
	"time"

	"github.com/tubefetch/tubefetch/internal/logger"
)

const (
	DefaultSweepInterval = time.Minute
	DefaultRetentionTTL  = 10 * time.Minute
)

// Sweeper periodically reclaims expired jobs and their scratch
// directories. It is a failsafe for jobs that are never retrieved; the
// post-delivery cleanup remains the fast path.
type Sweeper struct {
	store    *Store
	interval time.Duration
	ttl      time.Duration
	log      *logger.Logger
}

// NewSweeper creates a sweeper over the given store.
func NewSweeper(store *Store, interval, ttl time.Duration, log *logger.Logger) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	if ttl <= 0 {
		ttl = DefaultRetentionTTL
	}
	if log == nil {
		log = logger.Default().WithComponent("sweeper")
	}
	return &Sweeper{
		store:    store,
		interval: interval,
		ttl:      ttl,
		log:      log,
	}
}

// Run loops until the context is cancelled. The loop itself never
// terminates on a sweep error.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(time.Now())
		}
	}
}

// Sweep reclaims every job older than the retention TTL, regardless of
// status. A failure on one job is logged and does not abort the others.
func (s *Sweeper) Sweep(now time.Time) {
	for _, j := range s.store.Snapshot() {
		if j.Age(now) < s.ttl {
			continue
		}
		s.reclaim(j)
	}
}

// reclaim deletes the job's work directory and then its record. If the
// directory cannot be deleted the record is kept so a later tick retries.
func (s *Sweeper) reclaim(j Job) {
	if j.WorkDir != "" {
		if err := os.RemoveAll(j.WorkDir); err != nil {
			s.log.Error(context.Background(), "failed to delete expired work directory", err, map[string]interface{}{
				"job_id":   j.ID,
				"work_dir": j.WorkDir,
			})
			return
		}
	}

	s.store.Remove(j.ID)

	s.log.Info(context.Background(), "expired job reclaimed", map[string]interface{}{
		"job_id": j.ID,
		"status": j.Status,
	})
}
