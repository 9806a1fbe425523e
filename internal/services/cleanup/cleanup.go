// Package cleanup periodically removes finished jobs that clients have
// had long enough to collect.
package cleanup

import (
	"context"
	"log"
	"time"

	"github.com/sublab/subtitle-api/internal/services/jobs"
)

const defaultInterval = time.Hour

// Sweeper runs the terminal-job retention sweep on a fixed cadence.
type Sweeper struct {
	registry  *jobs.Registry
	retention time.Duration
	interval  time.Duration
}

// NewSweeper creates a sweeper. A retention of zero disables sweeping; an
// interval of zero uses the default cadence.
func NewSweeper(registry *jobs.Registry, retention, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Sweeper{registry: registry, retention: retention, interval: interval}
}

// Run sweeps until ctx is cancelled. It returns immediately when
// retention is disabled.
func (s *Sweeper) Run(ctx context.Context) {
	if s.retention <= 0 {
		log.Printf("[DEBUG] job retention sweep disabled")
		return
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := s.registry.Sweep(s.retention); removed > 0 {
				log.Printf("[DEBUG] swept %d finished jobs older than %s", removed, s.retention)
			}
		}
	}
}
