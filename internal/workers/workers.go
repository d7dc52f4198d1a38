package workers

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-profile-keeper/internal/config"
	"github.com/MKhiriev/go-profile-keeper/internal/logger"
	"github.com/MKhiriev/go-profile-keeper/internal/session"
	"github.com/MKhiriev/go-profile-keeper/internal/store"
)

type Workers struct {
	workers []Worker
}

// NewWorkers builds every enabled worker. A zero sweep interval disables
// the session sweeper.
func NewWorkers(cache session.Cache, tokens store.TokenStore, cfg config.Workers, logger *logger.Logger) *Workers {
	w := &Workers{}
	if cfg.SessionSweepInterval > 0 {
		w.workers = append(w.workers, NewSessionSweeper(cache, tokens, cfg.SessionSweepInterval, logger))
	}
	return w
}

// Run starts every worker and blocks until all of them return.
func (w *Workers) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, worker := range w.workers {
		wg.Add(1)
		go func(worker Worker) {
			defer wg.Done()
			worker.Run(ctx)
		}(worker)
	}
	wg.Wait()
}

// Len reports how many workers are enabled.
func (w *Workers) Len() int {
	return len(w.workers)
}
