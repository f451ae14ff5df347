package cleanup

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Sweeper is the part of game.SessionManager the worker needs.
type Sweeper interface {
	CleanupStaleSessions(ttl time.Duration) int
}

type Worker struct {
	sweeper  Sweeper
	ttl      time.Duration
	interval time.Duration
	log      zerolog.Logger
}

const (
	DefaultTTL      = time.Hour
	DefaultInterval = 10 * time.Minute
)

// NewWorker replaces a non-positive ttl or interval with the defaults;
// time.NewTicker panics on a non-positive period.
func NewWorker(s Sweeper, ttl, interval time.Duration, log zerolog.Logger) *Worker {
	if ttl <= 0 {
		log.Warn().Dur("ttl", ttl).Dur("default", DefaultTTL).Msg("non-positive session ttl, using default")
		ttl = DefaultTTL
	}
	if interval <= 0 {
		log.Warn().Dur("interval", interval).Dur("default", DefaultInterval).Msg("non-positive cleanup interval, using default")
		interval = DefaultInterval
	}
	return &Worker{sweeper: s, ttl: ttl, interval: interval, log: log}
}

// Start sweeps once right away and then on every tick until ctx is done.
// The returned channel closes when the worker has stopped.
func (w *Worker) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		w.runCleanup()
		for {
			select {
			case <-ctx.Done():
				w.log.Info().Msg("cleanup worker stopped")
				return
			case <-ticker.C:
				w.runCleanup()
			}
		}
	}()
	w.log.Info().Dur("interval", w.interval).Dur("ttl", w.ttl).Msg("cleanup worker started")
	return done
}

func (w *Worker) runCleanup() {
	removed := w.sweeper.CleanupStaleSessions(w.ttl)
	w.log.Debug().Int("removed", removed).Msg("cleanup pass")
}
