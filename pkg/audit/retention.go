package audit

import (
	"context"
	"log/slog"
	"time"
)

const day = 24 * time.Hour

// RetentionWorker prunes the moderation history. Events older than the
// retention window are removed once at start and then every sweep interval.
type RetentionWorker struct {
	store  *Store
	keep   time.Duration
	every  time.Duration
	clock  func() time.Time
	logger *slog.Logger
}

// RetentionOption customises a RetentionWorker.
type RetentionOption func(*RetentionWorker)

// WithSweepInterval overrides the daily sweep.
func WithSweepInterval(d time.Duration) RetentionOption {
	return func(w *RetentionWorker) {
		if d > 0 {
			w.every = d
		}
	}
}

// WithRetentionClock sets the time source used to compute the cutoff.
func WithRetentionClock(now func() time.Time) RetentionOption {
	return func(w *RetentionWorker) { w.clock = now }
}

// NewRetentionWorker keeps retentionDays of events. Zero or negative days
// disable pruning.
func NewRetentionWorker(store *Store, retentionDays int, logger *slog.Logger, opts ...RetentionOption) *RetentionWorker {
	if logger == nil {
		logger = slog.Default()
	}
	w := &RetentionWorker{
		store:  store,
		keep:   time.Duration(retentionDays) * day,
		every:  day,
		clock:  time.Now,
		logger: logger.With("component", "history-retention"),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Enabled reports whether Run does any work.
func (w *RetentionWorker) Enabled() bool {
	return w.store != nil && w.keep > 0
}

// Run blocks until ctx is cancelled.
func (w *RetentionWorker) Run(ctx context.Context) {
	if !w.Enabled() {
		w.logger.Info("pruning disabled", "retentionDays", int(w.keep/day))
		return
	}
	w.logger.Info("pruning scheduled", "retentionDays", int(w.keep/day), "every", w.every)

	w.Sweep()

	ticker := time.NewTicker(w.every)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			w.Sweep()
		case <-ctx.Done():
			w.logger.Info("pruning stopped")
			return
		}
	}
}

// Sweep deletes expired events once and returns how many were removed.
func (w *RetentionWorker) Sweep() int64 {
	cutoff := w.clock().Add(-w.keep)
	n, err := w.store.DeleteOlderThan(cutoff)
	switch {
	case err != nil:
		w.logger.Error("pruning failed", "cutoff", cutoff, "error", err)
		return 0
	case n > 0:
		w.logger.Info("pruned moderation events", "deleted", n, "cutoff", cutoff.Format(time.RFC3339))
	}
	return n
}
