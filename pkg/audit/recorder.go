package audit

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/minely/moderator/pkg/dashboard"
)

// Recorder appends a moderation event for every status change attempt.
// Write failures are logged and never reach the caller.
type Recorder struct {
	store  *Store
	logger *slog.Logger
}

// NewRecorder creates a Recorder writing to store.
func NewRecorder(store *Store, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{store: store, logger: logger}
}

// OnTransition implements dashboard.TransitionObserver.
func (r *Recorder) OnTransition(_ context.Context, ev dashboard.TransitionEvent) {
	event := &Event{
		ID:        uuid.New().String(),
		Section:   ev.Section,
		RecordID:  ev.RecordID,
		From:      ev.From,
		To:        ev.To,
		Actor:     ev.Actor,
		Outcome:   string(ev.Outcome),
		Code:      ev.Code,
		Reason:    ev.Reason,
		Changed:   ev.Changed,
		CreatedAt: ev.At.UTC(),
	}
	if err := r.store.Append(event); err != nil {
		r.logger.Error("failed to record moderation event",
			"section", ev.Section, "id", ev.RecordID, "error", err)
	}
}
