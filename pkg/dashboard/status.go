package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/minely/moderator/pkg/lifecycle"
	"github.com/minely/moderator/pkg/records"
)

// StatusSection is a Section whose records carry a status that moderators
// can move through a lifecycle machine.
type StatusSection[T records.Record, S ~string] struct {
	*Section[T]
	machine    *lifecycle.Machine[S]
	status     func(T) S
	withStatus func(T, S) T
	observers  observers
	now        func() time.Time
	logger     *slog.Logger
}

// Machine returns the lifecycle machine validating this section.
func (s *StatusSection[T, S]) Machine() *lifecycle.Machine[S] { return s.machine }

// Actions returns the status buttons offered for r.
func (s *StatusSection[T, S]) Actions(r T) []lifecycle.TransitionRule[S] {
	return s.machine.Actions(s.status(r))
}

// SetStatus moves record id to status to. Every other field and every other
// record is left untouched. An unknown id is a silent no-op reported as
// found=false. A rejected transition returns a *lifecycle.TransitionError and
// leaves the store unchanged. Applying the current status again succeeds
// without changing anything.
func (s *StatusSection[T, S]) SetStatus(ctx context.Context, id string, to S, actor, reason string) (T, bool, error) {
	before, after, found, err := s.store.Replace(id, func(r T) (T, bool, error) {
		from := s.status(r)
		if err := s.machine.ValidateTransition(from, to); err != nil {
			return r, false, err
		}
		if from == to {
			return r, false, nil
		}
		return s.withStatus(r, to), true, nil
	})
	if !found {
		s.logger.Debug("status change for unknown record ignored", "section", s.meta.Name, "id", id)
		return after, false, nil
	}

	ev := TransitionEvent{
		Section:  s.meta.Name,
		RecordID: id,
		From:     string(s.status(before)),
		To:       string(to),
		Actor:    actor,
		Reason:   reason,
		At:       s.now(),
	}

	if err != nil {
		var te *lifecycle.TransitionError
		if !errors.As(err, &te) {
			return before, true, err
		}
		ev.Outcome = OutcomeDenied
		ev.Code = te.Code
		s.logger.Info("status change denied",
			"section", ev.Section, "id", id, "from", ev.From, "to", ev.To, "code", te.Code, "actor", actor)
		s.observers.notify(ctx, ev)
		return before, true, err
	}

	ev.Outcome = OutcomeSuccess
	ev.Changed = s.status(before) != s.status(after)
	if ev.Changed {
		s.logger.Info("status changed",
			"section", ev.Section, "id", id, "from", ev.From, "to", ev.To, "actor", actor)
	}
	s.observers.notify(ctx, ev)
	return after, true, nil
}

// SetStatusString is SetStatus for untyped input such as form values.
func (s *StatusSection[T, S]) SetStatusString(ctx context.Context, id, to, actor, reason string) (T, bool, error) {
	return s.SetStatus(ctx, id, S(to), actor, reason)
}
