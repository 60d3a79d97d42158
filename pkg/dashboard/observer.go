package dashboard

import (
	"context"
	"time"
)

// Outcome is the result of an attempted status change.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeDenied  Outcome = "denied"
)

// TransitionEvent describes one attempted status change.
type TransitionEvent struct {
	Section  string
	RecordID string
	From     string
	To       string
	Actor    string
	Reason   string
	Outcome  Outcome
	// Changed is false for denied attempts and same-status no-ops.
	Changed bool
	// Code is the transition error code when Outcome is denied.
	Code string
	At   time.Time
}

// TransitionObserver is notified after every status change attempt on a
// known record. Observers run synchronously and must not block for long.
type TransitionObserver interface {
	OnTransition(ctx context.Context, ev TransitionEvent)
}

// ObserverFunc adapts a function to TransitionObserver.
type ObserverFunc func(ctx context.Context, ev TransitionEvent)

// OnTransition implements TransitionObserver.
func (f ObserverFunc) OnTransition(ctx context.Context, ev TransitionEvent) {
	f(ctx, ev)
}

type observers []TransitionObserver

func (o observers) notify(ctx context.Context, ev TransitionEvent) {
	for _, obs := range o {
		obs.OnTransition(ctx, ev)
	}
}
