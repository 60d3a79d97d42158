// Package lifecycle validates record status transitions.
package lifecycle

import "fmt"

// Machine-readable transition error codes.
const (
	CodeUnknownStatus     = "STATUS_UNKNOWN"
	CodeTransitionDenied  = "STATUS_TRANSITION_DENIED"
	CodeInvalidTransition = "STATUS_INVALID_TRANSITION"
)

// TransitionRule defines an allowed status transition and the action label
// the dashboard shows for it.
type TransitionRule[S ~string] struct {
	From   S
	To     S
	Action string
}

// Machine validates status transitions for one record kind.
type Machine[S ~string] struct {
	states      []S
	transitions []TransitionRule[S]
	disallowed  map[S][]S
}

// NewMachine creates a machine over the given states. Transitions not listed
// in rules or disallowed are reported as invalid.
func NewMachine[S ~string](states []S, rules []TransitionRule[S], disallowed map[S][]S) *Machine[S] {
	return &Machine[S]{
		states:      states,
		transitions: rules,
		disallowed:  disallowed,
	}
}

// Known reports whether s is one of the machine's states.
func (m *Machine[S]) Known(s S) bool {
	for _, st := range m.states {
		if st == s {
			return true
		}
	}
	return false
}

// ValidateTransition checks if a transition from->to is allowed.
// Returns nil if allowed, a *TransitionError if not.
func (m *Machine[S]) ValidateTransition(from, to S) error {
	if !m.Known(to) {
		return &TransitionError{
			Code:    CodeUnknownStatus,
			From:    string(from),
			To:      string(to),
			Message: fmt.Sprintf("unknown status %q", to),
		}
	}

	// Same state is a no-op.
	if from == to {
		return nil
	}

	for _, d := range m.disallowed[from] {
		if d == to {
			return &TransitionError{
				Code:    CodeTransitionDenied,
				From:    string(from),
				To:      string(to),
				Message: fmt.Sprintf("transition from %s to %s is not allowed", from, to),
			}
		}
	}

	for _, t := range m.transitions {
		if t.From == from && t.To == to {
			return nil
		}
	}

	return &TransitionError{
		Code:    CodeInvalidTransition,
		From:    string(from),
		To:      string(to),
		Message: fmt.Sprintf("no transition defined from %s to %s", from, to),
	}
}

// AllowedTransitions returns all valid target states from the given state.
func (m *Machine[S]) AllowedTransitions(from S) []S {
	var allowed []S
	for _, t := range m.transitions {
		if t.From == from {
			allowed = append(allowed, t.To)
		}
	}
	return allowed
}

// Actions returns the rules leaving from, in declaration order.
func (m *Machine[S]) Actions(from S) []TransitionRule[S] {
	var out []TransitionRule[S]
	for _, t := range m.transitions {
		if t.From == from {
			out = append(out, t)
		}
	}
	return out
}

// TransitionError is a structured error for rejected transitions.
type TransitionError struct {
	Code    string `json:"code"`
	From    string `json:"from"`
	To      string `json:"to"`
	Message string `json:"message"`
}

func (e *TransitionError) Error() string {
	return e.Message
}
