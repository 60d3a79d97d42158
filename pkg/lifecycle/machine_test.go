package lifecycle

import (
	"errors"
	"testing"

	"github.com/minely/moderator/pkg/records"
)

func TestReportMachine_ValidateTransition(t *testing.T) {
	m := ReportMachine()

	tests := []struct {
		name    string
		from    records.ReportStatus
		to      records.ReportStatus
		wantErr bool
		errCode string
	}{
		// Valid transitions
		{"pending to under_review", records.ReportPending, records.ReportUnderReview, false, ""},
		{"pending to resolved", records.ReportPending, records.ReportResolved, false, ""},
		{"under_review to resolved", records.ReportUnderReview, records.ReportResolved, false, ""},
		{"resolved to closed", records.ReportResolved, records.ReportClosed, false, ""},
		{"same state no-op", records.ReportClosed, records.ReportClosed, false, ""},

		// Denied transitions
		{"under_review to pending denied", records.ReportUnderReview, records.ReportPending, true, CodeTransitionDenied},
		{"resolved to under_review denied", records.ReportResolved, records.ReportUnderReview, true, CodeTransitionDenied},
		{"closed to pending denied", records.ReportClosed, records.ReportPending, true, CodeTransitionDenied},
		{"closed to resolved denied", records.ReportClosed, records.ReportResolved, true, CodeTransitionDenied},

		// Undefined forward jumps
		{"pending to closed invalid", records.ReportPending, records.ReportClosed, true, CodeInvalidTransition},
		{"under_review to closed invalid", records.ReportUnderReview, records.ReportClosed, true, CodeInvalidTransition},

		{"unknown target", records.ReportPending, records.ReportStatus("escalated"), true, CodeUnknownStatus},
		{"unknown same state", records.ReportStatus("x"), records.ReportStatus("x"), true, CodeUnknownStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := m.ValidateTransition(tt.from, tt.to)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTransition(%s, %s) error = %v, wantErr %v", tt.from, tt.to, err, tt.wantErr)
			}
			if tt.wantErr && tt.errCode != "" {
				var te *TransitionError
				if !errors.As(err, &te) {
					t.Errorf("expected TransitionError, got %T", err)
				} else if te.Code != tt.errCode {
					t.Errorf("expected code %s, got %s", tt.errCode, te.Code)
				}
			}
		})
	}
}

func TestVideoMachine_ValidateTransition(t *testing.T) {
	m := VideoMachine()

	tests := []struct {
		name    string
		from    records.VideoStatus
		to      records.VideoStatus
		errCode string
	}{
		{"draft to active", records.VideoDraft, records.VideoActive, ""},
		{"active to archived", records.VideoActive, records.VideoArchived, ""},
		{"active to active", records.VideoActive, records.VideoActive, ""},
		{"active to draft denied", records.VideoActive, records.VideoDraft, CodeTransitionDenied},
		{"archived to active denied", records.VideoArchived, records.VideoActive, CodeTransitionDenied},
		{"draft to archived invalid", records.VideoDraft, records.VideoArchived, CodeInvalidTransition},
		{"unknown", records.VideoDraft, records.VideoStatus("published"), CodeUnknownStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := m.ValidateTransition(tt.from, tt.to)
			if tt.errCode == "" {
				if err != nil {
					t.Errorf("ValidateTransition(%s, %s) unexpected error %v", tt.from, tt.to, err)
				}
				return
			}
			te, ok := err.(*TransitionError)
			if !ok {
				t.Fatalf("expected TransitionError, got %T", err)
			}
			if te.Code != tt.errCode {
				t.Errorf("expected code %s, got %s", tt.errCode, te.Code)
			}
			if te.From != string(tt.from) || te.To != string(tt.to) {
				t.Errorf("error carries %s->%s, want %s->%s", te.From, te.To, tt.from, tt.to)
			}
		})
	}
}

func TestReportMachine_Actions(t *testing.T) {
	m := ReportMachine()

	tests := []struct {
		from records.ReportStatus
		want []string
	}{
		{records.ReportPending, []string{ActionReview, ActionResolve}},
		{records.ReportUnderReview, []string{ActionResolve}},
		{records.ReportResolved, []string{ActionClose}},
		{records.ReportClosed, nil},
	}

	for _, tt := range tests {
		t.Run(string(tt.from), func(t *testing.T) {
			var got []string
			for _, r := range m.Actions(tt.from) {
				got = append(got, r.Action)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Actions(%s) = %v, want %v", tt.from, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Actions(%s)[%d] = %s, want %s", tt.from, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestMachine_AllowedTransitionsValidate(t *testing.T) {
	m := VideoMachine()
	for _, from := range records.VideoStatuses {
		for _, to := range m.AllowedTransitions(from) {
			if err := m.ValidateTransition(from, to); err != nil {
				t.Errorf("AllowedTransitions(%s) lists %s but validation fails: %v", from, to, err)
			}
		}
	}
	if got := m.AllowedTransitions(records.VideoArchived); len(got) != 0 {
		t.Errorf("archived should be terminal, got %v", got)
	}
}

func TestTransitionError_Error(t *testing.T) {
	err := &TransitionError{
		Code:    CodeTransitionDenied,
		From:    "closed",
		To:      "pending",
		Message: "transition from closed to pending is not allowed",
	}
	want := "transition from closed to pending is not allowed"
	if got := err.Error(); got != want {
		t.Errorf("TransitionError.Error() = %q, want %q", got, want)
	}
}
