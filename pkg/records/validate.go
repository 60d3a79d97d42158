package records

import (
	"errors"
	"fmt"
)

// Validate checks the dataset invariants: ids unique per collection, enum
// fields within their value sets, percentages and counters in range. All
// problems are returned joined.
func Validate(ds Dataset) error {
	var errs []error

	errs = append(errs, uniqueIDs("checklist", ds.Checklists)...)
	for _, c := range ds.Checklists {
		if c.ID == "" {
			errs = append(errs, errors.New("checklist: empty id"))
		}
		if !c.Status.Valid() {
			errs = append(errs, fmt.Errorf("checklist %s: unknown status %q", c.ID, c.Status))
		}
		if c.CompletionRate < 0 || c.CompletionRate > 100 {
			errs = append(errs, fmt.Errorf("checklist %s: completionRate %d outside 0..100", c.ID, c.CompletionRate))
		}
	}

	errs = append(errs, uniqueIDs("report", ds.Reports)...)
	for _, r := range ds.Reports {
		if r.ID == "" {
			errs = append(errs, errors.New("report: empty id"))
		}
		if !r.Type.Valid() {
			errs = append(errs, fmt.Errorf("report %s: unknown type %q", r.ID, r.Type))
		}
		if !r.Priority.Valid() {
			errs = append(errs, fmt.Errorf("report %s: unknown priority %q", r.ID, r.Priority))
		}
		if !r.Status.Valid() {
			errs = append(errs, fmt.Errorf("report %s: unknown status %q", r.ID, r.Status))
		}
		if r.Attachments < 0 {
			errs = append(errs, fmt.Errorf("report %s: negative attachments", r.ID))
		}
	}

	errs = append(errs, uniqueIDs("user", ds.Users)...)
	for _, u := range ds.Users {
		if u.ID == "" {
			errs = append(errs, errors.New("user: empty id"))
		}
		if !u.Role.Valid() {
			errs = append(errs, fmt.Errorf("user %s: unknown role %q", u.ID, u.Role))
		}
		if !u.Shift.Valid() {
			errs = append(errs, fmt.Errorf("user %s: unknown shift %q", u.ID, u.Shift))
		}
		if !u.Status.Valid() {
			errs = append(errs, fmt.Errorf("user %s: unknown status %q", u.ID, u.Status))
		}
		if u.CompletedChecklists < 0 || u.PendingReports < 0 {
			errs = append(errs, fmt.Errorf("user %s: negative counters", u.ID))
		}
	}

	errs = append(errs, uniqueIDs("video", ds.Videos)...)
	for _, v := range ds.Videos {
		if v.ID == "" {
			errs = append(errs, errors.New("video: empty id"))
		}
		if !v.Category.Valid() {
			errs = append(errs, fmt.Errorf("video %s: unknown category %q", v.ID, v.Category))
		}
		if !v.Status.Valid() {
			errs = append(errs, fmt.Errorf("video %s: unknown status %q", v.ID, v.Status))
		}
		if v.Views < 0 {
			errs = append(errs, fmt.Errorf("video %s: negative views", v.ID))
		}
		if _, err := ParseDuration(v.Duration); err != nil {
			errs = append(errs, fmt.Errorf("video %s: %w", v.ID, err))
		}
	}

	for _, a := range ds.Activity {
		if !a.Type.Valid() {
			errs = append(errs, fmt.Errorf("activity %d: unknown type %q", a.ID, a.Type))
		}
		if !a.Status.Valid() {
			errs = append(errs, fmt.Errorf("activity %d: unknown status %q", a.ID, a.Status))
		}
	}

	if ds.Stats.SafetyScore < 0 || ds.Stats.SafetyScore > 100 {
		errs = append(errs, fmt.Errorf("stats: safetyScore %d outside 0..100", ds.Stats.SafetyScore))
	}

	return errors.Join(errs...)
}

func uniqueIDs[T Record](kind string, items []T) []error {
	var errs []error
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		id := it.RecordID()
		if _, dup := seen[id]; dup {
			errs = append(errs, fmt.Errorf("%s: duplicate id %q", kind, id))
			continue
		}
		seen[id] = struct{}{}
	}
	return errs
}
