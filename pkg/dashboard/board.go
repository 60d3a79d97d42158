// Package dashboard holds the moderator dashboard's per-section state: record
// stores, filters, selection, dialog flags and validated status changes.
package dashboard

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/minely/moderator/pkg/records"
	"github.com/minely/moderator/pkg/store"
)

// Option configures a Board.
type Option func(*options)

type options struct {
	observers observers
	now       func() time.Time
	logger    *slog.Logger
}

// WithObserver registers an observer for status changes.
func WithObserver(o TransitionObserver) Option {
	return func(opts *options) { opts.observers = append(opts.observers, o) }
}

// WithClock overrides the time source used for event timestamps.
func WithClock(now func() time.Time) Option {
	return func(opts *options) { opts.now = now }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(opts *options) { opts.logger = l }
}

// Board is the whole dashboard: one section per tab plus the overview data.
type Board struct {
	Checklists *ChecklistSection
	Reports    *ReportSection
	Users      *UserSection
	Videos     *VideoSection

	overview records.OverviewStats
	changes  records.StatChange
	activity []records.Activity
	now      func() time.Time
}

// NewBoard seeds every section from ds.
func NewBoard(ds records.Dataset, opts ...Option) (*Board, error) {
	o := &options{now: time.Now, logger: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}

	checklists, err := store.New(ds.Checklists)
	if err != nil {
		return nil, fmt.Errorf("checklists: %w", err)
	}
	reports, err := store.New(ds.Reports)
	if err != nil {
		return nil, fmt.Errorf("reports: %w", err)
	}
	users, err := store.New(ds.Users)
	if err != nil {
		return nil, fmt.Errorf("users: %w", err)
	}
	videos, err := store.New(ds.Videos)
	if err != nil {
		return nil, fmt.Errorf("videos: %w", err)
	}

	activity := make([]records.Activity, len(ds.Activity))
	copy(activity, ds.Activity)

	return &Board{
		Checklists: NewSection(checklistMeta, checklists, checklistStatus),
		Reports:    newReportSection(NewSection(reportMeta, reports, reportFilterField), o),
		Users:      NewSection(userMeta, users, userRole),
		Videos:     newVideoSection(NewSection(videoMeta, videos, videoCategory), o),
		overview:   ds.Stats,
		changes:    ds.Changes,
		activity:   activity,
		now:        o.now,
	}, nil
}

// Now returns the board's current time.
func (b *Board) Now() time.Time { return b.now() }

// Overview returns the dashboard tab content.
func (b *Board) Overview() Overview {
	activity := make([]records.Activity, len(b.activity))
	copy(activity, b.activity)
	return Overview{
		Stats:    b.overview,
		Cards:    statCards(b.overview, b.changes),
		Activity: activity,
	}
}

// Stats aggregates the per-section counters.
type Stats struct {
	Overview   records.OverviewStats `json:"overview" yaml:"overview"`
	Checklists ChecklistStats        `json:"checklists" yaml:"checklists"`
	Reports    ReportStats           `json:"reports" yaml:"reports"`
	Users      UserStats             `json:"users" yaml:"users"`
	Videos     VideoStats            `json:"videos" yaml:"videos"`
}

// Stats computes the counters of every section from current snapshots.
func (b *Board) Stats() Stats {
	return Stats{
		Overview:   b.overview,
		Checklists: ChecklistStatsOf(b.Checklists.All()),
		Reports:    ReportStatsOf(b.Reports.All()),
		Users:      UserStatsOf(b.Users.All()),
		Videos:     VideoStatsOf(b.Videos.All()),
	}
}
