package audit

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Store provides append-only operations for moderation events.
type Store struct {
	db *gorm.DB
}

// NewStore creates a new Store.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// AutoMigrate creates or updates the events table.
func (s *Store) AutoMigrate() error {
	if err := s.db.AutoMigrate(&Event{}); err != nil {
		return fmt.Errorf("migrate moderation events: %w", err)
	}
	return nil
}

// Append creates a new immutable event.
func (s *Store) Append(event *Event) error {
	if err := s.db.Create(event).Error; err != nil {
		return fmt.Errorf("append moderation event: %w", err)
	}
	return nil
}

// GetByID returns one event, or nil if it does not exist.
func (s *Store) GetByID(id string) (*Event, error) {
	var ev Event
	err := s.db.Where("id = ?", id).First(&ev).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get moderation event: %w", err)
	}
	return &ev, nil
}

func (s *Store) filtered(f ListFilter) *gorm.DB {
	q := s.db.Model(&Event{})
	if f.Section != "" {
		q = q.Where("section = ?", f.Section)
	}
	if f.RecordID != "" {
		q = q.Where("record_id = ?", f.RecordID)
	}
	if f.Actor != "" {
		q = q.Where("actor = ?", f.Actor)
	}
	if f.Outcome != "" {
		q = q.Where("outcome = ?", f.Outcome)
	}
	return q
}

// List returns paginated events ordered by created_at DESC (newest first).
// pageToken is an RFC3339Nano timestamp; events with created_at < pageToken
// are returned. The total is the number of events matching the filter.
func (s *Store) List(f ListFilter, pageSize int, pageToken string) ([]Event, string, int, error) {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	var totalSize int64
	if err := s.filtered(f).Count(&totalSize).Error; err != nil {
		return nil, "", 0, fmt.Errorf("count moderation events: %w", err)
	}

	query := s.filtered(f).Order("created_at DESC").Limit(pageSize + 1)
	if pageToken != "" {
		t, err := time.Parse(time.RFC3339Nano, pageToken)
		if err != nil {
			return nil, "", 0, fmt.Errorf("invalid page token: %w", err)
		}
		query = query.Where("created_at < ?", t.UTC())
	}

	var events []Event
	if err := query.Find(&events).Error; err != nil {
		return nil, "", 0, fmt.Errorf("list moderation events: %w", err)
	}

	var nextToken string
	if len(events) > pageSize {
		nextToken = events[pageSize-1].CreatedAt.UTC().Format(time.RFC3339Nano)
		events = events[:pageSize]
	}

	return events, nextToken, int(totalSize), nil
}

// ListByRecord returns the history of one record, newest first.
func (s *Store) ListByRecord(section, recordID string, pageSize int, pageToken string) ([]Event, string, int, error) {
	return s.List(ListFilter{Section: section, RecordID: recordID}, pageSize, pageToken)
}

// DeleteOlderThan deletes events created before cutoff and returns how many
// were removed.
func (s *Store) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result := s.db.Where("created_at < ?", cutoff.UTC()).Delete(&Event{})
	if result.Error != nil {
		return 0, fmt.Errorf("delete old moderation events: %w", result.Error)
	}
	return result.RowsAffected, nil
}
