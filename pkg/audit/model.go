// Package audit records every attempted status change in an append-only
// event table and serves it back as the moderation history.
package audit

import "time"

// Event is one attempted status change.
type Event struct {
	ID       string `gorm:"primaryKey;column:id;type:varchar(36)"`
	Section  string `gorm:"column:section;index:idx_moderation_record_time,priority:1;not null"`
	RecordID string `gorm:"column:record_id;index:idx_moderation_record_time,priority:2;not null"`
	From     string `gorm:"column:from_status"`
	To       string `gorm:"column:to_status;not null"`
	Actor    string `gorm:"column:actor;index:idx_moderation_actor_time,priority:1;not null"`
	Outcome  string `gorm:"column:outcome;not null"` // success, denied
	Code     string `gorm:"column:code"`
	Reason   string `gorm:"column:reason"`
	Changed  bool   `gorm:"column:changed"`
	// CreatedAt is stored in UTC.
	CreatedAt time.Time `gorm:"column:created_at;index:idx_moderation_record_time,priority:3;index:idx_moderation_actor_time,priority:2;index"`
}

// TableName returns the GORM table name.
func (Event) TableName() string { return "moderation_events" }

// ListFilter narrows a history listing. Empty fields match everything.
type ListFilter struct {
	Section  string
	RecordID string
	Actor    string
	Outcome  string
}
