// Package records defines the moderator dashboard's domain entities, their
// value sets, the built-in sample dataset and the sources that load it.
package records

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Record is anything that can live in a record store.
type Record interface {
	RecordID() string
}

// ChecklistItem is one line of a checklist.
type ChecklistItem struct {
	ID       string `json:"id" yaml:"id"`
	Text     string `json:"text" yaml:"text"`
	Required bool   `json:"required" yaml:"required"`
}

// Checklist is a safety checklist assigned to groups of workers.
// CompletionRate is a display value and is never derived from Items.
type Checklist struct {
	ID             string          `json:"id" yaml:"id"`
	Title          string          `json:"title" yaml:"title"`
	Description    string          `json:"description" yaml:"description"`
	Category       string          `json:"category" yaml:"category"`
	Items          []ChecklistItem `json:"items" yaml:"items"`
	AssignedTo     []string        `json:"assignedTo" yaml:"assignedTo"`
	Status         ChecklistStatus `json:"status" yaml:"status"`
	CreatedAt      time.Time       `json:"createdAt" yaml:"createdAt"`
	CompletionRate int             `json:"completionRate" yaml:"completionRate"`
}

// Report is a hazard, incident, maintenance or compliance report.
type Report struct {
	ID          string       `json:"id" yaml:"id"`
	Title       string       `json:"title" yaml:"title"`
	Type        ReportType   `json:"type" yaml:"type"`
	Description string       `json:"description" yaml:"description"`
	ReportedBy  string       `json:"reportedBy" yaml:"reportedBy"`
	Department  string       `json:"department" yaml:"department"`
	Priority    Priority     `json:"priority" yaml:"priority"`
	Status      ReportStatus `json:"status" yaml:"status"`
	CreatedAt   time.Time    `json:"createdAt" yaml:"createdAt"`
	Location    string       `json:"location" yaml:"location"`
	Attachments int          `json:"attachments,omitempty" yaml:"attachments,omitempty"`
}

// User is a platform member as shown to moderators.
type User struct {
	ID                  string     `json:"id" yaml:"id"`
	Name                string     `json:"name" yaml:"name"`
	Email               string     `json:"email" yaml:"email"`
	Role                Role       `json:"role" yaml:"role"`
	Department          string     `json:"department" yaml:"department"`
	Shift               Shift      `json:"shift" yaml:"shift"`
	Status              UserStatus `json:"status" yaml:"status"`
	JoinDate            time.Time  `json:"joinDate" yaml:"joinDate"`
	LastActive          time.Time  `json:"lastActive" yaml:"lastActive"`
	Certifications      []string   `json:"certifications" yaml:"certifications"`
	CompletedChecklists int        `json:"completedChecklists" yaml:"completedChecklists"`
	PendingReports      int        `json:"pendingReports" yaml:"pendingReports"`
}

// Video is a training or safety video.
type Video struct {
	ID          string        `json:"id" yaml:"id"`
	Title       string        `json:"title" yaml:"title"`
	Description string        `json:"description" yaml:"description"`
	Category    VideoCategory `json:"category" yaml:"category"`
	Duration    string        `json:"duration" yaml:"duration"` // m:ss
	Thumbnail   string        `json:"thumbnail" yaml:"thumbnail"`
	UploadDate  time.Time     `json:"uploadDate" yaml:"uploadDate"`
	Views       int           `json:"views" yaml:"views"`
	Status      VideoStatus   `json:"status" yaml:"status"`
	Tags        []string      `json:"tags" yaml:"tags"`
	UploadedBy  string        `json:"uploadedBy" yaml:"uploadedBy"`
}

func (c Checklist) RecordID() string { return c.ID }
func (r Report) RecordID() string    { return r.ID }
func (u User) RecordID() string      { return u.ID }
func (v Video) RecordID() string     { return v.ID }

// Clone returns a copy that shares no slices with c.
func (c Checklist) Clone() Checklist {
	c.Items = slices.Clone(c.Items)
	c.AssignedTo = slices.Clone(c.AssignedTo)
	return c
}

// Clone returns a copy of r. Reports hold no slices.
func (r Report) Clone() Report { return r }

// Clone returns a copy that shares no slices with u.
func (u User) Clone() User {
	u.Certifications = slices.Clone(u.Certifications)
	return u
}

// Clone returns a copy that shares no slices with v.
func (v Video) Clone() Video {
	v.Tags = slices.Clone(v.Tags)
	return v
}

// RequiredItems counts the checklist items marked as required.
func (c Checklist) RequiredItems() int {
	n := 0
	for _, it := range c.Items {
		if it.Required {
			n++
		}
	}
	return n
}

// ParseDuration parses an "m:ss" clip length.
func ParseDuration(s string) (time.Duration, error) {
	mins, secs, ok := strings.Cut(s, ":")
	if !ok || mins == "" || len(secs) != 2 {
		return 0, fmt.Errorf("invalid duration %q: expected m:ss", s)
	}
	if !digits(mins) {
		return 0, fmt.Errorf("invalid duration %q: bad minutes", s)
	}
	m, err := strconv.Atoi(mins)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: bad minutes", s)
	}
	sc, err := strconv.Atoi(secs)
	if !digits(secs) || err != nil || sc > 59 {
		return 0, fmt.Errorf("invalid duration %q: bad seconds", s)
	}
	return time.Duration(m)*time.Minute + time.Duration(sc)*time.Second, nil
}

func digits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}

// OverviewStats are the headline counters on the dashboard tab.
type OverviewStats struct {
	TotalWorkers     int `json:"totalWorkers" yaml:"totalWorkers"`
	ActiveChecklists int `json:"activeChecklists" yaml:"activeChecklists"`
	PendingReports   int `json:"pendingReports" yaml:"pendingReports"`
	CompletedToday   int `json:"completedToday" yaml:"completedToday"`
	SafetyScore      int `json:"safetyScore" yaml:"safetyScore"`
	IncidentsFree    int `json:"incidentsFree" yaml:"incidentsFree"`
}

// StatChange is the day-over-day delta shown under a stat card.
type StatChange struct {
	TotalWorkers     int `json:"totalWorkers" yaml:"totalWorkers"`
	ActiveChecklists int `json:"activeChecklists" yaml:"activeChecklists"`
	PendingReports   int `json:"pendingReports" yaml:"pendingReports"`
	CompletedToday   int `json:"completedToday" yaml:"completedToday"`
}

// Activity is one entry of the recent-activity feed.
type Activity struct {
	ID         int            `json:"id" yaml:"id"`
	Type       ActivityType   `json:"type" yaml:"type"`
	Message    string         `json:"message" yaml:"message"`
	OccurredAt time.Time      `json:"occurredAt" yaml:"occurredAt"`
	Status     ActivityStatus `json:"status" yaml:"status"`
}

// Dataset is everything the dashboard is seeded with.
type Dataset struct {
	Checklists []Checklist   `json:"checklists" yaml:"checklists"`
	Reports    []Report      `json:"reports" yaml:"reports"`
	Users      []User        `json:"users" yaml:"users"`
	Videos     []Video       `json:"videos" yaml:"videos"`
	Stats      OverviewStats `json:"stats" yaml:"stats"`
	Changes    StatChange    `json:"changes" yaml:"changes"`
	Activity   []Activity    `json:"activity" yaml:"activity"`
}
