package records

// ChecklistStatus represents the display state of a checklist.
type ChecklistStatus string

const (
	ChecklistActive   ChecklistStatus = "active"
	ChecklistDraft    ChecklistStatus = "draft"
	ChecklistArchived ChecklistStatus = "archived"
)

// ReportType classifies a submitted safety report.
type ReportType string

const (
	ReportHazard      ReportType = "hazard"
	ReportIncident    ReportType = "incident"
	ReportMaintenance ReportType = "maintenance"
	ReportCompliance  ReportType = "compliance"
)

// Priority represents report urgency.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// ReportStatus represents the moderation state of a report.
type ReportStatus string

const (
	ReportPending     ReportStatus = "pending"
	ReportUnderReview ReportStatus = "under_review"
	ReportResolved    ReportStatus = "resolved"
	ReportClosed      ReportStatus = "closed"
)

// Role represents a platform user's role.
type Role string

const (
	RoleWorker        Role = "worker"
	RoleSupervisor    Role = "supervisor"
	RoleSafetyOfficer Role = "safety_officer"
	RoleAdmin         Role = "admin"
)

// Shift is the work shift a user is assigned to.
type Shift string

const (
	ShiftMorning   Shift = "morning"
	ShiftAfternoon Shift = "afternoon"
	ShiftNight     Shift = "night"
)

// UserStatus represents account state.
type UserStatus string

const (
	UserActive    UserStatus = "active"
	UserInactive  UserStatus = "inactive"
	UserSuspended UserStatus = "suspended"
)

// VideoCategory classifies training content.
type VideoCategory string

const (
	VideoSafety    VideoCategory = "safety"
	VideoTraining  VideoCategory = "training"
	VideoEquipment VideoCategory = "equipment"
	VideoEmergency VideoCategory = "emergency"
)

// VideoStatus represents the publication state of a video.
type VideoStatus string

const (
	VideoDraft    VideoStatus = "draft"
	VideoActive   VideoStatus = "active"
	VideoArchived VideoStatus = "archived"
)

// ActivityType is the source of a recent-activity entry.
type ActivityType string

const (
	ActivityChecklist ActivityType = "checklist"
	ActivityReport    ActivityType = "report"
	ActivityUser      ActivityType = "user"
	ActivityIncident  ActivityType = "incident"
)

// ActivityStatus is the badge shown next to a recent-activity entry.
type ActivityStatus string

const (
	ActivityCompleted ActivityStatus = "completed"
	ActivityPending   ActivityStatus = "pending"
	ActivityInfo      ActivityStatus = "info"
	ActivityWarning   ActivityStatus = "warning"
)

// Value sets, in display order.
var (
	ChecklistStatuses = []ChecklistStatus{ChecklistActive, ChecklistDraft, ChecklistArchived}
	ReportTypes       = []ReportType{ReportHazard, ReportIncident, ReportMaintenance, ReportCompliance}
	Priorities        = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}
	ReportStatuses    = []ReportStatus{ReportPending, ReportUnderReview, ReportResolved, ReportClosed}
	Roles             = []Role{RoleWorker, RoleSupervisor, RoleSafetyOfficer, RoleAdmin}
	Shifts            = []Shift{ShiftMorning, ShiftAfternoon, ShiftNight}
	UserStatuses      = []UserStatus{UserActive, UserInactive, UserSuspended}
	VideoCategories   = []VideoCategory{VideoSafety, VideoTraining, VideoEquipment, VideoEmergency}
	VideoStatuses     = []VideoStatus{VideoActive, VideoDraft, VideoArchived}
	ActivityTypes     = []ActivityType{ActivityChecklist, ActivityReport, ActivityUser, ActivityIncident}
	ActivityStatuses  = []ActivityStatus{ActivityCompleted, ActivityPending, ActivityInfo, ActivityWarning}

	// ChecklistCategories are the categories the dashboard knows how to style.
	// Checklist.Category itself is free text.
	ChecklistCategories = []string{"Safety", "Maintenance", "Environment"}
)

func (s ChecklistStatus) Valid() bool { return contains(ChecklistStatuses, s) }
func (t ReportType) Valid() bool      { return contains(ReportTypes, t) }
func (p Priority) Valid() bool        { return contains(Priorities, p) }
func (s ReportStatus) Valid() bool    { return contains(ReportStatuses, s) }
func (r Role) Valid() bool            { return contains(Roles, r) }
func (s Shift) Valid() bool           { return contains(Shifts, s) }
func (s UserStatus) Valid() bool      { return contains(UserStatuses, s) }
func (c VideoCategory) Valid() bool   { return contains(VideoCategories, c) }
func (s VideoStatus) Valid() bool     { return contains(VideoStatuses, s) }
func (t ActivityType) Valid() bool    { return contains(ActivityTypes, t) }
func (s ActivityStatus) Valid() bool  { return contains(ActivityStatuses, s) }

// Strings converts a typed value set to plain strings.
func Strings[S ~string](values []S) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

func contains[S comparable](values []S, v S) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
