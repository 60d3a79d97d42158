package dashboard

import (
	"github.com/minely/moderator/pkg/lifecycle"
	"github.com/minely/moderator/pkg/records"
)

// Section types used by the dashboard.
type (
	ChecklistSection = Section[records.Checklist]
	UserSection      = Section[records.User]
	ReportSection    = StatusSection[records.Report, records.ReportStatus]
	VideoSection     = StatusSection[records.Video, records.VideoStatus]
)

// Section ids. They double as tab ids.
const (
	SectionChecklists = "checklists"
	SectionReports    = "reports"
	SectionUsers      = "users"
	SectionVideos     = "videos"
)

var checklistMeta = SectionMeta{
	Name:          SectionChecklists,
	Title:         "Checklist Management",
	FilterLabel:   "Filter:",
	FilterKeys:    records.Strings(records.ChecklistStatuses),
	EmptyTitle:    "No checklists found",
	EmptyAll:      "You haven't created any checklists yet.",
	CreateLabel:   "Create Checklist",
	CreateMessage: "The checklist creation form is not available yet.",
}

var reportMeta = SectionMeta{
	Name:        SectionReports,
	Title:       "Reports Management",
	FilterLabel: "Filter by status:",
	FilterKeys:  records.Strings(records.ReportStatuses),
	EmptyTitle:  "No reports found",
	EmptyAll:    "No reports have been submitted yet.",
}

var userMeta = SectionMeta{
	Name:          SectionUsers,
	Title:         "User Management",
	FilterLabel:   "Filter by role:",
	FilterKeys:    records.Strings(records.Roles),
	EmptyTitle:    "No users found",
	EmptyAll:      "No users have been added yet.",
	CreateLabel:   "Add User",
	CreateMessage: "The user creation form is not available yet.",
}

var videoMeta = SectionMeta{
	Name:          SectionVideos,
	Title:         "Video Management",
	FilterLabel:   "Filter by category:",
	FilterKeys:    records.Strings(records.VideoCategories),
	EmptyTitle:    "No videos found",
	EmptyAll:      "No videos have been uploaded yet.",
	CreateLabel:   "Upload Video",
	CreateMessage: "The video upload form is not available yet.",
}

func checklistStatus(c records.Checklist) string { return string(c.Status) }
func userRole(u records.User) string            { return string(u.Role) }
func reportFilterField(r records.Report) string { return string(r.Status) }
func videoCategory(v records.Video) string      { return string(v.Category) }

func reportStatus(r records.Report) records.ReportStatus { return r.Status }
func videoStatus(v records.Video) records.VideoStatus    { return v.Status }

func withReportStatus(r records.Report, s records.ReportStatus) records.Report {
	r.Status = s
	return r
}

func withVideoStatus(v records.Video, s records.VideoStatus) records.Video {
	v.Status = s
	return v
}

func newReportSection(sec *Section[records.Report], o *options) *ReportSection {
	return &ReportSection{
		Section:    sec,
		machine:    lifecycle.ReportMachine(),
		status:     reportStatus,
		withStatus: withReportStatus,
		observers:  o.observers,
		now:        o.now,
		logger:     o.logger,
	}
}

func newVideoSection(sec *Section[records.Video], o *options) *VideoSection {
	return &VideoSection{
		Section:    sec,
		machine:    lifecycle.VideoMachine(),
		status:     videoStatus,
		withStatus: withVideoStatus,
		observers:  o.observers,
		now:        o.now,
		logger:     o.logger,
	}
}
