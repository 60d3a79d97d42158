// Package presentation maps enum values to display class tokens and icon
// names, and formats dates and labels for the dashboard.
package presentation

import (
	"sort"

	"github.com/minely/moderator/pkg/records"
)

// Kind names a lookup table.
type Kind string

const (
	KindReportType        Kind = "report_type"
	KindPriority          Kind = "priority"
	KindReportStatus      Kind = "report_status"
	KindChecklistStatus   Kind = "checklist_status"
	KindChecklistCategory Kind = "checklist_category"
	KindRole              Kind = "role"
	KindUserStatus        Kind = "user_status"
	KindShift             Kind = "shift"
	KindVideoCategory     Kind = "video_category"
	KindVideoStatus       Kind = "video_status"
	KindActivityType      Kind = "activity_type"
	KindActivityStatus    Kind = "activity_status"
	KindTab               Kind = "tab"
)

// Style is the class token and icon name rendered for a value.
type Style struct {
	Class string `json:"class" yaml:"class"`
	Icon  string `json:"icon" yaml:"icon"`
}

// Table is the mapping for one kind plus its fallback.
type Table struct {
	Styles   map[string]Style `json:"styles" yaml:"styles"`
	Fallback Style            `json:"fallback" yaml:"fallback"`
}

// Neutral is returned for kinds that have no table.
var Neutral = Style{Class: "bg-gray-100 text-gray-800", Icon: "circle"}

var tables = map[Kind]Table{
	KindReportType: {
		Styles: map[string]Style{
			string(records.ReportHazard):      {"bg-red-100 text-red-800", "alert-triangle"},
			string(records.ReportIncident):    {"bg-orange-100 text-orange-800", "alert-triangle"},
			string(records.ReportMaintenance): {"bg-blue-100 text-blue-800", "wrench"},
			string(records.ReportCompliance):  {"bg-green-100 text-green-800", "bar-chart-3"},
		},
		Fallback: Style{"bg-gray-100 text-gray-800", "file-text"},
	},
	KindPriority: {
		Styles: map[string]Style{
			string(records.PriorityCritical): {"bg-red-500 text-white", "alert-octagon"},
			string(records.PriorityHigh):     {"bg-red-100 text-red-800", "arrow-up"},
			string(records.PriorityMedium):   {"bg-yellow-100 text-yellow-800", "minus"},
			string(records.PriorityLow):      {"bg-green-100 text-green-800", "arrow-down"},
		},
		Fallback: Style{"bg-gray-100 text-gray-800", "minus"},
	},
	KindReportStatus: {
		Styles: map[string]Style{
			string(records.ReportPending):     {"bg-yellow-100 text-yellow-800", "clock"},
			string(records.ReportUnderReview): {"bg-blue-100 text-blue-800", "eye"},
			string(records.ReportResolved):    {"bg-green-100 text-green-800", "check-circle"},
			string(records.ReportClosed):      {"bg-gray-100 text-gray-800", "archive"},
		},
		Fallback: Style{"bg-gray-100 text-gray-800", "circle"},
	},
	KindChecklistStatus: {
		Styles: map[string]Style{
			string(records.ChecklistActive):   {"bg-green-100 text-green-800", "check-circle"},
			string(records.ChecklistDraft):    {"bg-yellow-100 text-yellow-800", "edit"},
			string(records.ChecklistArchived): {"bg-gray-100 text-gray-800", "archive"},
		},
		Fallback: Style{"bg-gray-100 text-gray-800", "circle"},
	},
	KindChecklistCategory: {
		Styles: map[string]Style{
			"Safety":      {"bg-red-50 text-red-700 border-red-200", "shield"},
			"Maintenance": {"bg-blue-50 text-blue-700 border-blue-200", "wrench"},
			"Environment": {"bg-green-50 text-green-700 border-green-200", "leaf"},
		},
		Fallback: Style{"bg-gray-50 text-gray-700 border-gray-200", "clipboard-list"},
	},
	KindRole: {
		Styles: map[string]Style{
			string(records.RoleAdmin):         {"bg-purple-100 text-purple-800", "shield"},
			string(records.RoleSafetyOfficer): {"bg-red-100 text-red-800", "shield-check"},
			string(records.RoleSupervisor):    {"bg-blue-100 text-blue-800", "user-cog"},
			string(records.RoleWorker):        {"bg-green-100 text-green-800", "hard-hat"},
		},
		Fallback: Style{"bg-gray-100 text-gray-800", "user"},
	},
	KindUserStatus: {
		Styles: map[string]Style{
			string(records.UserActive):    {"bg-green-100 text-green-800", "user-check"},
			string(records.UserInactive):  {"bg-yellow-100 text-yellow-800", "user-minus"},
			string(records.UserSuspended): {"bg-red-100 text-red-800", "user-x"},
		},
		Fallback: Style{"bg-gray-100 text-gray-800", "user"},
	},
	KindShift: {
		Styles: map[string]Style{
			string(records.ShiftMorning):   {"bg-yellow-50 text-yellow-700", "sunrise"},
			string(records.ShiftAfternoon): {"bg-orange-50 text-orange-700", "sun"},
			string(records.ShiftNight):     {"bg-blue-50 text-blue-700", "moon"},
		},
		Fallback: Style{"bg-gray-50 text-gray-700", "clock"},
	},
	KindVideoCategory: {
		Styles: map[string]Style{
			string(records.VideoSafety):    {"bg-red-100 text-red-800", "shield"},
			string(records.VideoTraining):  {"bg-blue-100 text-blue-800", "graduation-cap"},
			string(records.VideoEquipment): {"bg-purple-100 text-purple-800", "settings"},
			string(records.VideoEmergency): {"bg-orange-100 text-orange-800", "siren"},
		},
		Fallback: Style{"bg-gray-100 text-gray-800", "video"},
	},
	KindVideoStatus: {
		Styles: map[string]Style{
			string(records.VideoActive):   {"bg-green-100 text-green-800", "play-circle"},
			string(records.VideoDraft):    {"bg-yellow-100 text-yellow-800", "edit"},
			string(records.VideoArchived): {"bg-gray-100 text-gray-800", "archive"},
		},
		Fallback: Style{"bg-gray-100 text-gray-800", "video"},
	},
	KindActivityType: {
		Styles: map[string]Style{
			string(records.ActivityChecklist): {"text-green-600", "check-circle"},
			string(records.ActivityReport):    {"text-blue-600", "file-text"},
			string(records.ActivityUser):      {"text-purple-600", "user"},
			string(records.ActivityIncident):  {"text-red-600", "alert-triangle"},
		},
		Fallback: Style{"text-gray-600", "activity"},
	},
	KindActivityStatus: {
		Styles: map[string]Style{
			string(records.ActivityCompleted): {"bg-green-100 text-green-800", "check-circle"},
			string(records.ActivityPending):   {"bg-yellow-100 text-yellow-800", "clock"},
			string(records.ActivityInfo):      {"bg-blue-100 text-blue-800", "info"},
			string(records.ActivityWarning):   {"bg-red-100 text-red-800", "alert-triangle"},
		},
		Fallback: Style{"bg-gray-100 text-gray-800", "circle"},
	},
	KindTab: {
		Styles: map[string]Style{
			"dashboard":  {"text-orange-600", "bar-chart-3"},
			"checklists": {"text-orange-600", "check-square"},
			"reports":    {"text-orange-600", "file-text"},
			"users":      {"text-orange-600", "users"},
			"videos":     {"text-orange-600", "video"},
		},
		Fallback: Style{"text-gray-600", "bar-chart-3"},
	},
}

// Lookup returns the style for value under kind, or the kind's fallback.
func Lookup(kind Kind, value string) Style {
	t, ok := tables[kind]
	if !ok {
		return Neutral
	}
	if s, ok := t.Styles[value]; ok {
		return s
	}
	return t.Fallback
}

// ColorFor returns the class token for value.
func ColorFor(kind Kind, value string) string {
	return Lookup(kind, value).Class
}

// IconFor returns the icon name for value.
func IconFor(kind Kind, value string) string {
	return Lookup(kind, value).Icon
}

// Kinds returns every known kind, sorted.
func Kinds() []Kind {
	out := make([]Kind, 0, len(tables))
	for k := range tables {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Tables returns a copy of all lookup tables, keyed by kind.
func Tables() map[Kind]Table {
	out := make(map[Kind]Table, len(tables))
	for k, t := range tables {
		styles := make(map[string]Style, len(t.Styles))
		for v, s := range t.Styles {
			styles[v] = s
		}
		out[k] = Table{Styles: styles, Fallback: t.Fallback}
	}
	return out
}
