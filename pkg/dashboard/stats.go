package dashboard

import (
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/minely/moderator/pkg/records"
)

// ChecklistStats summarises the checklist section.
type ChecklistStats struct {
	Total             int `json:"total" yaml:"total"`
	Active            int `json:"active" yaml:"active"`
	Draft             int `json:"draft" yaml:"draft"`
	Archived          int `json:"archived" yaml:"archived"`
	AverageCompletion int `json:"averageCompletion" yaml:"averageCompletion"`
}

// ReportStats summarises the reports section.
type ReportStats struct {
	Total       int `json:"total" yaml:"total"`
	Pending     int `json:"pending" yaml:"pending"`
	UnderReview int `json:"underReview" yaml:"underReview"`
	Resolved    int `json:"resolved" yaml:"resolved"`
}

// UserStats summarises the users section.
type UserStats struct {
	Total       int `json:"total" yaml:"total"`
	Active      int `json:"active" yaml:"active"`
	Workers     int `json:"workers" yaml:"workers"`
	Supervisors int `json:"supervisors" yaml:"supervisors"`
}

// VideoStats summarises the videos section.
type VideoStats struct {
	Total      int `json:"total" yaml:"total"`
	Active     int `json:"active" yaml:"active"`
	TotalViews int `json:"totalViews" yaml:"totalViews"`
	Categories int `json:"categories" yaml:"categories"`
}

// ChecklistStatsOf computes checklist stats. The average completion rate is
// rounded down and is zero for an empty list.
func ChecklistStatsOf(cs []records.Checklist) ChecklistStats {
	st := ChecklistStats{Total: len(cs)}
	sum := 0
	for _, c := range cs {
		switch c.Status {
		case records.ChecklistActive:
			st.Active++
		case records.ChecklistDraft:
			st.Draft++
		case records.ChecklistArchived:
			st.Archived++
		}
		sum += c.CompletionRate
	}
	if len(cs) > 0 {
		st.AverageCompletion = sum / len(cs)
	}
	return st
}

// ReportStatsOf computes report stats.
func ReportStatsOf(rs []records.Report) ReportStats {
	st := ReportStats{Total: len(rs)}
	for _, r := range rs {
		switch r.Status {
		case records.ReportPending:
			st.Pending++
		case records.ReportUnderReview:
			st.UnderReview++
		case records.ReportResolved:
			st.Resolved++
		}
	}
	return st
}

// UserStatsOf computes user stats.
func UserStatsOf(us []records.User) UserStats {
	st := UserStats{Total: len(us)}
	for _, u := range us {
		if u.Status == records.UserActive {
			st.Active++
		}
		switch u.Role {
		case records.RoleWorker:
			st.Workers++
		case records.RoleSupervisor:
			st.Supervisors++
		}
	}
	return st
}

// VideoStatsOf computes video stats. Categories counts distinct values.
func VideoStatsOf(vs []records.Video) VideoStats {
	st := VideoStats{Total: len(vs)}
	cats := mapset.NewThreadUnsafeSet[records.VideoCategory]()
	for _, v := range vs {
		if v.Status == records.VideoActive {
			st.Active++
		}
		st.TotalViews += v.Views
		cats.Add(v.Category)
	}
	st.Categories = cats.Cardinality()
	return st
}
