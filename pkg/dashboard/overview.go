package dashboard

import (
	"github.com/minely/moderator/pkg/records"
)

// StatCard is one headline counter with its day-over-day change.
type StatCard struct {
	Title    string `json:"title"`
	Value    int    `json:"value"`
	Change   int    `json:"change"`
	Positive bool   `json:"positive"`
	Icon     string `json:"icon"`
	Class    string `json:"class"`
}

// Overview is the content of the dashboard tab.
type Overview struct {
	Stats    records.OverviewStats `json:"stats"`
	Cards    []StatCard            `json:"cards"`
	Activity []records.Activity    `json:"activity"`
}

func statCards(st records.OverviewStats, ch records.StatChange) []StatCard {
	card := func(title string, value, change int, icon, class string) StatCard {
		return StatCard{Title: title, Value: value, Change: change, Positive: change >= 0, Icon: icon, Class: class}
	}
	return []StatCard{
		card("Total Workers", st.TotalWorkers, ch.TotalWorkers, "users", "bg-blue-50 text-blue-600"),
		card("Active Checklists", st.ActiveChecklists, ch.ActiveChecklists, "check-square", "bg-green-50 text-green-600"),
		card("Pending Reports", st.PendingReports, ch.PendingReports, "file-text", "bg-orange-50 text-orange-600"),
		card("Completed Today", st.CompletedToday, ch.CompletedToday, "target", "bg-purple-50 text-purple-600"),
	}
}
