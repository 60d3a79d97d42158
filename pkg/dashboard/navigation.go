package dashboard

import "github.com/minely/moderator/pkg/presentation"

// Tab identifies a dashboard view.
type Tab string

const (
	TabDashboard  Tab = "dashboard"
	TabChecklists Tab = SectionChecklists
	TabReports    Tab = SectionReports
	TabUsers      Tab = SectionUsers
	TabVideos     Tab = SectionVideos
)

// Tabs lists the views in sidebar order.
var Tabs = []Tab{TabDashboard, TabChecklists, TabReports, TabUsers, TabVideos}

// ParseTab resolves a tab id. Unknown ids fall back to the dashboard.
func ParseTab(id string) Tab {
	for _, t := range Tabs {
		if string(t) == id {
			return t
		}
	}
	return TabDashboard
}

// Label is the sidebar text for the tab.
func (t Tab) Label() string {
	return presentation.Label(string(t))
}

// Icon is the sidebar icon for the tab.
func (t Tab) Icon() string {
	return presentation.IconFor(presentation.KindTab, string(t))
}

// NavItem is one rendered sidebar entry.
type NavItem struct {
	ID     Tab    `json:"id"`
	Label  string `json:"label"`
	Icon   string `json:"icon"`
	Active bool   `json:"active"`
}

// Navigation returns the sidebar entries with active marked.
func Navigation(active Tab) []NavItem {
	items := make([]NavItem, len(Tabs))
	for i, t := range Tabs {
		items[i] = NavItem{ID: t, Label: t.Label(), Icon: t.Icon(), Active: t == active}
	}
	return items
}
