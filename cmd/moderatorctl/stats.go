package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/minely/moderator/pkg/dashboard"
	"github.com/minely/moderator/pkg/presentation"
)

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show headline and per-section counters",
		Args:  cobra.NoArgs,
		RunE:  runStats,
	}
}

func runStats(cmd *cobra.Command, args []string) error {
	var st dashboard.Stats
	if err := newClient().getJSON("/api/v1/stats", &st); err != nil {
		return fmt.Errorf("failed to get stats: %w", err)
	}

	out := cmd.OutOrStdout()
	if isStructured() {
		return printOutput(out, st)
	}

	n := strconv.Itoa
	rows := [][]string{
		{"overview", "total workers", n(st.Overview.TotalWorkers)},
		{"overview", "safety score", n(st.Overview.SafetyScore) + "%"},
		{"overview", "days without incident", n(st.Overview.IncidentsFree)},
		{"checklists", "total", n(st.Checklists.Total)},
		{"checklists", "active", n(st.Checklists.Active)},
		{"checklists", "draft", n(st.Checklists.Draft)},
		{"checklists", "avg completion", n(st.Checklists.AverageCompletion) + "%"},
		{"reports", "total", n(st.Reports.Total)},
		{"reports", "pending", n(st.Reports.Pending)},
		{"reports", "under review", n(st.Reports.UnderReview)},
		{"reports", "resolved", n(st.Reports.Resolved)},
		{"users", "total", n(st.Users.Total)},
		{"users", "active", n(st.Users.Active)},
		{"users", "workers", n(st.Users.Workers)},
		{"users", "supervisors", n(st.Users.Supervisors)},
		{"videos", "total", n(st.Videos.Total)},
		{"videos", "active", n(st.Videos.Active)},
		{"videos", "total views", presentation.FormatCount(st.Videos.TotalViews)},
		{"videos", "categories", n(st.Videos.Categories)},
	}
	printTable(out, []string{"Section", "Counter", "Value"}, rows)
	return nil
}
