package main

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/minely/moderator/pkg/audit"
	"github.com/minely/moderator/pkg/dashboard"
)

func historyCmd() *cobra.Command {
	var (
		section   string
		recordID  string
		byActor   string
		outcome   string
		pageSize  int
		pageToken string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List moderation history (attempted status changes)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			for k, v := range map[string]string{
				"section":   section,
				"recordId":  recordID,
				"actor":     byActor,
				"outcome":   outcome,
				"pageToken": pageToken,
			} {
				if v != "" {
					q.Set(k, v)
				}
			}
			if pageSize > 0 {
				q.Set("pageSize", strconv.Itoa(pageSize))
			}

			path := "/api/v1/history"
			if len(q) > 0 {
				path += "?" + q.Encode()
			}

			var resp audit.ListResponse
			if err := newClient().getJSON(path, &resp); err != nil {
				return fmt.Errorf("failed to list history: %w", err)
			}

			out := cmd.OutOrStdout()
			if isStructured() {
				return printOutput(out, resp)
			}
			if len(resp.Events) == 0 {
				fmt.Fprintln(out, "No moderation events found.")
				return nil
			}

			rows := make([][]string, len(resp.Events))
			for i, ev := range resp.Events {
				result := color.GreenString(ev.Outcome)
				if ev.Outcome != string(dashboard.OutcomeSuccess) {
					result = color.RedString(ev.Outcome)
				}
				rows[i] = []string{
					ev.CreatedAt,
					ev.Section,
					ev.RecordID,
					ev.From + " -> " + ev.To,
					ev.Actor,
					result,
					truncate(ev.Reason, 40),
				}
			}
			printTable(out, []string{"Time", "Section", "Record", "Change", "Actor", "Outcome", "Reason"}, rows)
			if resp.NextPageToken != "" {
				fmt.Fprintf(out, "\n%d of %d events. Next page: --page-token %s\n", len(resp.Events), resp.TotalSize, resp.NextPageToken)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&section, "section", "", "Only events of this section (reports, videos)")
	cmd.Flags().StringVar(&recordID, "record", "", "Only events of this record id")
	cmd.Flags().StringVar(&byActor, "actor", "", "Only events by this actor")
	cmd.Flags().StringVar(&outcome, "outcome", "", "Only events with this outcome (success, denied)")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "Events per page (server default when 0)")
	cmd.Flags().StringVar(&pageToken, "page-token", "", "Token of the page to fetch")
	return cmd
}
