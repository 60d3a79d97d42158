package main

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/minely/moderator/pkg/dashboard"
	"github.com/minely/moderator/pkg/presentation"
	"github.com/minely/moderator/pkg/records"
)

// sectionSpec describes how one section is listed and printed.
type sectionSpec[T records.Record] struct {
	name     string // plural, also the API path
	singular string
	filterBy string
	filters  []string
	headers  []string
	row      func(T) []string
	// statusKind is set for sections with a status lifecycle.
	statusKind presentation.Kind
	status     func(T) string
}

func buildSectionCmd[T records.Record](spec sectionSpec[T]) *cobra.Command {
	cmd := &cobra.Command{
		Use:   spec.name,
		Short: fmt.Sprintf("Inspect %s", spec.name),
	}
	cmd.AddCommand(buildListCmd(spec))
	cmd.AddCommand(buildGetCmd(spec))
	if spec.status != nil {
		cmd.AddCommand(buildSetStatusCmd(spec))
	}
	return cmd
}

func buildListCmd[T records.Record](spec sectionSpec[T]) *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List %s", spec.name),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/" + spec.name
			if filter != "" && filter != dashboard.FilterAll {
				path += "?" + url.Values{"filter": {filter}}.Encode()
			}

			var resp listResponse[T]
			if err := newClient().getJSON(path, &resp); err != nil {
				return fmt.Errorf("failed to list %s: %w", spec.name, err)
			}

			out := cmd.OutOrStdout()
			if isStructured() {
				return printOutput(out, resp)
			}
			if len(resp.Items) == 0 {
				if resp.EmptyState != nil {
					fmt.Fprintf(out, "%s. %s\n", resp.EmptyState.Title, resp.EmptyState.Message)
				} else {
					fmt.Fprintf(out, "No %s found.\n", spec.name)
				}
				return nil
			}

			rows := make([][]string, len(resp.Items))
			for i, item := range resp.Items {
				rows[i] = spec.row(item)
			}
			printTable(out, spec.headers, rows)
			return nil
		},
	}
	cmd.Flags().StringVar(&filter, "filter", dashboard.FilterAll,
		fmt.Sprintf("Filter by %s: %s", spec.filterBy, strings.Join(append([]string{dashboard.FilterAll}, spec.filters...), ", ")))
	return cmd
}

func buildGetCmd[T records.Record](spec sectionSpec[T]) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: fmt.Sprintf("Show one %s", spec.singular),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var item T
			if err := newClient().getJSON("/api/v1/"+spec.name+"/"+url.PathEscape(args[0]), &item); err != nil {
				return fmt.Errorf("failed to get %s %s: %w", spec.singular, args[0], err)
			}

			out := cmd.OutOrStdout()
			if isStructured() {
				return printOutput(out, item)
			}
			row := spec.row(item)
			rows := make([][]string, len(spec.headers))
			for i, h := range spec.headers {
				rows[i] = []string{h, row[i]}
			}
			printTable(out, []string{"Field", "Value"}, rows)
			return nil
		},
	}
}

func buildSetStatusCmd[T records.Record](spec sectionSpec[T]) *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "set-status <id> <status>",
		Short: fmt.Sprintf("Move a %s to another status", spec.singular),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, status := args[0], args[1]

			var item T
			err := newClient().postJSON("/api/v1/"+spec.name+"/"+url.PathEscape(id)+"/status",
				statusRequest{Status: status, Reason: reason}, &item)
			if err != nil {
				return fmt.Errorf("failed to set status of %s %s: %w", spec.singular, id, err)
			}

			out := cmd.OutOrStdout()
			if isStructured() {
				return printOutput(out, item)
			}
			fmt.Fprintf(out, "%s %s is now %s\n", spec.singular, id, styled(spec.statusKind, spec.status(item)))
			return nil
		},
	}
	cmd.Flags().StringVar(&reason, "reason", "", "Reason recorded in the moderation history")
	return cmd
}

func checklistsCmd() *cobra.Command {
	return buildSectionCmd(sectionSpec[records.Checklist]{
		name:     dashboard.SectionChecklists,
		singular: "checklist",
		filterBy: "status",
		filters:  records.Strings(records.ChecklistStatuses),
		headers:  []string{"ID", "Title", "Category", "Status", "Items", "Completion", "Created"},
		row: func(c records.Checklist) []string {
			return []string{
				c.ID,
				truncate(c.Title, 40),
				c.Category,
				styled(presentation.KindChecklistStatus, string(c.Status)),
				strconv.Itoa(len(c.Items)),
				fmt.Sprintf("%d%%", c.CompletionRate),
				presentation.FormatDate(c.CreatedAt),
			}
		},
	})
}

func reportsCmd() *cobra.Command {
	return buildSectionCmd(sectionSpec[records.Report]{
		name:     dashboard.SectionReports,
		singular: "report",
		filterBy: "status",
		filters:  records.Strings(records.ReportStatuses),
		headers:  []string{"ID", "Title", "Type", "Priority", "Status", "Reported By", "Created"},
		row: func(r records.Report) []string {
			return []string{
				r.ID,
				truncate(r.Title, 40),
				styled(presentation.KindReportType, string(r.Type)),
				styled(presentation.KindPriority, string(r.Priority)),
				styled(presentation.KindReportStatus, string(r.Status)),
				r.ReportedBy,
				presentation.FormatDateTime(r.CreatedAt),
			}
		},
		statusKind: presentation.KindReportStatus,
		status:     func(r records.Report) string { return string(r.Status) },
	})
}

func usersCmd() *cobra.Command {
	return buildSectionCmd(sectionSpec[records.User]{
		name:     dashboard.SectionUsers,
		singular: "user",
		filterBy: "role",
		filters:  records.Strings(records.Roles),
		headers:  []string{"ID", "Name", "Role", "Department", "Shift", "Status", "Last Active"},
		row: func(u records.User) []string {
			return []string{
				u.ID,
				u.Name,
				styled(presentation.KindRole, string(u.Role)),
				u.Department,
				styled(presentation.KindShift, string(u.Shift)),
				styled(presentation.KindUserStatus, string(u.Status)),
				presentation.FormatLastActive(time.Now(), u.LastActive),
			}
		},
	})
}

func videosCmd() *cobra.Command {
	return buildSectionCmd(sectionSpec[records.Video]{
		name:     dashboard.SectionVideos,
		singular: "video",
		filterBy: "category",
		filters:  records.Strings(records.VideoCategories),
		headers:  []string{"ID", "Title", "Category", "Duration", "Views", "Status", "Uploaded"},
		row: func(v records.Video) []string {
			return []string{
				v.ID,
				truncate(v.Title, 40),
				styled(presentation.KindVideoCategory, string(v.Category)),
				v.Duration,
				presentation.FormatCount(v.Views),
				styled(presentation.KindVideoStatus, string(v.Status)),
				presentation.FormatDate(v.UploadDate),
			}
		},
		statusKind: presentation.KindVideoStatus,
		status:     func(v records.Video) string { return string(v.Status) },
	})
}
