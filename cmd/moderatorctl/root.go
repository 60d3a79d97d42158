package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Global flags, shared by every subcommand.
var (
	serverURL string
	outputFmt string
	actor     string
	noColor   bool
)

func defaultServerURL() string {
	if u := os.Getenv("MODERATOR_SERVER"); u != "" {
		return u
	}
	return "http://localhost:8080"
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "moderatorctl",
		Short: "CLI for the MineLy moderator dashboard",
		Long: `moderatorctl talks to a running moderator-server.

It lists and inspects checklists, reports, users and videos, moves reports
and videos through their status lifecycle, and reads the moderation history.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if noColor {
				color.NoColor = true
			}
			return validateOutput()
		},
	}

	cmd.PersistentFlags().StringVar(&serverURL, "server", defaultServerURL(), "Moderator server URL (env MODERATOR_SERVER)")
	cmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "table", "Output format: table, json, yaml")
	cmd.PersistentFlags().StringVar(&actor, "as", "", "Principal recorded for status changes (sent as X-User-Principal)")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	cmd.AddCommand(checklistsCmd())
	cmd.AddCommand(reportsCmd())
	cmd.AddCommand(usersCmd())
	cmd.AddCommand(videosCmd())
	cmd.AddCommand(statsCmd())
	cmd.AddCommand(historyCmd())
	cmd.AddCommand(healthCmd())
	return cmd
}
