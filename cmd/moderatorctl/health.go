package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

type probeResult struct {
	Status string         `json:"status" yaml:"status"`
	Uptime string         `json:"uptime,omitempty" yaml:"uptime,omitempty"`
	Checks map[string]any `json:"checks,omitempty" yaml:"checks,omitempty"`
	Error  string         `json:"error,omitempty" yaml:"error,omitempty"`
}

func healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server liveness and readiness",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newClient()

			var live probeResult
			if err := c.getJSON("/healthz", &live); err != nil {
				return fmt.Errorf("server unreachable: %w", err)
			}
			// A failing readiness probe still prints: the database may be starting.
			var ready probeResult
			if err := c.getJSON("/readyz", &ready); err != nil {
				ready = probeResult{Status: "unknown", Error: err.Error()}
			}

			out := cmd.OutOrStdout()
			if isStructured() {
				return printOutput(out, map[string]probeResult{"health": live, "readiness": ready})
			}
			printTable(out, []string{"Check", "Status"}, [][]string{
				{"Liveness", live.Status},
				{"Uptime", live.Uptime},
				{"Readiness", ready.Status},
			})
			return nil
		},
	}
}
