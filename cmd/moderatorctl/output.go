package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/minely/moderator/pkg/presentation"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

func validateOutput() error {
	switch outputFmt {
	case formatTable, formatJSON, formatYAML:
		return nil
	}
	return fmt.Errorf("unknown output format %q (want %s, %s or %s)", outputFmt, formatTable, formatJSON, formatYAML)
}

func isStructured() bool {
	return outputFmt != formatTable
}

// printOutput writes v as JSON or YAML. YAML keys follow the json tags.
func printOutput(w io.Writer, v any) error {
	if outputFmt == formatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	enc.SetIndent(2)
	return enc.Encode(generic)
}

func printTable(w io.Writer, headers []string, rows [][]string) {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, strings.ToUpper(strings.Join(headers, "\t")))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
}

func truncate(s string, n int) string {
	switch {
	case len(s) <= n:
		return s
	case n <= 3:
		return s[:n]
	}
	return s[:n-3] + "..."
}

// terminalColor maps a presentation class token to a terminal colour by its
// foreground hue.
func terminalColor(class string) *color.Color {
	switch {
	case strings.Contains(class, "text-white"), strings.Contains(class, "-red-"):
		return color.New(color.FgRed)
	case strings.Contains(class, "-orange-"), strings.Contains(class, "-yellow-"):
		return color.New(color.FgYellow)
	case strings.Contains(class, "-green-"):
		return color.New(color.FgGreen)
	case strings.Contains(class, "-blue-"):
		return color.New(color.FgBlue)
	case strings.Contains(class, "-purple-"):
		return color.New(color.FgMagenta)
	default:
		return color.New(color.FgWhite)
	}
}

// styled renders an enum value with the colour the dashboard uses for it.
func styled(kind presentation.Kind, value string) string {
	return terminalColor(presentation.ColorFor(kind, value)).Sprint(presentation.StatusText(value))
}
