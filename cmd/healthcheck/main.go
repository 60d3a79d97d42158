// Package main provides the moderator container probe. It GETs a health URL
// (readiness by default) and exits 0 when the server answers 2xx with a
// healthy status body, 1 otherwise.
//
// Usage: healthcheck [--timeout 5s] [url]
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/pflag"
)

const defaultURL = "http://localhost:8080/readyz"

// healthyStatuses are the "status" values served by /healthz, /livez and /readyz.
var healthyStatuses = map[string]bool{"alive": true, "ready": true}

func main() {
	fs := pflag.NewFlagSet("healthcheck", pflag.ExitOnError)
	timeout := fs.Duration("timeout", 5*time.Second, "Request timeout")
	_ = fs.Parse(os.Args[1:])

	url := defaultURL
	if fs.NArg() > 0 {
		url = fs.Arg(0)
	} else if u := os.Getenv("MODERATOR_HEALTHCHECK_URL"); u != "" {
		url = u
	}

	if err := check(&http.Client{Timeout: *timeout}, url); err != nil {
		fmt.Fprintf(os.Stderr, "healthcheck failed: %v\n", err)
		os.Exit(1)
	}
}

func check(client *http.Client, url string) error {
	resp, err := client.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return fmt.Errorf("reading body: %w", err)
	}
	var payload struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return fmt.Errorf("unexpected body: %s", string(body))
	}
	if !healthyStatuses[payload.Status] {
		return fmt.Errorf("server reports %q", payload.Status)
	}
	return nil
}
