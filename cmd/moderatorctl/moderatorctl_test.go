package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minely/moderator/pkg/audit"
	"github.com/minely/moderator/pkg/dashboard"
	"github.com/minely/moderator/pkg/database"
	"github.com/minely/moderator/pkg/presentation"
	"github.com/minely/moderator/pkg/records"
	"github.com/minely/moderator/pkg/server"
)

// newModeratorServer runs a seeded moderator server with history enabled.
func newModeratorServer(t *testing.T) *httptest.Server {
	t.Helper()
	db, err := database.Open(database.Config{Type: database.TypeSQLite, DSN: ":memory:", LogLevel: "silent"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	history := audit.NewStore(db)
	require.NoError(t, history.AutoMigrate())

	board, err := dashboard.NewBoard(records.SeedDataset(time.Now()),
		dashboard.WithObserver(audit.NewRecorder(history, nil)),
	)
	require.NoError(t, err)

	srv, err := server.New(board, server.WithHistory(history), server.WithDatabase(db))
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

// runCtl executes moderatorctl against url and returns its stdout.
func runCtl(t *testing.T, url string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--server", url, "--no-color"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestSectionCommands(t *testing.T) {
	ts := newModeratorServer(t)

	tests := []struct {
		name string
		fn   func(t *testing.T)
	}{
		{"ListChecklists", func(t *testing.T) {
			out, err := runCtl(t, ts.URL, "checklists", "list")
			require.NoError(t, err)
			assert.Contains(t, out, "COMPLETION")
			assert.Contains(t, out, "Daily Safety Inspection")
			assert.Contains(t, out, "89%")
		}},
		{"ListReportsFiltered", func(t *testing.T) {
			out, err := runCtl(t, ts.URL, "reports", "list", "--filter", "under_review")
			require.NoError(t, err)
			assert.Contains(t, out, "REPORTED BY")
			assert.Contains(t, out, "Equipment malfunction - Drill #7")
			assert.NotContains(t, out, "Loose rocks in Tunnel B-3")
		}},
		{"EmptyList", func(t *testing.T) {
			out, err := runCtl(t, ts.URL, "users", "list", "--filter", "admin")
			require.NoError(t, err)
			assert.Equal(t, "No users found. No admin users available.\n", out)
		}},
		{"ListJSON", func(t *testing.T) {
			out, err := runCtl(t, ts.URL, "-o", "json", "videos", "list")
			require.NoError(t, err)
			var resp listResponse[records.Video]
			require.NoError(t, json.Unmarshal([]byte(out), &resp))
			assert.Equal(t, 4, resp.Size)
			assert.Equal(t, dashboard.FilterAll, resp.Filter)
		}},
		{"GetYAML", func(t *testing.T) {
			out, err := runCtl(t, ts.URL, "-o", "yaml", "users", "get", "1")
			require.NoError(t, err)
			assert.Contains(t, out, "email: john.doe@minely.com")
		}},
		{"GetTable", func(t *testing.T) {
			out, err := runCtl(t, ts.URL, "videos", "get", "4")
			require.NoError(t, err)
			assert.Contains(t, out, "FIELD")
			assert.Contains(t, out, "draft")
		}},
		{"GetMissing", func(t *testing.T) {
			_, err := runCtl(t, ts.URL, "reports", "get", "99")
			require.Error(t, err)
			assert.Contains(t, err.Error(), "server returned 404 (not_found)")
		}},
		{"SetStatusOnlyForLifecycleSections", func(t *testing.T) {
			names := func(c *cobra.Command) []string {
				var out []string
				for _, sub := range c.Commands() {
					out = append(out, sub.Name())
				}
				return out
			}
			assert.ElementsMatch(t, []string{"list", "get"}, names(checklistsCmd()))
			assert.ElementsMatch(t, []string{"list", "get"}, names(usersCmd()))
			assert.ElementsMatch(t, []string{"list", "get", "set-status"}, names(reportsCmd()))
			assert.ElementsMatch(t, []string{"list", "get", "set-status"}, names(videosCmd()))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.fn)
	}
}

func TestSetStatusAndHistory(t *testing.T) {
	ts := newModeratorServer(t)

	out, err := runCtl(t, ts.URL, "--as", "alice", "reports", "set-status", "1", "under_review", "--reason", "triage")
	require.NoError(t, err)
	assert.Equal(t, "report 1 is now under review\n", out)

	_, err = runCtl(t, ts.URL, "reports", "set-status", "4", "pending")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STATUS_TRANSITION_DENIED")
	assert.Contains(t, err.Error(), "transition from closed to pending is not allowed")

	_, err = runCtl(t, ts.URL, "videos", "set-status", "4", "paused")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STATUS_UNKNOWN")

	out, err = runCtl(t, ts.URL, "history", "--actor", "alice")
	require.NoError(t, err)
	assert.Contains(t, out, "pending -> under_review")
	assert.Contains(t, out, "triage")
	assert.NotContains(t, out, "closed -> pending")

	out, err = runCtl(t, ts.URL, "-o", "json", "history", "--outcome", "denied")
	require.NoError(t, err)
	var resp audit.ListResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, 2, resp.TotalSize)
	for _, ev := range resp.Events {
		assert.Equal(t, "moderator", ev.Actor)
	}

	out, err = runCtl(t, ts.URL, "history", "--section", "users")
	require.NoError(t, err)
	assert.Equal(t, "No moderation events found.\n", out)
}

func TestStatsCommand(t *testing.T) {
	ts := newModeratorServer(t)

	out, err := runCtl(t, ts.URL, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "avg completion")
	assert.Contains(t, out, "55%")
	assert.Contains(t, out, "902")

	out, err = runCtl(t, ts.URL, "-o", "json", "stats")
	require.NoError(t, err)
	var st dashboard.Stats
	require.NoError(t, json.Unmarshal([]byte(out), &st))
	assert.Equal(t, 4, st.Reports.Total)
	assert.Equal(t, 4, st.Videos.Categories)
	assert.Equal(t, 94, st.Overview.SafetyScore)
}

func TestHealthCommand(t *testing.T) {
	ts := newModeratorServer(t)

	out, err := runCtl(t, ts.URL, "health")
	require.NoError(t, err)
	assert.Contains(t, out, "alive")
	assert.Contains(t, out, "ready")

	_, err = runCtl(t, "http://127.0.0.1:1", "health")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server unreachable")
}

func TestHealthCommandNotReady(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/healthz":
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "alive", "uptime": "5m"})
		default:
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "not_ready", "error": "ping failed"})
		}
	}))
	defer ts.Close()

	out, err := runCtl(t, ts.URL, "-o", "json", "health")
	require.NoError(t, err)
	var resp map[string]map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "alive", resp["health"]["status"])
	assert.Equal(t, "unknown", resp["readiness"]["status"])
}

func TestClientSendsPrincipal(t *testing.T) {
	var got string
	var has bool
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get(server.PrincipalHeader)
		_, has = r.Header[server.PrincipalHeader]
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "1"})
	}))
	defer ts.Close()

	c := &moderatorClient{baseURL: ts.URL, principal: "bob", http: ts.Client()}
	require.NoError(t, c.postJSON("/api/v1/reports/1/status", statusRequest{Status: "resolved"}, nil))
	assert.Equal(t, "bob", got)

	c.principal = ""
	require.NoError(t, c.postJSON("/api/v1/reports/1/status", statusRequest{Status: "resolved"}, nil))
	assert.False(t, has)
}

func TestDecodeError(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"plain error", `{"error":"not_found","message":"report \"9\" not found"}`, `server returned 404 (not_found): report "9" not found`},
		{"transition error", `{"code":"STATUS_UNKNOWN","from":"","to":"x","message":"unknown status \"x\""}`, `server returned 404 (STATUS_UNKNOWN): unknown status "x"`},
		{"not json", `gateway timeout`, `server returned 404: gateway timeout`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			rec.WriteHeader(http.StatusNotFound)
			_, _ = rec.WriteString(tt.body)
			err := decodeError(rec.Result())
			assert.EqualError(t, err, tt.want)
		})
	}
}

func TestStyled(t *testing.T) {
	color.NoColor = true
	assert.Equal(t, "under review", styled(presentation.KindReportStatus, "under_review"))
	assert.Equal(t, "critical", styled(presentation.KindPriority, "critical"))

	assert.Equal(t, color.New(color.FgRed), terminalColor("bg-red-100 text-red-800"))
	assert.Equal(t, color.New(color.FgGreen), terminalColor("bg-green-100 text-green-800"))
	assert.Equal(t, color.New(color.FgWhite), terminalColor(presentation.Neutral.Class))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "ab", truncate("abcdef", 2))
}

func TestUnknownOutputFormat(t *testing.T) {
	_, err := runCtl(t, "http://127.0.0.1:1", "-o", "xml", "stats")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown output format "xml"`)
}
