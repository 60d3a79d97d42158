package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minely/moderator/pkg/audit"
	"github.com/minely/moderator/pkg/cache"
	"github.com/minely/moderator/pkg/dashboard"
	"github.com/minely/moderator/pkg/database"
	"github.com/minely/moderator/pkg/lifecycle"
	"github.com/minely/moderator/pkg/metrics"
	"github.com/minely/moderator/pkg/records"
)

var testNow = time.Date(2024, time.January, 20, 18, 0, 0, 0, time.UTC)

type testEnv struct {
	board   *dashboard.Board
	history *audit.Store
	cache   *cache.Manager
	metrics *metrics.Metrics
	handler http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.Open(database.Config{Type: database.TypeSQLite, DSN: ":memory:", LogLevel: "silent"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	history := audit.NewStore(db)
	require.NoError(t, history.AutoMigrate())

	mgr := cache.NewManager(cache.DefaultConfig())
	m := metrics.New()

	board, err := dashboard.NewBoard(records.SeedDataset(testNow),
		dashboard.WithClock(func() time.Time { return testNow }),
		dashboard.WithObserver(audit.NewRecorder(history, nil)),
		dashboard.WithObserver(m),
		dashboard.WithObserver(CacheInvalidator(mgr)),
	)
	require.NoError(t, err)

	srv, err := New(board,
		WithCache(mgr),
		WithMetrics(m),
		WithHistory(history),
		WithDatabase(db),
	)
	require.NoError(t, err)

	return &testEnv{board: board, history: history, cache: mgr, metrics: m, handler: srv.Router()}
}

func (e *testEnv) do(t *testing.T, method, target string, body io.Reader, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	return e.do(t, http.MethodGet, target, nil, nil)
}

func (e *testEnv) postJSON(t *testing.T, target string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	if headers == nil {
		headers = map[string]string{}
	}
	headers["Content-Type"] = "application/json"
	return e.do(t, http.MethodPost, target, bytes.NewReader(data), headers)
}

func (e *testEnv) postForm(t *testing.T, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	return e.do(t, http.MethodPost, target, strings.NewReader(form.Encode()),
		map[string]string{"Content-Type": "application/x-www-form-urlencoded"})
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealthEndpoints(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/healthz", "/livez"} {
		rec := env.get(t, path)
		require.Equal(t, http.StatusOK, rec.Code)
		body := decode[map[string]string](t, rec)
		assert.Equal(t, "alive", body["status"])
		assert.NotEmpty(t, body["uptime"])
	}

	rec := env.get(t, "/readyz")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]any](t, rec)
	assert.Equal(t, "ready", body["status"])
}

func TestReadyWithoutDatabase(t *testing.T) {
	board, err := dashboard.NewBoard(records.SeedDataset(testNow))
	require.NoError(t, err)
	srv, err := New(board)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_configured")

	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.get(t, "/api/v1/reports/1")
	rec := env.postJSON(t, "/api/v1/reports/4/status", StatusRequest{Status: "pending"}, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.get(t, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	text := rec.Body.String()
	assert.Contains(t, text, `moderator_status_transitions_total{outcome="denied",section="reports",to="pending"} 1`)
	assert.Contains(t, text, `route="/api/v1/reports/{id}"`)
}

func TestActorFrom(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"principal wins", map[string]string{PrincipalHeader: "alice", RoleHeader: "admin"}, "alice"},
		{"role fallback", map[string]string{RoleHeader: "supervisor"}, "supervisor"},
		{"default", nil, "moderator"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, actorFrom(req))
		})
	}
}

func TestCacheInvalidator(t *testing.T) {
	mgr := cache.NewManager(cache.DefaultConfig())
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	mgr.Section("reports")(ok).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/reports", nil))
	require.Equal(t, 1, mgr.Size())

	obs := CacheInvalidator(mgr)
	obs.OnTransition(context.Background(), dashboard.TransitionEvent{Section: "reports", Outcome: dashboard.OutcomeDenied, Code: lifecycle.CodeTransitionDenied})
	obs.OnTransition(context.Background(), dashboard.TransitionEvent{Section: "reports", Outcome: dashboard.OutcomeSuccess, Changed: false})
	assert.Equal(t, 1, mgr.Size())

	obs.OnTransition(context.Background(), dashboard.TransitionEvent{Section: "reports", Outcome: dashboard.OutcomeSuccess, Changed: true})
	assert.Equal(t, 0, mgr.Size())
}
