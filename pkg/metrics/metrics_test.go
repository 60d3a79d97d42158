package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minely/moderator/pkg/dashboard"
	"github.com/minely/moderator/pkg/records"
)

func TestTransitionsCounter(t *testing.T) {
	m := New()
	b, err := dashboard.NewBoard(records.SeedDataset(time.Now()), dashboard.WithObserver(m))
	require.NoError(t, err)

	ctx := context.Background()
	_, _, err = b.Reports.SetStatus(ctx, "1", records.ReportResolved, "mod", "")
	require.NoError(t, err)
	_, _, err = b.Reports.SetStatus(ctx, "4", records.ReportPending, "mod", "")
	require.Error(t, err)
	_, _, err = b.Videos.SetStatus(ctx, "4", records.VideoActive, "mod", "")
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.transitions.WithLabelValues("reports", "resolved", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.transitions.WithLabelValues("reports", "pending", "denied")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.transitions.WithLabelValues("videos", "active", "success")))
}

func TestMiddlewareUsesRoutePattern(t *testing.T) {
	m := New()
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/api/v1/reports/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"1", "2", "3"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/reports/"+id, nil))
	}

	assert.Equal(t, 1, testutil.CollectAndCount(m.requests))
	assert.Equal(t, uint64(3), histogramCount(t, m, "/api/v1/reports/{id}", "404"))
}

func histogramCount(t *testing.T, m *Metrics, route, code string) uint64 {
	t.Helper()
	families, err := m.registry.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != "moderator_http_request_duration_seconds" {
			continue
		}
		for _, metric := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range metric.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			if labels["route"] == route && labels["code"] == code {
				return metric.GetHistogram().GetSampleCount()
			}
		}
	}
	return 0
}

func TestBoardCollectorAndHandler(t *testing.T) {
	m := New()
	b, err := dashboard.NewBoard(records.SeedDataset(time.Now()))
	require.NoError(t, err)
	require.NoError(t, m.RegisterBoard(b))

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	text := string(body)
	assert.Contains(t, text, `moderator_records{section="videos",status="active"} 3`)
	assert.Contains(t, text, `moderator_records{section="reports",status="pending"} 1`)
	assert.Contains(t, text, `moderator_records{section="users",status="inactive"} 1`)
	assert.Contains(t, text, "go_goroutines")
}
