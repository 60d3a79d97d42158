// Package metrics exposes Prometheus metrics for the moderator service.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/minely/moderator/pkg/dashboard"
)

const namespace = "moderator"

// Metrics owns a private registry and the service's collectors.
type Metrics struct {
	registry    *prometheus.Registry
	transitions *prometheus.CounterVec
	requests    *prometheus.HistogramVec
}

// New creates the metrics set with Go runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "status_transitions_total",
			Help:      "Attempted record status changes by section, target status and outcome.",
		}, []string{"section", "to", "outcome"}),
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method, route pattern and status code.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "code"}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.transitions,
		m.requests,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// OnTransition implements dashboard.TransitionObserver.
func (m *Metrics) OnTransition(_ context.Context, ev dashboard.TransitionEvent) {
	m.transitions.WithLabelValues(ev.Section, ev.To, string(ev.Outcome)).Inc()
}

// Middleware records request latency labelled by the matched chi route
// pattern, so ids do not explode label cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.requests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Observe(time.Since(start).Seconds())
	})
}

// RegisterBoard exports record counts per section and status.
func (m *Metrics) RegisterBoard(b *dashboard.Board) error {
	return m.registry.Register(&boardCollector{board: b})
}

var recordsDesc = prometheus.NewDesc(
	prometheus.BuildFQName(namespace, "", "records"),
	"Records currently held per section and status.",
	[]string{"section", "status"}, nil,
)

type boardCollector struct {
	board *dashboard.Board
}

func (c *boardCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- recordsDesc
}

func (c *boardCollector) Collect(ch chan<- prometheus.Metric) {
	counts := map[[2]string]int{}
	for _, r := range c.board.Checklists.All() {
		counts[[2]string{dashboard.SectionChecklists, string(r.Status)}]++
	}
	for _, r := range c.board.Reports.All() {
		counts[[2]string{dashboard.SectionReports, string(r.Status)}]++
	}
	for _, r := range c.board.Users.All() {
		counts[[2]string{dashboard.SectionUsers, string(r.Status)}]++
	}
	for _, r := range c.board.Videos.All() {
		counts[[2]string{dashboard.SectionVideos, string(r.Status)}]++
	}
	for k, n := range counts {
		ch <- prometheus.MustNewConstMetric(recordsDesc, prometheus.GaugeValue, float64(n), k[0], k[1])
	}
}
