// Package metrics exposes Prometheus collectors for the learning service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds every collector on its own registry
type Metrics struct {
	registry *prometheus.Registry

	Signups          prometheus.Counter
	Logins           *prometheus.CounterVec
	LessonsStarted   *prometheus.CounterVec
	LessonsCompleted *prometheus.CounterVec
	XPAwarded        prometheus.Counter
	LevelUps         prometheus.Counter
	RoomsCreated     prometheus.Counter
	HTTPDuration     *prometheus.HistogramVec
}

// New builds and registers the collectors
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Signups: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "learnmate_signups_total",
			Help: "Accounts registered.",
		}),
		Logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "learnmate_logins_total",
			Help: "Login attempts by result.",
		}, []string{"result"}),
		LessonsStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "learnmate_lessons_started_total",
			Help: "Lesson sessions started by learning style.",
		}, []string{"style"}),
		LessonsCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "learnmate_lessons_completed_total",
			Help: "Lesson sessions completed by learning style.",
		}, []string{"style"}),
		XPAwarded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "learnmate_xp_awarded_total",
			Help: "Experience points granted.",
		}),
		LevelUps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "learnmate_level_ups_total",
			Help: "Level increases.",
		}),
		RoomsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "learnmate_study_rooms_created_total",
			Help: "Study rooms created.",
		}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "learnmate_http_request_duration_seconds",
			Help:    "HTTP request latency by method, route and status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.Signups,
		m.Logins,
		m.LessonsStarted,
		m.LessonsCompleted,
		m.XPAwarded,
		m.LevelUps,
		m.RoomsCreated,
		m.HTTPDuration,
	)
	return m
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one served request
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.HTTPDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}
