package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "puzzle_leaderboard"

// Pass summarizes what one job pass did.
type Pass struct {
	// ID correlates the pass with its log lines.
	ID string

	// Action is the decision taken, e.g. "create".
	Action string

	Sent     bool
	Edited   bool
	Notified bool

	// Participants is the size of the board the pass worked on.
	Participants int
}

// Kinded is implemented by errors that name their failure class.
type Kinded interface {
	error
	Kind() string
}

// Metrics holds the job's collectors.
type Metrics struct {
	registry *prometheus.Registry

	ticks        *prometheus.CounterVec
	tickErrors   *prometheus.CounterVec
	actions      *prometheus.CounterVec
	messages     *prometheus.CounterVec
	tickDuration prometheus.Histogram
	lastSuccess  prometheus.Gauge
	participants prometheus.Gauge
}

// New creates and registers the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		registry: reg,
		ticks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Reconciliation passes by result.",
		}, []string{"result"}),
		tickErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tick_errors_total",
			Help:      "Failed reconciliation passes by error kind.",
		}, []string{"kind"}),
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actions_total",
			Help:      "Reconciliation decisions by action.",
		}, []string{"action"}),
		messages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_total",
			Help:      "Chat messages written by kind.",
		}, []string{"kind"}),
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tick_duration_seconds",
			Help:      "Duration of reconciliation passes.",
			Buckets:   prometheus.ExponentialBuckets(0.25, 2, 8),
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful pass.",
		}),
		participants: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "participants",
			Help:      "Participants on the last fetched board.",
		}),
	}

	reg.MustRegister(m.ticks, m.tickErrors, m.actions, m.messages, m.tickDuration, m.lastSuccess, m.participants)
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveTick records the result of one pass. out may be nil when the pass failed early.
func (m *Metrics) ObserveTick(out *Pass, err error, took time.Duration) {
	m.tickDuration.Observe(took.Seconds())

	if out != nil {
		m.participants.Set(float64(out.Participants))
		m.actions.WithLabelValues(out.Action).Inc()
		if out.Sent {
			m.messages.WithLabelValues("sent").Inc()
		}
		if out.Edited {
			m.messages.WithLabelValues("edited").Inc()
		}
		if out.Notified {
			m.messages.WithLabelValues("notification").Inc()
		}
	}

	if err != nil {
		m.ticks.WithLabelValues("error").Inc()
		m.tickErrors.WithLabelValues(ErrorKind(err)).Inc()
		return
	}
	m.ticks.WithLabelValues("success").Inc()
	m.lastSuccess.SetToCurrentTime()
}

// SetParticipants records the size of the last fetched board.
func (m *Metrics) SetParticipants(n int) {
	m.participants.Set(float64(n))
}

// ErrorKind returns the class of the first Kinded error in err's chain, or "other".
func ErrorKind(err error) string {
	var k Kinded
	if errors.As(err, &k) {
		return k.Kind()
	}
	return "other"
}
