package middleware

import (
	stderrors "errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/navheader/internal/errors"
	"github.com/vango-dev/navheader/pkg/nav"
)

// MetricsConfig configures a Collector.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "navheader").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for event duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures a Collector.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "navheader",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Collector holds the Prometheus metrics of one process. Registering two
// Collectors with the same namespace on one registry panics, so servers
// create one and share it.
type Collector struct {
	navigations    *prometheus.CounterVec
	eventsTotal    *prometheus.CounterVec
	eventDuration  *prometheus.HistogramVec
	eventErrors    *prometheus.CounterVec
	activeSessions prometheus.Gauge
	wsErrors       *prometheus.CounterVec
}

// NewCollector creates and registers the metrics.
func NewCollector(opts ...MetricsOption) *Collector {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Collector{
		navigations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigations_total",
			Help:        "Total number of navigation requests issued",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		eventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "events_total",
			Help:        "Total number of live events processed",
			ConstLabels: config.ConstLabels,
		}, []string{"event", "status"}),

		eventDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "event_duration_seconds",
			Help:        "Live event processing duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"event"}),

		eventErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "event_errors_total",
			Help:        "Total number of live event processing errors",
			ConstLabels: config.ConstLabels,
		}, []string{"event", "error_type"}),

		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "active_sessions",
			Help:        "Number of active live sessions",
			ConstLabels: config.ConstLabels,
		}),

		wsErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "websocket_errors_total",
			Help:        "Total WebSocket errors by type",
			ConstLabels: config.ConstLabels,
		}, []string{"type"}),
	}
}

// Metrics wraps next so that every navigation is counted on c.
func Metrics(next nav.Navigator, c *Collector) nav.Navigator {
	return nav.NavigatorFunc(func(path string, opts ...nav.Option) {
		kind := "push"
		if nav.Apply(opts...).Replace {
			kind = "replace"
		}
		c.navigations.WithLabelValues(kind).Inc()
		next.Navigate(path, opts...)
	})
}

// ObserveEvent records one processed live event.
func (c *Collector) ObserveEvent(event string, d time.Duration, err error) {
	c.eventDuration.WithLabelValues(event).Observe(d.Seconds())

	status := "success"
	if err != nil {
		status = "error"
		c.eventErrors.WithLabelValues(event, categorizeError(err)).Inc()
	}
	c.eventsTotal.WithLabelValues(event, status).Inc()
}

// SessionOpened records a new live session.
func (c *Collector) SessionOpened() {
	c.activeSessions.Inc()
}

// SessionClosed records the end of a live session.
func (c *Collector) SessionClosed() {
	c.activeSessions.Dec()
}

// WebSocketError records a WebSocket error.
func (c *Collector) WebSocketError(errorType string) {
	c.wsErrors.WithLabelValues(errorType).Inc()
}

// categorizeError keeps error labels low-cardinality by using the
// category of structured errors.
func categorizeError(err error) string {
	var e *errors.Error
	if stderrors.As(err, &e) && e.Category != "" {
		return string(e.Category)
	}
	return "internal"
}
