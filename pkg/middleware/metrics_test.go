package middleware

import (
	stderrors "errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/vango-dev/navheader/internal/errors"
	"github.com/vango-dev/navheader/pkg/nav"
)

func metricCounterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("counter Write() error: %v", err)
	}
	if m.Counter == nil {
		t.Fatal("expected counter metric to have Counter field")
	}
	return m.GetCounter().GetValue()
}

func metricGaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	if err := g.Write(&m); err != nil {
		t.Fatalf("gauge Write() error: %v", err)
	}
	if m.Gauge == nil {
		t.Fatal("expected gauge metric to have Gauge field")
	}
	return m.GetGauge().GetValue()
}

func metricHistogramCount(t *testing.T, o prometheus.Observer) uint64 {
	t.Helper()
	metric, ok := o.(prometheus.Metric)
	if !ok {
		t.Fatalf("observer %T does not implement prometheus.Metric", o)
	}
	var m dto.Metric
	if err := metric.Write(&m); err != nil {
		t.Fatalf("histogram Write() error: %v", err)
	}
	if m.Histogram == nil {
		t.Fatal("expected histogram metric to have Histogram field")
	}
	return m.GetHistogram().GetSampleCount()
}

func TestMetricsNavigator(t *testing.T) {
	c := NewCollector(WithRegistry(prometheus.NewRegistry()))
	history := nav.NewHistory("/")
	n := Metrics(history, c)

	n.Navigate("/a")
	n.Navigate("/b")
	n.Navigate("/c", nav.WithReplace())

	if got := history.Entries(); len(got) != 3 || got[2] != "/c" {
		t.Fatalf("history = %v, want [/ /a /c]", got)
	}
	if got := metricCounterValue(t, c.navigations.WithLabelValues("push")); got != 2 {
		t.Errorf("navigations_total(push) = %v, want 2", got)
	}
	if got := metricCounterValue(t, c.navigations.WithLabelValues("replace")); got != 1 {
		t.Errorf("navigations_total(replace) = %v, want 1", got)
	}
}

func TestCollectorObserveEvent(t *testing.T) {
	c := NewCollector(WithRegistry(prometheus.NewRegistry()))

	c.ObserveEvent("click", 3*time.Millisecond, nil)
	c.ObserveEvent("click", time.Millisecond, errors.New("E401"))
	c.ObserveEvent("click", time.Millisecond, stderrors.New("boom"))

	if got := metricCounterValue(t, c.eventsTotal.WithLabelValues("click", "success")); got != 1 {
		t.Errorf("events_total(success) = %v, want 1", got)
	}
	if got := metricCounterValue(t, c.eventsTotal.WithLabelValues("click", "error")); got != 2 {
		t.Errorf("events_total(error) = %v, want 2", got)
	}
	if got := metricCounterValue(t, c.eventErrors.WithLabelValues("click", "protocol")); got != 1 {
		t.Errorf("event_errors_total(protocol) = %v, want 1", got)
	}
	if got := metricCounterValue(t, c.eventErrors.WithLabelValues("click", "internal")); got != 1 {
		t.Errorf("event_errors_total(internal) = %v, want 1", got)
	}
	if got := metricHistogramCount(t, c.eventDuration.WithLabelValues("click")); got != 3 {
		t.Errorf("event_duration_seconds count = %v, want 3", got)
	}
}

func TestCollectorSessions(t *testing.T) {
	c := NewCollector(WithRegistry(prometheus.NewRegistry()))

	c.SessionOpened()
	c.SessionOpened()
	c.SessionClosed()
	c.WebSocketError("read")

	if got := metricGaugeValue(t, c.activeSessions); got != 1 {
		t.Errorf("active_sessions = %v, want 1", got)
	}
	if got := metricCounterValue(t, c.wsErrors.WithLabelValues("read")); got != 1 {
		t.Errorf("websocket_errors_total(read) = %v, want 1", got)
	}
}

func TestCollectorNamespace(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(
		WithRegistry(reg),
		WithNamespace("shop"),
		WithSubsystem("header"),
		WithConstLabels(prometheus.Labels{"env": "test"}),
		WithBuckets([]float64{0.1, 1}),
	)
	c.SessionOpened()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error: %v", err)
	}
	found := false
	for _, f := range families {
		if f.GetName() != "shop_header_active_sessions" {
			continue
		}
		found = true
		labels := f.GetMetric()[0].GetLabel()
		if len(labels) != 1 || labels[0].GetName() != "env" || labels[0].GetValue() != "test" {
			t.Errorf("labels = %v, want env=test", labels)
		}
	}
	if !found {
		t.Error("shop_header_active_sessions not registered")
	}
}

func TestCategorizeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"config", errors.New("E100"), "config"},
		{"navigation", errors.New("E200"), "navigation"},
		{"wrapped", errors.New("E400").Wrap(stderrors.New("eof")), "protocol"},
		{"plain", stderrors.New("boom"), "internal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := categorizeError(tt.err); got != tt.want {
				t.Errorf("categorizeError() = %q, want %q", got, tt.want)
			}
		})
	}
}
