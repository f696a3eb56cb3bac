// Package middleware decorates navigators and live sessions with
// observability.
//
// # Prometheus Metrics
//
// A Collector owns the metrics for one process. Navigations are counted by
// wrapping the navigator handed to a header:
//
//	c := middleware.NewCollector(
//	    middleware.WithNamespace("shop"),
//	    middleware.WithRegistry(reg),
//	)
//	h := navheader.New(props, middleware.Metrics(history, c))
//
// The live server records events, sessions and WebSocket errors on the same
// Collector.
//
// Metrics collected:
//   - navheader_navigations_total: navigations by kind (push or replace)
//   - navheader_events_total: live events by event name and status
//   - navheader_event_duration_seconds: live event handling time
//   - navheader_event_errors_total: failed events by error category
//   - navheader_active_sessions: open live sessions
//   - navheader_websocket_errors_total: WebSocket errors by type
//
// # OpenTelemetry
//
// Tracing wraps a navigator so that every navigation produces a span, and a
// Tracer starts one span per live event:
//
//	h := navheader.New(props, middleware.Tracing(history,
//	    middleware.WithTracerName("shop"),
//	))
//
// Spans come from the global tracer provider unless WithTracerProvider is
// given.
package middleware
