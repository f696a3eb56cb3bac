// Package server hosts navigation headers over HTTP.
//
// Every page request renders a header for the request path. The page's
// client script then opens a WebSocket to the live endpoint, which mounts a
// second header for that connection and re-renders it after every click:
//
//	srv := server.New(server.DefaultServerConfig(), factory,
//	    server.WithMetrics(collector, registry),
//	    server.WithTracer(middleware.NewTracer()),
//	)
//	err := srv.Run(ctx)
//
// Routes:
//   - /healthz: liveness probe
//   - /metrics: Prometheus metrics, when WithMetrics is given
//   - /live: WebSocket live sessions
//   - /*: the page
//
// Sessions hold no state outside their connection. A reconnecting client
// starts a new session at its current path.
package server
