package server

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/vango-dev/navheader/pkg/middleware"
	"github.com/vango-dev/navheader/pkg/nav"
	"github.com/vango-dev/navheader/pkg/navheader"
)

// HeaderFactory builds the header for one page view or live session.
// navigator must be passed through to navheader.New.
type HeaderFactory func(ctx context.Context, navigator nav.Navigator) (*navheader.Header, error)

// Server serves pages and live sessions.
type Server struct {
	config  *ServerConfig
	factory HeaderFactory

	router   chi.Router
	upgrader websocket.Upgrader

	metrics  *middleware.Collector
	gatherer prometheus.Gatherer
	tracer   *middleware.Tracer

	mu         sync.Mutex
	httpServer *http.Server
	sessions   map[*session]struct{}
	nextID     uint64

	base   *slog.Logger
	logger *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger the server and its sessions' histories log
// to. Each gets its own component attribute.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.base = logger
		}
	}
}

// WithMetrics records navigations, events and sessions on c and serves g
// at the metrics path.
func WithMetrics(c *middleware.Collector, g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.metrics = c
		s.gatherer = g
	}
}

// WithTracer traces navigations and live events.
func WithTracer(t *middleware.Tracer) Option {
	return func(s *Server) {
		s.tracer = t
	}
}

// New creates a new Server. A nil config uses DefaultServerConfig.
func New(config *ServerConfig, factory HeaderFactory, opts ...Option) *Server {
	if factory == nil {
		panic("server: nil header factory")
	}

	config = config.withDefaults()
	s := &Server{
		config:  config,
		factory: factory,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		sessions: make(map[*session]struct{}),
		base:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.base.With("component", "server")
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(s.requestLogger)
	r.Use(chimw.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	})
	if s.gatherer != nil {
		r.Method(http.MethodGet, s.config.MetricsPath, promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	r.Get(s.config.LivePath, s.HandleWebSocket)
	r.Get("/*", s.HandlePage)
	return r
}

// requestLogger logs one line per request through slog.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", chimw.GetReqID(r.Context()),
		)
	})
}

// Handler returns the server's routes for mounting in another router or
// for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Config returns the server configuration.
func (s *Server) Config() *ServerConfig {
	return s.config
}

// Logger returns the server logger.
func (s *Server) Logger() *slog.Logger {
	return s.logger
}

// navigator wraps a session's history with the configured observers. The
// traced navigator is nil when tracing is off.
func (s *Server) navigator(history *nav.History) (nav.Navigator, *middleware.TracedNavigator) {
	history.SetLogger(s.base.With("component", "nav"))

	var n nav.Navigator = history
	if s.metrics != nil {
		n = middleware.Metrics(n, s.metrics)
	}
	if s.tracer == nil {
		return n, nil
	}
	traced := s.tracer.Navigator(n)
	return traced, traced
}

// Run listens on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
	}
	s.mu.Lock()
	s.httpServer = httpServer
	s.mu.Unlock()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("server starting", "address", ln.Addr().String())
		if err := httpServer.Serve(ln); !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	})
	return g.Wait()
}

// Shutdown closes all live sessions and gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	s.mu.Lock()
	httpServer := s.httpServer
	sessions := make([]*session, 0, len(s.sessions))
	for sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	s.mu.Unlock()

	for _, sess := range sessions {
		sess.close(websocket.CloseGoingAway, "server shutting down")
	}

	if httpServer != nil {
		if err := httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}

	s.logger.Info("server shutdown complete")
	return nil
}

// SessionCount returns the number of open live sessions.
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Server) track(sess *session) {
	s.mu.Lock()
	s.nextID++
	sess.id = s.nextID
	s.sessions[sess] = struct{}{}
	s.mu.Unlock()
	if s.metrics != nil {
		s.metrics.SessionOpened()
	}
}

func (s *Server) untrack(sess *session) {
	s.mu.Lock()
	delete(s.sessions, sess)
	s.mu.Unlock()
	if s.metrics != nil {
		s.metrics.SessionClosed()
	}
}
