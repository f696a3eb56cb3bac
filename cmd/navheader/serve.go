package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/vango-dev/navheader/internal/config"
	"github.com/vango-dev/navheader/pkg/middleware"
	"github.com/vango-dev/navheader/pkg/server"
)

func serveCmd(opts *options) *cobra.Command {
	var (
		port      int
		host      string
		noMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the header with live click handling",
		Long: `Serve a page embedding the header. Clicks are sent over a WebSocket,
handled on the server, and the re-rendered header is sent back.

Examples:
  navheader serve
  navheader serve --port=8080
  navheader serve -c site/navheader.yaml --log-level=debug`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts, host, port, noMetrics)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from config)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from config)")
	cmd.Flags().BoolVar(&noMetrics, "no-metrics", false, "Disable the Prometheus endpoint")

	return cmd
}

func runServe(cmd *cobra.Command, opts *options, host string, port int, noMetrics bool) error {
	cfg, err := opts.load(func(cfg *config.Config) {
		if port > 0 {
			cfg.Server.Port = port
		}
		if host != "" {
			cfg.Server.Host = host
		}
	})
	if err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg)
	resolver, err := newResolver(cfg, logger)
	if err != nil {
		return err
	}

	srvOpts := []server.Option{
		server.WithLogger(logger),
		server.WithTracer(middleware.NewTracer()),
	}
	if !noMetrics {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		srvOpts = append(srvOpts, server.WithMetrics(middleware.NewCollector(middleware.WithRegistry(reg)), reg))
	}

	srv := server.New(&server.ServerConfig{
		Address:     cfg.Address(),
		LivePath:    cfg.Server.LivePath,
		MetricsPath: cfg.Server.MetricsPath,
	}, headerFactory(cfg, resolver, logger), srvOpts...)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	success(out, "Serving %s", cfg.Path())
	info(out, "Local:   http://%s", cfg.Address())
	if !noMetrics {
		info(out, "Metrics: http://%s%s", cfg.Address(), cfg.Server.MetricsPath)
	}

	return srv.Run(ctx)
}
