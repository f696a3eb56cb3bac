package main

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/vango-dev/navheader/internal/config"
	"github.com/vango-dev/navheader/pkg/assets"
	"github.com/vango-dev/navheader/pkg/nav"
	"github.com/vango-dev/navheader/pkg/navheader"
	"github.com/vango-dev/navheader/pkg/server"
)

// options holds the persistent flags.
type options struct {
	configPath string
	logLevel   string
	logFormat  string
}

// load reads and validates the config. Flag overrides are applied before
// validation.
func (o *options) load(overrides ...func(*config.Config)) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if o.configPath != "" {
		cfg, err = config.LoadFile(o.configPath)
	} else {
		cfg, err = config.LoadFromWorkingDir()
	}
	if err != nil {
		return nil, err
	}

	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if o.logFormat != "" {
		cfg.Log.Format = o.logFormat
	}
	for _, apply := range overrides {
		apply(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the process logger from the config and installs it as
// the slog default, so packages logging through slog.Default follow the
// configured level and format too.
func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel()}
	var logger *slog.Logger
	if strings.EqualFold(cfg.Log.Format, "json") {
		logger = slog.New(slog.NewJSONHandler(w, opts))
	} else {
		logger = slog.New(slog.NewTextHandler(w, opts))
	}
	slog.SetDefault(logger)
	return logger
}

func newResolver(cfg *config.Config, logger *slog.Logger) (*assets.Resolver, error) {
	opts := []assets.Option{
		assets.WithLogger(logger.With("component", "assets")),
	}
	if cfg.Assets.Prefix != "" {
		opts = append(opts, assets.WithPrefix(cfg.Assets.Prefix))
	}
	if path := cfg.ManifestPath(); path != "" {
		m, err := assets.LoadManifest(path)
		if err != nil {
			return nil, err
		}
		opts = append(opts, assets.WithManifest(m))
	}
	if cfg.Assets.Region != "" {
		opts = append(opts, assets.WithPresigner(assets.NewS3Presigner(cfg.Assets.Region), cfg.URLExpiry()))
	}
	return assets.NewResolver(opts...), nil
}

// headerFactory mounts a header for each page view and live session. The
// logo is resolved per mount so presigned URLs stay fresh.
func headerFactory(cfg *config.Config, resolver *assets.Resolver, logger *slog.Logger) server.HeaderFactory {
	menu := cfg.Menu()
	return func(ctx context.Context, navigator nav.Navigator) (*navheader.Header, error) {
		logo, err := resolver.Resolve(ctx, cfg.Logo)
		if err != nil {
			return nil, err
		}
		return navheader.New(navheader.Props{
			Logo:      logo,
			MenuItems: menu,
			OnClick: func() {
				logger.Info("button clicked")
			},
		}, navigator, navheader.WithLogger(logger.With("component", "navheader"))), nil
	}
}
