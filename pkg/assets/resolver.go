package assets

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/vango-dev/navheader/internal/errors"
)

// DefaultURLExpiry is how long presigned logo URLs stay valid.
const DefaultURLExpiry = time.Hour

// Resolver turns logo sources into browser-loadable URLs.
type Resolver struct {
	manifest  *Manifest
	prefix    string
	presigner Presigner
	expiry    time.Duration
	logger    *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithManifest looks site paths up in m.
func WithManifest(m *Manifest) Option {
	return func(r *Resolver) {
		r.manifest = m
	}
}

// WithPrefix sets the URL prefix under which manifest names are served.
// Default: "/".
func WithPrefix(prefix string) Option {
	return func(r *Resolver) {
		if !strings.HasSuffix(prefix, "/") {
			prefix += "/"
		}
		r.prefix = prefix
	}
}

// WithPresigner enables s3:// sources. Zero expiry uses DefaultURLExpiry.
func WithPresigner(p Presigner, expiry time.Duration) Option {
	return func(r *Resolver) {
		r.presigner = p
		if expiry > 0 {
			r.expiry = expiry
		}
	}
}

// WithLogger sets the resolver's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// NewResolver creates a Resolver. With no options it passes site paths and
// URLs through and rejects s3:// sources.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		prefix: "/",
		expiry: DefaultURLExpiry,
		logger: slog.Default().With("component", "assets"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the URL for source.
func (r *Resolver) Resolve(ctx context.Context, source string) (string, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return "", errors.New("E300").WithDetail("logo source is empty")
	}

	scheme, _, hasScheme := strings.Cut(source, ":")
	if !hasScheme || strings.ContainsAny(scheme, "/?#") {
		return r.local(source), nil
	}

	switch strings.ToLower(scheme) {
	case "http", "https", "data":
		return source, nil
	case "s3":
		return r.presign(ctx, source)
	default:
		return "", errors.New("E301").WithDetailf("scheme %q in %q", scheme, source)
	}
}

// local resolves a site path through the manifest.
func (r *Resolver) local(source string) string {
	if r.manifest == nil {
		return source
	}
	name := strings.TrimPrefix(source, r.prefix)
	if name == source {
		name = strings.TrimPrefix(source, "/")
	}
	resolved, ok := r.manifest.Lookup(name)
	if !ok {
		return source
	}
	return r.prefix + resolved
}

func (r *Resolver) presign(ctx context.Context, source string) (string, error) {
	if r.presigner == nil {
		return "", errors.New("E300").
			WithDetailf("%s: no S3 client configured", source).
			WithSuggestion("Set assets.region in the config file")
	}

	bucket, key, err := ParseS3URI(source)
	if err != nil {
		return "", err
	}

	url, err := presignGet(ctx, r.presigner, bucket, key, r.expiry)
	if err != nil {
		return "", errors.New("E300").WithDetail(source).Wrap(err)
	}
	r.logger.Debug("presigned logo", "bucket", bucket, "key", key, "expiry", r.expiry)
	return url, nil
}

// ParseS3URI splits s3://bucket/key.
func ParseS3URI(uri string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(uri, "s3://")
	if !ok {
		return "", "", errors.New("E301").WithDetailf("%q is not an s3:// URI", uri)
	}
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || key == "" {
		return "", "", errors.New("E300").WithDetailf("%q must name a bucket and key", uri)
	}
	return bucket, key, nil
}
