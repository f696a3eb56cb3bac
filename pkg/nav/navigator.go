package nav

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/vango-dev/navheader/internal/errors"
)

// Navigator changes the current location. Navigate must not block on the
// caller's behalf and reports nothing back.
type Navigator interface {
	Navigate(path string, opts ...Option)
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(path string, opts ...Option)

// Navigate calls f.
func (f NavigatorFunc) Navigate(path string, opts ...Option) {
	f(path, opts...)
}

// Option is a functional option for Navigate.
type Option func(*Options)

// Options holds navigation configuration.
type Options struct {
	Replace bool           // Replace current history entry instead of pushing
	Params  map[string]any // Query parameters to add to the URL
	Scroll  bool           // Scroll to top after navigation (default: true)
}

// WithReplace replaces the current history entry instead of pushing.
func WithReplace() Option {
	return func(o *Options) {
		o.Replace = true
	}
}

// WithParams adds query parameters to the navigation URL.
func WithParams(params map[string]any) Option {
	return func(o *Options) {
		o.Params = params
	}
}

// WithoutScroll disables scrolling to top after navigation.
func WithoutScroll() Option {
	return func(o *Options) {
		o.Scroll = false
	}
}

// Apply applies options over the defaults.
func Apply(opts ...Option) Options {
	options := Options{Scroll: true}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&options)
	}
	return options
}

// BuildURL applies params to path and validates the result.
// An error with code E200 is returned for paths that are not relative.
func BuildURL(path string, opts ...Option) (string, Options, error) {
	options := Apply(opts...)

	full := path
	if len(options.Params) > 0 {
		q := url.Values{}
		for k, v := range options.Params {
			q.Set(k, fmt.Sprintf("%v", v))
		}
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		full = path + sep + q.Encode()
	}

	if !IsRelative(full) {
		return "", options, errors.New("E200").WithDetailf("got %q", full)
	}
	return full, options, nil
}

// IsRelative reports whether path is a same-origin relative path.
// It must start with a single "/" and must not smuggle a scheme or host.
func IsRelative(path string) bool {
	if len(path) == 0 || path[0] != '/' {
		return false
	}
	// Protocol-relative URL (//example.com) or backslash variant
	if len(path) >= 2 && (path[1] == '/' || path[1] == '\\') {
		return false
	}
	lower := strings.ToLower(path)
	for _, scheme := range []string{"/http:", "/https:", "/javascript:"} {
		if strings.HasPrefix(lower, scheme) {
			return false
		}
	}
	return true
}
