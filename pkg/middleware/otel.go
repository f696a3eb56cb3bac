package middleware

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/navheader/pkg/nav"
)

// Default tracer name.
const defaultTracerName = "navheader"

// OTelConfig configures tracing.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "navheader").
	TracerName string

	// TracerProvider supplies the tracer. Nil uses the global provider.
	TracerProvider trace.TracerProvider

	// IncludeParams records navigation query parameters as span attributes.
	// Parameters may carry user data, so this is disabled by default.
	IncludeParams bool

	// AttributeExtractor adds custom attributes to every span.
	AttributeExtractor func(name string) []attribute.KeyValue
}

// OTelOption configures tracing.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the provider spans are created from.
func WithTracerProvider(tp trace.TracerProvider) OTelOption {
	return func(c *OTelConfig) {
		c.TracerProvider = tp
	}
}

// WithIncludeParams enables recording navigation parameters.
func WithIncludeParams(include bool) OTelOption {
	return func(c *OTelConfig) {
		c.IncludeParams = include
	}
}

// WithAttributeExtractor sets a custom attribute extractor. It receives the
// span name.
func WithAttributeExtractor(extractor func(name string) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

func defaultOTelConfig() OTelConfig {
	return OTelConfig{TracerName: defaultTracerName}
}

// Tracer starts spans for navigations and live events.
type Tracer struct {
	config OTelConfig
	tracer trace.Tracer
}

// NewTracer resolves a tracer from the configured provider.
func NewTracer(opts ...OTelOption) *Tracer {
	config := defaultOTelConfig()
	for _, opt := range opts {
		opt(&config)
	}

	t := &Tracer{config: config}
	if config.TracerProvider != nil {
		t.tracer = config.TracerProvider.Tracer(config.TracerName)
	} else {
		t.tracer = otel.Tracer(config.TracerName)
	}
	return t
}

// Tracing wraps next so that every navigation is recorded as a span.
func Tracing(next nav.Navigator, opts ...OTelOption) nav.Navigator {
	return NewTracer(opts...).Navigator(next)
}

// Navigator wraps next so that every navigation is recorded as a span.
func (t *Tracer) Navigator(next nav.Navigator) *TracedNavigator {
	return &TracedNavigator{tracer: t, next: next}
}

// TracedNavigator records every navigation as a span. Navigations made
// inside Within are children of the span in Within's context; all others
// start a new trace.
type TracedNavigator struct {
	tracer *Tracer
	next   nav.Navigator

	mu     sync.Mutex
	parent context.Context
}

// Within runs fn with ctx as the parent of the navigation spans fn starts.
func (n *TracedNavigator) Within(ctx context.Context, fn func()) {
	n.mu.Lock()
	prev := n.parent
	n.parent = ctx
	n.mu.Unlock()

	defer func() {
		n.mu.Lock()
		n.parent = prev
		n.mu.Unlock()
	}()
	fn()
}

// Navigate implements nav.Navigator.
func (n *TracedNavigator) Navigate(path string, opts ...nav.Option) {
	options := nav.Apply(opts...)

	attrs := []attribute.KeyValue{
		attribute.String("navheader.path", path),
		attribute.Bool("navheader.replace", options.Replace),
		attribute.Bool("navheader.scroll", options.Scroll),
	}
	if n.tracer.config.IncludeParams {
		for k, v := range options.Params {
			attrs = append(attrs, attribute.String("navheader.param."+k, fmt.Sprintf("%v", v)))
		}
	}

	n.mu.Lock()
	ctx := n.parent
	n.mu.Unlock()
	if ctx == nil {
		ctx = context.Background()
	}

	_, span := n.tracer.start(ctx, "navheader.navigate", trace.SpanKindInternal, attrs)
	defer span.End()

	n.next.Navigate(path, opts...)
}

// StartEvent starts a span for a live event targeting hid.
func (t *Tracer) StartEvent(ctx context.Context, hid, event string) (context.Context, trace.Span) {
	return t.start(ctx, "navheader."+event, trace.SpanKindServer, []attribute.KeyValue{
		attribute.String("navheader.event_type", event),
		attribute.String("navheader.event_target", hid),
	})
}

// EndEvent records the outcome of an event on span and ends it.
func EndEvent(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

func (t *Tracer) start(ctx context.Context, name string, kind trace.SpanKind, attrs []attribute.KeyValue) (context.Context, trace.Span) {
	if t.config.AttributeExtractor != nil {
		attrs = append(attrs, t.config.AttributeExtractor(name)...)
	}
	return t.tracer.Start(ctx, name,
		trace.WithSpanKind(kind),
		trace.WithAttributes(attrs...),
	)
}
