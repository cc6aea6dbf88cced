package geo

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/wayfarer/internal/cachemanager"
	"github.com/zjrosen/wayfarer/internal/log"
	"github.com/zjrosen/wayfarer/internal/tracing"
)

const (
	lastPositionKey = "last"
	lastPositionTTL = time.Hour
)

// Locator answers Locate requests through a Provider.
type Locator struct {
	provider   Provider
	prompter   Prompter
	onDecision func(Permission)
	cache      cachemanager.CacheManager[string, Position]
	tracer     trace.Tracer
	now        func() time.Time

	mu         sync.Mutex
	permission Permission
}

// LocatorOption configures a Locator.
type LocatorOption func(*Locator)

// WithPermission sets the starting permission. Defaults to prompt.
func WithPermission(p Permission) LocatorOption {
	return func(l *Locator) { l.permission = p }
}

// WithPrompter sets who is asked when the permission is prompt. Without a
// prompter, prompt behaves as denied.
func WithPrompter(p Prompter) LocatorOption {
	return func(l *Locator) { l.prompter = p }
}

// OnPermissionDecided is called after a prompt with the user's answer, so it
// can be remembered across runs.
func OnPermissionDecided(fn func(Permission)) LocatorOption {
	return func(l *Locator) { l.onDecision = fn }
}

// WithPositionCache stores the last position for MaximumAge lookups.
func WithPositionCache(c cachemanager.CacheManager[string, Position]) LocatorOption {
	return func(l *Locator) {
		if c != nil {
			l.cache = c
		}
	}
}

// WithTracer sets the tracer for geo.locate spans.
func WithTracer(t trace.Tracer) LocatorOption {
	return func(l *Locator) {
		if t != nil {
			l.tracer = t
		}
	}
}

// WithClock overrides time.Now for MaximumAge checks.
func WithClock(now func() time.Time) LocatorOption {
	return func(l *Locator) {
		if now != nil {
			l.now = now
		}
	}
}

// NewLocator creates a Locator. A nil provider makes Supported false.
func NewLocator(provider Provider, opts ...LocatorOption) *Locator {
	l := &Locator{
		provider:   provider,
		permission: Prompt,
		cache:      cachemanager.NewInMemoryCacheManager[string, Position]("geo", lastPositionTTL, cachemanager.DefaultCleanupInterval),
		tracer:     tracing.Noop(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Supported reports whether a provider is configured.
func (l *Locator) Supported() bool {
	return l.provider != nil
}

// Permission returns the current permission state.
func (l *Locator) Permission() Permission {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.permission
}

// Locate returns the current position. Every failure is an *Error.
func (l *Locator) Locate(ctx context.Context, opts ...Option) (Position, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	ctx, span := l.tracer.Start(ctx, tracing.SpanGeoLocate)
	defer span.End()

	pos, err := l.locate(ctx, o)
	if err != nil {
		tracing.RecordError(span, err)
		var geoErr *Error
		if errors.As(err, &geoErr) {
			log.Warn(log.CatGeo, "locate failed", "kind", geoErr.Kind, "error", err)
		}
		return Position{}, err
	}
	return pos, nil
}

func (l *Locator) locate(ctx context.Context, o Options) (Position, error) {
	if !l.Supported() {
		return Position{}, &Error{Kind: PositionUnavailable, Err: errors.New("geolocation is not supported")}
	}

	if err := l.authorize(ctx); err != nil {
		return Position{}, err
	}

	span := trace.SpanFromContext(ctx)
	if o.MaximumAge > 0 {
		if cached, ok := l.cache.Get(ctx, lastPositionKey); ok && l.now().Sub(cached.Timestamp) <= o.MaximumAge {
			span.SetAttributes(attribute.Bool(tracing.AttrGeoCached, true))
			log.Debug(log.CatGeo, "using cached position", "age", l.now().Sub(cached.Timestamp))
			return cached, nil
		}
	}
	span.SetAttributes(attribute.Bool(tracing.AttrGeoCached, false))

	callCtx := ctx
	if o.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, o.Timeout)
		defer cancel()
	}

	pos, err := l.provider.Locate(callCtx, o)
	if err != nil {
		return Position{}, classify(err)
	}
	if pos.Timestamp.IsZero() {
		pos.Timestamp = l.now()
	}
	l.cache.Set(ctx, lastPositionKey, pos, lastPositionTTL)
	log.Info(log.CatGeo, "located", "lat", pos.Latitude, "lon", pos.Longitude, "accuracy", pos.Accuracy)
	return pos, nil
}

func (l *Locator) authorize(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch l.permission {
	case Granted:
		return nil
	case Denied:
		return &Error{Kind: PermissionDenied}
	}

	if l.prompter == nil {
		return &Error{Kind: PermissionDenied, Err: errors.New("no prompter available")}
	}
	allowed, err := l.prompter.Prompt(ctx)
	if err != nil {
		return &Error{Kind: PermissionDenied, Err: fmt.Errorf("prompting: %w", err)}
	}

	l.permission = Denied
	if allowed {
		l.permission = Granted
	}
	log.Info(log.CatGeo, "permission decided", "permission", l.permission)
	if l.onDecision != nil {
		l.onDecision(l.permission)
	}
	if !allowed {
		return &Error{Kind: PermissionDenied}
	}
	return nil
}

func classify(err error) error {
	var geoErr *Error
	switch {
	case errors.As(err, &geoErr):
		return geoErr
	case errors.Is(err, context.DeadlineExceeded):
		return &Error{Kind: Timeout, Err: err}
	default:
		return &Error{Kind: PositionUnavailable, Err: err}
	}
}
