package posts

import (
	"context"
	"errors"
	"math/rand/v2"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/wayfarer/internal/cachemanager"
	"github.com/zjrosen/wayfarer/internal/log"
	"github.com/zjrosen/wayfarer/internal/tracing"
)

// MaxID is the largest post id the API serves. Random ids are drawn from
// 1..MaxID inclusive.
const MaxID = 100

// Fetcher runs at most one logical request at a time. Starting a request
// cancels the one in flight, and only the newest request can produce a
// Success or Failure.
type Fetcher struct {
	getter  Getter
	cache   *cachemanager.ReadThroughCache[string, Post, int]
	timeout time.Duration
	tracer  trace.Tracer
	randID  func() int
	newID   func() string

	mu      sync.Mutex
	current *inflight
	seq     uint64

	// deliverMu orders Start callbacks so an older outcome never reaches
	// fn after a newer one.
	deliverMu sync.Mutex
}

type inflight struct {
	id       string
	seq      uint64
	cancel   context.CancelFunc
	canceled bool
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithTimeout bounds each request. Zero means only the caller's context
// applies.
func WithTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) { f.timeout = d }
}

// WithCache caches successful fetches by id for ttl. A ttl <= 0 disables
// caching.
func WithCache(cm cachemanager.CacheManager[string, Post], ttl time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.cache = cachemanager.NewReadThroughCache(cm, cacheKey, f.getter.Get, ttl)
	}
}

// WithTracer sets the tracer used for posts.fetch spans.
func WithTracer(t trace.Tracer) FetcherOption {
	return func(f *Fetcher) {
		if t != nil {
			f.tracer = t
		}
	}
}

// WithRandomID overrides the id source for FetchRandom.
func WithRandomID(fn func() int) FetcherOption {
	return func(f *Fetcher) {
		if fn != nil {
			f.randID = fn
		}
	}
}

// NewFetcher creates a Fetcher over getter. Without WithCache every fetch
// hits getter.
func NewFetcher(getter Getter, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		getter:  getter,
		tracer:  tracing.Noop(),
		randID:  RandomID,
		newID:   uuid.NewString,
		timeout: 10 * time.Second,
	}
	f.cache = cachemanager.NewReadThroughCache[string, Post, int](nil, cacheKey, getter.Get, 0)
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// RandomID returns an id uniformly distributed in 1..MaxID.
func RandomID() int {
	return rand.IntN(MaxID) + 1 //nolint:gosec // not security sensitive
}

// FetchRandom fetches a post with a random id.
func (f *Fetcher) FetchRandom(ctx context.Context) Outcome {
	return f.FetchByID(ctx, f.randID())
}

// FetchByID fetches post id, superseding any request in flight. It blocks
// until the request completes or is canceled.
func (f *Fetcher) FetchByID(ctx context.Context, id int) Outcome {
	out, _ := f.fetch(ctx, id)
	return out
}

func (f *Fetcher) fetch(ctx context.Context, id int) (Outcome, *inflight) {
	reqCtx, cancel := context.WithCancel(ctx)
	req := f.begin(cancel)
	defer f.end(req)

	if f.timeout > 0 {
		var cancelTimeout context.CancelFunc
		reqCtx, cancelTimeout = context.WithTimeout(reqCtx, f.timeout)
		defer cancelTimeout()
	}

	reqCtx, span := f.tracer.Start(reqCtx, tracing.SpanPostsFetch,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String(tracing.AttrRequestID, req.id),
			attribute.Int(tracing.AttrPostID, id),
		),
	)
	defer span.End()

	log.Debug(log.CatPosts, "fetching post", "request", req.id, "id", id)
	post, hit, err := f.cache.Get(reqCtx, id)
	span.SetAttributes(attribute.Bool(tracing.AttrCacheHit, hit))

	var out Outcome
	switch {
	case f.superseded(req) || (err != nil && errors.Is(err, context.Canceled)):
		out = canceled(req.id)
	case err != nil:
		tracing.RecordError(span, err)
		log.ErrorErr(log.CatPosts, "fetch failed", err, "request", req.id, "id", id)
		out = failure(req.id, err)
	default:
		log.Debug(log.CatPosts, "fetched post", "request", req.id, "id", post.ID)
		out = success(req.id, post)
	}
	span.SetAttributes(attribute.String(tracing.AttrOutcome, out.Kind.String()))
	return out, req
}

// Start runs FetchRandom in a goroutine and calls fn with the outcome.
// Canceled outcomes are dropped.
func (f *Fetcher) Start(ctx context.Context, fn func(Outcome)) {
	f.StartByID(ctx, f.randID(), fn)
}

// StartByID is Start for a chosen id. fn runs only if no newer request
// has begun by the time the outcome is delivered; it must not block or
// call back into the Fetcher.
func (f *Fetcher) StartByID(ctx context.Context, id int, fn func(Outcome)) {
	go func() {
		out, req := f.fetch(ctx, id)
		if out.Kind == OutcomeCanceled {
			log.Debug(log.CatPosts, "dropping canceled fetch", "request", out.RequestID)
			return
		}

		f.deliverMu.Lock()
		defer f.deliverMu.Unlock()
		if !f.latest(req) {
			log.Debug(log.CatPosts, "dropping superseded fetch", "request", out.RequestID)
			return
		}
		fn(out)
	}()
}

// Cancel aborts the request in flight, if any.
func (f *Fetcher) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.current != nil {
		f.current.canceled = true
		f.current.cancel()
		f.current = nil
	}
}

// InFlight reports whether a request is running.
func (f *Fetcher) InFlight() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current != nil
}

func (f *Fetcher) begin(cancel context.CancelFunc) *inflight {
	req := &inflight{id: f.newID(), cancel: cancel}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	req.seq = f.seq
	if f.current != nil {
		log.Debug(log.CatPosts, "superseding request", "request", f.current.id, "by", req.id)
		f.current.canceled = true
		f.current.cancel()
	}
	f.current = req
	return req
}

func (f *Fetcher) end(req *inflight) {
	f.mu.Lock()
	defer f.mu.Unlock()
	req.cancel()
	if f.current == req {
		f.current = nil
	}
}

func (f *Fetcher) superseded(req *inflight) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return req.canceled
}

// latest reports whether req is the newest request and was not canceled.
func (f *Fetcher) latest(req *inflight) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return !req.canceled && req.seq == f.seq
}

func cacheKey(id int) string {
	return "post:" + strconv.Itoa(id)
}
