package posts

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"pgregory.net/rapid"

	"github.com/zjrosen/wayfarer/internal/cachemanager"
	"github.com/zjrosen/wayfarer/internal/tracing"
)

// blockingGetter blocks ids listed in hold until released, ignoring the
// context, so a late response can be simulated.
type blockingGetter struct {
	mu      sync.Mutex
	hold    map[int]chan struct{}
	started chan int
	calls   atomic.Int32
}

func newBlockingGetter(hold ...int) *blockingGetter {
	g := &blockingGetter{hold: map[int]chan struct{}{}, started: make(chan int, 16)}
	for _, id := range hold {
		g.hold[id] = make(chan struct{})
	}
	return g
}

func (g *blockingGetter) Get(ctx context.Context, id int) (Post, error) {
	g.calls.Add(1)
	g.started <- id
	g.mu.Lock()
	ch := g.hold[id]
	g.mu.Unlock()
	if ch != nil {
		<-ch
	}
	return Post{ID: id, Title: "post"}, nil
}

func (g *blockingGetter) release(id int) {
	close(g.hold[id])
}

type errGetter struct{ err error }

func (g errGetter) Get(ctx context.Context, id int) (Post, error) {
	return Post{}, g.err
}

func sequence(ids ...int) func() int {
	var mu sync.Mutex
	i := 0
	return func() int {
		mu.Lock()
		defer mu.Unlock()
		id := ids[i%len(ids)]
		i++
		return id
	}
}

func TestFetchRandom_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/17", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":17,"title":"Reykjavik","body":"b","userId":2}`))
	}))
	t.Cleanup(srv.Close)

	f := NewFetcher(NewClient(WithBaseURL(srv.URL)), WithRandomID(sequence(17)))
	out := f.FetchRandom(context.Background())

	require.Equal(t, OutcomeSuccess, out.Kind)
	require.Equal(t, "Reykjavik", out.Post.Title)
	require.NotEmpty(t, out.RequestID)
	require.False(t, f.InFlight())
}

func TestFetchRandom_Non2xxIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	f := NewFetcher(NewClient(WithBaseURL(srv.URL)))
	out := f.FetchRandom(context.Background())

	require.Equal(t, OutcomeFailure, out.Kind)
	require.Equal(t, "Failed to fetch destination (HTTP 503).", out.Message)
	var statusErr *StatusError
	require.ErrorAs(t, out.Err, &statusErr)
}

func TestFetchByID_TransportFailureMessage(t *testing.T) {
	f := NewFetcher(errGetter{err: errors.New("connection refused")})
	out := f.FetchByID(context.Background(), 1)

	require.Equal(t, OutcomeFailure, out.Kind)
	require.Equal(t, "Failed to fetch destination. Check your connection and try again.", out.Message)
	require.EqualError(t, out.Err, "connection refused")
}

func TestFetchByID_TimeoutIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	t.Cleanup(srv.Close)

	f := NewFetcher(NewClient(WithBaseURL(srv.URL)), WithTimeout(30*time.Millisecond))
	out := f.FetchByID(context.Background(), 3)

	require.Equal(t, OutcomeFailure, out.Kind)
	require.ErrorIs(t, out.Err, context.DeadlineExceeded)
	require.Equal(t, "Fetching a destination timed out. Please try again.", out.Message)
}

func TestFetchByID_CallerCancelIsCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithCancel(context.Background())
	f := NewFetcher(NewClient(WithBaseURL(srv.URL)))
	time.AfterFunc(20*time.Millisecond, cancel)

	out := f.FetchByID(ctx, 3)
	require.Equal(t, OutcomeCanceled, out.Kind)
	require.Empty(t, out.Message)
}

func TestFetchByID_NewRequestSupersedesInFlight(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/1" {
			<-r.Context().Done()
			return
		}
		_, _ = w.Write([]byte(`{"id":2,"title":"Second"}`))
	}))
	t.Cleanup(srv.Close)

	f := NewFetcher(NewClient(WithBaseURL(srv.URL)))

	firstDone := make(chan Outcome, 1)
	go func() { firstDone <- f.FetchByID(context.Background(), 1) }()
	require.Eventually(t, f.InFlight, time.Second, 5*time.Millisecond)

	second := f.FetchByID(context.Background(), 2)
	require.Equal(t, OutcomeSuccess, second.Kind)
	require.Equal(t, "Second", second.Post.Title)

	select {
	case first := <-firstDone:
		require.Equal(t, OutcomeCanceled, first.Kind)
		require.NotEqual(t, second.RequestID, first.RequestID)
	case <-time.After(time.Second):
		require.Fail(t, "superseded request did not finish")
	}
}

func TestFetchByID_LateResponseOfSupersededRequestIsCanceled(t *testing.T) {
	g := newBlockingGetter(1)
	f := NewFetcher(g)

	firstDone := make(chan Outcome, 1)
	go func() { firstDone <- f.FetchByID(context.Background(), 1) }()
	require.Equal(t, 1, <-g.started)

	second := f.FetchByID(context.Background(), 2)
	require.Equal(t, OutcomeSuccess, second.Kind)

	// The getter ignores cancellation and returns a valid post afterwards.
	g.release(1)
	require.Equal(t, OutcomeCanceled, (<-firstDone).Kind)
}

func TestCancel_AbortsInFlight(t *testing.T) {
	g := newBlockingGetter(9)
	f := NewFetcher(g)

	done := make(chan Outcome, 1)
	go func() { done <- f.FetchByID(context.Background(), 9) }()
	<-g.started

	f.Cancel()
	require.False(t, f.InFlight())
	g.release(9)

	require.Equal(t, OutcomeCanceled, (<-done).Kind)
}

func TestCancel_NoRequestIsNoop(t *testing.T) {
	f := NewFetcher(errGetter{})
	require.NotPanics(t, f.Cancel)
}

func TestStart_SuppressesCanceledOutcomes(t *testing.T) {
	g := newBlockingGetter(1)
	f := NewFetcher(g, WithRandomID(sequence(1, 2)))

	outcomes := make(chan Outcome, 4)
	deliver := func(o Outcome) { outcomes <- o }

	f.Start(context.Background(), deliver)
	require.Equal(t, 1, <-g.started)
	f.Start(context.Background(), deliver)
	require.Equal(t, 2, <-g.started)

	first := <-outcomes
	require.Equal(t, OutcomeSuccess, first.Kind)
	require.Equal(t, 2, first.Post.ID)

	g.release(1)
	select {
	case o := <-outcomes:
		require.Failf(t, "unexpected outcome", "%v", o.Kind)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestFetcher_CachesByID(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{"id":5,"title":"Cusco"}`))
	}))
	t.Cleanup(srv.Close)

	cache := cachemanager.NewInMemoryCacheManager[string, Post]("posts", time.Minute, time.Minute)
	f := NewFetcher(NewClient(WithBaseURL(srv.URL)), WithCache(cache, time.Minute))

	for range 3 {
		out := f.FetchByID(context.Background(), 5)
		require.Equal(t, OutcomeSuccess, out.Kind)
		require.Equal(t, "Cusco", out.Post.Title)
	}
	require.EqualValues(t, 1, hits.Load())
	require.Equal(t, 1, cache.Len())
}

func TestFetcher_ZeroTTLDisablesCache(t *testing.T) {
	g := newBlockingGetter()
	cache := cachemanager.NewInMemoryCacheManager[string, Post]("posts", time.Minute, time.Minute)
	f := NewFetcher(g, WithCache(cache, 0))

	f.FetchByID(context.Background(), 5)
	f.FetchByID(context.Background(), 5)
	require.EqualValues(t, 2, g.calls.Load())
	require.Equal(t, 0, cache.Len())
}

func TestFetcher_FailuresAreNotCached(t *testing.T) {
	cache := cachemanager.NewInMemoryCacheManager[string, Post]("posts", time.Minute, time.Minute)
	f := NewFetcher(errGetter{err: errors.New("boom")}, WithCache(cache, time.Minute))

	require.Equal(t, OutcomeFailure, f.FetchByID(context.Background(), 5).Kind)
	require.Equal(t, 0, cache.Len())
}

func TestFetcher_RecordsSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":8,"title":"Hanoi"}`))
	}))
	t.Cleanup(srv.Close)

	f := NewFetcher(NewClient(WithBaseURL(srv.URL)), WithTracer(tp.Tracer("test")))
	out := f.FetchByID(context.Background(), 8)
	require.Equal(t, OutcomeSuccess, out.Kind)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	require.Equal(t, tracing.SpanPostsFetch, spans[0].Name())

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range spans[0].Attributes() {
		attrs[kv.Key] = kv.Value
	}
	require.Equal(t, int64(8), attrs[tracing.AttrPostID].AsInt64())
	require.Equal(t, int64(200), attrs[tracing.AttrHTTPStatusCode].AsInt64())
	require.Equal(t, out.RequestID, attrs[tracing.AttrRequestID].AsString())
	require.Equal(t, "success", attrs[tracing.AttrOutcome].AsString())
	require.False(t, attrs[tracing.AttrCacheHit].AsBool())
}

func TestRandomID_InRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		_ = rapid.Int().Draw(t, "seed")
		id := RandomID()
		if id < 1 || id > MaxID {
			t.Fatalf("id %d outside 1..%d", id, MaxID)
		}
	})
}

func TestRandomID_CoversBounds(t *testing.T) {
	seen := map[int]bool{}
	for range 20000 {
		seen[RandomID()] = true
	}
	require.True(t, seen[1])
	require.True(t, seen[MaxID])
	require.Len(t, seen, MaxID)
}

func TestOutcomeKind_String(t *testing.T) {
	require.Equal(t, "success", OutcomeSuccess.String())
	require.Equal(t, "failure", OutcomeFailure.String())
	require.Equal(t, "canceled", OutcomeCanceled.String())
	require.Equal(t, "unknown", OutcomeKind(99).String())
}

func TestStartByID_DeliversChosenPost(t *testing.T) {
	g := newBlockingGetter()
	f := NewFetcher(g, WithRandomID(func() int { return 1 }))

	outcomes := make(chan Outcome, 1)
	f.StartByID(context.Background(), 42, func(o Outcome) { outcomes <- o })

	select {
	case o := <-outcomes:
		require.Equal(t, OutcomeSuccess, o.Kind)
		require.Equal(t, 42, o.Post.ID)
	case <-time.After(time.Second):
		require.Fail(t, "timeout waiting for outcome")
	}
}

// spanEndHook runs onEnd for every finished span.
type spanEndHook struct{ onEnd func(sdktrace.ReadOnlySpan) }

func (h spanEndHook) OnStart(context.Context, sdktrace.ReadWriteSpan) {}
func (h spanEndHook) OnEnd(s sdktrace.ReadOnlySpan)                   { h.onEnd(s) }
func (spanEndHook) Shutdown(context.Context) error                    { return nil }
func (spanEndHook) ForceFlush(context.Context) error                  { return nil }

func TestStartByID_SupersededAfterOutcomeIsNotDelivered(t *testing.T) {
	var (
		f     *Fetcher
		once  sync.Once
		newer = make(chan Outcome, 1)
	)
	// Request 1 has decided its outcome when its span ends; a newer request
	// begins right then, before request 1 reaches its callback.
	hook := spanEndHook{onEnd: func(s sdktrace.ReadOnlySpan) {
		for _, kv := range s.Attributes() {
			if kv.Key == tracing.AttrPostID && kv.Value.AsInt64() == 1 {
				once.Do(func() { newer <- f.FetchByID(context.Background(), 2) })
			}
		}
	}}
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(hook))
	f = NewFetcher(newBlockingGetter(), WithTracer(tp.Tracer("test")))

	var (
		mu        sync.Mutex
		delivered []int
	)
	f.StartByID(context.Background(), 1, func(o Outcome) {
		mu.Lock()
		defer mu.Unlock()
		delivered = append(delivered, o.Post.ID)
	})

	select {
	case o := <-newer:
		require.Equal(t, 2, o.Post.ID)
	case <-time.After(time.Second):
		require.FailNow(t, "newer request never ran")
	}
	require.Never(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(delivered) > 0
	}, 100*time.Millisecond, 5*time.Millisecond)
}

func TestStartByID_DeliversInRequestOrder(t *testing.T) {
	g := newBlockingGetter(1)
	f := NewFetcher(g)

	var (
		mu        sync.Mutex
		delivered []int
	)
	record := func(o Outcome) {
		mu.Lock()
		defer mu.Unlock()
		delivered = append(delivered, o.Post.ID)
	}

	f.StartByID(context.Background(), 1, record)
	require.Equal(t, 1, <-g.started)
	f.StartByID(context.Background(), 2, record)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(delivered) == 1
	}, time.Second, 5*time.Millisecond)
	g.release(1)

	require.Never(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(delivered) > 1
	}, 100*time.Millisecond, 5*time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []int{2}, delivered)
}
