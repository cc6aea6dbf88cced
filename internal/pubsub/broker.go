package pubsub

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

const defaultBufferSize = 64

// Overflow decides what a full subscriber buffer gives up.
type Overflow int

const (
	// DropNewest discards the event being published.
	DropNewest Overflow = iota
	// KeepLatest evicts the oldest queued event to make room. Use it for
	// snapshot payloads where only the most recent value matters.
	KeepLatest
)

// Option configures a Broker.
type Option func(*brokerOptions)

type brokerOptions struct {
	bufferSize int
	overflow   Overflow
	now        func() time.Time
}

// WithBufferSize sets the per-subscriber channel capacity. Values below 1
// are treated as 1.
func WithBufferSize(n int) Option {
	return func(o *brokerOptions) { o.bufferSize = max(n, 1) }
}

// WithOverflow sets the policy applied when a subscriber falls behind.
func WithOverflow(p Overflow) Option {
	return func(o *brokerOptions) { o.overflow = p }
}

// WithClock overrides the event timestamp source.
func WithClock(now func() time.Time) Option {
	return func(o *brokerOptions) { o.now = now }
}

// Broker fans events out to subscribers. Publish never blocks: a subscriber
// whose buffer is full loses an event according to the broker's Overflow
// policy.
type Broker[T any] struct {
	mu      sync.Mutex
	subs    map[chan Event[T]]struct{}
	closed  bool
	opts    brokerOptions
	dropped atomic.Uint64
}

// NewBroker creates a broker. Defaults: 64-slot buffers, DropNewest.
func NewBroker[T any](opts ...Option) *Broker[T] {
	o := brokerOptions{bufferSize: defaultBufferSize, overflow: DropNewest, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &Broker[T]{
		subs: make(map[chan Event[T]]struct{}),
		opts: o,
	}
}

// Subscribe returns a channel of events. The channel is closed when ctx is
// cancelled or the broker is closed. Subscribing to a closed broker returns
// an already-closed channel.
func (b *Broker[T]) Subscribe(ctx context.Context) <-chan Event[T] {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		ch := make(chan Event[T])
		close(ch)
		return ch
	}

	sub := make(chan Event[T], b.opts.bufferSize)
	b.subs[sub] = struct{}{}

	context.AfterFunc(ctx, func() { b.unsubscribe(sub) })
	return sub
}

func (b *Broker[T]) unsubscribe(sub chan Event[T]) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subs[sub]; !ok {
		return
	}
	delete(b.subs, sub)
	close(sub)
}

// Publish delivers payload to every subscriber.
func (b *Broker[T]) Publish(eventType EventType, payload T) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}

	event := Event[T]{Type: eventType, Payload: payload, Timestamp: b.opts.now()}
	for sub := range b.subs {
		b.deliver(sub, event)
	}
}

// deliver must be called with b.mu held; that is what makes the
// evict-then-send in KeepLatest safe against other publishers.
func (b *Broker[T]) deliver(sub chan Event[T], event Event[T]) {
	select {
	case sub <- event:
		return
	default:
	}

	b.dropped.Add(1)
	if b.opts.overflow != KeepLatest {
		return
	}
	select {
	case <-sub:
	default:
	}
	select {
	case sub <- event:
	default:
	}
}

// Close shuts the broker down and closes every subscriber channel. It is
// safe to call more than once.
func (b *Broker[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for sub := range b.subs {
		close(sub)
	}
	b.subs = nil
}

// SubscriberCount returns the number of active subscribers.
func (b *Broker[T]) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Dropped reports how many deliveries hit a full buffer. Under KeepLatest
// each one evicted an older event rather than losing the new one.
func (b *Broker[T]) Dropped() uint64 {
	return b.dropped.Load()
}

var (
	_ Publisher[struct{}]  = (*Broker[struct{}])(nil)
	_ Subscriber[struct{}] = (*Broker[struct{}])(nil)
)
