package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func recv[T any](t *testing.T, ch <-chan Event[T]) Event[T] {
	t.Helper()
	select {
	case ev, ok := <-ch:
		require.True(t, ok, "channel closed")
		return ev
	case <-time.After(time.Second):
		require.FailNow(t, "timeout waiting for event")
	}
	return Event[T]{}
}

func TestBroker_DeliversToEverySubscriber(t *testing.T) {
	stamp := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	broker := NewBroker[[]int](WithClock(func() time.Time { return stamp }))
	defer broker.Close()

	a := broker.Subscribe(context.Background())
	b := broker.Subscribe(context.Background())
	require.Equal(t, 2, broker.SubscriberCount())

	broker.Publish(UpdatedEvent, []int{12, 7})

	for _, ch := range []<-chan Event[[]int]{a, b} {
		ev := recv(t, ch)
		require.Equal(t, UpdatedEvent, ev.Type)
		require.Equal(t, []int{12, 7}, ev.Payload)
		require.Equal(t, stamp, ev.Timestamp)
	}
}

func TestBroker_CancelUnsubscribes(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	ch := broker.Subscribe(ctx)
	cancel()

	require.Eventually(t, func() bool { return broker.SubscriberCount() == 0 },
		time.Second, 5*time.Millisecond)
	_, ok := <-ch
	require.False(t, ok)
}

func TestBroker_DropNewestKeepsQueuedEvents(t *testing.T) {
	broker := NewBroker[int](WithBufferSize(1))
	defer broker.Close()
	ch := broker.Subscribe(context.Background())

	broker.Publish(UpdatedEvent, 1)
	broker.Publish(UpdatedEvent, 2)
	broker.Publish(UpdatedEvent, 3)

	require.Equal(t, 1, recv(t, ch).Payload)
	require.Equal(t, uint64(2), broker.Dropped())
}

func TestBroker_KeepLatestEvictsOldest(t *testing.T) {
	broker := NewBroker[string](WithBufferSize(2), WithOverflow(KeepLatest))
	defer broker.Close()
	ch := broker.Subscribe(context.Background())

	for _, theme := range []string{"dark", "light", "dark", "light"} {
		broker.Publish(UpdatedEvent, theme)
	}

	require.Equal(t, "dark", recv(t, ch).Payload)
	require.Equal(t, "light", recv(t, ch).Payload)
	require.Equal(t, uint64(2), broker.Dropped())
}

func TestBroker_BufferSizeFloor(t *testing.T) {
	broker := NewBroker[int](WithBufferSize(0))
	defer broker.Close()
	ch := broker.Subscribe(context.Background())

	broker.Publish(CreatedEvent, 5)
	require.Equal(t, 5, recv(t, ch).Payload)
}

func TestBroker_Close(t *testing.T) {
	broker := NewBroker[string]()
	ch := broker.Subscribe(context.Background())

	broker.Close()
	broker.Close()

	_, ok := <-ch
	require.False(t, ok)
	require.Zero(t, broker.SubscriberCount())

	late := broker.Subscribe(context.Background())
	_, ok = <-late
	require.False(t, ok, "subscribe after close returns a closed channel")

	require.NotPanics(t, func() { broker.Publish(UpdatedEvent, "ignored") })
}

func TestBroker_CancelAfterClose(t *testing.T) {
	broker := NewBroker[int]()
	ctx, cancel := context.WithCancel(context.Background())
	broker.Subscribe(ctx)

	broker.Close()
	require.NotPanics(t, func() { cancel() })
}

func TestForward_PublishesPayload(t *testing.T) {
	broker := NewBroker[[]int]()
	defer broker.Close()
	ch := broker.Subscribe(context.Background())

	Forward[[]int](broker, UpdatedEvent)([]int{3, 2, 1})

	ev := recv(t, ch)
	require.Equal(t, UpdatedEvent, ev.Type)
	require.Equal(t, []int{3, 2, 1}, ev.Payload)
}
