package eventbus

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusDeliversInPublishOrder(t *testing.T) {
	b := New(nil)

	var mu sync.Mutex
	var got []int
	done := make(chan struct{})
	b.Subscribe(EventStatusChanged, func(e DomainEvent) {
		ev := e.(StatusChangedEvent)
		mu.Lock()
		got = append(got, ev.Progress)
		n := len(got)
		mu.Unlock()
		if n == 100 {
			close(done)
		}
	})

	for i := 0; i < 100; i++ {
		b.Publish(StatusChangedEvent{Progress: i, Visible: true})
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("events were not delivered")
	}
	b.Close()

	mu.Lock()
	defer mu.Unlock()
	for i, p := range got {
		require.Equal(t, i, p, "event %d out of order", i)
	}
}

func TestBusRecoversFromHandlerPanic(t *testing.T) {
	b := New(nil)
	defer b.Close()

	delivered := make(chan struct{}, 1)
	b.Subscribe(EventResultsCleared, func(DomainEvent) { panic("boom") })
	b.Subscribe(EventResultsCleared, func(DomainEvent) { delivered <- struct{}{} })

	b.Publish(ResultsClearedEvent{})

	select {
	case <-delivered:
	case <-time.After(2 * time.Second):
		t.Fatal("second handler did not run after first panicked")
	}
}

func TestBusUnsubscribe(t *testing.T) {
	b := New(nil)

	var mu sync.Mutex
	calls := 0
	unsubscribe := b.Subscribe(EventResultsCleared, func(DomainEvent) {
		mu.Lock()
		calls++
		mu.Unlock()
	})
	unsubscribe()

	b.Publish(ResultsClearedEvent{})
	b.Close()

	mu.Lock()
	defer mu.Unlock()
	assert.Zero(t, calls)
}

func TestBusCloseDrainsQueuedEvents(t *testing.T) {
	b := New(nil)

	var mu sync.Mutex
	count := 0
	b.Subscribe(EventResultsCleared, func(DomainEvent) {
		mu.Lock()
		count++
		mu.Unlock()
	})
	for i := 0; i < 10; i++ {
		b.Publish(ResultsClearedEvent{})
	}
	b.Close()

	// publishing after close must not block
	b.Publish(ResultsClearedEvent{})

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 10, count)
}
