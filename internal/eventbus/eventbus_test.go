package eventbus

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefinder/internal/domain"
)

func TestPublishDeliversToSubscribersOfType(t *testing.T) {
	b := New()
	defer b.Close()

	got := make(chan DomainEvent, 1)
	b.Subscribe(EventFetchStarted, func(e DomainEvent) { got <- e })

	var other atomic.Int32
	b.Subscribe(EventFetchFailed, func(DomainEvent) { other.Add(1) })

	b.Publish(FetchStartedEvent{Request: domain.FetchRequest{Query: "lon", PageSize: 3, Seq: 1}})

	select {
	case e := <-got:
		started, ok := e.(FetchStartedEvent)
		require.True(t, ok)
		assert.Equal(t, "lon", started.Request.Query)
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for event")
	}
	assert.Zero(t, other.Load())
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := New()
	defer b.Close()

	var calls atomic.Int32
	unsubscribe := b.Subscribe(EventQueryChanged, func(DomainEvent) { calls.Add(1) })
	unsubscribe()

	seen := make(chan struct{}, 1)
	b.Subscribe(EventQueryChanged, func(DomainEvent) { seen <- struct{}{} })
	b.Publish(QueryChangedEvent{Query: "a"})

	select {
	case <-seen:
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for event")
	}
	assert.Zero(t, calls.Load())
}

func TestHandlerPanicDoesNotStopBus(t *testing.T) {
	b := New()
	defer b.Close()

	b.Subscribe(EventFetchFailed, func(DomainEvent) { panic("boom") })
	seen := make(chan struct{}, 2)
	b.Subscribe(EventFetchFailed, func(DomainEvent) { seen <- struct{}{} })

	b.Publish(FetchFailedEvent{})
	b.Publish(FetchFailedEvent{})

	for i := 0; i < 2; i++ {
		select {
		case <-seen:
		case <-time.After(time.Second):
			t.Fatal("timeout waiting for event")
		}
	}
}

func TestPublishAfterCloseIsIgnored(t *testing.T) {
	b := New()
	b.Close()
	b.Close()

	assert.NotPanics(t, func() {
		b.Publish(QueryChangedEvent{Query: "x"})
	})
}
