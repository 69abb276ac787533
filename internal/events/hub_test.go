package events

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(ch <-chan Event) []Event {
	var out []Event
	for {
		select {
		case e := <-ch:
			out = append(out, e)
		default:
			return out
		}
	}
}

func TestHub_PublishSubscribe(t *testing.T) {
	hub := NewHub()
	ch := hub.Subscribe(10, EventTrialExtended)

	hub.Publish(Event{
		Type:   EventTrialExtended,
		Source: "test",
		Data:   TrialData{TrialPeriodDays: 14, Delta: 7},
	})

	got := drain(ch)
	require.Len(t, got, 1)
	assert.Equal(t, EventTrialExtended, got[0].Type)
	assert.False(t, got[0].Timestamp.IsZero(), "publish stamps missing timestamps")

	data, ok := got[0].Data.(TrialData)
	require.True(t, ok)
	assert.Equal(t, 7, data.Delta)
}

func TestHub_KeepsTimestamp(t *testing.T) {
	hub := NewHub()
	ch := hub.Subscribe(1)
	ts := time.Date(2026, 6, 15, 9, 30, 0, 0, time.UTC)

	hub.Publish(Event{Type: EventTrialReset, Timestamp: ts})

	got := drain(ch)
	require.Len(t, got, 1)
	assert.Equal(t, ts, got[0].Timestamp)
}

func TestHub_GlobalSubscription(t *testing.T) {
	hub := NewHub()
	ch := hub.Subscribe(10)

	hub.Publish(Event{Type: EventTrialCreated})
	hub.Publish(Event{Type: EventTrialExtended})
	hub.Publish(Event{Type: EventSaveFailed})

	assert.Len(t, drain(ch), 3)
}

func TestHub_TypeFiltering(t *testing.T) {
	hub := NewHub()
	ch := hub.Subscribe(10, EventTrialReset, EventTrialExpired)

	hub.Publish(Event{Type: EventTrialExtended})
	hub.Publish(Event{Type: EventTrialReset})
	hub.Publish(Event{Type: EventTrialLoaded})
	hub.Publish(Event{Type: EventTrialExpired})

	got := drain(ch)
	require.Len(t, got, 2)
	assert.Equal(t, EventTrialReset, got[0].Type)
	assert.Equal(t, EventTrialExpired, got[1].Type)
}

func TestHub_Unsubscribe(t *testing.T) {
	hub := NewHub()
	ch := hub.Subscribe(10, EventTrialExtended)
	all := hub.Subscribe(10)

	hub.Unsubscribe(ch)
	hub.Unsubscribe(all)
	hub.Publish(Event{Type: EventTrialExtended})

	assert.Empty(t, drain(ch))
	assert.Empty(t, drain(all))
}

func TestHub_NonBlocking(t *testing.T) {
	hub := NewHub()
	_ = hub.Subscribe(1, EventTrialExtended)

	for i := 0; i < 10; i++ {
		hub.Publish(Event{Type: EventTrialExtended})
	}

	published, dropped := hub.Stats()
	assert.Equal(t, uint64(10), published)
	assert.Equal(t, uint64(9), dropped)
}

func TestHub_Nil(t *testing.T) {
	var hub *Hub
	assert.NotPanics(t, func() { hub.Publish(Event{Type: EventTrialReset}) })
}

func TestHub_Concurrent(t *testing.T) {
	hub := NewHub()
	ch := hub.Subscribe(1000, EventTrialExtended)

	var wg sync.WaitGroup
	const numPublishers = 10
	const eventsPerPublisher = 100

	for i := 0; i < numPublishers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < eventsPerPublisher; j++ {
				hub.Publish(Event{Type: EventTrialExtended})
			}
		}()
	}
	wg.Wait()

	assert.Len(t, drain(ch), numPublishers*eventsPerPublisher)
	published, dropped := hub.Stats()
	assert.Equal(t, uint64(numPublishers*eventsPerPublisher), published)
	assert.Zero(t, dropped)
}
