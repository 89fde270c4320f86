package requestlog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingStore rejects every save so recorder fall-through can be observed.
type failingStore struct{}

func (failingStore) Save(context.Context, *Entry) error          { return errors.New("disk full") }
func (failingStore) List(context.Context, *Filter) ([]*Entry, error) { return nil, nil }
func (failingStore) Count(context.Context) (int, error)          { return 0, nil }
func (failingStore) Clear(context.Context) error                 { return nil }

func TestNotifierDeliversToAllSubscribers(t *testing.T) {
	n := NewNotifier()

	ch1, cancel1 := n.Subscribe()
	ch2, cancel2 := n.Subscribe()
	defer cancel1()
	defer cancel2()

	assert.Equal(t, 2, n.SubscriberCount())

	n.Publish(Notification{Method: "GET", Path: "/x"})

	for _, ch := range []<-chan Notification{ch1, ch2} {
		select {
		case got := <-ch:
			assert.Equal(t, "/x", got.Path)
		case <-time.After(time.Second):
			t.Fatal("notification not delivered")
		}
	}
}

func TestNotifierCancelRemovesSubscriber(t *testing.T) {
	n := NewNotifier()

	ch, cancel := n.Subscribe()
	cancel()
	assert.Equal(t, 0, n.SubscriberCount())

	// Channel is closed after cancel.
	_, open := <-ch
	assert.False(t, open)

	// Cancelling twice is safe.
	cancel()
}

func TestNotifierDropsOnFullBuffer(t *testing.T) {
	n := NewNotifier()
	dropped := 0
	n.OnDrop(func() { dropped++ })

	_, cancel := n.Subscribe()
	defer cancel()

	// Never read: the buffer fills, then publishes drop without blocking.
	for i := 0; i < subscriberBuffer+5; i++ {
		n.Publish(Notification{Path: "/spam"})
	}
	assert.Equal(t, 5, dropped)
}

func TestNotifierPublishWithoutSubscribers(t *testing.T) {
	n := NewNotifier()
	// Must not panic or block.
	n.Publish(Notification{Path: "/quiet"})
}

func TestRecorderStoreFailureDoesNotBlockNotify(t *testing.T) {
	n := NewNotifier()
	ch, cancel := n.Subscribe()
	defer cancel()

	rec := NewRecorder(failingStore{}, n, nil)
	rec.Record(t.Context(), &Entry{ID: "e1", Method: "GET", Path: "/x"})

	select {
	case got := <-ch:
		assert.Equal(t, "/x", got.Path)
	case <-time.After(time.Second):
		t.Fatal("notification should still be published when persistence fails")
	}
}

func TestNotificationFromEntry(t *testing.T) {
	now := time.Now()
	e := &Entry{
		ProjectID:      "p1",
		EndpointID:     "e1",
		Method:         "POST",
		Path:           "/orders",
		ResponseStatus: 201,
		DurationMs:     12,
		IsMatched:      true,
		CreatedAt:      now,
	}

	notif := NotificationFromEntry(e)
	require.Equal(t, "p1", notif.ProjectID)
	assert.Equal(t, 201, notif.StatusCode)
	assert.Equal(t, int64(12), notif.DurationMs)
	assert.True(t, notif.IsMatched)
	assert.Equal(t, now, notif.Timestamp)
}
