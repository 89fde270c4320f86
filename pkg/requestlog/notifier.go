package requestlog

import "sync"

// subscriberBuffer is the per-subscriber channel capacity. A subscriber
// that falls this far behind starts losing notifications rather than
// blocking the serving path.
const subscriberBuffer = 64

// Notifier broadcasts notifications to live subscribers. Subscribe and
// unsubscribe are safe to run concurrently with Publish.
type Notifier struct {
	mu     sync.RWMutex
	subs   map[uint64]chan Notification
	nextID uint64

	// onDrop, when set, runs once per notification dropped on a full
	// subscriber buffer.
	onDrop func()
}

// NewNotifier creates an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[uint64]chan Notification)}
}

// OnDrop registers a callback invoked whenever a notification is dropped
// for a slow subscriber. Must be called before Publish is in use.
func (n *Notifier) OnDrop(fn func()) {
	n.onDrop = fn
}

// Subscribe registers a new subscriber. The returned cancel function
// removes the subscriber and closes its channel; it is safe to call more
// than once.
func (n *Notifier) Subscribe() (<-chan Notification, func()) {
	n.mu.Lock()
	id := n.nextID
	n.nextID++
	ch := make(chan Notification, subscriberBuffer)
	n.subs[id] = ch
	n.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			n.mu.Lock()
			if existing, ok := n.subs[id]; ok {
				delete(n.subs, id)
				close(existing)
			}
			n.mu.Unlock()
		})
	}
	return ch, cancel
}

// Publish delivers a notification to every current subscriber without
// blocking: a full subscriber channel drops the notification for that
// subscriber only.
func (n *Notifier) Publish(notif Notification) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	for _, ch := range n.subs {
		select {
		case ch <- notif:
		default:
			if n.onDrop != nil {
				n.onDrop()
			}
		}
	}
}

// SubscriberCount returns the number of live subscribers.
func (n *Notifier) SubscriberCount() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.subs)
}
