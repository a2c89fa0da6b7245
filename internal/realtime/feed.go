package realtime

import (
	"context"
	"encoding/json"
	"log"
	"runtime/debug"
	"sync"

	"clubhub/internal/observability"

	"github.com/google/uuid"
)

// Table names published on the feed.
const (
	TablePosts         = "posts"
	TableComments      = "comments"
	TableMembers       = "members"
	TableEvents        = "events"
	TableNotifications = "notifications"
)

// Scope selects which changes a subscription receives. An empty Key matches
// every change on the table; a set Key narrows to one row group (the post id
// for comments, the recipient id for notifications).
type Scope struct {
	Table string
	Key   string
}

// Event describes a change that happened. It names what changed, never what
// the new value is.
type Event struct {
	Table string `json:"table"`
	Key   string `json:"key,omitempty"`
}

// Subscription is a live registration on the feed. Unsubscribe is idempotent
// and safe under concurrent calls.
type Subscription struct {
	feed  *ChangeFeed
	scope Scope
	id    uint64
	once  sync.Once
}

// Unsubscribe removes the subscription from the feed. Further change events
// are not delivered after it returns.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		s.feed.remove(s.scope, s.id)
		observability.ChangeSubscriptions.Dec()
	})
}

// ChangeFeed dispatches change events to in-process subscribers and, when a
// Notifier is attached, across replicas through Redis.
type ChangeFeed struct {
	mu     sync.RWMutex
	subs   map[Scope]map[uint64]func()
	sinks  []func(Event)
	nextID uint64

	// origin distinguishes this feed's own Redis messages from other
	// replicas' so local publishes are not dispatched twice.
	origin   string
	notifier *Notifier
}

// NewChangeFeed creates a feed. notifier may be nil for single-replica or
// test use.
func NewChangeFeed(notifier *Notifier) *ChangeFeed {
	return &ChangeFeed{
		subs:     make(map[Scope]map[uint64]func()),
		origin:   uuid.NewString(),
		notifier: notifier,
	}
}

// Subscribe registers onChange for the scope. onChange receives no payload;
// the subscriber re-fetches whatever the scope covers.
func (f *ChangeFeed) Subscribe(scope Scope, onChange func()) *Subscription {
	f.mu.Lock()
	defer f.mu.Unlock()

	m, ok := f.subs[scope]
	if !ok {
		m = make(map[uint64]func())
		f.subs[scope] = m
	}
	f.nextID++
	id := f.nextID
	m[id] = onChange

	observability.ChangeSubscriptions.Inc()
	return &Subscription{feed: f, scope: scope, id: id}
}

// AddSink registers a fan-out target, such as the websocket hub, that
// receives every event regardless of scope.
func (f *ChangeFeed) AddSink(sink func(Event)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sinks = append(f.sinks, sink)
}

func (f *ChangeFeed) remove(scope Scope, id uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if m, ok := f.subs[scope]; ok {
		delete(m, id)
		if len(m) == 0 {
			delete(f.subs, scope)
		}
	}
}

// Publish announces that rows in table (optionally narrowed by key) changed.
// Local subscribers run synchronously; other replicas hear about it through
// Redis.
func (f *ChangeFeed) Publish(ctx context.Context, table, key string) {
	observability.ChangeEventsTotal.WithLabelValues(table).Inc()
	f.dispatch(Event{Table: table, Key: key})

	if f.notifier != nil {
		if err := f.notifier.PublishChange(ctx, f.origin, table, key); err != nil {
			log.Printf("change publish failed (%s/%s): %v", table, key, err)
		}
	}
}

// dispatch runs table-wide subscribers, key-scoped subscribers, and sinks.
func (f *ChangeFeed) dispatch(ev Event) {
	f.mu.RLock()
	var callbacks []func()
	for _, cb := range f.subs[Scope{Table: ev.Table}] {
		callbacks = append(callbacks, cb)
	}
	if ev.Key != "" {
		for _, cb := range f.subs[Scope{Table: ev.Table, Key: ev.Key}] {
			callbacks = append(callbacks, cb)
		}
	}
	sinks := make([]func(Event), len(f.sinks))
	copy(sinks, f.sinks)
	f.mu.RUnlock()

	for _, cb := range callbacks {
		safeInvoke(cb)
	}
	for _, sink := range sinks {
		sink(ev)
	}
}

func safeInvoke(cb func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("PANIC in change subscriber: %v\n%s", r, debug.Stack())
		}
	}()
	cb()
}

// Start wires the feed to the Redis pattern subscriber so changes published
// by other replicas reach local subscribers. No-op without a notifier.
func (f *ChangeFeed) Start(ctx context.Context) error {
	if f.notifier == nil {
		return nil
	}
	return f.notifier.StartPatternSubscriber(ctx, func(channel, payload string) {
		table, key, ok := ParseChangeChannel(channel)
		if !ok {
			log.Printf("invalid change channel: %s", channel)
			return
		}
		var p changePayload
		if err := json.Unmarshal([]byte(payload), &p); err == nil && p.Origin == f.origin {
			// Our own publish already dispatched locally.
			return
		}
		f.dispatch(Event{Table: table, Key: key})
	})
}
