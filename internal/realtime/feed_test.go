package realtime

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangeFeed_TableWideSubscriberSeesEveryChange(t *testing.T) {
	feed := NewChangeFeed(nil)
	ctx := context.Background()

	var calls int
	sub := feed.Subscribe(Scope{Table: TablePosts}, func() { calls++ })
	defer sub.Unsubscribe()

	feed.Publish(ctx, TablePosts, "")
	feed.Publish(ctx, TablePosts, "p1")
	feed.Publish(ctx, TableEvents, "")

	assert.Equal(t, 2, calls)
}

func TestChangeFeed_KeyScopedSubscriberIgnoresOtherKeys(t *testing.T) {
	feed := NewChangeFeed(nil)
	ctx := context.Background()

	var calls int
	sub := feed.Subscribe(Scope{Table: TableComments, Key: "p1"}, func() { calls++ })
	defer sub.Unsubscribe()

	feed.Publish(ctx, TableComments, "p1")
	feed.Publish(ctx, TableComments, "p2")
	feed.Publish(ctx, TableComments, "")

	assert.Equal(t, 1, calls)
}

func TestSubscription_UnsubscribeStopsDelivery(t *testing.T) {
	feed := NewChangeFeed(nil)
	ctx := context.Background()

	var calls int
	sub := feed.Subscribe(Scope{Table: TableMembers}, func() { calls++ })

	feed.Publish(ctx, TableMembers, "")
	sub.Unsubscribe()
	feed.Publish(ctx, TableMembers, "")

	assert.Equal(t, 1, calls)
}

func TestSubscription_UnsubscribeIsIdempotent(t *testing.T) {
	feed := NewChangeFeed(nil)

	sub := feed.Subscribe(Scope{Table: TablePosts}, func() {})

	// Concurrent and repeated calls must all be safe.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sub.Unsubscribe()
		}()
	}
	wg.Wait()
	sub.Unsubscribe()

	// A fresh subscription on the same scope still works.
	var calls int
	sub2 := feed.Subscribe(Scope{Table: TablePosts}, func() { calls++ })
	defer sub2.Unsubscribe()
	feed.Publish(context.Background(), TablePosts, "")
	assert.Equal(t, 1, calls)
}

func TestChangeFeed_PanickingSubscriberDoesNotStopOthers(t *testing.T) {
	feed := NewChangeFeed(nil)
	ctx := context.Background()

	var calls int
	s1 := feed.Subscribe(Scope{Table: TablePosts}, func() { panic("boom") })
	defer s1.Unsubscribe()
	s2 := feed.Subscribe(Scope{Table: TablePosts}, func() { calls++ })
	defer s2.Unsubscribe()

	require.NotPanics(t, func() { feed.Publish(ctx, TablePosts, "") })
	assert.Equal(t, 1, calls)
}

func TestChangeFeed_SinkReceivesAllEvents(t *testing.T) {
	feed := NewChangeFeed(nil)
	ctx := context.Background()

	var events []Event
	feed.AddSink(func(ev Event) { events = append(events, ev) })

	feed.Publish(ctx, TableNotifications, "m1")
	feed.Publish(ctx, TableEvents, "")

	require.Len(t, events, 2)
	assert.Equal(t, Event{Table: TableNotifications, Key: "m1"}, events[0])
	assert.Equal(t, Event{Table: TableEvents}, events[1])
}
