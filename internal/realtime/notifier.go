// Package realtime implements the change feed: an in-process subscription
// manager, a Redis fan-out between replicas, and a websocket hub toward
// browsers. Events carry no payload; consumers re-fetch what changed.
package realtime

import (
	"context"
	"encoding/json"
	"log"
	"runtime/debug"
	"strings"

	"github.com/redis/go-redis/v9"
)

// Notifier publishes change events into Redis channels and subscribes to the
// changes published by other replicas.
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
// A nil client turns every method into a no-op.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

type changePayload struct {
	Origin string `json:"origin"`
}

// ChangeChannel derives the Redis channel name for a change scope.
func ChangeChannel(table, key string) string {
	if key == "" {
		return "changes:" + table
	}
	return "changes:" + table + ":" + key
}

// ParseChangeChannel splits a channel name back into table and optional key.
func ParseChangeChannel(channel string) (table, key string, ok bool) {
	rest, found := strings.CutPrefix(channel, "changes:")
	if !found || rest == "" {
		return "", "", false
	}
	table, key, _ = strings.Cut(rest, ":")
	return table, key, true
}

// PublishChange announces a change on the scoped channel. Origin identifies
// the publishing feed so it can skip its own echo.
func (n *Notifier) PublishChange(ctx context.Context, origin, table, key string) error {
	if n.rdb == nil {
		return nil
	}
	payload, err := json.Marshal(changePayload{Origin: origin})
	if err != nil {
		return err
	}
	return n.rdb.Publish(ctx, ChangeChannel(table, key), payload).Err()
}

// StartPatternSubscriber subscribes to pattern `changes:*` and calls onMessage
// for each incoming message. onMessage receives channel and payload.
func (n *Notifier) StartPatternSubscriber(
	ctx context.Context, onMessage func(channel string, payload string),
) error {
	if n.rdb == nil {
		return nil
	}
	sub := n.rdb.PSubscribe(ctx, "changes:*")
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							log.Printf("PANIC in ChangeSubscriber: %v\n%s", r, debug.Stack())
						}
					}()
					onMessage(msg.Channel, msg.Payload)
				}()
			}
		}
	}()

	return nil
}
