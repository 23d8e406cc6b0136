// Package realtime is the coarse invalidate-and-refetch change feed: every
// committed mutation publishes a "something changed" event on a per-table
// Redis channel, and subscribers filter by their own user id and refetch the
// whole collection. Events are not diffs.
package realtime

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"github.com/go-redis/redis/v8"
)

const (
	TableProperties = "properties"
	TableRequests   = "requests"
	TableLikes      = "likes"
)

type ChangeEvent struct {
	Table   string `json:"table"`
	UserIDs []uint `json:"userIds,omitempty"`
}

// Matches reports whether the event concerns the given user. An event with
// no user ids is a broadcast.
func (e ChangeEvent) Matches(userID uint) bool {
	if len(e.UserIDs) == 0 {
		return true
	}
	for _, id := range e.UserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

var client *redis.Client

// Connect opens the Redis connection used for the change feed. When
// REDIS_ADDR is unset the feed is disabled and publishes are dropped, which
// keeps tests and local single-process runs working without Redis.
func Connect() *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		log.Println("REDIS_ADDR not set, change feed disabled")
		return nil
	}
	client = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	return client
}

// PublishChange fans out a change event for a table to the affected users.
// Best effort: a publish failure is logged, never surfaced to the caller.
func PublishChange(ctx context.Context, table string, userIDs ...uint) {
	if client == nil {
		return
	}
	payload, err := json.Marshal(ChangeEvent{Table: table, UserIDs: userIDs})
	if err != nil {
		return
	}
	if err := client.Publish(ctx, channelFor(table), payload).Err(); err != nil {
		log.Printf("[error] failed to publish change for %s: %v", table, err)
	}
}

func channelFor(table string) string {
	return "changes:" + table
}

// Subscription is one screen's change feed. Unsubscribe must be called on
// teardown; in-flight refetches are not interrupted, their effect is simply
// the caller's problem to discard.
type Subscription struct {
	sub  *redis.PubSub
	done chan struct{}
}

// Subscribe listens for changes on a table and invokes refetch for every
// event that matches userID. Returns nil when the feed is disabled.
func Subscribe(ctx context.Context, table string, userID uint, refetch func()) *Subscription {
	if client == nil {
		return nil
	}
	sub := client.Subscribe(ctx, channelFor(table))
	s := &Subscription{sub: sub, done: make(chan struct{})}
	go s.run(sub.Channel(), userID, refetch)
	return s
}

func (s *Subscription) run(ch <-chan *redis.Message, userID uint, refetch func()) {
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var event ChangeEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Printf("[error] bad change event on %s: %v", msg.Channel, err)
				continue
			}
			if event.Matches(userID) {
				refetch()
			}
		case <-s.done:
			return
		}
	}
}

func (s *Subscription) Unsubscribe() {
	if s == nil {
		return
	}
	close(s.done)
	if s.sub == nil {
		return
	}
	if err := s.sub.Close(); err != nil {
		log.Printf("[error] failed to close subscription: %v", err)
	}
}
