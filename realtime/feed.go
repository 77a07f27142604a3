// Package realtime carries table-change notifications over Redis pub/sub.
// Consumers react with a coarse invalidate-and-refetch; events carry no
// ordering or deduplication guarantee beyond "eventually re-fetch".
package realtime

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/go-redis/redis"
)

type ChangeEvent struct {
	Table  string                 `json:"table"`
	Event  string                 `json:"event"`
	Record map[string]interface{} `json:"record,omitempty"`
}

type Feed struct {
	client *redis.Client
	logger *log.Logger
}

func NewFeed(client *redis.Client, logger *log.Logger) *Feed {
	return &Feed{
		client: client,
		logger: logger,
	}
}

func channelName(table string) string {
	return fmt.Sprintf("changes:%s", table)
}

// Publish fans a change event out to every subscriber of the table.
func (f *Feed) Publish(table, event string, record map[string]interface{}) error {
	payload, err := json.Marshal(&ChangeEvent{Table: table, Event: event, Record: record})
	if err != nil {
		return err
	}

	result := f.client.Publish(channelName(table), payload)
	if result.Err() != nil {
		f.logger.Println("publish error:", result.Err())
		return result.Err()
	}
	return nil
}

// Subscription is the scoped handle for one table subscription. The owner
// that created it must call Unsubscribe on teardown.
type Subscription struct {
	pubsub *redis.PubSub
	logger *log.Logger
	once   sync.Once
	done   chan struct{}
}

// Subscribe starts listening for changes on a table. The callback runs on
// the subscription's own goroutine; malformed payloads are logged and
// dropped.
func (f *Feed) Subscribe(table string, callback func(ChangeEvent)) (*Subscription, error) {
	pubsub := f.client.Subscribe(channelName(table))
	if _, err := pubsub.Receive(); err != nil {
		pubsub.Close()
		return nil, err
	}

	subscription := &Subscription{
		pubsub: pubsub,
		logger: f.logger,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(subscription.done)
		for message := range pubsub.Channel() {
			var event ChangeEvent
			if err := json.Unmarshal([]byte(message.Payload), &event); err != nil {
				f.logger.Println("bad change payload:", err)
				continue
			}
			callback(event)
		}
	}()

	return subscription, nil
}

// Unsubscribe tears the subscription down and waits for the delivery
// goroutine to drain. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		if err := s.pubsub.Close(); err != nil {
			s.logger.Println("unsubscribe error:", err)
		}
		<-s.done
	})
}
