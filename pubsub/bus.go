// Package pubsub is the in-process event relay. A Bus fans published
// payloads out to whoever is subscribed to the topic at that moment:
// at-most-once, no replay, slow subscribers are skipped.
package pubsub

import "sync"

// subscriberBuffer bounds each subscription channel. Publish never blocks;
// a full channel drops the message for that subscriber.
const subscriberBuffer = 16

type Message struct {
	Topic   string
	Payload interface{}
}

type Subscription struct {
	topic string
	ch    chan Message
	bus   *Bus
	once  sync.Once
}

// C is the live sequence of messages for this subscription. It is closed
// when the subscription is closed.
func (s *Subscription) C() <-chan Message {
	return s.ch
}

// Close detaches the subscription from the bus and closes its channel.
// Safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.bus.remove(s)
		close(s.ch)
	})
}

// Bus is owned by main and injected into the controllers; there is no
// package-level instance.
type Bus struct {
	mu   sync.RWMutex
	subs map[string]map[*Subscription]struct{}
}

func NewBus() *Bus {
	return &Bus{subs: make(map[string]map[*Subscription]struct{})}
}

func (b *Bus) Subscribe(topic string) *Subscription {
	sub := &Subscription{
		topic: topic,
		ch:    make(chan Message, subscriberBuffer),
		bus:   b,
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.subs[topic] == nil {
		b.subs[topic] = make(map[*Subscription]struct{})
	}
	b.subs[topic][sub] = struct{}{}
	return sub
}

// Publish delivers payload to every current subscriber of topic.
func (b *Bus) Publish(topic string, payload interface{}) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for sub := range b.subs[topic] {
		select {
		case sub.ch <- Message{Topic: topic, Payload: payload}:
		default:
			// subscriber not keeping up, drop
		}
	}
}

// Subscribers reports how many subscriptions a topic currently has.
func (b *Bus) Subscribers(topic string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[topic])
}

func (b *Bus) remove(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if set, ok := b.subs[sub.topic]; ok {
		delete(set, sub)
		if len(set) == 0 {
			delete(b.subs, sub.topic)
		}
	}
}
