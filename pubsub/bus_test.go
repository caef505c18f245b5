package pubsub

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receiveOne(t *testing.T, sub *Subscription) Message {
	t.Helper()
	select {
	case msg := <-sub.C():
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
		return Message{}
	}
}

func assertNoMessage(t *testing.T, sub *Subscription) {
	t.Helper()
	select {
	case msg, ok := <-sub.C():
		if ok {
			t.Fatalf("unexpected message on topic %s: %v", msg.Topic, msg.Payload)
		}
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSubscribeReceivesPublish(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe(TopicRecipeAdded)
	defer sub.Close()

	bus.Publish(TopicRecipeAdded, "pasta")

	msg := receiveOne(t, sub)
	assert.Equal(t, TopicRecipeAdded, msg.Topic)
	assert.Equal(t, "pasta", msg.Payload)
	assertNoMessage(t, sub)
}

func TestLateSubscriberMissesEarlierEvents(t *testing.T) {
	bus := NewBus()
	bus.Publish(TopicRecipeAdded, "missed")

	sub := bus.Subscribe(TopicRecipeAdded)
	defer sub.Close()

	assertNoMessage(t, sub)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe(TopicRecipeAdded)
	sub.Close()

	bus.Publish(TopicRecipeAdded, "after close")

	_, ok := <-sub.C()
	assert.False(t, ok, "channel should be closed")
}

func TestCloseIsIdempotent(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe(TopicRecipeAdded)
	sub.Close()
	sub.Close()
}

func TestFanOutToMultipleSubscribers(t *testing.T) {
	bus := NewBus()
	first := bus.Subscribe(TopicRecipeAdded)
	second := bus.Subscribe(TopicRecipeAdded)
	defer first.Close()
	defer second.Close()

	bus.Publish(TopicRecipeAdded, "soup")

	assert.Equal(t, "soup", receiveOne(t, first).Payload)
	assert.Equal(t, "soup", receiveOne(t, second).Payload)
}

func TestTopicsAreIsolated(t *testing.T) {
	bus := NewBus()
	recipeSub := bus.Subscribe(TopicRecipeAdded)
	reviewSub := bus.Subscribe(TopicReviewAdded(7))
	defer recipeSub.Close()
	defer reviewSub.Close()

	bus.Publish(TopicReviewAdded(7), "great recipe")

	msg := receiveOne(t, reviewSub)
	assert.Equal(t, "REVIEW_ADDED.7", msg.Topic)
	assertNoMessage(t, recipeSub)

	// another recipe's review topic stays silent
	otherSub := bus.Subscribe(TopicReviewAdded(8))
	defer otherSub.Close()
	bus.Publish(TopicReviewAdded(7), "again")
	receiveOne(t, reviewSub)
	assertNoMessage(t, otherSub)
}

func TestPublishDoesNotBlockOnSlowSubscriber(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe(TopicRecipeAdded)
	defer sub.Close()

	// Nothing drains the channel; publishing well past the buffer must
	// still return.
	done := make(chan struct{})
	go func() {
		for i := 0; i < subscriberBuffer*4; i++ {
			bus.Publish(TopicRecipeAdded, i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}

	received := 0
	for {
		select {
		case <-sub.C():
			received++
			continue
		default:
		}
		break
	}
	require.Equal(t, subscriberBuffer, received, "overflow should be dropped, not queued")
}
