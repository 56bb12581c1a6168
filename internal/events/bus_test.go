package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBus_PublishReachesAllSubscribers(t *testing.T) {
	bus := NewBus()

	var waitlistHits, subscriberHits int

	bus.Subscribe(WaitlistChanged, func(string) { waitlistHits++ })
	bus.Subscribe(WaitlistChanged, func(string) { waitlistHits++ })
	bus.Subscribe(SubscribersChanged, func(string) { subscriberHits++ })

	bus.Publish(WaitlistChanged)

	assert.Equal(t, 2, waitlistHits)
	assert.Equal(t, 0, subscriberHits)

	bus.Publish(SubscribersChanged)
	assert.Equal(t, 1, subscriberHits)
}

func TestBus_PublishWithoutSubscribersIsNoop(t *testing.T) {
	bus := NewBus()

	assert.NotPanics(t, func() {
		bus.Publish(WaitlistChanged)
	})
}

func TestBus_NilHandlerIgnored(t *testing.T) {
	bus := NewBus()
	bus.Subscribe(WaitlistChanged, nil)

	assert.NotPanics(t, func() {
		bus.Publish(WaitlistChanged)
	})
}
