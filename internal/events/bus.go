package events

import "sync"

// Event names published by the signup services. The presentation layer (or a
// cache) subscribes instead of the services invalidating pages by path.
const (
	WaitlistChanged    = "waitlist.changed"
	SubscribersChanged = "subscribers.changed"
)

type Handler func(event string)

// Bus is a minimal in-process publish/subscribe fan-out. Handlers run
// synchronously on the publishing goroutine; keep them cheap.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[string][]Handler)}
}

func (b *Bus) Subscribe(event string, handler Handler) {
	if handler == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[event] = append(b.handlers[event], handler)
}

func (b *Bus) Publish(event string) {
	b.mu.RLock()
	handlers := b.handlers[event]
	b.mu.RUnlock()

	for _, h := range handlers {
		h(event)
	}
}
