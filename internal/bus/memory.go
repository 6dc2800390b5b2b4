package bus

import (
	"fmt"
	"sync"

	cmap "github.com/orcaman/concurrent-map/v2"
)

// MemoryBus is an in-process Bus. Messages are delivered synchronously
// on the publishing goroutine, in subscription order.
type MemoryBus struct {
	subscribers cmap.ConcurrentMap[string, []Handler]

	mu     sync.RWMutex
	closed bool
}

func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		subscribers: cmap.New[[]Handler](),
	}
}

func (b *MemoryBus) Publish(topic string, value any) error {
	b.mu.RLock()
	closed := b.closed
	b.mu.RUnlock()
	if closed {
		return fmt.Errorf("publishing to %s: %w", topic, ErrUnavailable)
	}

	payload, err := encode(value)
	if err != nil {
		return fmt.Errorf("publishing to %s: %w", topic, err)
	}

	handlers, _ := b.subscribers.Get(topic)
	for _, handler := range handlers {
		handler(payload)
	}
	return nil
}

func (b *MemoryBus) Subscribe(topic string, handler Handler) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return fmt.Errorf("subscribing to %s: %w", topic, ErrUnavailable)
	}

	b.subscribers.Upsert(topic, []Handler{handler}, func(exist bool, valueInMap []Handler, newValue []Handler) []Handler {
		if !exist {
			return newValue
		}
		return append(valueInMap, newValue...)
	})
	return nil
}

func (b *MemoryBus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.subscribers.Clear()
}
