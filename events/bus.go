package events

import (
	"github.com/kelindar/event"
)

// Bus wraps a kelindar/event dispatcher. Handlers run asynchronously, but
// each subscriber sees events in publish order.
type Bus struct {
	dispatcher *event.Dispatcher
}

func New() *Bus {
	return &Bus{
		dispatcher: event.NewDispatcher(),
	}
}

// Publish sends an event to every subscriber of its concrete type.
// Usage: events.Publish(bus, GridChangedEvent{...})
func Publish[T Event](b *Bus, e T) {
	if b == nil {
		return
	}

	event.Publish(b.dispatcher, e)
}

// Subscribe registers handler for events of type T and returns the unsubscribe function.
func Subscribe[T Event](b *Bus, handler func(T)) func() {
	return event.Subscribe(b.dispatcher, handler)
}

// SubscribeToChannel forwards events of type T into ch, dropping them when ch is full.
// SSE handlers use it to select over several event types at once.
func SubscribeToChannel[T Event](b *Bus, ch chan<- any) func() {
	return event.Subscribe(b.dispatcher, func(e T) {
		select {
		case ch <- e:
		default:
		}
	})
}
