package shared

import "context"

// EventHandler reacts to domain events.
type EventHandler interface {
	Handle(ctx context.Context, event DomainEvent) error
	// EventTypes names the event types the handler wants. Empty means all.
	EventTypes() []string
}

// EventPublisher is the side application services depend on.
type EventPublisher interface {
	Publish(ctx context.Context, events ...DomainEvent) error
}

// EventBus adds subscription management on top of publishing. Delivery is
// in-process and best effort; handlers must not rely on ordering across
// event types.
type EventBus interface {
	EventPublisher
	Subscribe(handler EventHandler, eventTypes ...string)
	Unsubscribe(handler EventHandler)
}
