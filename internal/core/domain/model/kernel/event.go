package kernel

import "time"

// DomainEvent is something that happened to an aggregate and that other parts of
// the system may react to once the surrounding transaction has committed.
type DomainEvent interface {
	EventID() UUID
	EventName() string
	OccurredAt() time.Time
}

// EventRecorder is implemented by aggregates that raise domain events.
type EventRecorder interface {
	DomainEvents() []DomainEvent
	ClearDomainEvents()
}

// BaseEvent carries the fields every event shares. Concrete events embed it.
type BaseEvent struct {
	id         UUID
	name       string
	occurredAt time.Time
}

func NewBaseEvent(name string, occurredAt time.Time) BaseEvent {
	return BaseEvent{
		id:         NewUUID(),
		name:       name,
		occurredAt: occurredAt,
	}
}

func (e BaseEvent) EventID() UUID {
	return e.id
}

func (e BaseEvent) EventName() string {
	return e.name
}

func (e BaseEvent) OccurredAt() time.Time {
	return e.occurredAt
}
