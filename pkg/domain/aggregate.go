package domain

import (
	"cmp"
	"time"
)

// Event is a domain event recorded by an aggregate root.
type Event interface {
	EventName() string
}

// EventRecord is a minimal Event implementation for aggregates that do not
// define richer event types.
type EventRecord struct {
	Name       string            `json:"name"`
	OccurredAt time.Time         `json:"occurred_at"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// EventName returns the record's event name.
func (e EventRecord) EventName() string { return e.Name }

// AggregateRoot is the embeddable base for aggregate roots: an entity that
// records the domain events raised during a unit of work. It is not safe
// for concurrent mutation; an aggregate belongs to one unit of work at a
// time.
type AggregateRoot[ID cmp.Ordered] struct {
	Entity[ID]
	events []Event
}

// NewAggregateRoot constructs an aggregate root base with the given
// identifier.
func NewAggregateRoot[ID cmp.Ordered](id ID) AggregateRoot[ID] {
	return AggregateRoot[ID]{Entity: NewEntity(id)}
}

// Record appends a domain event to the pending list.
func (a *AggregateRoot[ID]) Record(e Event) {
	a.events = append(a.events, e)
}

// Events returns a copy of the pending events.
func (a *AggregateRoot[ID]) Events() []Event {
	out := make([]Event, len(a.events))
	copy(out, a.events)
	return out
}

// DrainEvents returns the pending events and clears the list. Callers
// publish the returned slice after a successful commit.
func (a *AggregateRoot[ID]) DrainEvents() []Event {
	out := a.events
	a.events = nil
	return out
}
