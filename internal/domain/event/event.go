// Package event holds the domain event records raised by aggregates.
package event

import (
	"time"

	"github.com/google/uuid"
)

// Name identifies the kind of event and doubles as the broker routing key.
type Name string

const (
	UserCreated Name = "user.created"
	UserUpdated Name = "user.updated"
	UserDeleted Name = "user.deleted"
)

// Event is an immutable record of something that happened to an aggregate.
type Event struct {
	ID          string            `json:"id"`
	Name        Name              `json:"name"`
	AggregateID string            `json:"aggregate_id"`
	OccurredAt  time.Time         `json:"occurred_at"`
	Data        map[string]string `json:"data,omitempty"`
}

func New(name Name, aggregateID string, data map[string]string) Event {
	return Event{
		ID:          uuid.NewString(),
		Name:        name,
		AggregateID: aggregateID,
		OccurredAt:  time.Now().UTC(),
		Data:        data,
	}
}
