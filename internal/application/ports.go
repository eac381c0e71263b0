package application

import (
	"context"

	"github.com/oksasatya/go-ddd-course-admin/internal/domain/event"
)

// EventPublisher fans domain events out after a successful write.
type EventPublisher interface {
	Publish(ctx context.Context, events []event.Event) error
}

// UserSearcher queries the user search projection.
type UserSearcher interface {
	SearchUsers(ctx context.Context, q string, size int) ([]UserSearchHit, error)
}

// UserSearchHit is one document from the user search projection.
type UserSearchHit struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
	IsActive  bool   `json:"isActive"`
}
