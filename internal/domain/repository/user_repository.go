package repository

import (
	"context"

	"github.com/oksasatya/go-ddd-course-admin/internal/domain/entity"
	vo "github.com/oksasatya/go-ddd-course-admin/internal/domain/valueobject"
)

// UserFilter narrows FindAll. Text fields match case-insensitively as
// substrings; Role matches exactly. Empty fields are ignored.
type UserFilter struct {
	FirstName string
	LastName  string
	Username  string
	Role      vo.Role
}

// Finders return (nil, nil) when no user matches.
type UserFinder interface {
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// UserLister results are ordered by first name then last name.
type UserLister interface {
	FindAll(ctx context.Context, filter UserFilter) ([]*entity.User, error)
	Count(ctx context.Context) (int, error)
}

type UserWriter interface {
	Save(ctx context.Context, u *entity.User) error
	Update(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, id string) error
}

// UserRepository defines the interface for user-related storage operations.
type UserRepository interface {
	UserFinder
	UserLister
	UserWriter
}
