package application

import (
	"time"

	"github.com/oksasatya/go-ddd-course-admin/internal/domain/entity"
)

// UserResponse is the sanitized view of a user. It never carries the
// password hash or the refresh token hash.
type UserResponse struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func ToUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID(),
		FirstName: u.FullName().FirstName().Value(),
		LastName:  u.FullName().LastName().Value(),
		Username:  u.Username().Value(),
		Role:      u.Role().String(),
		IsActive:  u.IsActive(),
		CreatedAt: u.CreatedAt(),
		UpdatedAt: u.UpdatedAt(),
	}
}

type CreateUserInput struct {
	FirstName string
	LastName  string
	Username  string
	Password  string
	Role      string
}

// UpdateUserInput applies only the non-nil fields.
type UpdateUserInput struct {
	FirstName *string
	LastName  *string
	Username  *string
	Password  *string
	Role      *string
	IsActive  *bool
}

// UserQuery filters GetAll. Empty fields are ignored.
type UserQuery struct {
	FirstName string
	LastName  string
	Username  string
	Role      string
}
