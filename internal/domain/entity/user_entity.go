package entity

import (
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/go-ddd-course-admin/internal/domain/event"
	vo "github.com/oksasatya/go-ddd-course-admin/internal/domain/valueobject"
)

// User is the aggregate root for the user domain.
//
// PasswordHash always holds a bcrypt hash; plaintext never reaches the
// aggregate. Mutations record domain events which the application layer
// pulls and publishes after a successful write.
type User struct {
	id               string
	fullName         vo.FullName
	username         vo.Username
	passwordHash     string
	role             vo.Role
	isActive         bool
	refreshTokenHash *string
	createdAt        time.Time
	updatedAt        time.Time

	events []event.Event
}

// NewUserParams are the inputs of CreateUser.
type NewUserParams struct {
	FullName     vo.FullName
	Username     vo.Username
	PasswordHash string
	Role         vo.Role
	IsActive     bool
}

// UserSnapshot is the full state of a user, used to rehydrate from storage.
type UserSnapshot struct {
	ID               string
	FirstName        string
	LastName         string
	Username         string
	PasswordHash     string
	Role             string
	IsActive         bool
	RefreshTokenHash *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// CreateUser builds a brand-new user and records user.created.
func CreateUser(p NewUserParams) *User {
	now := time.Now().UTC()
	u := &User{
		id:           uuid.NewString(),
		fullName:     p.FullName,
		username:     p.Username,
		passwordHash: p.PasswordHash,
		role:         p.Role,
		isActive:     p.IsActive,
		createdAt:    now,
		updatedAt:    now,
	}
	u.record(event.UserCreated, u.eventData())
	return u
}

// ReconstituteUser rehydrates a stored user. It validates the stored values
// but records no events.
func ReconstituteUser(s UserSnapshot) (*User, error) {
	fullName, err := vo.NewFullName(s.FirstName, s.LastName)
	if err != nil {
		return nil, err
	}
	username, err := vo.NewUsername(s.Username)
	if err != nil {
		return nil, err
	}
	role, err := vo.NewRole(s.Role)
	if err != nil {
		return nil, err
	}
	return &User{
		id:               s.ID,
		fullName:         fullName,
		username:         username,
		passwordHash:     s.PasswordHash,
		role:             role,
		isActive:         s.IsActive,
		refreshTokenHash: s.RefreshTokenHash,
		createdAt:        s.CreatedAt,
		updatedAt:        s.UpdatedAt,
	}, nil
}

func (u *User) ID() string                { return u.id }
func (u *User) FullName() vo.FullName     { return u.fullName }
func (u *User) Username() vo.Username     { return u.username }
func (u *User) PasswordHash() string      { return u.passwordHash }
func (u *User) Role() vo.Role             { return u.role }
func (u *User) IsActive() bool            { return u.isActive }
func (u *User) RefreshTokenHash() *string { return u.refreshTokenHash }
func (u *User) CreatedAt() time.Time      { return u.createdAt }
func (u *User) UpdatedAt() time.Time      { return u.updatedAt }

// Snapshot exports the aggregate state for persistence.
func (u *User) Snapshot() UserSnapshot {
	return UserSnapshot{
		ID:               u.id,
		FirstName:        u.fullName.FirstName().Value(),
		LastName:         u.fullName.LastName().Value(),
		Username:         u.username.Value(),
		PasswordHash:     u.passwordHash,
		Role:             u.role.String(),
		IsActive:         u.isActive,
		RefreshTokenHash: u.refreshTokenHash,
		CreatedAt:        u.createdAt,
		UpdatedAt:        u.updatedAt,
	}
}

func (u *User) UpdateProfile(fullName vo.FullName, username vo.Username) event.Event {
	u.fullName = fullName
	u.username = username
	return u.touch()
}

// ChangePassword replaces the stored hash. The caller hashes.
func (u *User) ChangePassword(passwordHash string) event.Event {
	u.passwordHash = passwordHash
	return u.touch()
}

func (u *User) ChangeRole(role vo.Role) event.Event {
	u.role = role
	return u.touch()
}

func (u *User) Activate() event.Event {
	u.isActive = true
	return u.touch()
}

func (u *User) Deactivate() event.Event {
	u.isActive = false
	return u.touch()
}

// Delete marks the user as deleted. Removing the record is the repository's job.
func (u *User) Delete() event.Event {
	return u.record(event.UserDeleted, map[string]string{
		"username": u.username.Value(),
	})
}

// SetRefreshToken stores or clears (nil) the refresh token hash. Not an event.
func (u *User) SetRefreshToken(hash *string) {
	if hash == nil {
		u.refreshTokenHash = nil
		return
	}
	h := *hash
	u.refreshTokenHash = &h
}

// Events returns the pending events without clearing them.
func (u *User) Events() []event.Event {
	out := make([]event.Event, len(u.events))
	copy(out, u.events)
	return out
}

// PullEvents returns the pending events and clears them.
func (u *User) PullEvents() []event.Event {
	out := u.events
	u.events = nil
	return out
}

func (u *User) touch() event.Event {
	u.updatedAt = time.Now().UTC()
	return u.record(event.UserUpdated, u.eventData())
}

// eventData carries the public profile so consumers can project it without a lookup.
func (u *User) eventData() map[string]string {
	return map[string]string{
		"username":   u.username.Value(),
		"first_name": u.fullName.FirstName().Value(),
		"last_name":  u.fullName.LastName().Value(),
		"role":       u.role.String(),
		"is_active":  strconv.FormatBool(u.isActive),
	}
}

func (u *User) record(name event.Name, data map[string]string) event.Event {
	e := event.New(name, u.id, data)
	u.events = append(u.events, e)
	return e
}
