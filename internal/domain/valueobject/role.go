package valueobject

import "github.com/oksasatya/go-ddd-course-admin/internal/domain"

// Role is the authorization level of a user.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleUser   Role = "user"
)

// Roles lists every valid role.
var Roles = []Role{RoleAdmin, RoleEditor, RoleUser}

func NewRole(raw string) (Role, error) {
	r := Role(raw)
	if !r.Valid() {
		return "", domain.NewValidationError("Invalid user role", map[string]any{"field": "role", "value": raw})
	}
	return r, nil
}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleUser:
		return true
	}
	return false
}

func (r Role) IsAdmin() bool  { return r == RoleAdmin }
func (r Role) String() string { return string(r) }
