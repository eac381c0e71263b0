package valueobject

import (
	"unicode/utf8"

	"github.com/oksasatya/go-ddd-course-admin/internal/domain"
)

// Password is a raw, not yet hashed password. It never prints its value.
type Password struct {
	value string
}

func NewPassword(raw string) (Password, error) {
	if raw == "" {
		return Password{}, domain.NewValidationError("Password cannot be empty", map[string]any{"field": "password"})
	}
	n := utf8.RuneCountInString(raw)
	if n < 6 {
		return Password{}, domain.NewValidationError("Password must be at least 6 characters long", map[string]any{"field": "password"})
	}
	if n > 100 {
		return Password{}, domain.NewValidationError("Password must be at most 100 characters long", map[string]any{"field": "password"})
	}
	return Password{value: raw}, nil
}

func (p Password) Value() string          { return p.value }
func (p Password) String() string         { return "[REDACTED]" }
func (p Password) Equals(o Password) bool { return p.value == o.value }
