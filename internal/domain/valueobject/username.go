package valueobject

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/oksasatya/go-ddd-course-admin/internal/domain"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// Username is the login handle of a user, always stored lowercase.
type Username struct {
	value string
}

func NewUsername(raw string) (Username, error) {
	if strings.TrimSpace(raw) == "" {
		return Username{}, domain.NewValidationError("Username cannot be empty", map[string]any{"field": "username"})
	}
	n := utf8.RuneCountInString(raw)
	if n < 3 {
		return Username{}, domain.NewValidationError("Username must be at least 3 characters long", map[string]any{"field": "username"})
	}
	if n > 50 {
		return Username{}, domain.NewValidationError("Username must be at most 50 characters long", map[string]any{"field": "username"})
	}
	if !usernamePattern.MatchString(raw) {
		return Username{}, domain.NewValidationError("Username can only contain letters, numbers, and underscores", map[string]any{"field": "username"})
	}
	return Username{value: strings.ToLower(strings.TrimSpace(raw))}, nil
}

// NormalizeUsername case-folds raw input the same way NewUsername does,
// without validating it. Used for lookups.
func NormalizeUsername(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func (u Username) Value() string          { return u.value }
func (u Username) String() string         { return u.value }
func (u Username) Equals(o Username) bool { return u.value == o.value }
