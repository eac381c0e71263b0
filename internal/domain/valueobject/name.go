package valueobject

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/oksasatya/go-ddd-course-admin/internal/domain"
)

var namePattern = regexp.MustCompile(`^[a-zA-Z\s]+$`)

// Name is a person's first or last name.
type Name struct {
	value string
}

func NewName(raw string) (Name, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return Name{}, domain.NewValidationError("Name cannot be empty", nil)
	}
	n := utf8.RuneCountInString(v)
	if n < 2 {
		return Name{}, domain.NewValidationError("Name must be at least 2 characters long", nil)
	}
	if n > 100 {
		return Name{}, domain.NewValidationError("Name must be at most 100 characters long", nil)
	}
	if !namePattern.MatchString(v) {
		return Name{}, domain.NewValidationError("Name can only contain letters and spaces", nil)
	}
	return Name{value: v}, nil
}

func (n Name) Value() string      { return n.value }
func (n Name) String() string     { return n.value }
func (n Name) Equals(o Name) bool { return n.value == o.value }

// FullName pairs a first and last Name.
type FullName struct {
	first Name
	last  Name
}

func NewFullName(first, last string) (FullName, error) {
	fn, err := NewName(first)
	if err != nil {
		return FullName{}, withField(err, "firstName")
	}
	ln, err := NewName(last)
	if err != nil {
		return FullName{}, withField(err, "lastName")
	}
	return FullName{first: fn, last: ln}, nil
}

func (f FullName) FirstName() Name { return f.first }
func (f FullName) LastName() Name  { return f.last }
func (f FullName) String() string  { return f.first.value + " " + f.last.value }
func (f FullName) Equals(o FullName) bool {
	return f.first.Equals(o.first) && f.last.Equals(o.last)
}

func withField(err error, field string) error {
	if de, ok := domain.AsError(err); ok {
		return domain.NewValidationError(de.Message, map[string]any{"field": field})
	}
	return err
}
