package entity

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/oksasatya/go-ddd-course-admin/internal/domain"
)

const (
	maxCourseNameLen        = 255
	maxCourseDescriptionLen = 1000
)

// Course groups contents. Deleting a course removes its contents.
type Course struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	DateCreated time.Time `json:"dateCreated"`
}

func NewCourse(name, description string) (*Course, error) {
	c := &Course{ID: uuid.NewString(), DateCreated: time.Now().UTC()}
	if err := c.Rename(name, description); err != nil {
		return nil, err
	}
	return c, nil
}

// Rename validates and applies a new name and description.
func (c *Course) Rename(name, description string) error {
	name, description = strings.TrimSpace(name), strings.TrimSpace(description)
	if err := checkText("name", name, maxCourseNameLen); err != nil {
		return err
	}
	if err := checkText("description", description, maxCourseDescriptionLen); err != nil {
		return err
	}
	c.Name, c.Description = name, description
	return nil
}

func checkText(field, v string, max int) error {
	n := utf8.RuneCountInString(v)
	switch {
	case n == 0:
		return domain.NewValidationError(field+" cannot be empty", map[string]any{"field": field})
	case n > max:
		return domain.NewValidationError(field+" is too long", map[string]any{"field": field, "max": max})
	}
	return nil
}
