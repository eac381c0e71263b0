package entity

import (
	"time"

	"github.com/google/uuid"
)

// Content belongs to exactly one course.
type Content struct {
	ID          string    `json:"id"`
	CourseID    string    `json:"courseId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	DateCreated time.Time `json:"dateCreated"`
}

func NewContent(courseID, name, description string) (*Content, error) {
	c := &Content{ID: uuid.NewString(), CourseID: courseID, DateCreated: time.Now().UTC()}
	if err := c.Rename(name, description); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Content) Rename(name, description string) error {
	course := Course{}
	if err := course.Rename(name, description); err != nil {
		return err
	}
	c.Name, c.Description = course.Name, course.Description
	return nil
}
