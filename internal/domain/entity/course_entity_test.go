package entity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-course-admin/internal/domain"
)

func TestNewCourse(t *testing.T) {
	c, err := NewCourse("  Go Basics ", "Intro to Go")
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "Go Basics", c.Name)
	assert.False(t, c.DateCreated.IsZero())

	_, err = NewCourse("", "desc")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = NewCourse("name", strings.Repeat("a", 1001))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestContent_RenameKeepsStateOnError(t *testing.T) {
	c, err := NewContent("course-1", "Lesson 1", "Variables")
	require.NoError(t, err)
	assert.Equal(t, "course-1", c.CourseID)

	err = c.Rename("   ", "x")
	assert.Error(t, err)
	assert.Equal(t, "Lesson 1", c.Name)
	assert.Equal(t, "Variables", c.Description)
}
