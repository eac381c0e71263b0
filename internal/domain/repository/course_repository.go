package repository

import (
	"context"

	"github.com/oksasatya/go-ddd-course-admin/internal/domain/entity"
)

// TextFilter matches name and description as case-insensitive substrings.
type TextFilter struct {
	Name        string
	Description string
}

// CourseRepository stores courses. FindByID returns (nil, nil) when missing.
// Delete also removes the course's contents.
type CourseRepository interface {
	Save(ctx context.Context, c *entity.Course) error
	Update(ctx context.Context, c *entity.Course) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*entity.Course, error)
	FindAll(ctx context.Context, filter TextFilter) ([]*entity.Course, error)
	Count(ctx context.Context) (int, error)
}

// ContentRepository stores course contents, always scoped by course.
type ContentRepository interface {
	Save(ctx context.Context, c *entity.Content) error
	Update(ctx context.Context, c *entity.Content) error
	Delete(ctx context.Context, courseID, id string) error
	FindByID(ctx context.Context, courseID, id string) (*entity.Content, error)
	FindAllByCourseID(ctx context.Context, courseID string, filter TextFilter) ([]*entity.Content, error)
	Count(ctx context.Context) (int, error)
}
