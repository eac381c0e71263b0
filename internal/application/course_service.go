package application

import (
	"context"

	"github.com/oksasatya/go-ddd-course-admin/internal/domain"
	"github.com/oksasatya/go-ddd-course-admin/internal/domain/entity"
	repo "github.com/oksasatya/go-ddd-course-admin/internal/domain/repository"
)

const (
	courseResource  = "Course"
	contentResource = "Content"
)

// TextInput carries a name/description pair; nil fields keep the current value.
type TextInput struct {
	Name        *string
	Description *string
}

type CourseService struct {
	Courses  repo.CourseRepository
	Contents repo.ContentRepository
}

func NewCourseService(courses repo.CourseRepository, contents repo.ContentRepository) *CourseService {
	return &CourseService{Courses: courses, Contents: contents}
}

func (s *CourseService) Create(ctx context.Context, name, description string) (*entity.Course, error) {
	c, err := entity.NewCourse(name, description)
	if err != nil {
		return nil, err
	}
	if err := s.Courses.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CourseService) FindAll(ctx context.Context, filter repo.TextFilter) ([]*entity.Course, error) {
	return s.Courses.FindAll(ctx, filter)
}

func (s *CourseService) FindByID(ctx context.Context, id string) (*entity.Course, error) {
	c, err := s.Courses.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NewNotFoundError(courseResource, id)
	}
	return c, nil
}

func (s *CourseService) Update(ctx context.Context, id string, in TextInput) (*entity.Course, error) {
	c, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	name, description := merge(c.Name, c.Description, in)
	if err := c.Rename(name, description); err != nil {
		return nil, err
	}
	if err := s.Courses.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes the course together with its contents.
func (s *CourseService) Delete(ctx context.Context, id string) (string, error) {
	if _, err := s.FindByID(ctx, id); err != nil {
		return "", err
	}
	if err := s.Courses.Delete(ctx, id); err != nil {
		return "", err
	}
	return id, nil
}

func (s *CourseService) CreateContent(ctx context.Context, courseID, name, description string) (*entity.Content, error) {
	if _, err := s.FindByID(ctx, courseID); err != nil {
		return nil, err
	}
	c, err := entity.NewContent(courseID, name, description)
	if err != nil {
		return nil, err
	}
	if err := s.Contents.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CourseService) FindAllContents(ctx context.Context, courseID string, filter repo.TextFilter) ([]*entity.Content, error) {
	if _, err := s.FindByID(ctx, courseID); err != nil {
		return nil, err
	}
	return s.Contents.FindAllByCourseID(ctx, courseID, filter)
}

func (s *CourseService) UpdateContent(ctx context.Context, courseID, id string, in TextInput) (*entity.Content, error) {
	c, err := s.findContent(ctx, courseID, id)
	if err != nil {
		return nil, err
	}
	name, description := merge(c.Name, c.Description, in)
	if err := c.Rename(name, description); err != nil {
		return nil, err
	}
	if err := s.Contents.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CourseService) DeleteContent(ctx context.Context, courseID, id string) (string, error) {
	if _, err := s.findContent(ctx, courseID, id); err != nil {
		return "", err
	}
	if err := s.Contents.Delete(ctx, courseID, id); err != nil {
		return "", err
	}
	return id, nil
}

func (s *CourseService) findContent(ctx context.Context, courseID, id string) (*entity.Content, error) {
	if _, err := s.FindByID(ctx, courseID); err != nil {
		return nil, err
	}
	c, err := s.Contents.FindByID(ctx, courseID, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NewNotFoundError(contentResource, id)
	}
	return c, nil
}

func merge(name, description string, in TextInput) (string, string) {
	if in.Name != nil {
		name = *in.Name
	}
	if in.Description != nil {
		description = *in.Description
	}
	return name, description
}
