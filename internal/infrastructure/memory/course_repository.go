package memory

import (
	"context"

	"github.com/oksasatya/go-ddd-course-admin/internal/domain"
	"github.com/oksasatya/go-ddd-course-admin/internal/domain/entity"
	"github.com/oksasatya/go-ddd-course-admin/internal/domain/repository"
)

type CourseRepository struct {
	s *Store
}

func NewCourseRepository(s *Store) *CourseRepository {
	return &CourseRepository{s: s}
}

func (r *CourseRepository) Save(_ context.Context, c *entity.Course) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.courses[c.ID] = *c
	return nil
}

func (r *CourseRepository) Update(_ context.Context, c *entity.Course) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.courses[c.ID]; !ok {
		return domain.NewNotFoundError("Course", c.ID)
	}
	r.s.courses[c.ID] = *c
	return nil
}

func (r *CourseRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.courses, id)
	for cid, content := range r.s.contents {
		if content.CourseID == id {
			delete(r.s.contents, cid)
		}
	}
	return nil
}

func (r *CourseRepository) FindByID(_ context.Context, id string) (*entity.Course, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.courses[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CourseRepository) FindAll(_ context.Context, f repository.TextFilter) ([]*entity.Course, error) {
	r.s.mu.RLock()
	out := make([]*entity.Course, 0, len(r.s.courses))
	for _, c := range r.s.courses {
		if containsFold(c.Name, f.Name) && containsFold(c.Description, f.Description) {
			c := c
			out = append(out, &c)
		}
	}
	r.s.mu.RUnlock()
	sortByName(out, func(c *entity.Course) string { return c.Name })
	return out, nil
}

func (r *CourseRepository) Count(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.courses), nil
}

type ContentRepository struct {
	s *Store
}

func NewContentRepository(s *Store) *ContentRepository {
	return &ContentRepository{s: s}
}

func (r *ContentRepository) Save(_ context.Context, c *entity.Content) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.contents[c.ID] = *c
	return nil
}

func (r *ContentRepository) Update(_ context.Context, c *entity.Content) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if cur, ok := r.s.contents[c.ID]; !ok || cur.CourseID != c.CourseID {
		return domain.NewNotFoundError("Content", c.ID)
	}
	r.s.contents[c.ID] = *c
	return nil
}

func (r *ContentRepository) Delete(_ context.Context, courseID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if cur, ok := r.s.contents[id]; ok && cur.CourseID == courseID {
		delete(r.s.contents, id)
	}
	return nil
}

func (r *ContentRepository) FindByID(_ context.Context, courseID, id string) (*entity.Content, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.contents[id]
	if !ok || c.CourseID != courseID {
		return nil, nil
	}
	return &c, nil
}

func (r *ContentRepository) FindAllByCourseID(_ context.Context, courseID string, f repository.TextFilter) ([]*entity.Content, error) {
	r.s.mu.RLock()
	out := make([]*entity.Content, 0)
	for _, c := range r.s.contents {
		if c.CourseID == courseID && containsFold(c.Name, f.Name) && containsFold(c.Description, f.Description) {
			c := c
			out = append(out, &c)
		}
	}
	r.s.mu.RUnlock()
	sortByName(out, func(c *entity.Content) string { return c.Name })
	return out, nil
}

func (r *ContentRepository) Count(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.contents), nil
}

var (
	_ repository.CourseRepository  = (*CourseRepository)(nil)
	_ repository.ContentRepository = (*ContentRepository)(nil)
)
