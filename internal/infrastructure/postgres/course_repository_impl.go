package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-ddd-course-admin/internal/domain"
	"github.com/oksasatya/go-ddd-course-admin/internal/domain/entity"
	"github.com/oksasatya/go-ddd-course-admin/internal/domain/repository"
)

type CourseRepository struct {
	pool *pgxpool.Pool
}

func NewCourseRepository(pool *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{pool: pool}
}

func (r *CourseRepository) Save(ctx context.Context, c *entity.Course) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO courses (id, name, description, date_created) VALUES ($1, $2, $3, $4)
	`, c.ID, c.Name, c.Description, c.DateCreated)
	if err != nil {
		return fmt.Errorf("insert course: %w", err)
	}
	return nil
}

func (r *CourseRepository) Update(ctx context.Context, c *entity.Course) error {
	res, err := r.pool.Exec(ctx, `UPDATE courses SET name = $1, description = $2 WHERE id = $3`,
		c.Name, c.Description, c.ID)
	if err != nil {
		return fmt.Errorf("update course: %w", err)
	}
	if res.RowsAffected() == 0 {
		return domain.NewNotFoundError("Course", c.ID)
	}
	return nil
}

// Delete relies on ON DELETE CASCADE for contents.
func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	return nil
}

func (r *CourseRepository) FindByID(ctx context.Context, id string) (*entity.Course, error) {
	if !isUUID(id) {
		return nil, nil
	}
	var c entity.Course
	err := r.pool.QueryRow(ctx, `SELECT id, name, description, date_created FROM courses WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.Description, &c.DateCreated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get course: %w", err)
	}
	return &c, nil
}

func (r *CourseRepository) FindAll(ctx context.Context, f repository.TextFilter) ([]*entity.Course, error) {
	var w where
	w.ilike("name", f.Name)
	w.ilike("description", f.Description)
	rows, err := r.pool.Query(ctx, `SELECT id, name, description, date_created FROM courses`+w.String()+` ORDER BY LOWER(name) ASC`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer rows.Close()

	out := make([]*entity.Course, 0)
	for rows.Next() {
		var c entity.Course
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.DateCreated); err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

func (r *CourseRepository) Count(ctx context.Context) (int, error) {
	return count(ctx, r.pool, "courses")
}

type ContentRepository struct {
	pool *pgxpool.Pool
}

func NewContentRepository(pool *pgxpool.Pool) *ContentRepository {
	return &ContentRepository{pool: pool}
}

func (r *ContentRepository) Save(ctx context.Context, c *entity.Content) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO contents (id, course_id, name, description, date_created) VALUES ($1, $2, $3, $4, $5)
	`, c.ID, c.CourseID, c.Name, c.Description, c.DateCreated)
	if err != nil {
		return fmt.Errorf("insert content: %w", err)
	}
	return nil
}

func (r *ContentRepository) Update(ctx context.Context, c *entity.Content) error {
	res, err := r.pool.Exec(ctx, `UPDATE contents SET name = $1, description = $2 WHERE id = $3 AND course_id = $4`,
		c.Name, c.Description, c.ID, c.CourseID)
	if err != nil {
		return fmt.Errorf("update content: %w", err)
	}
	if res.RowsAffected() == 0 {
		return domain.NewNotFoundError("Content", c.ID)
	}
	return nil
}

func (r *ContentRepository) Delete(ctx context.Context, courseID, id string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM contents WHERE id = $1 AND course_id = $2`, id, courseID); err != nil {
		return fmt.Errorf("delete content: %w", err)
	}
	return nil
}

func (r *ContentRepository) FindByID(ctx context.Context, courseID, id string) (*entity.Content, error) {
	if !isUUID(courseID, id) {
		return nil, nil
	}
	var c entity.Content
	err := r.pool.QueryRow(ctx, `
		SELECT id, course_id, name, description, date_created FROM contents WHERE id = $1 AND course_id = $2
	`, id, courseID).Scan(&c.ID, &c.CourseID, &c.Name, &c.Description, &c.DateCreated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get content: %w", err)
	}
	return &c, nil
}

func (r *ContentRepository) FindAllByCourseID(ctx context.Context, courseID string, f repository.TextFilter) ([]*entity.Content, error) {
	var w where
	w.eq("course_id", courseID)
	w.ilike("name", f.Name)
	w.ilike("description", f.Description)
	rows, err := r.pool.Query(ctx, `SELECT id, course_id, name, description, date_created FROM contents`+w.String()+` ORDER BY LOWER(name) ASC`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list contents: %w", err)
	}
	defer rows.Close()

	out := make([]*entity.Content, 0)
	for rows.Next() {
		var c entity.Content
		if err := rows.Scan(&c.ID, &c.CourseID, &c.Name, &c.Description, &c.DateCreated); err != nil {
			return nil, fmt.Errorf("scan content: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

func (r *ContentRepository) Count(ctx context.Context) (int, error) {
	return count(ctx, r.pool, "contents")
}

// count is only called with constant table names.
func count(ctx context.Context, pool *pgxpool.Pool, table string) (int, error) {
	var n int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM `+table).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

var (
	_ repository.CourseRepository  = (*CourseRepository)(nil)
	_ repository.ContentRepository = (*ContentRepository)(nil)
)
