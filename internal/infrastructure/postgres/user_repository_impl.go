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

const userColumns = `id, first_name, last_name, username, password_hash, role, is_active, refresh_token_hash, created_at, updated_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Save(ctx context.Context, u *entity.User) error {
	s := u.Snapshot()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, s.ID, s.FirstName, s.LastName, s.Username, s.PasswordHash, s.Role, s.IsActive,
		s.RefreshTokenHash, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewDuplicateError("User", "username", s.Username)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	if !isUUID(id) {
		return nil, nil
	}
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	return scanUser(row)
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists user: %w", err)
	}
	return exists, nil
}

func (r *UserRepository) FindAll(ctx context.Context, f repository.UserFilter) ([]*entity.User, error) {
	var w where
	w.ilike("first_name", f.FirstName)
	w.ilike("last_name", f.LastName)
	w.ilike("username", f.Username)
	if f.Role != "" {
		w.eq("role", f.Role.String())
	}

	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users`+w.String()+` ORDER BY LOWER(first_name) ASC, LOWER(last_name) ASC`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	out := make([]*entity.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	s := u.Snapshot()
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET first_name = $1, last_name = $2, username = $3, password_hash = $4, role = $5,
		    is_active = $6, refresh_token_hash = $7, updated_at = $8
		WHERE id = $9
	`, s.FirstName, s.LastName, s.Username, s.PasswordHash, s.Role, s.IsActive,
		s.RefreshTokenHash, s.UpdatedAt, s.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewDuplicateError("User", "username", s.Username)
		}
		return fmt.Errorf("update user: %w", err)
	}
	if res.RowsAffected() == 0 {
		return domain.NewNotFoundError("User", s.ID)
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// scanUser returns (nil, nil) on no rows.
func scanUser(row pgx.Row) (*entity.User, error) {
	var s entity.UserSnapshot
	err := row.Scan(&s.ID, &s.FirstName, &s.LastName, &s.Username, &s.PasswordHash, &s.Role,
		&s.IsActive, &s.RefreshTokenHash, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return entity.ReconstituteUser(s)
}

var _ repository.UserRepository = (*UserRepository)(nil)
