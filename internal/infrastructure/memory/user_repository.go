package memory

import (
	"context"
	"sort"

	"github.com/oksasatya/go-ddd-course-admin/internal/domain"
	"github.com/oksasatya/go-ddd-course-admin/internal/domain/entity"
	"github.com/oksasatya/go-ddd-course-admin/internal/domain/repository"
)

type UserRepository struct {
	s *Store
}

func NewUserRepository(s *Store) *UserRepository {
	return &UserRepository{s: s}
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	snap, ok := r.s.users[id]
	r.s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return entity.ReconstituteUser(snap)
}

func (r *UserRepository) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	r.s.mu.RLock()
	snap, ok := r.byUsername(username)
	r.s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return entity.ReconstituteUser(snap)
}

func (r *UserRepository) ExistsByUsername(_ context.Context, username string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.byUsername(username)
	return ok, nil
}

func (r *UserRepository) FindAll(_ context.Context, f repository.UserFilter) ([]*entity.User, error) {
	r.s.mu.RLock()
	snaps := make([]entity.UserSnapshot, 0, len(r.s.users))
	for _, u := range r.s.users {
		if !containsFold(u.FirstName, f.FirstName) ||
			!containsFold(u.LastName, f.LastName) ||
			!containsFold(u.Username, f.Username) {
			continue
		}
		if f.Role != "" && u.Role != f.Role.String() {
			continue
		}
		snaps = append(snaps, u)
	}
	r.s.mu.RUnlock()

	sort.SliceStable(snaps, func(i, j int) bool {
		if c := compareFold(snaps[i].FirstName, snaps[j].FirstName); c != 0 {
			return c < 0
		}
		return compareFold(snaps[i].LastName, snaps[j].LastName) < 0
	})

	out := make([]*entity.User, 0, len(snaps))
	for _, snap := range snaps {
		u, err := entity.ReconstituteUser(snap)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}

func (r *UserRepository) Count(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.users), nil
}

// Save mirrors the unique index on users.username.
func (r *UserRepository) Save(_ context.Context, u *entity.User) error {
	snap := u.Snapshot()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.byUsername(snap.Username); ok {
		return domain.NewDuplicateError("User", "username", snap.Username)
	}
	r.s.users[snap.ID] = snap
	return nil
}

func (r *UserRepository) Update(_ context.Context, u *entity.User) error {
	snap := u.Snapshot()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[snap.ID]; !ok {
		return domain.NewNotFoundError("User", snap.ID)
	}
	if other, ok := r.byUsername(snap.Username); ok && other.ID != snap.ID {
		return domain.NewDuplicateError("User", "username", snap.Username)
	}
	r.s.users[snap.ID] = snap
	return nil
}

func (r *UserRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.users, id)
	return nil
}

// byUsername must be called with the lock held.
func (r *UserRepository) byUsername(username string) (entity.UserSnapshot, bool) {
	for _, u := range r.s.users {
		if u.Username == username {
			return u, true
		}
	}
	return entity.UserSnapshot{}, false
}

var _ repository.UserRepository = (*UserRepository)(nil)
