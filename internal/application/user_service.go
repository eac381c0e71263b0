package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-course-admin/internal/domain"
	"github.com/oksasatya/go-ddd-course-admin/internal/domain/entity"
	"github.com/oksasatya/go-ddd-course-admin/internal/domain/event"
	repo "github.com/oksasatya/go-ddd-course-admin/internal/domain/repository"
	"github.com/oksasatya/go-ddd-course-admin/internal/domain/service"
	vo "github.com/oksasatya/go-ddd-course-admin/internal/domain/valueobject"
)

const userResource = "User"

// UserService runs the user use-cases. Events pulled from the aggregate are
// published only after the repository write succeeded.
type UserService struct {
	Repo     repo.UserRepository
	Domain   *service.UserDomainService
	Events   EventPublisher
	Searcher UserSearcher
	Logger   *logrus.Logger
}

func NewUserService(r repo.UserRepository, ds *service.UserDomainService, events EventPublisher, searcher UserSearcher, logger *logrus.Logger) *UserService {
	return &UserService{Repo: r, Domain: ds, Events: events, Searcher: searcher, Logger: logger}
}

func (s *UserService) Create(ctx context.Context, in CreateUserInput) (UserResponse, error) {
	username, err := vo.NewUsername(in.Username)
	if err != nil {
		return UserResponse{}, err
	}
	exists, err := s.Repo.ExistsByUsername(ctx, username.Value())
	if err != nil {
		return UserResponse{}, err
	}
	if exists {
		return UserResponse{}, domain.NewDuplicateError(userResource, "username", username.Value())
	}

	fullName, err := vo.NewFullName(in.FirstName, in.LastName)
	if err != nil {
		return UserResponse{}, err
	}
	password, err := vo.NewPassword(in.Password)
	if err != nil {
		return UserResponse{}, err
	}
	role, err := vo.NewRole(in.Role)
	if err != nil {
		return UserResponse{}, err
	}
	hash, err := s.Domain.HashPassword(password)
	if err != nil {
		return UserResponse{}, err
	}

	u := entity.CreateUser(entity.NewUserParams{
		FullName:     fullName,
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	})
	if err := s.Repo.Save(ctx, u); err != nil {
		return UserResponse{}, err
	}
	s.publish(ctx, u.PullEvents())
	return ToUserResponse(u), nil
}

func (s *UserService) Update(ctx context.Context, id string, in UpdateUserInput) (UserResponse, error) {
	u, err := s.find(ctx, id)
	if err != nil {
		return UserResponse{}, err
	}

	if in.FirstName != nil || in.LastName != nil || in.Username != nil {
		first := u.FullName().FirstName().Value()
		last := u.FullName().LastName().Value()
		if in.FirstName != nil {
			first = *in.FirstName
		}
		if in.LastName != nil {
			last = *in.LastName
		}
		fullName, err := vo.NewFullName(first, last)
		if err != nil {
			return UserResponse{}, err
		}

		username := u.Username()
		if in.Username != nil {
			username, err = vo.NewUsername(*in.Username)
			if err != nil {
				return UserResponse{}, err
			}
			if !username.Equals(u.Username()) {
				exists, err := s.Repo.ExistsByUsername(ctx, username.Value())
				if err != nil {
					return UserResponse{}, err
				}
				if exists {
					return UserResponse{}, domain.NewDuplicateError(userResource, "username", username.Value())
				}
			}
		}
		u.UpdateProfile(fullName, username)
	}

	if in.Password != nil {
		password, err := vo.NewPassword(*in.Password)
		if err != nil {
			return UserResponse{}, err
		}
		if err := s.Domain.ChangePassword(u, password); err != nil {
			return UserResponse{}, err
		}
	}

	if in.Role != nil {
		role, err := vo.NewRole(*in.Role)
		if err != nil {
			return UserResponse{}, err
		}
		u.ChangeRole(role)
	}

	if in.IsActive != nil {
		if *in.IsActive {
			u.Activate()
		} else {
			u.Deactivate()
		}
	}

	if err := s.Repo.Update(ctx, u); err != nil {
		return UserResponse{}, err
	}
	s.publish(ctx, u.PullEvents())
	return ToUserResponse(u), nil
}

// Delete raises user.deleted on the aggregate before the record is removed.
func (s *UserService) Delete(ctx context.Context, id string) (string, error) {
	u, err := s.find(ctx, id)
	if err != nil {
		return "", err
	}
	u.Delete()
	if err := s.Repo.Delete(ctx, id); err != nil {
		return "", err
	}
	s.publish(ctx, u.PullEvents())
	return id, nil
}

func (s *UserService) Get(ctx context.Context, id string) (UserResponse, error) {
	u, err := s.find(ctx, id)
	if err != nil {
		return UserResponse{}, err
	}
	return ToUserResponse(u), nil
}

func (s *UserService) GetAll(ctx context.Context, q UserQuery) ([]UserResponse, error) {
	filter := repo.UserFilter{FirstName: q.FirstName, LastName: q.LastName, Username: q.Username}
	if q.Role != "" {
		role, err := vo.NewRole(q.Role)
		if err != nil {
			return nil, err
		}
		filter.Role = role
	}
	users, err := s.Repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, ToUserResponse(u))
	}
	return out, nil
}

// Search queries the search projection. It returns an empty slice when no
// searcher is configured.
func (s *UserService) Search(ctx context.Context, q string, size int) ([]UserSearchHit, error) {
	if s.Searcher == nil {
		return []UserSearchHit{}, nil
	}
	return s.Searcher.SearchUsers(ctx, q, size)
}

// EnsureAdmin creates the bootstrap admin when no user with that username
// exists. It reports whether a user was created.
func (s *UserService) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	exists, err := s.Repo.ExistsByUsername(ctx, vo.NormalizeUsername(username))
	if err != nil || exists {
		return false, err
	}
	_, err = s.Create(ctx, CreateUserInput{
		FirstName: "admin",
		LastName:  "admin",
		Username:  username,
		Password:  password,
		Role:      vo.RoleAdmin.String(),
	})
	if err != nil {
		return false, err
	}
	if s.Logger != nil {
		s.Logger.WithField("username", username).Info("admin user seeded")
	}
	return true, nil
}

func (s *UserService) find(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.NewNotFoundError(userResource, id)
	}
	return u, nil
}

// publish never fails the request: the write already happened.
func (s *UserService) publish(ctx context.Context, events []event.Event) {
	if s.Events == nil || len(events) == 0 {
		return
	}
	if err := s.Events.Publish(ctx, events); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("events", len(events)).Warn("publish domain events failed")
	}
}
