package service

import (
	"github.com/oksasatya/go-ddd-course-admin/internal/domain"
	"github.com/oksasatya/go-ddd-course-admin/internal/domain/entity"
	vo "github.com/oksasatya/go-ddd-course-admin/internal/domain/valueobject"
	"github.com/oksasatya/go-ddd-course-admin/pkg/helpers"
)

// UserDomainService owns password and refresh-token hashing and the
// credential policy. It is stateless apart from the bcrypt cost.
type UserDomainService struct {
	cost int
}

func NewUserDomainService(cost int) *UserDomainService {
	if cost <= 0 {
		cost = helpers.DefaultBcryptCost
	}
	return &UserDomainService{cost: cost}
}

func (s *UserDomainService) HashPassword(p vo.Password) (string, error) {
	return helpers.HashPassword(p.Value(), s.cost)
}

func (s *UserDomainService) ComparePasswords(plain, hash string) bool {
	return helpers.CompareHashAndPassword(hash, plain)
}

// ValidateCredentials checks the password first, then the active flag, so an
// inactive account is only revealed to someone who knows its password.
func (s *UserDomainService) ValidateCredentials(u *entity.User, plain string) error {
	if u == nil || !s.ComparePasswords(plain, u.PasswordHash()) {
		return domain.ErrInvalidCredentials
	}
	if !u.IsActive() {
		return domain.NewUserInactiveError(u.Username().Value())
	}
	return nil
}

// ChangePassword hashes newPassword and applies it to u.
func (s *UserDomainService) ChangePassword(u *entity.User, newPassword vo.Password) error {
	hash, err := s.HashPassword(newPassword)
	if err != nil {
		return err
	}
	u.ChangePassword(hash)
	return nil
}

func (s *UserDomainService) HashRefreshToken(token string) (string, error) {
	return helpers.HashPassword(helpers.TokenDigest(token), s.cost)
}

func (s *UserDomainService) CompareRefreshTokens(token, hash string) bool {
	return helpers.CompareHashAndPassword(hash, helpers.TokenDigest(token))
}
