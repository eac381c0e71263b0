package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-course-admin/internal/domain"
	"github.com/oksasatya/go-ddd-course-admin/internal/domain/entity"
	repo "github.com/oksasatya/go-ddd-course-admin/internal/domain/repository"
	"github.com/oksasatya/go-ddd-course-admin/internal/domain/service"
	vo "github.com/oksasatya/go-ddd-course-admin/internal/domain/valueobject"
	"github.com/oksasatya/go-ddd-course-admin/pkg/helpers"
)

// AuthService issues, rotates and revokes JWT sessions. Only the hash of the
// current refresh token is stored; a refresh token is accepted only while it
// matches that hash.
type AuthService struct {
	Repo   repo.UserRepository
	Domain *service.UserDomainService
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
}

func NewAuthService(r repo.UserRepository, ds *service.UserDomainService, jwt *helpers.JWTManager, logger *logrus.Logger) *AuthService {
	return &AuthService{Repo: r, Domain: ds, JWT: jwt, Logger: logger}
}

// AuthResult is returned by Login and Refresh. RefreshToken goes into the
// cookie, never into the body.
type AuthResult struct {
	AccessToken        string
	RefreshToken       string
	RefreshTokenExpiry time.Time
	User               UserResponse
}

func (s *AuthService) Login(ctx context.Context, username, password string) (AuthResult, error) {
	u, err := s.Repo.FindByUsername(ctx, vo.NormalizeUsername(username))
	if err != nil {
		return AuthResult{}, err
	}
	if u == nil {
		return AuthResult{}, domain.ErrInvalidCredentials
	}
	if err := s.Domain.ValidateCredentials(u, password); err != nil {
		return AuthResult{}, err
	}
	return s.issue(ctx, u)
}

// Refresh rotates the session: the presented token stops being valid.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (AuthResult, error) {
	if refreshToken == "" {
		return AuthResult{}, domain.ErrMissingRefreshToken
	}
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return AuthResult{}, domain.NewUnauthorizedError("Invalid refresh token")
	}
	u, err := s.Repo.FindByID(ctx, claims.UserID)
	if err != nil {
		return AuthResult{}, err
	}
	if u == nil || u.RefreshTokenHash() == nil {
		return AuthResult{}, domain.NewUnauthorizedError("Invalid refresh token")
	}
	if !s.Domain.CompareRefreshTokens(refreshToken, *u.RefreshTokenHash()) {
		return AuthResult{}, domain.NewUnauthorizedError("Invalid refresh token")
	}
	if !u.IsActive() {
		return AuthResult{}, domain.NewUserInactiveError(u.Username().Value())
	}
	return s.issue(ctx, u)
}

// Logout clears the stored refresh token hash. Repeating it is harmless.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	u, err := s.Repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if u == nil || u.RefreshTokenHash() == nil {
		return nil
	}
	u.SetRefreshToken(nil)
	return s.Repo.Update(ctx, u)
}

func (s *AuthService) issue(ctx context.Context, u *entity.User) (AuthResult, error) {
	access, _, err := s.JWT.GenerateAccessToken(u.ID(), u.Username().Value(), u.Role().String())
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID()).Error("generate access token failed")
		}
		return AuthResult{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID())
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID()).Error("generate refresh token failed")
		}
		return AuthResult{}, err
	}
	hash, err := s.Domain.HashRefreshToken(refresh)
	if err != nil {
		return AuthResult{}, err
	}
	u.SetRefreshToken(&hash)
	if err := s.Repo.Update(ctx, u); err != nil {
		return AuthResult{}, err
	}
	return AuthResult{
		AccessToken:        access,
		RefreshToken:       refresh,
		RefreshTokenExpiry: rexp,
		User:               ToUserResponse(u),
	}, nil
}
