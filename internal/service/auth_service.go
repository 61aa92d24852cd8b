package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"go-inventory-catalog/internal/apperr"
	"go-inventory-catalog/internal/model"
	"go-inventory-catalog/internal/repository"
	"go-inventory-catalog/pkg/jwt"
)

var (
	ErrInvalidCredentials = apperr.Unauthorized("INVALID_CREDENTIALS", "Invalid email or password")
	ErrUserInactive       = apperr.Unauthorized("USER_INACTIVE", "User account is inactive")
	ErrSessionExpired     = apperr.Unauthorized("SESSION_EXPIRED", "Session expired (logged in on another device)")
	ErrInvalidToken       = apperr.Unauthorized("INVALID_TOKEN", "Invalid or expired token")
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResponse, error)
	Authenticate(ctx context.Context, token string) (*model.User, error)
	Me(ctx context.Context, userID uuid.UUID) (*model.UserResponse, error)
	EnsureMaster(ctx context.Context, email, password, name string) (bool, error)
}

type LoginResponse struct {
	Token string             `json:"token"`
	User  model.UserResponse `json:"user"`
}

type authService struct {
	users repository.UserRepository
	jwt   *jwt.Manager
	log   *slog.Logger
}

func NewAuthService(users repository.UserRepository, manager *jwt.Manager, log *slog.Logger) AuthService {
	return &authService{users: users, jwt: manager, log: logger(log)}
}

// Login checks the credentials and starts a new session. Logging in again
// invalidates tokens issued earlier.
func (s *authService) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errorsIsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	version := uuid.NewString()
	if err := s.users.UpdateTokenVersion(ctx, user.ID, version); err != nil {
		return nil, err
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Email, user.FullName, user.Role, version)
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "user logged in", slog.String("user_id", user.ID.String()), slog.String("role", user.Role))
	return &LoginResponse{Token: token, User: user.ToResponse()}, nil
}

// Authenticate resolves a bearer token to its still-active user.
func (s *authService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	claims, err := s.jwt.ValidateToken(token)
	if err != nil {
		return nil, ErrInvalidToken.Wrap(err)
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errorsIsNotFound(err) {
			return nil, ErrInvalidToken.Wrap(err)
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}
	if user.TokenVersion != claims.TokenVersion {
		return nil, ErrSessionExpired
	}
	return user, nil
}

func (s *authService) Me(ctx context.Context, userID uuid.UUID) (*model.UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := user.ToResponse()
	return &resp, nil
}

// EnsureMaster creates the master account unless a user with email exists.
// It reports whether a user was created.
func (s *authService) EnsureMaster(ctx context.Context, email, password, name string) (bool, error) {
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return false, nil
	} else if !errorsIsNotFound(err) {
		return false, err
	}

	user := &model.User{Email: email, FullName: name, Role: model.RoleMaster, IsActive: true}
	user.Stamp("system")
	if err := user.SetPassword(password); err != nil {
		return false, err
	}
	if err := s.users.Create(ctx, user); err != nil {
		return false, err
	}

	s.log.InfoContext(ctx, "master user created", slog.String("email", user.Email))
	return true, nil
}
