package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"cesizen/api/internal/config"
	"cesizen/api/internal/ids"
	"cesizen/api/internal/models"
	"cesizen/api/internal/repository"
	"cesizen/api/internal/security"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type AuthService struct {
	users repository.UserStore
	roles repository.RoleStore
	cfg   *config.AppConfig
	log   zerolog.Logger
}

func NewAuthService(users repository.UserStore, roles repository.RoleStore, cfg *config.AppConfig, log zerolog.Logger) *AuthService {
	return &AuthService{
		users: users,
		roles: roles,
		cfg:   cfg,
		log:   log,
	}
}

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (models.User, error) {
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))

	if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
		return models.User{}, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return models.User{}, err
	}

	passwordHash, err := security.HashPassword(input.Password, s.cfg.Security.BcryptCost)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:           ids.New(),
		Email:        input.Email,
		PasswordHash: passwordHash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return models.User{}, err
	}

	// every account starts with the USER role
	if err := s.roles.Assign(ctx, user.ID, models.RoleUser); err != nil {
		s.log.Error().Err(err).Str("user_id", user.ID).Msg("assign default role failed")
	}

	return user, nil
}

// Login verifies the credentials and returns a signed 24h access token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return "", ErrInvalidCredentials
	}

	return security.GenerateAccessToken(s.cfg.Security.JWTSecret, user.ID, s.cfg.Security.JWTTTL)
}

func (s *AuthService) Profile(ctx context.Context, userID string) (models.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID string, firstName, lastName, email *string) (models.User, error) {
	if email != nil {
		normalized := strings.TrimSpace(strings.ToLower(*email))
		email = &normalized
	}
	return s.users.UpdateProfile(ctx, userID, firstName, lastName, email)
}

func (s *AuthService) ListUsers(ctx context.Context, limit, offset int) ([]models.UserWithRoles, int, error) {
	return s.users.ListWithRoles(ctx, limit, offset)
}
