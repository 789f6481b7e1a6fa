package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"cesizen/api/internal/config"
	"cesizen/api/internal/models"
	"cesizen/api/internal/repository"
	"cesizen/api/internal/security"
)

func testConfig() *config.AppConfig {
	return &config.AppConfig{
		Environment: "test",
		Security: config.SecurityConfig{
			JWTSecret:     "test-secret",
			JWTTTL:        time.Hour,
			ResetTokenTTL: time.Hour,
			BcryptCost:    bcrypt.MinCost,
		},
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	users := &fakeUserStore{
		FindByEmailFn: func(ctx context.Context, email string) (models.User, error) {
			return models.User{ID: "existing", Email: email}, nil
		},
	}
	svc := NewAuthService(users, &fakeRoleStore{}, testConfig(), zerolog.Nop())

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:     "jean.dupont@example.fr",
		Password:  "Str0ng!pass",
		FirstName: "Jean",
		LastName:  "Dupont",
	})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterCreatesUserWithDefaultRole(t *testing.T) {
	var created models.User
	var assignedRole models.RoleName

	users := &fakeUserStore{
		CreateFn: func(ctx context.Context, user models.User) error {
			created = user
			return nil
		},
	}
	roles := &fakeRoleStore{
		AssignFn: func(ctx context.Context, userID string, name models.RoleName) error {
			assignedRole = name
			return nil
		},
	}
	svc := NewAuthService(users, roles, testConfig(), zerolog.Nop())

	user, err := svc.Register(context.Background(), RegisterInput{
		Email:     "  Jean.Dupont@Example.FR ",
		Password:  "Str0ng!pass",
		FirstName: "Jean",
		LastName:  "Dupont",
	})
	require.NoError(t, err)

	require.NotEmpty(t, user.ID)
	require.Equal(t, "jean.dupont@example.fr", created.Email)
	require.Equal(t, models.RoleUser, assignedRole)

	ok, err := security.VerifyPassword("Str0ng!pass", created.PasswordHash)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := NewAuthService(&fakeUserStore{}, &fakeRoleStore{}, testConfig(), zerolog.Nop())

	_, err := svc.Login(context.Background(), "nobody@example.fr", "whatever")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginWrongPassword(t *testing.T) {
	hash, err := security.HashPassword("Str0ng!pass", bcrypt.MinCost)
	require.NoError(t, err)

	users := &fakeUserStore{
		FindByEmailFn: func(ctx context.Context, email string) (models.User, error) {
			return models.User{ID: "u1", Email: email, PasswordHash: hash}, nil
		},
	}
	svc := NewAuthService(users, &fakeRoleStore{}, testConfig(), zerolog.Nop())

	_, err = svc.Login(context.Background(), "jean@example.fr", "wrong-password")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginIssuesTokenForUser(t *testing.T) {
	hash, err := security.HashPassword("Str0ng!pass", bcrypt.MinCost)
	require.NoError(t, err)

	users := &fakeUserStore{
		FindByEmailFn: func(ctx context.Context, email string) (models.User, error) {
			return models.User{ID: "u1", Email: email, PasswordHash: hash}, nil
		},
	}
	svc := NewAuthService(users, &fakeRoleStore{}, testConfig(), zerolog.Nop())

	token, err := svc.Login(context.Background(), "jean@example.fr", "Str0ng!pass")
	require.NoError(t, err)

	claims, err := security.ParseAccessToken(token, "test-secret")
	require.NoError(t, err)
	require.Equal(t, "u1", claims.UserID)
}

func TestUpdateProfileNormalizesEmail(t *testing.T) {
	var gotEmail *string
	users := &fakeUserStore{
		UpdateProfileFn: func(ctx context.Context, id string, firstName, lastName, email *string) (models.User, error) {
			gotEmail = email
			return models.User{ID: id}, nil
		},
	}
	svc := NewAuthService(users, &fakeRoleStore{}, testConfig(), zerolog.Nop())

	email := " New.Mail@Example.FR "
	_, err := svc.UpdateProfile(context.Background(), "u1", nil, nil, &email)
	require.NoError(t, err)
	require.NotNil(t, gotEmail)
	require.Equal(t, "new.mail@example.fr", *gotEmail)
}

func TestProfileUnknownUser(t *testing.T) {
	svc := NewAuthService(&fakeUserStore{}, &fakeRoleStore{}, testConfig(), zerolog.Nop())

	_, err := svc.Profile(context.Background(), "missing")
	require.ErrorIs(t, err, repository.ErrUserNotFound)
}
