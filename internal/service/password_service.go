package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"cesizen/api/internal/config"
	"cesizen/api/internal/ids"
	"cesizen/api/internal/models"
	"cesizen/api/internal/repository"
	"cesizen/api/internal/security"
)

// Mailer delivers transactional mail. Implemented by internal/mailer.
type Mailer interface {
	SendPasswordReset(ctx context.Context, email, firstName, token string) error
}

type PasswordService struct {
	users  repository.UserStore
	tokens repository.ResetTokenStore
	mailer Mailer
	cfg    *config.AppConfig
	log    zerolog.Logger
}

func NewPasswordService(
	users repository.UserStore,
	tokens repository.ResetTokenStore,
	mailer Mailer,
	cfg *config.AppConfig,
	log zerolog.Logger,
) *PasswordService {
	return &PasswordService{
		users:  users,
		tokens: tokens,
		mailer: mailer,
		cfg:    cfg,
		log:    log,
	}
}

// RequestReset issues a fresh single-use token and mails the reset link.
// An unknown email returns nil so callers answer identically whether or
// not the account exists.
func (s *PasswordService) RequestReset(ctx context.Context, email string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil
		}
		return err
	}

	raw, err := security.GenerateResetToken()
	if err != nil {
		return err
	}

	token := models.PasswordResetToken{
		ID:        ids.New(),
		UserID:    user.ID,
		Token:     raw,
		ExpiresAt: time.Now().Add(s.cfg.Security.ResetTokenTTL),
	}
	if err := s.tokens.Issue(ctx, &token); err != nil {
		return err
	}

	if err := s.mailer.SendPasswordReset(ctx, user.Email, user.FirstName, raw); err != nil {
		s.log.Error().Err(err).Str("user_id", user.ID).Msg("send reset email failed")
		return err
	}

	return nil
}

// Reset consumes the token and replaces the user's password in one
// transaction; it fails with repository.ErrTokenInvalid on an unknown,
// used or expired token.
func (s *PasswordService) Reset(ctx context.Context, token, newPassword string) error {
	hash, err := security.HashPassword(newPassword, s.cfg.Security.BcryptCost)
	if err != nil {
		return err
	}
	return s.tokens.Consume(ctx, token, hash)
}
