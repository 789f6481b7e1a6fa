package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"cesizen/api/internal/database"
	"cesizen/api/internal/models"
)

// ErrTokenInvalid covers every rejected token: unknown, already used or
// expired. Callers must not distinguish these cases.
var ErrTokenInvalid = errors.New("invalid or expired token")

type ResetTokenRepository struct {
	pool *pgxpool.Pool
}

func NewResetTokenRepository(pool *pgxpool.Pool) *ResetTokenRepository {
	return &ResetTokenRepository{pool: pool}
}

func (r *ResetTokenRepository) Issue(ctx context.Context, token *models.PasswordResetToken) error {
	return database.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		// supersede outstanding tokens so at most one stays unused
		if _, err := tx.Exec(ctx,
			`UPDATE password_reset_tokens SET used_at = NOW() WHERE user_id = $1 AND used_at IS NULL`,
			token.UserID); err != nil {
			return err
		}

		const query = `
			INSERT INTO password_reset_tokens (id, user_id, token, expires_at, created_at)
			VALUES ($1, $2, $3, $4, NOW())
			RETURNING created_at
		`
		return tx.QueryRow(ctx, query,
			token.ID,
			token.UserID,
			token.Token,
			token.ExpiresAt,
		).Scan(&token.CreatedAt)
	})
}

func (r *ResetTokenRepository) Consume(ctx context.Context, token string, newPasswordHash []byte) error {
	return database.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		var userID string
		err := tx.QueryRow(ctx,
			`SELECT user_id FROM password_reset_tokens
			 WHERE token = $1 AND used_at IS NULL AND expires_at > NOW()
			 FOR UPDATE`,
			token).Scan(&userID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrTokenInvalid
			}
			return err
		}

		if _, err := tx.Exec(ctx,
			`UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`,
			newPasswordHash, userID); err != nil {
			return err
		}

		_, err = tx.Exec(ctx,
			`UPDATE password_reset_tokens SET used_at = NOW() WHERE token = $1`, token)
		return err
	})
}

func (r *ResetTokenRepository) PurgeExpired(ctx context.Context) (int64, error) {
	const query = `DELETE FROM password_reset_tokens WHERE used_at IS NOT NULL OR expires_at < NOW()`
	cmd, err := r.pool.Exec(ctx, query)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
