package models

import "time"

// PasswordResetToken is a single-use credential for the reset flow.
// At most one unused, unexpired token exists per user: issuing a new one
// marks all prior unused tokens used.
type PasswordResetToken struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
}
