// Package repository persists the domain model in PostgreSQL. Services
// consume the store interfaces so business rules stay testable without a
// database; the pgx-backed types below are the only implementations.
package repository

import (
	"context"
	"time"

	"cesizen/api/internal/models"
)

type UserStore interface {
	Create(ctx context.Context, user models.User) error
	FindByEmail(ctx context.Context, email string) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	// UpdateProfile patches only the non-nil fields and returns the
	// updated row.
	UpdateProfile(ctx context.Context, id string, firstName, lastName, email *string) (models.User, error)
	ListWithRoles(ctx context.Context, limit, offset int) ([]models.UserWithRoles, int, error)
}

type RoleStore interface {
	ListAll(ctx context.Context) ([]models.Role, error)
	RolesByUser(ctx context.Context, userID string) ([]models.Role, error)
	NamesByUser(ctx context.Context, userID string) ([]models.RoleName, error)
	HasRole(ctx context.Context, userID string, name models.RoleName) (bool, error)
	CountByRole(ctx context.Context, name models.RoleName) (int, error)
	Assign(ctx context.Context, userID string, name models.RoleName) error
	Remove(ctx context.Context, userID string, name models.RoleName) error
}

type ArticleStore interface {
	ListPublished(ctx context.Context, filter models.ArticleFilter) ([]models.Article, int, error)
	GetBySlug(ctx context.Context, slug string) (models.Article, error)
	ListCategories(ctx context.Context) ([]models.ArticleCategory, error)
	ListAdmin(ctx context.Context, filter models.ArticleFilter) ([]models.Article, int, error)
	GetByID(ctx context.Context, id string) (models.Article, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	CountBySlugPrefix(ctx context.Context, prefix string) (int, error)
	// Create inserts the article and its category relations in one
	// transaction.
	Create(ctx context.Context, article *models.Article, categoryIDs []int) error
	// Update rewrites the article row and, when categoryIDs is non-nil,
	// replaces its category relations, in one transaction.
	Update(ctx context.Context, article *models.Article, categoryIDs []int) error
	Delete(ctx context.Context, id string) error
	SetImageURL(ctx context.Context, id string, url string) error
}

type EmotionStore interface {
	Taxonomy(ctx context.Context) ([]models.EmotionCategory, error)
	ListByUser(ctx context.Context, userID string, start, end *time.Time) ([]models.JournalEntry, error)
	CreateEntry(ctx context.Context, entry *models.JournalEntry) error
	UpdateEntry(ctx context.Context, id, userID string, intensity int, note *string) (models.JournalEntry, error)
	DeleteEntry(ctx context.Context, id, userID string) error
	CategoryCounts(ctx context.Context, userID string, since time.Time) ([]models.CategoryCount, error)
	TopEmotions(ctx context.Context, userID string, since time.Time, limit int) ([]models.EmotionCount, error)
	DailyCounts(ctx context.Context, userID string, since time.Time) ([]models.DailyCategoryCount, error)
}

type PractitionerStore interface {
	Patients(ctx context.Context, practitionerID string) ([]models.Patient, error)
	Link(ctx context.Context, practitionerID, patientID string) error
	Notes(ctx context.Context, practitionerID, patientID string) ([]models.FollowUpNote, error)
	// CreateNote checks the practitioner/patient link and inserts the note
	// in one transaction.
	CreateNote(ctx context.Context, note *models.FollowUpNote) error
}

type ResetTokenStore interface {
	// Issue marks every outstanding unused token of the user as used and
	// inserts the new one, in one transaction.
	Issue(ctx context.Context, token *models.PasswordResetToken) error
	// Consume verifies the token (unused, unexpired), updates the owning
	// user's password hash and marks the token used, in one transaction.
	Consume(ctx context.Context, token string, newPasswordHash []byte) error
	PurgeExpired(ctx context.Context) (int64, error)
}
