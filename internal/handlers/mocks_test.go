package handlers

import (
	"context"
	"time"

	"cesizen/api/internal/models"
	"cesizen/api/internal/repository"
)

type fakeUserStore struct {
	CreateFn             func(ctx context.Context, user models.User) error
	FindByEmailFn        func(ctx context.Context, email string) (models.User, error)
	GetByIDFn            func(ctx context.Context, id string) (models.User, error)
	UpdateProfileFn func(ctx context.Context, id string, firstName, lastName, email *string) (models.User, error)
	ListWithRolesFn func(ctx context.Context, limit, offset int) ([]models.UserWithRoles, int, error)
}

func (f *fakeUserStore) Create(ctx context.Context, user models.User) error {
	if f.CreateFn == nil {
		return nil
	}
	return f.CreateFn(ctx, user)
}

func (f *fakeUserStore) FindByEmail(ctx context.Context, email string) (models.User, error) {
	if f.FindByEmailFn == nil {
		return models.User{}, repository.ErrUserNotFound
	}
	return f.FindByEmailFn(ctx, email)
}

func (f *fakeUserStore) GetByID(ctx context.Context, id string) (models.User, error) {
	if f.GetByIDFn == nil {
		return models.User{}, repository.ErrUserNotFound
	}
	return f.GetByIDFn(ctx, id)
}

func (f *fakeUserStore) UpdateProfile(ctx context.Context, id string, firstName, lastName, email *string) (models.User, error) {
	return f.UpdateProfileFn(ctx, id, firstName, lastName, email)
}

func (f *fakeUserStore) ListWithRoles(ctx context.Context, limit, offset int) ([]models.UserWithRoles, int, error) {
	return f.ListWithRolesFn(ctx, limit, offset)
}

type fakeRoleStore struct {
	NamesByUserFn func(ctx context.Context, userID string) ([]models.RoleName, error)
	AssignFn      func(ctx context.Context, userID string, name models.RoleName) error
	RemoveFn      func(ctx context.Context, userID string, name models.RoleName) error
}

func (f *fakeRoleStore) ListAll(ctx context.Context) ([]models.Role, error) { return nil, nil }
func (f *fakeRoleStore) RolesByUser(ctx context.Context, userID string) ([]models.Role, error) {
	return nil, nil
}
func (f *fakeRoleStore) NamesByUser(ctx context.Context, userID string) ([]models.RoleName, error) {
	if f.NamesByUserFn == nil {
		return nil, nil
	}
	return f.NamesByUserFn(ctx, userID)
}
func (f *fakeRoleStore) HasRole(ctx context.Context, userID string, name models.RoleName) (bool, error) {
	return false, nil
}
func (f *fakeRoleStore) CountByRole(ctx context.Context, name models.RoleName) (int, error) {
	return 0, nil
}
func (f *fakeRoleStore) Assign(ctx context.Context, userID string, name models.RoleName) error {
	if f.AssignFn == nil {
		return nil
	}
	return f.AssignFn(ctx, userID, name)
}
func (f *fakeRoleStore) Remove(ctx context.Context, userID string, name models.RoleName) error {
	if f.RemoveFn == nil {
		return nil
	}
	return f.RemoveFn(ctx, userID, name)
}

type fakeArticleStore struct {
	ListPublishedFn     func(ctx context.Context, filter models.ArticleFilter) ([]models.Article, int, error)
	GetBySlugFn         func(ctx context.Context, slug string) (models.Article, error)
	ListCategoriesFn    func(ctx context.Context) ([]models.ArticleCategory, error)
	ListAdminFn         func(ctx context.Context, filter models.ArticleFilter) ([]models.Article, int, error)
	GetByIDFn           func(ctx context.Context, id string) (models.Article, error)
	SlugExistsFn        func(ctx context.Context, slug string) (bool, error)
	CountBySlugPrefixFn func(ctx context.Context, prefix string) (int, error)
	CreateFn            func(ctx context.Context, article *models.Article, categoryIDs []int) error
	UpdateFn            func(ctx context.Context, article *models.Article, categoryIDs []int) error
	DeleteFn            func(ctx context.Context, id string) error
	SetImageURLFn       func(ctx context.Context, id string, url string) error
}

func (f *fakeArticleStore) ListPublished(ctx context.Context, filter models.ArticleFilter) ([]models.Article, int, error) {
	return f.ListPublishedFn(ctx, filter)
}

func (f *fakeArticleStore) GetBySlug(ctx context.Context, slug string) (models.Article, error) {
	return f.GetBySlugFn(ctx, slug)
}

func (f *fakeArticleStore) ListCategories(ctx context.Context) ([]models.ArticleCategory, error) {
	return f.ListCategoriesFn(ctx)
}

func (f *fakeArticleStore) ListAdmin(ctx context.Context, filter models.ArticleFilter) ([]models.Article, int, error) {
	return f.ListAdminFn(ctx, filter)
}

func (f *fakeArticleStore) GetByID(ctx context.Context, id string) (models.Article, error) {
	return f.GetByIDFn(ctx, id)
}

func (f *fakeArticleStore) SlugExists(ctx context.Context, slug string) (bool, error) {
	return f.SlugExistsFn(ctx, slug)
}

func (f *fakeArticleStore) CountBySlugPrefix(ctx context.Context, prefix string) (int, error) {
	return f.CountBySlugPrefixFn(ctx, prefix)
}

func (f *fakeArticleStore) Create(ctx context.Context, article *models.Article, categoryIDs []int) error {
	if f.CreateFn == nil {
		return nil
	}
	return f.CreateFn(ctx, article, categoryIDs)
}

func (f *fakeArticleStore) Update(ctx context.Context, article *models.Article, categoryIDs []int) error {
	if f.UpdateFn == nil {
		return nil
	}
	return f.UpdateFn(ctx, article, categoryIDs)
}

func (f *fakeArticleStore) Delete(ctx context.Context, id string) error {
	return f.DeleteFn(ctx, id)
}

func (f *fakeArticleStore) SetImageURL(ctx context.Context, id string, url string) error {
	return f.SetImageURLFn(ctx, id, url)
}

type fakeEmotionStore struct {
	TaxonomyFn       func(ctx context.Context) ([]models.EmotionCategory, error)
	ListByUserFn     func(ctx context.Context, userID string, start, end *time.Time) ([]models.JournalEntry, error)
	CreateEntryFn    func(ctx context.Context, entry *models.JournalEntry) error
	UpdateEntryFn    func(ctx context.Context, id, userID string, intensity int, note *string) (models.JournalEntry, error)
	DeleteEntryFn    func(ctx context.Context, id, userID string) error
	CategoryCountsFn func(ctx context.Context, userID string, since time.Time) ([]models.CategoryCount, error)
	TopEmotionsFn    func(ctx context.Context, userID string, since time.Time, limit int) ([]models.EmotionCount, error)
	DailyCountsFn    func(ctx context.Context, userID string, since time.Time) ([]models.DailyCategoryCount, error)
}

func (f *fakeEmotionStore) Taxonomy(ctx context.Context) ([]models.EmotionCategory, error) {
	return f.TaxonomyFn(ctx)
}

func (f *fakeEmotionStore) ListByUser(ctx context.Context, userID string, start, end *time.Time) ([]models.JournalEntry, error) {
	return f.ListByUserFn(ctx, userID, start, end)
}

func (f *fakeEmotionStore) CreateEntry(ctx context.Context, entry *models.JournalEntry) error {
	if f.CreateEntryFn == nil {
		return nil
	}
	return f.CreateEntryFn(ctx, entry)
}

func (f *fakeEmotionStore) UpdateEntry(ctx context.Context, id, userID string, intensity int, note *string) (models.JournalEntry, error) {
	return f.UpdateEntryFn(ctx, id, userID, intensity, note)
}

func (f *fakeEmotionStore) DeleteEntry(ctx context.Context, id, userID string) error {
	return f.DeleteEntryFn(ctx, id, userID)
}

func (f *fakeEmotionStore) CategoryCounts(ctx context.Context, userID string, since time.Time) ([]models.CategoryCount, error) {
	return f.CategoryCountsFn(ctx, userID, since)
}

func (f *fakeEmotionStore) TopEmotions(ctx context.Context, userID string, since time.Time, limit int) ([]models.EmotionCount, error) {
	return f.TopEmotionsFn(ctx, userID, since, limit)
}

func (f *fakeEmotionStore) DailyCounts(ctx context.Context, userID string, since time.Time) ([]models.DailyCategoryCount, error) {
	return f.DailyCountsFn(ctx, userID, since)
}

type fakeResetTokenStore struct {
	IssueFn   func(ctx context.Context, token *models.PasswordResetToken) error
	ConsumeFn func(ctx context.Context, token string, newPasswordHash []byte) error
}

func (f *fakeResetTokenStore) Issue(ctx context.Context, token *models.PasswordResetToken) error {
	if f.IssueFn == nil {
		return nil
	}
	return f.IssueFn(ctx, token)
}

func (f *fakeResetTokenStore) Consume(ctx context.Context, token string, newPasswordHash []byte) error {
	return f.ConsumeFn(ctx, token, newPasswordHash)
}

func (f *fakeResetTokenStore) PurgeExpired(ctx context.Context) (int64, error) {
	return 0, nil
}

type fakeMailer struct {
	SendPasswordResetFn func(ctx context.Context, email, firstName, token string) error
}

func (f *fakeMailer) SendPasswordReset(ctx context.Context, email, firstName, token string) error {
	if f.SendPasswordResetFn == nil {
		return nil
	}
	return f.SendPasswordResetFn(ctx, email, firstName, token)
}
