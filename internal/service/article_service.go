package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"cesizen/api/internal/ids"
	"cesizen/api/internal/models"
	"cesizen/api/internal/repository"
	"cesizen/api/internal/slug"
)

var ErrNotArticleOwner = errors.New("caller is neither the author nor an admin")

type ArticleService struct {
	articles repository.ArticleStore
	log      zerolog.Logger
}

func NewArticleService(articles repository.ArticleStore, log zerolog.Logger) *ArticleService {
	return &ArticleService{articles: articles, log: log}
}

func (s *ArticleService) ListPublished(ctx context.Context, filter models.ArticleFilter) ([]models.Article, int, error) {
	return s.articles.ListPublished(ctx, filter)
}

func (s *ArticleService) GetBySlug(ctx context.Context, slugValue string) (models.Article, error) {
	return s.articles.GetBySlug(ctx, slugValue)
}

func (s *ArticleService) Categories(ctx context.Context) ([]models.ArticleCategory, error) {
	return s.articles.ListCategories(ctx)
}

func (s *ArticleService) AdminList(ctx context.Context, filter models.ArticleFilter) ([]models.Article, int, error) {
	return s.articles.ListAdmin(ctx, filter)
}

func (s *ArticleService) AdminGet(ctx context.Context, id string) (models.Article, error) {
	return s.articles.GetByID(ctx, id)
}

type ArticleInput struct {
	Title       string
	Summary     string
	Content     string
	ImageURL    *string
	Published   bool
	CategoryIDs []int
}

func (s *ArticleService) Create(ctx context.Context, authorID string, input ArticleInput) (models.Article, error) {
	finalSlug, err := s.uniqueSlug(ctx, input.Title)
	if err != nil {
		return models.Article{}, err
	}

	article := models.Article{
		ID:        ids.New(),
		Title:     input.Title,
		Slug:      finalSlug,
		Summary:   input.Summary,
		Content:   input.Content,
		ImageURL:  input.ImageURL,
		AuthorID:  &authorID,
		Published: input.Published,
	}

	if err := s.articles.Create(ctx, &article, input.CategoryIDs); err != nil {
		return models.Article{}, err
	}
	return article, nil
}

// uniqueSlug disambiguates a colliding slug with a counted suffix. The
// check and the later insert are not serialized, so two simultaneous
// creations with the same title can still collide; the slug is display
// metadata, not an identity.
func (s *ArticleService) uniqueSlug(ctx context.Context, title string) (string, error) {
	base := slug.Make(title)

	exists, err := s.articles.SlugExists(ctx, base)
	if err != nil {
		return "", err
	}
	if !exists {
		return base, nil
	}

	count, err := s.articles.CountBySlugPrefix(ctx, base)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%d", base, count+1), nil
}

func (s *ArticleService) Update(ctx context.Context, id string, callerID string, callerRoles []models.RoleName, input ArticleInput) (models.Article, error) {
	existing, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return models.Article{}, err
	}
	if !canEdit(existing, callerID, callerRoles) {
		return models.Article{}, ErrNotArticleOwner
	}

	article := models.Article{
		ID:        id,
		Title:     input.Title,
		Summary:   input.Summary,
		Content:   input.Content,
		ImageURL:  input.ImageURL,
		Published: input.Published,
	}

	if err := s.articles.Update(ctx, &article, input.CategoryIDs); err != nil {
		return models.Article{}, err
	}
	return article, nil
}

func (s *ArticleService) Delete(ctx context.Context, id string, callerID string, callerRoles []models.RoleName) error {
	existing, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !canEdit(existing, callerID, callerRoles) {
		return ErrNotArticleOwner
	}
	return s.articles.Delete(ctx, id)
}

func (s *ArticleService) SetImage(ctx context.Context, id string, url string) error {
	if _, err := s.articles.GetByID(ctx, id); err != nil {
		return err
	}
	return s.articles.SetImageURL(ctx, id, url)
}

func canEdit(article models.Article, callerID string, callerRoles []models.RoleName) bool {
	if article.AuthorID != nil && *article.AuthorID == callerID {
		return true
	}
	for _, role := range callerRoles {
		if role == models.RoleAdmin {
			return true
		}
	}
	return false
}
