package handlers

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"cesizen/api/internal/middleware"
	"cesizen/api/internal/models"
	"cesizen/api/internal/service"
)

type articleAuthor struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type articleResponse struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Slug        string         `json:"slug"`
	Summary     string         `json:"summary"`
	Content     string         `json:"content,omitempty"`
	ImageURL    *string        `json:"imageUrl"`
	Published   bool           `json:"published"`
	PublishedAt *time.Time     `json:"publishedAt"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	Author      *articleAuthor `json:"author,omitempty"`
	Categories  []string       `json:"categories"`
	CategoryIDs []int          `json:"categoryIds,omitempty"`
}

func toArticleResponse(a models.Article, withContent bool) articleResponse {
	resp := articleResponse{
		ID:          a.ID,
		Title:       a.Title,
		Slug:        a.Slug,
		Summary:     a.Summary,
		ImageURL:    a.ImageURL,
		Published:   a.Published,
		PublishedAt: a.PublishedAt,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
		Categories:  a.Categories,
		CategoryIDs: a.CategoryIDs,
	}
	if withContent {
		resp.Content = a.Content
	}
	if a.AuthorFirstName != nil || a.AuthorLastName != nil {
		author := articleAuthor{}
		if a.AuthorFirstName != nil {
			author.FirstName = *a.AuthorFirstName
		}
		if a.AuthorLastName != nil {
			author.LastName = *a.AuthorLastName
		}
		resp.Author = &author
	}
	if resp.Categories == nil {
		resp.Categories = []string{}
	}
	return resp
}

func articleFilterFromQuery(c *gin.Context, defaultLimit int) models.ArticleFilter {
	limit, offset := pageParams(c, defaultLimit)
	return models.ArticleFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Limit:    limit,
		Offset:   offset,
	}
}

func (h HandlerSet) ListArticles(c *gin.Context) {
	filter := articleFilterFromQuery(c, 10)

	articles, total, err := h.articleService.ListPublished(c.Request.Context(), filter)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	out := make([]articleResponse, 0, len(articles))
	for _, a := range articles {
		out = append(out, toArticleResponse(a, false))
	}
	respondPage(c, out, total, filter.Limit, filter.Offset)
}

type articleCategoryResponse struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h HandlerSet) ArticleCategories(c *gin.Context) {
	categories, err := h.articleService.Categories(c.Request.Context())
	if err != nil {
		h.serviceError(c, err)
		return
	}

	out := make([]articleCategoryResponse, 0, len(categories))
	for _, cat := range categories {
		out = append(out, articleCategoryResponse{
			ID:          cat.ID,
			Name:        cat.Name,
			Description: cat.Description,
		})
	}
	respondData(c, http.StatusOK, out)
}

func (h HandlerSet) ArticleBySlug(c *gin.Context) {
	article, err := h.articleService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.serviceError(c, err)
		return
	}
	respondData(c, http.StatusOK, toArticleResponse(article, true))
}

func (h HandlerSet) AdminListArticles(c *gin.Context) {
	filter := articleFilterFromQuery(c, 10)
	if raw := c.Query("published"); raw != "" {
		published := raw == "true"
		filter.Published = &published
	}

	articles, total, err := h.articleService.AdminList(c.Request.Context(), filter)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	out := make([]articleResponse, 0, len(articles))
	for _, a := range articles {
		out = append(out, toArticleResponse(a, false))
	}
	respondPage(c, out, total, filter.Limit, filter.Offset)
}

func (h HandlerSet) AdminGetArticle(c *gin.Context) {
	article, err := h.articleService.AdminGet(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.serviceError(c, err)
		return
	}
	respondData(c, http.StatusOK, toArticleResponse(article, true))
}

type articleRequest struct {
	Title       string  `json:"title" binding:"required"`
	Summary     string  `json:"summary" binding:"required"`
	Content     string  `json:"content" binding:"required"`
	ImageURL    *string `json:"imageUrl"`
	Published   bool    `json:"published"`
	CategoryIDs []int   `json:"categoryIds"`
}

func (h HandlerSet) CreateArticle(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Authentification requise")
		return
	}

	var req articleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, bindingErrors(err))
		return
	}

	article, err := h.articleService.Create(c.Request.Context(), user.ID, service.ArticleInput{
		Title:       req.Title,
		Summary:     req.Summary,
		Content:     req.Content,
		ImageURL:    req.ImageURL,
		Published:   req.Published,
		CategoryIDs: req.CategoryIDs,
	})
	if err != nil {
		h.serviceError(c, err)
		return
	}

	respondData(c, http.StatusCreated, toArticleResponse(article, true))
}

func (h HandlerSet) UpdateArticle(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Authentification requise")
		return
	}

	var req articleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, bindingErrors(err))
		return
	}

	article, err := h.articleService.Update(c.Request.Context(), c.Param("id"), user.ID, middleware.CallerRoles(c), service.ArticleInput{
		Title:       req.Title,
		Summary:     req.Summary,
		Content:     req.Content,
		ImageURL:    req.ImageURL,
		Published:   req.Published,
		CategoryIDs: req.CategoryIDs,
	})
	if err != nil {
		h.serviceError(c, err)
		return
	}

	respondData(c, http.StatusOK, toArticleResponse(article, true))
}

func (h HandlerSet) DeleteArticle(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Authentification requise")
		return
	}

	if err := h.articleService.Delete(c.Request.Context(), c.Param("id"), user.ID, middleware.CallerRoles(c)); err != nil {
		h.serviceError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "Article supprimé avec succès")
}

const maxImageSize = 10 << 20 // 10 MiB

func (h HandlerSet) UploadArticleImage(c *gin.Context) {
	articleID := c.Param("id")
	if _, err := h.articleService.AdminGet(c.Request.Context(), articleID); err != nil {
		h.serviceError(c, err)
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Aucune image fournie")
		return
	}
	if file.Size > maxImageSize {
		respondError(c, http.StatusBadRequest, "Image trop volumineuse")
		return
	}

	src, err := file.Open()
	if err != nil {
		h.serviceError(c, err)
		return
	}
	defer src.Close()

	contentType := file.Header.Get("Content-Type")
	filename := filepath.Base(file.Filename)

	url, err := h.store.PutArticleImage(c.Request.Context(), articleID, filename, contentType, src, file.Size)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	if err := h.articleService.SetImage(c.Request.Context(), articleID, url); err != nil {
		h.serviceError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"imageUrl": url})
}
