package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"cesizen/api/internal/database"
	"cesizen/api/internal/models"
)

var ErrArticleNotFound = errors.New("article not found")

type ArticleRepository struct {
	pool *pgxpool.Pool
}

func NewArticleRepository(pool *pgxpool.Pool) *ArticleRepository {
	return &ArticleRepository{pool: pool}
}

const articleJoins = `
	FROM articles a
	LEFT JOIN users u ON a.author_id = u.id
	LEFT JOIN article_category_relations acr ON a.id = acr.article_id
	LEFT JOIN article_categories ac ON acr.category_id = ac.id
`

// filterPredicates renders the WHERE clauses shared by a listing query and
// its count query, so both always see the same rows.
func filterPredicates(filter models.ArticleFilter, args []any) (string, []any) {
	var clauses []string

	if filter.Published != nil {
		args = append(args, *filter.Published)
		clauses = append(clauses, fmt.Sprintf("a.published = $%d", len(args)))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		clauses = append(clauses, fmt.Sprintf(`EXISTS (
			SELECT 1 FROM article_category_relations acr2
			JOIN article_categories ac2 ON acr2.category_id = ac2.id
			WHERE acr2.article_id = a.id AND ac2.name = $%d
		)`, len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		clauses = append(clauses, fmt.Sprintf(
			"(a.title ILIKE $%d OR a.content ILIKE $%d OR a.summary ILIKE $%d)", n, n, n))
	}

	if len(clauses) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(clauses, " AND "), args
}

func (r *ArticleRepository) list(ctx context.Context, filter models.ArticleFilter, orderBy string) ([]models.Article, int, error) {
	where, args := filterPredicates(filter, nil)

	query := `
		SELECT a.id, a.title, a.slug, a.summary, a.image_url, a.published,
		       a.published_at, a.created_at, a.updated_at,
		       u.first_name, u.last_name,
		       COALESCE(array_agg(DISTINCT ac.name) FILTER (WHERE ac.name IS NOT NULL), '{}') AS categories
	` + articleJoins + where + `
		GROUP BY a.id, u.first_name, u.last_name
		ORDER BY ` + orderBy + fmt.Sprintf(`
		LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)

	rows, err := r.pool.Query(ctx, query, append(args, filter.Limit, filter.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var articles []models.Article
	for rows.Next() {
		var a models.Article
		if err := rows.Scan(
			&a.ID,
			&a.Title,
			&a.Slug,
			&a.Summary,
			&a.ImageURL,
			&a.Published,
			&a.PublishedAt,
			&a.CreatedAt,
			&a.UpdatedAt,
			&a.AuthorFirstName,
			&a.AuthorLastName,
			&a.Categories,
		); err != nil {
			return nil, 0, err
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countWhere, countArgs := filterPredicates(filter, nil)
	countQuery := `SELECT COUNT(DISTINCT a.id) ` + articleJoins + countWhere

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return articles, total, nil
}

func (r *ArticleRepository) ListPublished(ctx context.Context, filter models.ArticleFilter) ([]models.Article, int, error) {
	published := true
	filter.Published = &published
	return r.list(ctx, filter, "a.published_at DESC")
}

func (r *ArticleRepository) ListAdmin(ctx context.Context, filter models.ArticleFilter) ([]models.Article, int, error) {
	return r.list(ctx, filter, "a.created_at DESC")
}

func (r *ArticleRepository) GetBySlug(ctx context.Context, slug string) (models.Article, error) {
	query := `
		SELECT a.id, a.title, a.slug, a.summary, a.content, a.image_url,
		       a.published, a.published_at, a.created_at, a.updated_at,
		       u.first_name, u.last_name,
		       COALESCE(array_agg(DISTINCT ac.name) FILTER (WHERE ac.name IS NOT NULL), '{}') AS categories
	` + articleJoins + `
		WHERE a.slug = $1 AND a.published = TRUE
		GROUP BY a.id, u.first_name, u.last_name
	`

	var a models.Article
	err := r.pool.QueryRow(ctx, query, slug).Scan(
		&a.ID,
		&a.Title,
		&a.Slug,
		&a.Summary,
		&a.Content,
		&a.ImageURL,
		&a.Published,
		&a.PublishedAt,
		&a.CreatedAt,
		&a.UpdatedAt,
		&a.AuthorFirstName,
		&a.AuthorLastName,
		&a.Categories,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Article{}, ErrArticleNotFound
		}
		return models.Article{}, err
	}
	return a, nil
}

func (r *ArticleRepository) GetByID(ctx context.Context, id string) (models.Article, error) {
	query := `
		SELECT a.id, a.title, a.slug, a.summary, a.content, a.image_url,
		       a.author_id, a.published, a.published_at, a.created_at, a.updated_at,
		       u.first_name, u.last_name,
		       COALESCE(array_agg(DISTINCT ac.id) FILTER (WHERE ac.id IS NOT NULL), '{}') AS category_ids,
		       COALESCE(array_agg(DISTINCT ac.name) FILTER (WHERE ac.name IS NOT NULL), '{}') AS categories
	` + articleJoins + `
		WHERE a.id = $1
		GROUP BY a.id, u.first_name, u.last_name
	`

	var a models.Article
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&a.ID,
		&a.Title,
		&a.Slug,
		&a.Summary,
		&a.Content,
		&a.ImageURL,
		&a.AuthorID,
		&a.Published,
		&a.PublishedAt,
		&a.CreatedAt,
		&a.UpdatedAt,
		&a.AuthorFirstName,
		&a.AuthorLastName,
		&a.CategoryIDs,
		&a.Categories,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Article{}, ErrArticleNotFound
		}
		return models.Article{}, err
	}
	return a, nil
}

func (r *ArticleRepository) ListCategories(ctx context.Context) ([]models.ArticleCategory, error) {
	const query = `
		SELECT id, name, description, created_at
		FROM article_categories
		ORDER BY name
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.ArticleCategory
	for rows.Next() {
		var c models.ArticleCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *ArticleRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM articles WHERE slug = $1)`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, slug).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *ArticleRepository) CountBySlugPrefix(ctx context.Context, prefix string) (int, error) {
	const query = `SELECT COUNT(*) FROM articles WHERE slug LIKE $1 || '%'`
	var count int
	if err := r.pool.QueryRow(ctx, query, prefix).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ArticleRepository) Create(ctx context.Context, article *models.Article, categoryIDs []int) error {
	return database.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		const query = `
			INSERT INTO articles (
				id, title, slug, summary, content, image_url, author_id, published,
				published_at, created_at, updated_at
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8,
				CASE WHEN $8 THEN NOW() END, NOW(), NOW()
			)
			RETURNING published_at, created_at, updated_at
		`

		if err := tx.QueryRow(ctx, query,
			article.ID,
			article.Title,
			article.Slug,
			article.Summary,
			article.Content,
			article.ImageURL,
			article.AuthorID,
			article.Published,
		).Scan(&article.PublishedAt, &article.CreatedAt, &article.UpdatedAt); err != nil {
			return err
		}

		return insertCategoryRelations(ctx, tx, article.ID, categoryIDs)
	})
}

func (r *ArticleRepository) Update(ctx context.Context, article *models.Article, categoryIDs []int) error {
	return database.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		// published_at is set once, on the first transition to published
		const query = `
			UPDATE articles
			SET title = $2,
			    summary = $3,
			    content = $4,
			    image_url = $5,
			    published = $6,
			    published_at = CASE WHEN $6 AND published_at IS NULL THEN NOW() ELSE published_at END,
			    updated_at = NOW()
			WHERE id = $1
			RETURNING slug, published_at, updated_at
		`

		err := tx.QueryRow(ctx, query,
			article.ID,
			article.Title,
			article.Summary,
			article.Content,
			article.ImageURL,
			article.Published,
		).Scan(&article.Slug, &article.PublishedAt, &article.UpdatedAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrArticleNotFound
			}
			return err
		}

		if categoryIDs == nil {
			return nil
		}

		if _, err := tx.Exec(ctx,
			`DELETE FROM article_category_relations WHERE article_id = $1`, article.ID); err != nil {
			return err
		}
		return insertCategoryRelations(ctx, tx, article.ID, categoryIDs)
	})
}

func insertCategoryRelations(ctx context.Context, tx pgx.Tx, articleID string, categoryIDs []int) error {
	for _, categoryID := range categoryIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO article_category_relations (article_id, category_id) VALUES ($1, $2)`,
			articleID, categoryID); err != nil {
			return err
		}
	}
	return nil
}

func (r *ArticleRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM articles WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrArticleNotFound
	}
	return nil
}

func (r *ArticleRepository) SetImageURL(ctx context.Context, id string, url string) error {
	const query = `UPDATE articles SET image_url = $2, updated_at = NOW() WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id, url)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrArticleNotFound
	}
	return nil
}
