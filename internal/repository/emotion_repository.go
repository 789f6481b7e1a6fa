package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"cesizen/api/internal/models"
)

var ErrEntryNotFound = errors.New("journal entry not found")

type EmotionRepository struct {
	pool *pgxpool.Pool
}

func NewEmotionRepository(pool *pgxpool.Pool) *EmotionRepository {
	return &EmotionRepository{pool: pool}
}

func (r *EmotionRepository) Taxonomy(ctx context.Context) ([]models.EmotionCategory, error) {
	const query = `
		SELECT ec.id, ec.name, ec.description,
		       COALESCE(json_agg(json_build_object('id', e.id, 'name', e.name) ORDER BY e.id)
		                FILTER (WHERE e.id IS NOT NULL), '[]') AS emotions
		FROM emotion_categories ec
		LEFT JOIN emotions e ON e.category_id = ec.id
		GROUP BY ec.id, ec.name
		ORDER BY ec.name
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.EmotionCategory
	for rows.Next() {
		var c models.EmotionCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Emotions); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *EmotionRepository) ListByUser(ctx context.Context, userID string, start, end *time.Time) ([]models.JournalEntry, error) {
	query := `
		SELECT ue.id, ue.user_id, ue.emotion_id, ue.intensity, ue.note,
		       ue.created_at, ue.updated_at,
		       e.name AS emotion_name, ec.name AS category_name
		FROM user_emotions ue
		JOIN emotions e ON e.id = ue.emotion_id
		JOIN emotion_categories ec ON ec.id = e.category_id
		WHERE ue.user_id = $1
	`
	args := []any{userID}

	if start != nil && end != nil {
		query += ` AND ue.created_at BETWEEN $2 AND $3`
		args = append(args, *start, *end)
	}
	query += ` ORDER BY ue.created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.JournalEntry
	for rows.Next() {
		var e models.JournalEntry
		if err := rows.Scan(
			&e.ID,
			&e.UserID,
			&e.EmotionID,
			&e.Intensity,
			&e.Note,
			&e.CreatedAt,
			&e.UpdatedAt,
			&e.EmotionName,
			&e.CategoryName,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *EmotionRepository) CreateEntry(ctx context.Context, entry *models.JournalEntry) error {
	const query = `
		INSERT INTO user_emotions (id, user_id, emotion_id, intensity, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	return r.pool.QueryRow(ctx, query,
		entry.ID,
		entry.UserID,
		entry.EmotionID,
		entry.Intensity,
		entry.Note,
	).Scan(&entry.CreatedAt, &entry.UpdatedAt)
}

func (r *EmotionRepository) UpdateEntry(ctx context.Context, id, userID string, intensity int, note *string) (models.JournalEntry, error) {
	const query = `
		UPDATE user_emotions
		SET intensity = $3, note = $4, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, emotion_id, intensity, note, created_at, updated_at
	`

	var e models.JournalEntry
	err := r.pool.QueryRow(ctx, query, id, userID, intensity, note).Scan(
		&e.ID,
		&e.UserID,
		&e.EmotionID,
		&e.Intensity,
		&e.Note,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.JournalEntry{}, ErrEntryNotFound
		}
		return models.JournalEntry{}, err
	}
	return e, nil
}

func (r *EmotionRepository) DeleteEntry(ctx context.Context, id, userID string) error {
	const query = `DELETE FROM user_emotions WHERE id = $1 AND user_id = $2`
	cmd, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrEntryNotFound
	}
	return nil
}

func (r *EmotionRepository) CategoryCounts(ctx context.Context, userID string, since time.Time) ([]models.CategoryCount, error) {
	const query = `
		SELECT ec.name, COUNT(*) AS count
		FROM user_emotions ue
		JOIN emotions e ON e.id = ue.emotion_id
		JOIN emotion_categories ec ON ec.id = e.category_id
		WHERE ue.user_id = $1 AND ue.created_at > $2
		GROUP BY ec.name
		ORDER BY count DESC
	`

	rows, err := r.pool.Query(ctx, query, userID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []models.CategoryCount
	for rows.Next() {
		var c models.CategoryCount
		if err := rows.Scan(&c.Name, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

func (r *EmotionRepository) TopEmotions(ctx context.Context, userID string, since time.Time, limit int) ([]models.EmotionCount, error) {
	const query = `
		SELECT e.name, ec.name AS category, COUNT(*) AS count
		FROM user_emotions ue
		JOIN emotions e ON e.id = ue.emotion_id
		JOIN emotion_categories ec ON ec.id = e.category_id
		WHERE ue.user_id = $1 AND ue.created_at > $2
		GROUP BY e.name, ec.name
		ORDER BY count DESC
		LIMIT $3
	`

	rows, err := r.pool.Query(ctx, query, userID, since, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []models.EmotionCount
	for rows.Next() {
		var c models.EmotionCount
		if err := rows.Scan(&c.Name, &c.Category, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

func (r *EmotionRepository) DailyCounts(ctx context.Context, userID string, since time.Time) ([]models.DailyCategoryCount, error) {
	const query = `
		SELECT DATE_TRUNC('day', ue.created_at) AS date,
		       ec.name AS category,
		       COUNT(*) AS count
		FROM user_emotions ue
		JOIN emotions e ON e.id = ue.emotion_id
		JOIN emotion_categories ec ON ec.id = e.category_id
		WHERE ue.user_id = $1 AND ue.created_at > $2
		GROUP BY DATE_TRUNC('day', ue.created_at), ec.name
		ORDER BY date ASC
	`

	rows, err := r.pool.Query(ctx, query, userID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []models.DailyCategoryCount
	for rows.Next() {
		var c models.DailyCategoryCount
		if err := rows.Scan(&c.Date, &c.Category, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
