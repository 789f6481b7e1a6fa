package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"cesizen/api/internal/ids"
	"cesizen/api/internal/models"
	"cesizen/api/internal/repository"
)

const (
	taxonomyCacheKey = "emotions:taxonomy"
	taxonomyCacheTTL = time.Hour
)

type EmotionService struct {
	store repository.EmotionStore
	cache *redis.Client
	log   zerolog.Logger
}

func NewEmotionService(store repository.EmotionStore, cache *redis.Client, log zerolog.Logger) *EmotionService {
	return &EmotionService{store: store, cache: cache, log: log}
}

// Taxonomy returns the read-only emotion reference data, cached in redis.
// Cache failures degrade to a database read.
func (s *EmotionService) Taxonomy(ctx context.Context) ([]models.EmotionCategory, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, taxonomyCacheKey).Bytes(); err == nil {
			var categories []models.EmotionCategory
			if err := json.Unmarshal(raw, &categories); err == nil {
				return categories, nil
			}
		}
	}

	categories, err := s.store.Taxonomy(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(categories); err == nil {
			if err := s.cache.Set(ctx, taxonomyCacheKey, raw, taxonomyCacheTTL).Err(); err != nil {
				s.log.Warn().Err(err).Msg("cache emotion taxonomy failed")
			}
		}
	}

	return categories, nil
}

func (s *EmotionService) List(ctx context.Context, userID string, start, end *time.Time) ([]models.JournalEntry, error) {
	return s.store.ListByUser(ctx, userID, start, end)
}

func (s *EmotionService) Add(ctx context.Context, userID string, emotionID, intensity int, note *string) (models.JournalEntry, error) {
	entry := models.JournalEntry{
		ID:        ids.New(),
		UserID:    userID,
		EmotionID: emotionID,
		Intensity: intensity,
		Note:      note,
	}
	if err := s.store.CreateEntry(ctx, &entry); err != nil {
		return models.JournalEntry{}, err
	}
	return entry, nil
}

func (s *EmotionService) Update(ctx context.Context, id, userID string, intensity int, note *string) (models.JournalEntry, error) {
	return s.store.UpdateEntry(ctx, id, userID, intensity, note)
}

func (s *EmotionService) Delete(ctx context.Context, id, userID string) error {
	return s.store.DeleteEntry(ctx, id, userID)
}

// PeriodStart maps a period keyword to the start of its trailing
// interval; anything unrecognized falls back to a week.
func PeriodStart(period string, now time.Time) time.Time {
	switch period {
	case "month":
		return now.AddDate(0, -1, 0)
	case "year":
		return now.AddDate(-1, 0, 0)
	default:
		return now.AddDate(0, 0, -7)
	}
}

func (s *EmotionService) Stats(ctx context.Context, userID string, period string) (models.EmotionStats, error) {
	since := PeriodStart(period, time.Now())

	categoryStats, err := s.store.CategoryCounts(ctx, userID, since)
	if err != nil {
		return models.EmotionStats{}, err
	}
	topEmotions, err := s.store.TopEmotions(ctx, userID, since, 10)
	if err != nil {
		return models.EmotionStats{}, err
	}
	timeData, err := s.store.DailyCounts(ctx, userID, since)
	if err != nil {
		return models.EmotionStats{}, err
	}

	return models.EmotionStats{
		CategoryStats: categoryStats,
		TopEmotions:   topEmotions,
		TimeData:      timeData,
	}, nil
}
