package models

import "time"

type EmotionCategory struct {
	ID          int
	Name        string
	Description string
	Emotions    []Emotion
}

type Emotion struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// JournalEntry is one emotion logged by a user.
type JournalEntry struct {
	ID           string
	UserID       string
	EmotionID    int
	Intensity    int
	Note         *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	EmotionName  string
	CategoryName string
}

type CategoryCount struct {
	Name  string
	Count int
}

type EmotionCount struct {
	Name     string
	Category string
	Count    int
}

type DailyCategoryCount struct {
	Date     time.Time
	Category string
	Count    int
}

// EmotionStats aggregates a user's journal over a trailing period.
type EmotionStats struct {
	CategoryStats []CategoryCount
	TopEmotions   []EmotionCount
	TimeData      []DailyCategoryCount
}
