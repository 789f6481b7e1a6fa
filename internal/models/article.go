package models

import "time"

type Article struct {
	ID          string
	Title       string
	Slug        string
	Summary     string
	Content     string
	ImageURL    *string
	AuthorID    *string
	Published   bool
	PublishedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	AuthorFirstName *string
	AuthorLastName  *string
	Categories      []string
	CategoryIDs     []int
}

type ArticleCategory struct {
	ID          int
	Name        string
	Description string
	CreatedAt   time.Time
}

// ArticleFilter narrows public and admin listings. Published is a tri-state:
// nil means no publication filter (admin listing only).
type ArticleFilter struct {
	Category  string
	Search    string
	Published *bool
	Limit     int
	Offset    int
}
