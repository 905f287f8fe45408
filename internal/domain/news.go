package domain

import "time"

type NewsStatus string

const (
	NewsDraft     NewsStatus = "DRAFT"
	NewsPublished NewsStatus = "PUBLISHED"
	NewsArchived  NewsStatus = "ARCHIVED"
)

type Author struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

type News struct {
	ID          int64       `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Content     string      `json:"content"`
	Links       []string    `json:"links"`
	Status      NewsStatus  `json:"status"` // DRAFT | PUBLISHED | ARCHIVED
	NewsTypeID  int64       `json:"newsTypeId"`
	AuthorID    int64       `json:"authorId"`
	PublishedAt *time.Time  `json:"publishedAt,omitempty"`
	NewsType    *NewsType   `json:"newsType,omitempty"`
	Author      *Author     `json:"author,omitempty"`
	Tags        []Tag       `json:"tags,omitempty"`
	MediaFiles  []MediaFile `json:"mediaFiles,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

func (n News) Key() int64 { return n.ID }

type NewsType struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	NewsCount   int       `json:"newsCount,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (t NewsType) Key() int64 { return t.ID }

type Tag struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color,omitempty"`
	NewsCount int       `json:"newsCount,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (t Tag) Key() int64 { return t.ID }
