package news

import (
	"time"

	"github.com/terravita/core/internal/models"
	"github.com/terravita/core/internal/modules/processing/markdown"
)

// CreateNewsDTO is the request body for creating an article.
type CreateNewsDTO struct {
	Slug            string                `json:"slug"  binding:"required"`
	Title           string                `json:"title" binding:"required"`
	Summary         string                `json:"summary"`
	Body            string                `json:"body"`
	Category        string                `json:"category"`
	Tags            models.StringSlice    `json:"tags"`
	MainImage       *models.ImageRef      `json:"mainImage"`
	MetaTitle       string                `json:"metaTitle"`
	MetaDescription string                `json:"metaDescription"`
	Status          *models.ContentStatus `json:"status"`
}

// UpdateNewsDTO is the request body for patching published fields directly
// (all fields optional).
type UpdateNewsDTO struct {
	Slug            *string               `json:"slug"`
	Title           *string               `json:"title"`
	Summary         *string               `json:"summary"`
	Body            *string               `json:"body"`
	Category        *string               `json:"category"`
	Tags            models.StringSlice    `json:"tags"`
	MainImage       *models.ImageRef      `json:"mainImage"`
	MetaTitle       *string               `json:"metaTitle"`
	MetaDescription *string               `json:"metaDescription"`
	Status          *models.ContentStatus `json:"status"`
}

// ListQuery holds the news listing filters.
type ListQuery struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	SortBy   string `form:"sortBy"`
	SortDir  string `form:"sortDir"`
	Status   string `form:"status"` // admin listing only
}

type publicNewsItem struct {
	ID          uint       `json:"id"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Summary     string     `json:"summary"`
	Category    string     `json:"category"`
	Tags        []string   `json:"tags"`
	MainImage   string     `json:"mainImage"`
	PublishedAt *time.Time `json:"publishedAt"`
}

type publicNewsDetail struct {
	publicNewsItem
	Body            string `json:"body"`
	Author          string `json:"author"`
	MetaTitle       string `json:"metaTitle"`
	MetaDescription string `json:"metaDescription"`
}

func toPublicItem(m *models.NewsModel) publicNewsItem {
	tags := []string(m.Tags)
	if tags == nil {
		tags = []string{}
	}
	var mainImage string
	if m.MainImage != nil {
		mainImage = m.MainImage.URL
	}
	return publicNewsItem{
		ID:          m.ID,
		Slug:        m.Slug,
		Title:       m.Title,
		Summary:     m.Summary,
		Category:    m.Category,
		Tags:        tags,
		MainImage:   mainImage,
		PublishedAt: m.PublishedAt,
	}
}

func toPublicDetail(m *models.NewsModel, authorName string) publicNewsDetail {
	return publicNewsDetail{
		publicNewsItem:  toPublicItem(m),
		Body:            markdown.Render(m.Body),
		Author:          authorName,
		MetaTitle:       m.MetaTitle,
		MetaDescription: m.MetaDescription,
	}
}
