package area

import (
	"time"

	"github.com/terravita/core/internal/models"
	"github.com/terravita/core/internal/modules/processing/markdown"
)

// CreateAreaDTO is the request body for creating a protected area.
type CreateAreaDTO struct {
	Slug            string                `json:"slug" binding:"required"`
	Name            string                `json:"name" binding:"required"`
	Designation     string                `json:"designation"`
	Region          string                `json:"region"`
	AreaKm2         *float64              `json:"areaKm2"`
	Ecosystems      models.StringSlice    `json:"ecosystems"`
	Description     string                `json:"description"`
	VisitorInfo     string                `json:"visitorInfo"`
	MainImage       *models.ImageRef      `json:"mainImage"`
	Gallery         models.ImageList      `json:"gallery"`
	MetaTitle       string                `json:"metaTitle"`
	MetaDescription string                `json:"metaDescription"`
	Status          *models.ContentStatus `json:"status"`
}

// UpdateAreaDTO is the request body for patching published fields directly
// (all fields optional).
type UpdateAreaDTO struct {
	Slug            *string               `json:"slug"`
	Name            *string               `json:"name"`
	Designation     *string               `json:"designation"`
	Region          *string               `json:"region"`
	AreaKm2         *float64              `json:"areaKm2"`
	Ecosystems      models.StringSlice    `json:"ecosystems"`
	Description     *string               `json:"description"`
	VisitorInfo     *string               `json:"visitorInfo"`
	MainImage       *models.ImageRef      `json:"mainImage"`
	Gallery         models.ImageList      `json:"gallery"`
	MetaTitle       *string               `json:"metaTitle"`
	MetaDescription *string               `json:"metaDescription"`
	Status          *models.ContentStatus `json:"status"`
}

// ListQuery holds the protected-area listing filters.
type ListQuery struct {
	Search      string `form:"search"`
	Designation string `form:"designation"`
	Region      string `form:"region"`
	SortBy      string `form:"sortBy"`
	SortDir     string `form:"sortDir"`
	Status      string `form:"status"` // admin listing only
}

type publicAreaItem struct {
	ID          uint       `json:"id"`
	Slug        string     `json:"slug"`
	Name        string     `json:"name"`
	Designation string     `json:"designation"`
	Region      string     `json:"region"`
	AreaKm2     *float64   `json:"areaKm2"`
	MainImage   string     `json:"mainImage"`
	PublishedAt *time.Time `json:"publishedAt"`
}

type publicAreaDetail struct {
	publicAreaItem
	Ecosystems      []string       `json:"ecosystems"`
	Description     string         `json:"description"`
	VisitorInfo     string         `json:"visitorInfo"`
	Gallery         []models.Image `json:"gallery"`
	MetaTitle       string         `json:"metaTitle"`
	MetaDescription string         `json:"metaDescription"`
}

func toPublicItem(m *models.ProtectedAreaModel) publicAreaItem {
	var mainImage string
	if m.MainImage != nil {
		mainImage = m.MainImage.URL
	}
	return publicAreaItem{
		ID:          m.ID,
		Slug:        m.Slug,
		Name:        m.Name,
		Designation: m.Designation,
		Region:      m.Region,
		AreaKm2:     m.AreaKm2,
		MainImage:   mainImage,
		PublishedAt: m.PublishedAt,
	}
}

func toPublicDetail(m *models.ProtectedAreaModel) publicAreaDetail {
	ecosystems := []string(m.Ecosystems)
	if ecosystems == nil {
		ecosystems = []string{}
	}
	gallery := []models.Image(m.Gallery)
	if gallery == nil {
		gallery = []models.Image{}
	}
	return publicAreaDetail{
		publicAreaItem:  toPublicItem(m),
		Ecosystems:      ecosystems,
		Description:     markdown.Render(m.Description),
		VisitorInfo:     markdown.Render(m.VisitorInfo),
		Gallery:         gallery,
		MetaTitle:       m.MetaTitle,
		MetaDescription: m.MetaDescription,
	}
}
