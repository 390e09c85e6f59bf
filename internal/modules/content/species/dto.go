package species

import (
	"time"

	"github.com/terravita/core/internal/models"
	"github.com/terravita/core/internal/modules/processing/markdown"
)

// CreateSpeciesDTO is the request body for creating a species profile.
type CreateSpeciesDTO struct {
	Slug               string                `json:"slug"               binding:"required"`
	CommonName         string                `json:"commonName"         binding:"required"`
	ScientificName     string                `json:"scientificName"     binding:"required"`
	Family             string                `json:"family"`
	Category           string                `json:"category"`
	ConservationStatus string                `json:"conservationStatus"`
	Region             string                `json:"region"`
	Description        string                `json:"description"`
	Habitat            string                `json:"habitat"`
	Threats            models.StringSlice    `json:"threats"`
	MainImage          *models.ImageRef      `json:"mainImage"`
	Gallery            models.ImageList      `json:"gallery"`
	MetaTitle          string                `json:"metaTitle"`
	MetaDescription    string                `json:"metaDescription"`
	Status             *models.ContentStatus `json:"status"`
}

// UpdateSpeciesDTO is the request body for patching published fields
// directly (all fields optional).
type UpdateSpeciesDTO struct {
	Slug               *string               `json:"slug"`
	CommonName         *string               `json:"commonName"`
	ScientificName     *string               `json:"scientificName"`
	Family             *string               `json:"family"`
	Category           *string               `json:"category"`
	ConservationStatus *string               `json:"conservationStatus"`
	Region             *string               `json:"region"`
	Description        *string               `json:"description"`
	Habitat            *string               `json:"habitat"`
	Threats            models.StringSlice    `json:"threats"`
	MainImage          *models.ImageRef      `json:"mainImage"`
	Gallery            models.ImageList      `json:"gallery"`
	MetaTitle          *string               `json:"metaTitle"`
	MetaDescription    *string               `json:"metaDescription"`
	Status             *models.ContentStatus `json:"status"`
}

// ListQuery holds the species listing filters.
type ListQuery struct {
	Search             string `form:"search"`
	Category           string `form:"category"`
	ConservationStatus string `form:"conservationStatus"`
	Region             string `form:"region"`
	SortBy             string `form:"sortBy"`
	SortDir            string `form:"sortDir"`
	Status             string `form:"status"` // admin listing only
}

// publicSpeciesItem is the public listing shape: published fields only, the
// main image flattened to its URL.
type publicSpeciesItem struct {
	ID                 uint       `json:"id"`
	Slug               string     `json:"slug"`
	CommonName         string     `json:"commonName"`
	ScientificName     string     `json:"scientificName"`
	Family             string     `json:"family"`
	Category           string     `json:"category"`
	ConservationStatus string     `json:"conservationStatus"`
	Region             string     `json:"region"`
	MainImage          string     `json:"mainImage"`
	PublishedAt        *time.Time `json:"publishedAt"`
}

// publicSpeciesDetail adds the rendered body fields for the detail endpoints.
type publicSpeciesDetail struct {
	publicSpeciesItem
	Description     string         `json:"description"`
	Habitat         string         `json:"habitat"`
	Threats         []string       `json:"threats"`
	Gallery         []models.Image `json:"gallery"`
	MetaTitle       string         `json:"metaTitle"`
	MetaDescription string         `json:"metaDescription"`
}

func toPublicItem(m *models.SpeciesModel) publicSpeciesItem {
	return publicSpeciesItem{
		ID:                 m.ID,
		Slug:               m.Slug,
		CommonName:         m.CommonName,
		ScientificName:     m.ScientificName,
		Family:             m.Family,
		Category:           m.Category,
		ConservationStatus: m.ConservationStatus,
		Region:             m.Region,
		MainImage:          imageURL(m.MainImage),
		PublishedAt:        m.PublishedAt,
	}
}

func toPublicDetail(m *models.SpeciesModel) publicSpeciesDetail {
	threats := []string(m.Threats)
	if threats == nil {
		threats = []string{}
	}
	gallery := []models.Image(m.Gallery)
	if gallery == nil {
		gallery = []models.Image{}
	}
	return publicSpeciesDetail{
		publicSpeciesItem: toPublicItem(m),
		Description:       markdown.Render(m.Description),
		Habitat:           markdown.Render(m.Habitat),
		Threats:           threats,
		Gallery:           gallery,
		MetaTitle:         m.MetaTitle,
		MetaDescription:   m.MetaDescription,
	}
}

func imageURL(ref *models.ImageRef) string {
	if ref == nil {
		return ""
	}
	return ref.URL
}
