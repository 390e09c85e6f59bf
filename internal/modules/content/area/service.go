package area

import (
	"time"

	"github.com/terravita/core/internal/models"
	"github.com/terravita/core/internal/modules/content/lifecycle"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	Designations = []string{"national_park", "nature_reserve", "wildlife_sanctuary", "marine_protected_area", "ramsar_site", "biosphere_reserve"}

	Regions = []string{"nearctic", "neotropical", "palearctic", "afrotropical", "indomalayan", "australasian", "oceanian", "antarctic"}
)

func schema() lifecycle.Schema {
	return lifecycle.Schema{
		Kind:  "areas",
		Table: "protected_areas",
		DraftFields: map[string]lifecycle.Field{
			"name":            {Column: "name"},
			"designation":     {Column: "designation"},
			"region":          {Column: "region"},
			"areaKm2":         {Column: "area_km2"},
			"description":     {Column: "description"},
			"visitorInfo":     {Column: "visitor_info"},
			"ecosystems":      {Column: "ecosystems", Structured: true},
			"mainImage":       {Column: "main_image", Structured: true},
			"gallery":         {Column: "gallery", Structured: true},
			"metaTitle":       {Column: "meta_title"},
			"metaDescription": {Column: "meta_description"},
		},
		SearchColumns: []string{"name", "region"},
		Facets: map[string]lifecycle.Facet{
			"designation": {Column: "designation", Allowed: Designations},
			"region":      {Column: "region", Allowed: Regions},
		},
		SortFields: map[string]string{
			"name":        "name",
			"area":        "area_km2",
			"publishedAt": "published_at",
			"createdAt":   "created_at",
		},
		DefaultPageSize: 12,
	}
}

// Service handles protected-area business logic on top of the generic
// lifecycle.
type Service struct {
	*lifecycle.Service[models.ProtectedAreaModel, *models.ProtectedAreaModel]
}

func NewService(db *gorm.DB, opts lifecycle.Options, log *zap.Logger) *Service {
	return &Service{lifecycle.New[models.ProtectedAreaModel](db, schema(), opts, log)}
}

// Create inserts a new protected area.
func (s *Service) Create(dto *CreateAreaDTO) (*models.ProtectedAreaModel, error) {
	if taken, err := s.slugTaken(dto.Slug, 0); err != nil {
		return nil, err
	} else if taken {
		return nil, lifecycle.ErrSlugTaken
	}

	status := models.StatusDraft
	if dto.Status != nil && dto.Status.Valid() {
		status = *dto.Status
	}

	rec := models.ProtectedAreaModel{
		ContentBase:     models.ContentBase{Slug: dto.Slug, Status: status},
		Name:            dto.Name,
		Designation:     dto.Designation,
		Region:          dto.Region,
		AreaKm2:         dto.AreaKm2,
		Ecosystems:      dto.Ecosystems,
		Description:     dto.Description,
		VisitorInfo:     dto.VisitorInfo,
		MainImage:       dto.MainImage,
		Gallery:         dto.Gallery,
		MetaTitle:       dto.MetaTitle,
		MetaDescription: dto.MetaDescription,
	}
	if status == models.StatusPublished {
		now := time.Now()
		rec.PublishedAt = &now
	}

	if err := s.DB().Create(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

// Update patches the published fields directly, bypassing the draft overlay.
func (s *Service) Update(id uint, dto *UpdateAreaDTO) (*models.ProtectedAreaModel, error) {
	rec, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, lifecycle.ErrNotFound
	}

	updates := map[string]interface{}{}
	if dto.Slug != nil && *dto.Slug != rec.Slug {
		if taken, err := s.slugTaken(*dto.Slug, id); err != nil {
			return nil, err
		} else if taken {
			return nil, lifecycle.ErrSlugTaken
		}
		updates["slug"] = *dto.Slug
	}
	if dto.Name != nil {
		updates["name"] = *dto.Name
	}
	if dto.Designation != nil {
		updates["designation"] = *dto.Designation
	}
	if dto.Region != nil {
		updates["region"] = *dto.Region
	}
	if dto.AreaKm2 != nil {
		updates["area_km2"] = *dto.AreaKm2
	}
	if dto.Ecosystems != nil {
		updates["ecosystems"] = models.StringSlice(dto.Ecosystems)
	}
	if dto.Description != nil {
		updates["description"] = *dto.Description
	}
	if dto.VisitorInfo != nil {
		updates["visitor_info"] = *dto.VisitorInfo
	}
	if dto.MainImage != nil {
		updates["main_image"] = dto.MainImage
	}
	if dto.Gallery != nil {
		updates["gallery"] = models.ImageList(dto.Gallery)
	}
	if dto.MetaTitle != nil {
		updates["meta_title"] = *dto.MetaTitle
	}
	if dto.MetaDescription != nil {
		updates["meta_description"] = *dto.MetaDescription
	}
	if dto.Status != nil && dto.Status.Valid() {
		updates["status"] = *dto.Status
	}

	if len(updates) == 0 {
		return rec, nil
	}
	if err := s.DB().Model(rec).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.FindByID(id)
}

// Delete soft-deletes a protected area.
func (s *Service) Delete(id uint) error {
	res := s.DB().Delete(&models.ProtectedAreaModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return lifecycle.ErrNotFound
	}
	return nil
}

func (s *Service) slugTaken(slug string, excludeID uint) (bool, error) {
	var count int64
	tx := s.DB().Model(&models.ProtectedAreaModel{}).Where("slug = ?", slug)
	if excludeID != 0 {
		tx = tx.Where("id <> ?", excludeID)
	}
	if err := tx.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
