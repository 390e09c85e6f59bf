package species

import (
	"time"

	"github.com/terravita/core/internal/models"
	"github.com/terravita/core/internal/modules/content/lifecycle"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Default facet vocabularies. Values outside these lists are ignored by the
// query engine rather than rejected.
var (
	Categories = []string{"mammal", "bird", "reptile", "amphibian", "fish", "invertebrate", "flora"}

	// IUCN Red List codes.
	ConservationStatuses = []string{"LC", "NT", "VU", "EN", "CR", "EW", "EX", "DD"}

	// Biogeographic realms.
	Regions = []string{"nearctic", "neotropical", "palearctic", "afrotropical", "indomalayan", "australasian", "oceanian", "antarctic"}
)

// schema describes the species kind for the generic lifecycle service.
func schema() lifecycle.Schema {
	return lifecycle.Schema{
		Kind:  "species",
		Table: "species",
		DraftFields: map[string]lifecycle.Field{
			"commonName":         {Column: "common_name"},
			"scientificName":     {Column: "scientific_name"},
			"family":             {Column: "family"},
			"category":           {Column: "category"},
			"conservationStatus": {Column: "conservation_status"},
			"region":             {Column: "region"},
			"description":        {Column: "description"},
			"habitat":            {Column: "habitat"},
			"threats":            {Column: "threats", Structured: true},
			"mainImage":          {Column: "main_image", Structured: true},
			"gallery":            {Column: "gallery", Structured: true},
			"metaTitle":          {Column: "meta_title"},
			"metaDescription":    {Column: "meta_description"},
		},
		SearchColumns: []string{"common_name", "scientific_name", "family"},
		Facets: map[string]lifecycle.Facet{
			"category":           {Column: "category", Allowed: Categories},
			"conservationStatus": {Column: "conservation_status", Allowed: ConservationStatuses},
			"region":             {Column: "region", Allowed: Regions},
		},
		SortFields: map[string]string{
			"name":           "common_name",
			"scientificName": "scientific_name",
			"publishedAt":    "published_at",
			"createdAt":      "created_at",
		},
		DefaultPageSize: 20,
	}
}

// Service handles species business logic on top of the generic lifecycle.
type Service struct {
	*lifecycle.Service[models.SpeciesModel, *models.SpeciesModel]
}

func NewService(db *gorm.DB, opts lifecycle.Options, log *zap.Logger) *Service {
	return &Service{lifecycle.New[models.SpeciesModel](db, schema(), opts, log)}
}

// Create inserts a new species profile.
func (s *Service) Create(dto *CreateSpeciesDTO) (*models.SpeciesModel, error) {
	if taken, err := s.slugTaken(dto.Slug, 0); err != nil {
		return nil, err
	} else if taken {
		return nil, lifecycle.ErrSlugTaken
	}

	status := models.StatusDraft
	if dto.Status != nil && dto.Status.Valid() {
		status = *dto.Status
	}

	rec := models.SpeciesModel{
		ContentBase:        models.ContentBase{Slug: dto.Slug, Status: status},
		CommonName:         dto.CommonName,
		ScientificName:     dto.ScientificName,
		Family:             dto.Family,
		Category:           dto.Category,
		ConservationStatus: dto.ConservationStatus,
		Region:             dto.Region,
		Description:        dto.Description,
		Habitat:            dto.Habitat,
		Threats:            dto.Threats,
		MainImage:          dto.MainImage,
		Gallery:            dto.Gallery,
		MetaTitle:          dto.MetaTitle,
		MetaDescription:    dto.MetaDescription,
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
// Editors use this for corrections that should go live immediately.
func (s *Service) Update(id uint, dto *UpdateSpeciesDTO) (*models.SpeciesModel, error) {
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
	if dto.CommonName != nil {
		updates["common_name"] = *dto.CommonName
	}
	if dto.ScientificName != nil {
		updates["scientific_name"] = *dto.ScientificName
	}
	if dto.Family != nil {
		updates["family"] = *dto.Family
	}
	if dto.Category != nil {
		updates["category"] = *dto.Category
	}
	if dto.ConservationStatus != nil {
		updates["conservation_status"] = *dto.ConservationStatus
	}
	if dto.Region != nil {
		updates["region"] = *dto.Region
	}
	if dto.Description != nil {
		updates["description"] = *dto.Description
	}
	if dto.Habitat != nil {
		updates["habitat"] = *dto.Habitat
	}
	if dto.Threats != nil {
		updates["threats"] = models.StringSlice(dto.Threats)
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

// Delete soft-deletes a species profile.
func (s *Service) Delete(id uint) error {
	res := s.DB().Delete(&models.SpeciesModel{}, "id = ?", id)
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
	tx := s.DB().Model(&models.SpeciesModel{}).Where("slug = ?", slug)
	if excludeID != 0 {
		tx = tx.Where("id <> ?", excludeID)
	}
	if err := tx.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
