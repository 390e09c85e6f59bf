package news

import (
	"time"

	"github.com/terravita/core/internal/models"
	"github.com/terravita/core/internal/modules/content/lifecycle"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Categories = []string{"conservation", "research", "events", "press", "education"}

func schema() lifecycle.Schema {
	return lifecycle.Schema{
		Kind:  "news",
		Table: "news",
		DraftFields: map[string]lifecycle.Field{
			"title":           {Column: "title"},
			"summary":         {Column: "summary"},
			"body":            {Column: "body"},
			"category":        {Column: "category"},
			"tags":            {Column: "tags", Structured: true},
			"mainImage":       {Column: "main_image", Structured: true},
			"metaTitle":       {Column: "meta_title"},
			"metaDescription": {Column: "meta_description"},
		},
		SearchColumns: []string{"title", "summary"},
		Facets: map[string]lifecycle.Facet{
			"category": {Column: "category", Allowed: Categories},
		},
		SortFields: map[string]string{
			"title":       "title",
			"publishedAt": "published_at",
			"createdAt":   "created_at",
		},
		DefaultPageSize: 10,
	}
}

// Service handles news business logic on top of the generic lifecycle.
type Service struct {
	*lifecycle.Service[models.NewsModel, *models.NewsModel]
}

func NewService(db *gorm.DB, opts lifecycle.Options, log *zap.Logger) *Service {
	return &Service{lifecycle.New[models.NewsModel](db, schema(), opts, log)}
}

// Create inserts a new article. authorID is the creating editor.
func (s *Service) Create(dto *CreateNewsDTO, authorID uint) (*models.NewsModel, error) {
	if taken, err := s.slugTaken(dto.Slug, 0); err != nil {
		return nil, err
	} else if taken {
		return nil, lifecycle.ErrSlugTaken
	}

	status := models.StatusDraft
	if dto.Status != nil && dto.Status.Valid() {
		status = *dto.Status
	}

	rec := models.NewsModel{
		ContentBase:     models.ContentBase{Slug: dto.Slug, Status: status},
		Title:           dto.Title,
		Summary:         dto.Summary,
		Body:            dto.Body,
		Category:        dto.Category,
		Tags:            dto.Tags,
		MainImage:       dto.MainImage,
		MetaTitle:       dto.MetaTitle,
		MetaDescription: dto.MetaDescription,
	}
	if authorID != 0 {
		rec.AuthorID = &authorID
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
func (s *Service) Update(id uint, dto *UpdateNewsDTO) (*models.NewsModel, error) {
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
	if dto.Title != nil {
		updates["title"] = *dto.Title
	}
	if dto.Summary != nil {
		updates["summary"] = *dto.Summary
	}
	if dto.Body != nil {
		updates["body"] = *dto.Body
	}
	if dto.Category != nil {
		updates["category"] = *dto.Category
	}
	if dto.Tags != nil {
		updates["tags"] = models.StringSlice(dto.Tags)
	}
	if dto.MainImage != nil {
		updates["main_image"] = dto.MainImage
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

// Delete soft-deletes an article.
func (s *Service) Delete(id uint) error {
	res := s.DB().Delete(&models.NewsModel{}, "id = ?", id)
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
	tx := s.DB().Model(&models.NewsModel{}).Where("slug = ?", slug)
	if excludeID != 0 {
		tx = tx.Where("id <> ?", excludeID)
	}
	if err := tx.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
