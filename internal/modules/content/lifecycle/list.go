package lifecycle

import (
	"fmt"
	"slices"
	"strings"

	"github.com/terravita/core/internal/models"
	"github.com/terravita/core/internal/pkg/pagination"
	"github.com/terravita/core/internal/pkg/response"
	"gorm.io/gorm"
)

// Filters are the listing parameters shared by every content kind. Facet
// values are validated against the schema's allow-lists; invalid names or
// values are ignored, never an error. A nil Status means no status filter
// (admin view); public callers always pass StatusPublished.
type Filters struct {
	Search  string
	Status  *models.ContentStatus
	Facets  map[string]string
	SortBy  string
	SortDir string
}

// counted carries one page row together with the windowed total. Computing
// COUNT(*) OVER() in the same SELECT keeps count and page consistent under
// concurrent writes, unlike a separate count query.
type counted[T any] struct {
	Record     T     `gorm:"embedded"`
	TotalCount int64 `gorm:"column:total_count"`
}

// List returns one page of records plus pagination metadata. All conditions
// AND together; the free-text search ORs its substring match across the
// schema's search columns. Ordering is deterministic: the chosen sort column
// plus an id ASC tie-break.
func (s *Service[T, PT]) List(q pagination.Query, f Filters) ([]T, response.Pagination, error) {
	base := func() *gorm.DB {
		var model T
		tx := s.db.Model(&model)

		if f.Status != nil {
			tx = tx.Where("status = ?", *f.Status)
		}
		if term := strings.TrimSpace(f.Search); term != "" {
			pattern := "%" + strings.ToLower(term) + "%"
			parts := make([]string, 0, len(s.schema.SearchColumns))
			args := make([]interface{}, 0, len(s.schema.SearchColumns))
			for _, col := range s.schema.SearchColumns {
				parts = append(parts, "LOWER("+col+") LIKE ?")
				args = append(args, pattern)
			}
			if len(parts) > 0 {
				tx = tx.Where("("+strings.Join(parts, " OR ")+")", args...)
			}
		}
		for name, value := range f.Facets {
			facet, ok := s.schema.Facets[name]
			if !ok || !slices.Contains(facet.Allowed, value) {
				continue
			}
			tx = tx.Where(facet.Column+" = ?", value)
		}
		return tx
	}

	var rows []counted[T]
	err := base().
		Select(s.schema.Table + ".*, COUNT(*) OVER() AS total_count").
		Order(s.orderClause(f)).
		Offset(q.Offset()).Limit(q.Size).
		Find(&rows).Error
	if err != nil {
		return nil, response.Pagination{}, err
	}

	var total int64
	if len(rows) > 0 {
		total = rows[0].TotalCount
	} else if q.Page > 1 {
		// Past the last page the window yields no rows; fall back to a
		// plain count so the metadata stays truthful.
		if err := base().Count(&total).Error; err != nil {
			return nil, response.Pagination{}, err
		}
	}

	items := make([]T, len(rows))
	for i, r := range rows {
		items[i] = r.Record
	}
	return items, q.Meta(total), nil
}

func (s *Service[T, PT]) orderClause(f Filters) string {
	col, ok := s.schema.SortFields[f.SortBy]
	dir := "ASC"
	if !ok {
		// default: most recently created first
		col, dir = "created_at", "DESC"
	}
	switch strings.ToLower(f.SortDir) {
	case "asc":
		dir = "ASC"
	case "desc":
		dir = "DESC"
	}
	return fmt.Sprintf("%s %s, id ASC", col, dir)
}
