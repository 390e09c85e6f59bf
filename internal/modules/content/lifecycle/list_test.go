package lifecycle

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terravita/core/internal/models"
	"github.com/terravita/core/internal/pkg/pagination"
)

func seedMany(t *testing.T, svc *Service[models.SpeciesModel, *models.SpeciesModel], n int, status models.ContentStatus) {
	t.Helper()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		rec := models.SpeciesModel{
			ContentBase: models.ContentBase{
				Base:   models.Base{CreatedAt: base.Add(time.Duration(i) * time.Hour)},
				Slug:   fmt.Sprintf("species-%03d", i),
				Status: status,
			},
			CommonName:     fmt.Sprintf("Species %03d", i),
			ScientificName: fmt.Sprintf("Specius exemplaris %03d", i),
			Category:       "mammal",
		}
		require.NoError(t, svc.DB().Create(&rec).Error)
	}
}

func TestListPaginationMetadata(t *testing.T) {
	svc := setupService(t, Options{})
	seedMany(t, svc, 25, models.StatusPublished)

	published := models.StatusPublished
	_, pag, err := svc.List(pagination.Query{Page: 1, Size: 10}, Filters{Status: &published})
	require.NoError(t, err)

	assert.Equal(t, int64(25), pag.Total)
	assert.Equal(t, 3, pag.TotalPages)
	assert.Equal(t, 1, pag.Page)
	assert.Equal(t, 10, pag.PageSize)
}

func TestListEmptyResultHasZeroTotalPages(t *testing.T) {
	svc := setupService(t, Options{})

	published := models.StatusPublished
	items, pag, err := svc.List(pagination.Query{Page: 1, Size: 10}, Filters{Status: &published})
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, int64(0), pag.Total)
	assert.Equal(t, 0, pag.TotalPages)
}

func TestListConcatenatedPagesCoverAllRowsOnce(t *testing.T) {
	svc := setupService(t, Options{})
	seedMany(t, svc, 23, models.StatusPublished)

	published := models.StatusPublished
	seen := map[uint]bool{}
	for page := 1; page <= 3; page++ {
		items, pag, err := svc.List(pagination.Query{Page: page, Size: 10},
			Filters{Status: &published, SortBy: "name", SortDir: "asc"})
		require.NoError(t, err)
		assert.Equal(t, int64(23), pag.Total)
		for _, it := range items {
			assert.False(t, seen[it.ID], "record %d appeared twice", it.ID)
			seen[it.ID] = true
		}
	}
	assert.Len(t, seen, 23)
}

func TestListPastLastPageKeepsTruthfulTotal(t *testing.T) {
	svc := setupService(t, Options{})
	seedMany(t, svc, 5, models.StatusPublished)

	published := models.StatusPublished
	items, pag, err := svc.List(pagination.Query{Page: 4, Size: 10}, Filters{Status: &published})
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, int64(5), pag.Total)
	assert.Equal(t, 1, pag.TotalPages)
}

func TestListTieBreakIsDeterministic(t *testing.T) {
	svc := setupService(t, Options{})
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		rec := models.SpeciesModel{
			ContentBase: models.ContentBase{
				Base:   models.Base{CreatedAt: created},
				Slug:   fmt.Sprintf("tie-%d", i),
				Status: models.StatusPublished,
			},
			CommonName: "Same Name",
		}
		require.NoError(t, svc.DB().Create(&rec).Error)
	}

	published := models.StatusPublished
	first, _, err := svc.List(pagination.Query{Page: 1, Size: 10}, Filters{Status: &published})
	require.NoError(t, err)
	second, _, err := svc.List(pagination.Query{Page: 1, Size: 10}, Filters{Status: &published})
	require.NoError(t, err)

	require.Len(t, first, 4)
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}
	// id ascending within equal created_at
	assert.Less(t, first[0].ID, first[1].ID)
}

func TestListExcludesUnpublishedFromPublicView(t *testing.T) {
	svc := setupService(t, Options{})
	seedMany(t, svc, 3, models.StatusPublished)
	rec := models.SpeciesModel{
		ContentBase: models.ContentBase{Slug: "unpublished", Status: models.StatusDraft},
		CommonName:  "Hidden",
	}
	require.NoError(t, svc.DB().Create(&rec).Error)

	published := models.StatusPublished
	items, pag, err := svc.List(pagination.Query{Page: 1, Size: 10}, Filters{Status: &published})
	require.NoError(t, err)
	assert.Equal(t, int64(3), pag.Total)
	for _, it := range items {
		assert.Equal(t, models.StatusPublished, it.Status)
	}

	// no status filter at all: the admin view sees everything
	all, pag, err := svc.List(pagination.Query{Page: 1, Size: 10}, Filters{})
	require.NoError(t, err)
	assert.Equal(t, int64(4), pag.Total)
	assert.Len(t, all, 4)
}

func TestListSearchMatchesAcrossColumns(t *testing.T) {
	svc := setupService(t, Options{})
	recs := []models.SpeciesModel{
		{ContentBase: models.ContentBase{Slug: "a", Status: models.StatusPublished}, CommonName: "Andean Condor", ScientificName: "Vultur gryphus"},
		{ContentBase: models.ContentBase{Slug: "b", Status: models.StatusPublished}, CommonName: "Puma", ScientificName: "Puma concolor"},
		{ContentBase: models.ContentBase{Slug: "c", Status: models.StatusPublished}, CommonName: "Jaguar", ScientificName: "Panthera onca"},
	}
	for i := range recs {
		require.NoError(t, svc.DB().Create(&recs[i]).Error)
	}

	published := models.StatusPublished

	// case-insensitive substring on common_name
	items, _, err := svc.List(pagination.Query{Page: 1, Size: 10}, Filters{Status: &published, Search: "condor"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Andean Condor", items[0].CommonName)

	// matches scientific_name through the OR
	items, _, err = svc.List(pagination.Query{Page: 1, Size: 10}, Filters{Status: &published, Search: "panthera"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Jaguar", items[0].CommonName)
}

func TestListFacetFiltering(t *testing.T) {
	svc := setupService(t, Options{})
	recs := []models.SpeciesModel{
		{ContentBase: models.ContentBase{Slug: "a", Status: models.StatusPublished}, CommonName: "Puma", Category: "mammal"},
		{ContentBase: models.ContentBase{Slug: "b", Status: models.StatusPublished}, CommonName: "Condor", Category: "bird"},
	}
	for i := range recs {
		require.NoError(t, svc.DB().Create(&recs[i]).Error)
	}
	published := models.StatusPublished

	items, _, err := svc.List(pagination.Query{Page: 1, Size: 10},
		Filters{Status: &published, Facets: map[string]string{"category": "bird"}})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Condor", items[0].CommonName)

	// values outside the allow-list are ignored, not an error
	items, _, err = svc.List(pagination.Query{Page: 1, Size: 10},
		Filters{Status: &published, Facets: map[string]string{"category": "'; DROP TABLE species;--"}})
	require.NoError(t, err)
	assert.Len(t, items, 2)

	// unknown facet names are ignored too
	items, _, err = svc.List(pagination.Query{Page: 1, Size: 10},
		Filters{Status: &published, Facets: map[string]string{"nope": "bird"}})
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestListUnknownSortFallsBackToNewestFirst(t *testing.T) {
	svc := setupService(t, Options{})
	seedMany(t, svc, 3, models.StatusPublished)

	published := models.StatusPublished
	items, _, err := svc.List(pagination.Query{Page: 1, Size: 10},
		Filters{Status: &published, SortBy: "evil_column"})
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.True(t, items[0].CreatedAt.After(items[1].CreatedAt))
}
