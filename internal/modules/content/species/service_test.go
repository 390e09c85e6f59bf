package species

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/terravita/core/internal/models"
	"github.com/terravita/core/internal/modules/content/lifecycle"
)

func setupService(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.SpeciesModel{}))
	return NewService(db, lifecycle.Options{}, nil)
}

func TestCreateDefaultsToDraft(t *testing.T) {
	svc := setupService(t)

	rec, err := svc.Create(&CreateSpeciesDTO{
		Slug:           "andean-condor",
		CommonName:     "Andean Condor",
		ScientificName: "Vultur gryphus",
		Category:       "bird",
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusDraft, rec.Status)
	assert.Nil(t, rec.PublishedAt)
	assert.False(t, rec.HasDraft)
}

func TestCreatePublishedSetsPublishedAt(t *testing.T) {
	svc := setupService(t)

	published := models.StatusPublished
	rec, err := svc.Create(&CreateSpeciesDTO{
		Slug:           "jaguar",
		CommonName:     "Jaguar",
		ScientificName: "Panthera onca",
		Status:         &published,
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusPublished, rec.Status)
	require.NotNil(t, rec.PublishedAt)
}

func TestCreateRejectsDuplicateSlug(t *testing.T) {
	svc := setupService(t)

	_, err := svc.Create(&CreateSpeciesDTO{Slug: "jaguar", CommonName: "Jaguar", ScientificName: "Panthera onca"})
	require.NoError(t, err)

	_, err = svc.Create(&CreateSpeciesDTO{Slug: "jaguar", CommonName: "Another Jaguar", ScientificName: "Panthera onca"})
	assert.ErrorIs(t, err, lifecycle.ErrSlugTaken)
}

func TestUpdatePatchesOnlyProvidedFields(t *testing.T) {
	svc := setupService(t)

	rec, err := svc.Create(&CreateSpeciesDTO{
		Slug:               "jaguar",
		CommonName:         "Jaguar",
		ScientificName:     "Panthera onca",
		ConservationStatus: "NT",
		Habitat:            "Rainforest",
	})
	require.NoError(t, err)

	status := "VU"
	updated, err := svc.Update(rec.ID, &UpdateSpeciesDTO{ConservationStatus: &status})
	require.NoError(t, err)

	assert.Equal(t, "VU", updated.ConservationStatus)
	assert.Equal(t, "Jaguar", updated.CommonName)
	assert.Equal(t, "Rainforest", updated.Habitat)
}

func TestUpdateSlugChecksUniqueness(t *testing.T) {
	svc := setupService(t)

	_, err := svc.Create(&CreateSpeciesDTO{Slug: "jaguar", CommonName: "Jaguar", ScientificName: "Panthera onca"})
	require.NoError(t, err)
	rec, err := svc.Create(&CreateSpeciesDTO{Slug: "puma", CommonName: "Puma", ScientificName: "Puma concolor"})
	require.NoError(t, err)

	taken := "jaguar"
	_, err = svc.Update(rec.ID, &UpdateSpeciesDTO{Slug: &taken})
	assert.ErrorIs(t, err, lifecycle.ErrSlugTaken)

	// Re-submitting its own slug is not a conflict.
	own := "puma"
	_, err = svc.Update(rec.ID, &UpdateSpeciesDTO{Slug: &own})
	assert.NoError(t, err)
}

func TestUpdateNotFound(t *testing.T) {
	svc := setupService(t)

	name := "Ghost"
	_, err := svc.Update(9999, &UpdateSpeciesDTO{CommonName: &name})
	assert.ErrorIs(t, err, lifecycle.ErrNotFound)
}

func TestDeleteRemovesFromReads(t *testing.T) {
	svc := setupService(t)

	rec, err := svc.Create(&CreateSpeciesDTO{Slug: "jaguar", CommonName: "Jaguar", ScientificName: "Panthera onca"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(rec.ID))

	got, err := svc.FindByID(rec.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.ErrorIs(t, svc.Delete(rec.ID), lifecycle.ErrNotFound)
}
