package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/terravita/core/internal/models"
)

func TestMergeOverlayOverwritesAndRetains(t *testing.T) {
	base := models.JSONMap{"commonName": "Puma", "family": "Felidae"}
	merged := MergeOverlay(base, map[string]interface{}{"commonName": "Puma concolor"})

	assert.Equal(t, "Puma concolor", merged["commonName"])
	assert.Equal(t, "Felidae", merged["family"])
	// the input map is not mutated
	assert.Equal(t, "Puma", base["commonName"])
}

func TestMergeOverlayKeepsExplicitNull(t *testing.T) {
	base := models.JSONMap{"habitat": "montane forest"}
	merged := MergeOverlay(base, map[string]interface{}{"habitat": nil})

	val, present := merged["habitat"]
	assert.True(t, present, "explicitly nulled key must stay in the overlay")
	assert.Nil(t, val)
}

func TestMergeOverlayNilBase(t *testing.T) {
	merged := MergeOverlay(nil, map[string]interface{}{"region": "neotropical"})
	assert.Equal(t, models.JSONMap{"region": "neotropical"}, merged)
}

func TestMergeOverlayAccumulatesAcrossPatches(t *testing.T) {
	overlay := MergeOverlay(nil, map[string]interface{}{"a": 1})
	overlay = MergeOverlay(overlay, map[string]interface{}{"b": 2})

	assert.Equal(t, 1, overlay["a"])
	assert.Equal(t, 2, overlay["b"])
}
