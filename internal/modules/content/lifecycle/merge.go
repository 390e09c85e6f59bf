package lifecycle

import "github.com/terravita/core/internal/models"

// MergeOverlay merges patch into base with shallow, key-level semantics:
// keys in patch overwrite, keys absent from patch keep their prior draft
// value, keys never drafted fall through to the published column at publish
// time.
//
// Presence is decided by the key, not the value: a key explicitly set to
// null stays in the overlay and will null the column on publish. A naive
// "skip empty values" copy would silently drop those keys, which is exactly
// the lossy behavior this function exists to avoid.
func MergeOverlay(base models.JSONMap, patch map[string]interface{}) models.JSONMap {
	merged := make(models.JSONMap, len(base)+len(patch))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range patch {
		merged[k] = v
	}
	return merged
}
