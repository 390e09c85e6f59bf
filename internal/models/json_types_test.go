package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONMapNilIsSQLNull(t *testing.T) {
	var m JSONMap
	v, err := m.Value()
	require.NoError(t, err)
	assert.Nil(t, v, "a nil map must be stored as NULL, not the string \"null\"")
}

func TestJSONMapRoundTripKeepsExplicitNull(t *testing.T) {
	m := JSONMap{"habitat": nil, "commonName": "Puma"}
	v, err := m.Value()
	require.NoError(t, err)

	var out JSONMap
	require.NoError(t, out.Scan(v))

	val, present := out["habitat"]
	assert.True(t, present)
	assert.Nil(t, val)
	assert.Equal(t, "Puma", out["commonName"])
}

func TestJSONMapScanNull(t *testing.T) {
	var out JSONMap
	require.NoError(t, out.Scan(nil))
	assert.Nil(t, out)

	require.NoError(t, out.Scan("null"))
	assert.Nil(t, out)
}

func TestImageRefRoundTrip(t *testing.T) {
	ref := &ImageRef{URL: "https://img.example/p.jpg", Alt: "puma"}
	v, err := ref.Value()
	require.NoError(t, err)

	var out ImageRef
	require.NoError(t, out.Scan(v))
	assert.Equal(t, ref.URL, out.URL)
	assert.Equal(t, ref.Alt, out.Alt)
}

func TestStringSliceRoundTrip(t *testing.T) {
	s := StringSlice{"logging", "hunting"}
	v, err := s.Value()
	require.NoError(t, err)

	var out StringSlice
	require.NoError(t, out.Scan(v))
	assert.Equal(t, s, out)

	var nilSlice StringSlice
	v, err = nilSlice.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}
