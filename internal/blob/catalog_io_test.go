package blob

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"raster-inpaint/pkg/geometry"
)

func TestCatalogSaveLoadRoundTrip(t *testing.T) {
	blobs := []*Blob{
		FromPoints([]geometry.PointInt{{X: 3, Y: 4}, {X: 4, Y: 4}, {X: 3, Y: 5}}),
		FromPoints([]geometry.PointInt{{X: 20, Y: 9}}),
	}
	catalog := NewCatalog(blobs)

	path := filepath.Join(t.TempDir(), "defects.blobs.zst")
	require.NoError(t, SaveCatalog(path, catalog, 64, 48))

	loaded, w, h, err := LoadCatalog(path)
	require.NoError(t, err)
	require.Equal(t, 64, w)
	require.Equal(t, 48, h)
	require.Equal(t, catalog.Count(), loaded.Count())

	for i := 0; i < catalog.Count(); i++ {
		require.Equal(t, catalog.Region(i).Area(), loaded.Region(i).Area())
		require.Equal(t, catalog.Region(i).BBox(), loaded.Region(i).BBox())
		require.Equal(t, catalog.Region(i).Rows, loaded.Region(i).Rows)
	}
}

func TestLoadCatalogMissingFile(t *testing.T) {
	_, _, _, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.blobs.zst"))
	require.Error(t, err)
}
