package blob

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/klauspost/compress/zstd"
)

// catalogFile is the on-disk form of a saved catalog.
type catalogFile struct {
	Version int     `json:"version"`
	Width   int     `json:"width"`
	Height  int     `json:"height"`
	Blobs   []*Blob `json:"blobs"`
}

const catalogVersion = 1

// SaveCatalog writes a catalog to path as zstd-compressed JSON, so detection
// results can be reused across batch runs. Width and height record the
// extent of the image the catalog was built from.
func SaveCatalog(path string, c *Catalog, width, height int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create catalog file: %w", err)
	}
	defer f.Close()

	zw, err := zstd.NewWriter(f)
	if err != nil {
		return fmt.Errorf("zstd writer: %w", err)
	}

	doc := catalogFile{
		Version: catalogVersion,
		Width:   width,
		Height:  height,
		Blobs:   c.blobs,
	}
	if err := json.NewEncoder(zw).Encode(&doc); err != nil {
		zw.Close()
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to flush catalog: %w", err)
	}
	return nil
}

// LoadCatalog reads a catalog written by SaveCatalog. It returns the catalog
// and the extent of the image it was built from.
func LoadCatalog(path string) (*Catalog, int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer f.Close()

	zr, err := zstd.NewReader(f)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("zstd reader: %w", err)
	}
	defer zr.Close()

	var doc catalogFile
	if err := json.NewDecoder(zr.IOReadCloser()).Decode(&doc); err != nil {
		return nil, 0, 0, fmt.Errorf("failed to decode catalog: %w", err)
	}
	if doc.Version != catalogVersion {
		return nil, 0, 0, fmt.Errorf("unsupported catalog version %d", doc.Version)
	}

	return &Catalog{blobs: doc.Blobs}, doc.Width, doc.Height, nil
}
