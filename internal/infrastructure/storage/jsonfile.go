package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/menuscraper/backend/internal/domain"
)

// JSONFileStore persists the catalog as a single pretty-printed JSON document.
// Every Load reads the file from disk; nothing is kept in memory.
type JSONFileStore struct {
	path string
}

// NewJSONFileStore creates a store backed by the document at path
func NewJSONFileStore(path string) *JSONFileStore {
	return &JSONFileStore{path: path}
}

// Path returns the location of the catalog document
func (s *JSONFileStore) Path() string {
	return s.path
}

// Load reads and decodes the catalog document
func (s *JSONFileStore) Load(ctx context.Context) (domain.Catalog, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	var catalog domain.Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", domain.ErrCatalogUnavailable, s.path, err)
	}
	if catalog == nil {
		// a literal null document
		return nil, fmt.Errorf("%w: %s does not contain a JSON object", domain.ErrCatalogUnavailable, s.path)
	}

	return catalog, nil
}

// Save replaces the document with catalog. The new content is written to a
// temporary file in the same directory and renamed over the target, so
// readers never observe a partially written document.
func (s *JSONFileStore) Save(ctx context.Context, catalog domain.Catalog) error {
	if catalog == nil {
		catalog = domain.Catalog{}
	}

	data, err := encode(catalog)
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("failed to set catalog permissions: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace catalog: %w", err)
	}

	log.Printf("[Catalog] Wrote %d products to %s", len(catalog), s.path)
	return nil
}

// encode renders the catalog with 4-space indentation and non-ASCII text
// left as-is.
func encode(catalog domain.Catalog) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(catalog); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
