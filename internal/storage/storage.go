// Package storage persists promotrack's snapshot and catalog JSON files.
// Writes are atomic (temp file in the target directory, then rename) and
// skipped entirely when the rendered bytes match what is already on disk, so
// a failed run never leaves a partial file and an unchanged catalog never
// churns its mtime.
package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	pkgerrors "github.com/sekaitools/promotrack/pkg/errors"
	"github.com/sekaitools/promotrack/pkg/feed"
)

const (
	dirPermissions  = 0755
	filePermissions = 0644
)

// Catalog file names under the data directory.
const (
	CatalogCards     = "cards"
	CatalogJPBanners = "jp_banners"
	CatalogENBanners = "en_banners"
	CatalogJPEvents  = "jp_events"
	CatalogENEvents  = "en_events"
)

// Store resolves file paths under one data directory.
type Store struct {
	dir string
}

// New creates a Store rooted at dir.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the data directory.
func (s *Store) Dir() string { return s.dir }

// SnapshotPath is the file holding the last successfully processed feed
// content for one locale and kind.
func (s *Store) SnapshotPath(locale feed.Locale, kind feed.Kind) string {
	return filepath.Join(s.dir, "snapshots", fmt.Sprintf("%s_%s.json", locale, kind))
}

// CatalogPath is the file holding one persisted catalog.
func (s *Store) CatalogPath(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// Load reads a JSON array file into records. A missing or empty file is an
// empty collection, not an error; content that does not decode is a parse
// error and the caller must not write over the file.
func Load[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.WrapIO("read", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, pkgerrors.WrapParse("json", path, err)
	}
	return records, nil
}

// Save renders records and writes them to path atomically. The write is
// skipped when the rendered bytes equal the current file content; the return
// value reports whether a write happened.
func Save[T any](path string, records []T) (bool, error) {
	rendered, err := Render(records)
	if err != nil {
		return false, err
	}

	current, err := os.ReadFile(path)
	if err == nil && bytes.Equal(current, rendered) {
		return false, nil
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return false, pkgerrors.WrapIO("read", path, err)
	}

	return true, writeAtomic(path, rendered)
}

// writeAtomic writes data through a temp file in the destination directory
// so a failure cannot truncate or corrupt the existing file.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return pkgerrors.WrapIO("create", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return pkgerrors.WrapIO("create", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return pkgerrors.WrapIO("write", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return pkgerrors.WrapIO("write", path, err)
	}
	if err := os.Chmod(tmpName, filePermissions); err != nil {
		os.Remove(tmpName)
		return pkgerrors.WrapIO("write", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return pkgerrors.WrapIO("rename", path, err)
	}
	return nil
}
