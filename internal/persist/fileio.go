// Package persist owns the on-disk journal document: loading it at startup,
// serving in-memory reads, and rewriting the whole file on every save.
package persist

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileIO is the file capability the persistor runs on. Write must replace
// the target atomically or not at all.
type FileIO interface {
	Exists(path string) bool
	Read(path string) ([]byte, error)
	Write(data []byte, path string) error
}

// OSFileIO implements FileIO on the local filesystem. Writes go to a
// temporary file in the target directory followed by a rename, so readers
// never observe a partial document.
type OSFileIO struct{}

func (OSFileIO) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (OSFileIO) Read(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

func (OSFileIO) Write(data []byte, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
