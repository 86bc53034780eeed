// Package filex contains the filesystem helpers the client needs: making
// room for the local database and reading files picked for upload.
package filex

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// MaxUploadSize caps a single image read for a multipart upload.
const MaxUploadSize = 10 << 20

var ErrTooLarge = errors.New("file too large")

// EnsureParentDir creates the directory that will hold path, if any.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return nil
}

// ReadUpload reads the file at path, refusing anything above limit bytes
// (MaxUploadSize when limit <= 0). It returns the base name with the data.
func ReadUpload(path string, limit int64) (string, []byte, error) {
	if limit <= 0 {
		limit = MaxUploadSize
	}

	f, err := os.Open(path)
	if err != nil {
		return "", nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return "", nil, fmt.Errorf("read %s: %w", path, err)
	}
	if int64(len(data)) > limit {
		return "", nil, fmt.Errorf("%s: %w", path, ErrTooLarge)
	}
	return filepath.Base(path), data, nil
}
