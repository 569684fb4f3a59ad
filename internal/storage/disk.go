package storage

import (
	"context"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// DiskStore writes attachments to the local filesystem under a fixed root
// directory. The returned paths are relative URLs meant to be served
// statically from that root.
type DiskStore struct {
	root string
}

// NewDiskStore creates a DiskStore rooted at the given directory.
func NewDiskStore(root string) *DiskStore {
	return &DiskStore{root: root}
}

// Save writes the file under the fixed uploads directory and returns its
// relative URL.
func (s *DiskStore) Save(_ context.Context, src io.Reader, _ int64, name, _ string) (string, error) {
	dir := filepath.Join(s.root, filepath.FromSlash(strings.TrimPrefix(uploadPrefix, "/")))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", err
	}
	return path.Join(uploadPrefix, name), nil
}

// Delete removes the file referenced by a previously returned relative URL.
// A file that is already gone is not an error.
func (s *DiskStore) Delete(_ context.Context, relPath string) error {
	full := filepath.Join(s.root, filepath.FromSlash(strings.TrimPrefix(relPath, "/")))
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
