package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// uploadPrefix is the fixed destination directory for post images. It is
// never influenced by request data; only the file extension comes from the
// client-supplied name.
const uploadPrefix = "/uploads/images"

// Store persists post attachments. Save returns the relative path under
// which the file is retrievable; Delete treats a missing file as success.
type Store interface {
	Save(ctx context.Context, src io.Reader, size int64, name, contentType string) (string, error)
	Delete(ctx context.Context, path string) error
}

// FileName builds a collision-resistant object name from the uploaded
// file's original name, preserving only its extension.
func FileName(original string) string {
	ext := filepath.Ext(original)
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.NewString()[:8], ext)
}
