// Package datauri converts local files into embeddable data-URI attachment
// descriptors. The repository stores only the descriptor, never raw bytes;
// size limits are enforced here, at the point of file selection, not by the
// repository.
package datauri

import (
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/inkmill/inkmill/pkg/types"
)

// Size limits in bytes: 10 MB for general files, 5 MB for images.
const (
	MaxFileSize  = 10 << 20
	MaxImageSize = 5 << 20
)

// ErrTooLarge is returned when a file exceeds its size limit.
var ErrTooLarge = errors.New("file exceeds size limit")

// fallbackType is used when the extension maps to no known MIME type. The
// declared type is never validated against the content.
const fallbackType = "application/octet-stream"

// Encode reads the file at path and returns an attachment descriptor with a
// base64 data URI, the MIME type guessed from the extension, and the
// original filename.
func Encode(path string) (types.AttachedFile, error) {
	return encode(path, MaxFileSize)
}

// EncodeImage is Encode with the stricter image size limit, for cover
// images.
func EncodeImage(path string) (types.AttachedFile, error) {
	return encode(path, MaxImageSize)
}

func encode(path string, limit int64) (types.AttachedFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return types.AttachedFile{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Size() > limit {
		return types.AttachedFile{}, fmt.Errorf("%s (%d bytes): %w", path, info.Size(), ErrTooLarge)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return types.AttachedFile{}, fmt.Errorf("reading %s: %w", path, err)
	}

	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if mimeType == "" {
		mimeType = fallbackType
	}

	return types.AttachedFile{
		URL:  fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data)),
		Type: mimeType,
		Name: filepath.Base(path),
	}, nil
}
