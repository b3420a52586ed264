package datauri

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	f, err := Encode(path)
	require.NoError(t, err)

	assert.Equal(t, "notes.txt", f.Name)
	assert.True(t, strings.HasPrefix(f.Type, "text/plain"))
	assert.True(t, strings.HasPrefix(f.URL, "data:"+f.Type+";base64,"))
	assert.True(t, strings.HasSuffix(f.URL, "aGVsbG8="), "payload must be the base64 content")
}

func TestEncodeUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blob.qqq")
	require.NoError(t, os.WriteFile(path, []byte{0x01}, 0o644))

	f, err := Encode(path)
	require.NoError(t, err)
	assert.Equal(t, "application/octet-stream", f.Type)
}

func TestEncodeMissingFile(t *testing.T) {
	_, err := Encode(filepath.Join(t.TempDir(), "absent.txt"))
	assert.Error(t, err)
}

func TestEncodeImageSizeLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.png")
	require.NoError(t, os.WriteFile(path, make([]byte, MaxImageSize+1), 0o644))

	_, err := EncodeImage(path)
	assert.ErrorIs(t, err, ErrTooLarge)

	_, err = Encode(path)
	assert.NoError(t, err, "general limit is larger than the image limit")
}
