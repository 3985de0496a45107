package services

import (
	"log"
	"os"
	"path/filepath"
	"testing"

	"qaqfplatform/backend/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFileService(t *testing.T) *FileService {
	t.Helper()
	return NewFileService(&config.Config{
		UploadDir:   t.TempDir(),
		MaxUploadMB: 1,
	}, log.New(os.Stderr, "", 0))
}

func TestValidateUploadRejectsUnknownExtension(t *testing.T) {
	fs := newTestFileService(t)

	err := fs.ValidateUpload("malware.exe", 10, false)
	assert.Error(t, err)

	err = fs.ValidateUpload("noextension", 10, false)
	assert.Error(t, err)
}

func TestValidateUploadStrictList(t *testing.T) {
	fs := newTestFileService(t)

	// Allowed generally but not for study materials.
	assert.NoError(t, fs.ValidateUpload("clip.mp4", 10, false))
	assert.Error(t, fs.ValidateUpload("clip.mp4", 10, true))

	assert.NoError(t, fs.ValidateUpload("notes.pdf", 10, true))
	assert.NoError(t, fs.ValidateUpload("notes.md", 10, true))
}

func TestValidateUploadRejectsOversized(t *testing.T) {
	fs := newTestFileService(t)

	err := fs.ValidateUpload("big.txt", 2*1024*1024, false)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "too large")
}

func TestIngestStoresAndExtractsText(t *testing.T) {
	fs := newTestFileService(t)

	extraction, err := fs.Ingest([]byte("hello   world"), "notes.txt", "", true)
	require.NoError(t, err)

	assert.Equal(t, "notes.txt", extraction.OriginalName)
	assert.Equal(t, "documents", extraction.Category)
	assert.Equal(t, int64(13), extraction.Size)
	assert.Len(t, extraction.Hash, 32)
	assert.Equal(t, "hello world", extraction.Text)
	assert.NotEqual(t, "notes.txt", extraction.StoredName)

	stored := filepath.Join(fs.UploadDir, filepath.FromSlash(extraction.Path))
	data, err := os.ReadFile(stored)
	require.NoError(t, err)
	assert.Equal(t, "hello   world", string(data))
}

func TestIngestRejectsBeforeWrite(t *testing.T) {
	fs := newTestFileService(t)

	_, err := fs.Ingest([]byte("x"), "clip.mp4", "", true)
	require.Error(t, err)

	// Nothing may be written for a rejected upload.
	entries, err := os.ReadDir(fs.UploadDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDetermineCategory(t *testing.T) {
	assert.Equal(t, "images", DetermineCategory("photo.PNG"))
	assert.Equal(t, "videos", DetermineCategory("clip.mp4"))
	assert.Equal(t, "archives", DetermineCategory("bundle.zip"))
	assert.Equal(t, "documents", DetermineCategory("whatever.unknown"))
}

func TestExtractTextImagePlaceholder(t *testing.T) {
	fs := newTestFileService(t)

	text := fs.ExtractText([]byte{0x89, 0x50}, "diagram.png")
	assert.Contains(t, text, "diagram.png")
	assert.Contains(t, text, "OCR engine not available")
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "a b", CleanText("  a \n\n  b  "))
	assert.Equal(t, "- item", CleanText("• item"))
	assert.Equal(t, "a - b", CleanText("a ---- b"))
	assert.Equal(t, "", CleanText("\x00\x01\x02"))
}

func TestDeleteMissingFileIsNotAnError(t *testing.T) {
	fs := newTestFileService(t)
	assert.NoError(t, fs.Delete("documents/gone.pdf"))
}
