package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"patient-appointment-service/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*DiskBlobStore, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := NewDiskBlobStore(config.StorageConfig{
		Dir:     dir,
		BaseURL: "/uploads",
	})
	require.NoError(t, err)
	return store, dir
}

func TestUploadAndDelete(t *testing.T) {
	store, dir := newTestStore(t)

	url, err := store.Upload(context.Background(), "portrait.png", "image/png", bytes.NewReader([]byte("png bytes")))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/"))
	assert.True(t, strings.HasSuffix(url, "-portrait.png"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	content, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	assert.Equal(t, []byte("png bytes"), content)

	require.NoError(t, store.Delete(context.Background(), url))

	entries, err = os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUploadsDoNotCollide(t *testing.T) {
	store, _ := newTestStore(t)

	first, err := store.Upload(context.Background(), "portrait.png", "image/png", bytes.NewReader([]byte("a")))
	require.NoError(t, err)
	second, err := store.Upload(context.Background(), "portrait.png", "image/png", bytes.NewReader([]byte("b")))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestUploadRejectsMissingFileName(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Upload(context.Background(), "", "image/png", bytes.NewReader([]byte("x")))
	assert.ErrorIs(t, err, ErrMissingFileName)
}

func TestUploadRejectsContentType(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Upload(context.Background(), "notes.txt", "text/plain", bytes.NewReader([]byte("x")))
	assert.ErrorIs(t, err, ErrInvalidContentType)
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	store, dir := newTestStore(t)

	oversized := bytes.NewReader(make([]byte, MaxFileSize+1))
	_, err := store.Upload(context.Background(), "huge.png", "image/png", oversized)
	assert.ErrorIs(t, err, ErrFileTooLarge)

	// The partial file is cleaned up.
	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestUploadStripsDirectoryFromFileName(t *testing.T) {
	store, dir := newTestStore(t)

	url, err := store.Upload(context.Background(), "../escape.png", "image/png", bytes.NewReader([]byte("x")))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(url, "-escape.png"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestDeleteUnknownBlob(t *testing.T) {
	store, _ := newTestStore(t)

	err := store.Delete(context.Background(), "/uploads/does-not-exist.png")
	assert.ErrorIs(t, err, ErrBlobNotFound)
}

func TestDeleteRejectsTraversal(t *testing.T) {
	store, _ := newTestStore(t)

	assert.ErrorIs(t, store.Delete(context.Background(), "/uploads/"), ErrBlobNotFound)
	assert.ErrorIs(t, store.Delete(context.Background(), "no-slash"), ErrBlobNotFound)
}
