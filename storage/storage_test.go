package storage

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	part, err := form.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	req, err := http.NewRequest("POST", "/", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", form.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	return req.MultipartForm.File["image"][0]
}

func TestDiskStoreSaveAndRemove(t *testing.T) {
	dir := t.TempDir()
	store := NewDiskStore(dir, "/uploads")

	url, err := store.Save(uploadHeader(t, "la comida.jpg", "jpeg-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/la_comida.jpg", url)

	data, err := os.ReadFile(filepath.Join(dir, "la_comida.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(data))

	require.NoError(t, store.Remove(url))
	_, err = os.Stat(filepath.Join(dir, "la_comida.jpg"))
	assert.True(t, os.IsNotExist(err))
}

func TestDiskStoreRemoveIgnoresForeignUrls(t *testing.T) {
	store := NewDiskStore(t.TempDir(), "/uploads")

	assert.NoError(t, store.Remove(""))
	assert.NoError(t, store.Remove("/elsewhere/x.jpg"))
	assert.NoError(t, store.Remove("/uploads/never-saved.jpg"))
}

func TestDiskStoreSaveNil(t *testing.T) {
	store := NewDiskStore(t.TempDir(), "/uploads")
	_, err := store.Save(nil)
	assert.ErrorIs(t, err, ErrNoFile)
}
