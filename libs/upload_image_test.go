package libs

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"retail-hub/models"
)

// formFile builds a real multipart file header the way gin receives one.
func formFile(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	_, header, err := req.FormFile("image")
	require.NoError(t, err)
	return header
}

func TestValidateImageFile(t *testing.T) {
	assert.ErrorIs(t, ValidateImageFile(nil, 10), models.ErrValidation)
	assert.ErrorIs(t, ValidateImageFile(formFile(t, "notes.txt", []byte("hi")), 0), models.ErrValidation)
	assert.ErrorIs(t, ValidateImageFile(formFile(t, "big.png", make([]byte, 64)), 32), models.ErrValidation)
	assert.NoError(t, ValidateImageFile(formFile(t, "Photo.JPG", []byte("jpeg")), 32))
}

func TestLocalImageStoreSave(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalImageStore(dir, 1<<10)

	url, err := store.Save(context.Background(), "LAMP-0001", formFile(t, "lamp.PNG", []byte("png-bytes")))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/products/LAMP-0001_"), url)
	assert.True(t, strings.HasSuffix(url, ".png"), url)

	saved, err := os.ReadFile(filepath.Join(dir, "products", filepath.Base(url)))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(saved))

	_, err = store.Save(context.Background(), "LAMP-0001", formFile(t, "lamp.exe", []byte("x")))
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestNewLogger(t *testing.T) {
	log, err := NewLogger("production", "debug")
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))

	log, err = NewLogger("development", "not-a-level")
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
}

func TestLaunchBodyEscapesContent(t *testing.T) {
	body := launchBody(models.Campaign{
		CampaignID: "CMP1",
		Name:       "<b>Spring</b>",
		Products:   []string{"A", "B"},
	})
	assert.Contains(t, body, "&lt;b&gt;Spring&lt;/b&gt;")
	assert.Contains(t, body, "open ended")
	assert.Contains(t, body, "A, B")
}
