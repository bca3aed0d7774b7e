// File: internal/filestorage/service_test.go
package filestorage

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupService(t *testing.T) *Service {
	storagePath := t.TempDir()
	svc, err := NewService(storagePath, zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, svc)
	return svc
}

// newTestFileHeader builds a multipart.FileHeader the way Gin would produce
// one from an incoming request.
func newTestFileHeader(t *testing.T, filename, content, contentType string) *multipart.FileHeader {
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)

	partHeader := make(textproto.MIMEHeader)
	partHeader.Set("Content-Disposition", fmt.Sprintf(`form-data; name="images"; filename="%s"`, filename))
	if contentType != "" {
		partHeader.Set("Content-Type", contentType)
	}

	part, err := writer.CreatePart(partHeader)
	require.NoError(t, err)
	_, err = io.Copy(part, strings.NewReader(content))
	require.NoError(t, err)
	writer.Close()

	reader := multipart.NewReader(body, writer.Boundary())
	form, err := reader.ReadForm(32 << 20)
	require.NoError(t, err)

	files := form.File["images"]
	require.NotEmpty(t, files)
	return files[0]
}

func TestSaveImage_Success(t *testing.T) {
	svc := setupService(t)

	fh := newTestFileHeader(t, "room_photo.jpg", "jpeg bytes", "image/jpeg")

	relativePath, err := svc.SaveImage(fh)

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(relativePath, "rooms/"))
	assert.True(t, strings.HasSuffix(relativePath, ".jpg"))

	content, err := os.ReadFile(filepath.Join(svc.storagePath, relativePath))
	require.NoError(t, err)
	assert.Equal(t, "jpeg bytes", string(content))
}

func TestSaveImage_ExtensionInferredFromContentType(t *testing.T) {
	svc := setupService(t)

	fh := newTestFileHeader(t, "photo", "png bytes", "image/png")

	relativePath, err := svc.SaveImage(fh)

	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(relativePath, ".png"))
}

func TestSaveImage_RejectsNonImage(t *testing.T) {
	svc := setupService(t)

	fh := newTestFileHeader(t, "notes.txt", "plain text", "text/plain")

	_, err := svc.SaveImage(fh)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported image type")
}

func TestSaveImage_NilHeader(t *testing.T) {
	svc := setupService(t)

	_, err := svc.SaveImage(nil)

	assert.EqualError(t, err, "fileHeader cannot be nil")
}

func TestDeleteImage_Success(t *testing.T) {
	svc := setupService(t)

	fh := newTestFileHeader(t, "photo.jpg", "bytes", "image/jpeg")
	relativePath, err := svc.SaveImage(fh)
	require.NoError(t, err)

	err = svc.DeleteImage(relativePath)
	require.NoError(t, err)

	_, statErr := os.Stat(filepath.Join(svc.storagePath, relativePath))
	assert.True(t, os.IsNotExist(statErr))
}

func TestDeleteImage_NonExistentIsNoError(t *testing.T) {
	svc := setupService(t)

	assert.NoError(t, svc.DeleteImage("rooms/does-not-exist.jpg"))
}

func TestDeleteImage_RejectsPathTraversal(t *testing.T) {
	svc := setupService(t)

	err := svc.DeleteImage("../../etc/passwd")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid file path")
}
