package helper

import (
	"bytes"
	"image"
	"image/png"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildFileHeader membangun *multipart.FileHeader dari bytes lewat
// request multipart sungguhan.
func buildFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("proof", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	return req.MultipartForm.File["proof"][0]
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestSaveProofImage_ReencodesToWebP(t *testing.T) {
	dir := t.TempDir()
	fh := buildFileHeader(t, "bukti.png", pngBytes(t, 16, 16))

	path, err := SaveProofImage(dir, "payment-proofs", fh)
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(path, ".webp"), "hasil harus .webp, dapat %s", path)
	assert.NotContains(t, path, "\\")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestSaveProofImage_RejectsNonImage(t *testing.T) {
	fh := buildFileHeader(t, "virus.exe", []byte("MZ bukan gambar sama sekali"))

	_, err := SaveProofImage(t.TempDir(), "payment-proofs", fh)
	assert.Error(t, err)
}

func TestSaveProofImage_RejectsEmptyFile(t *testing.T) {
	fh := buildFileHeader(t, "kosong.png", nil)

	_, err := SaveProofImage(t.TempDir(), "payment-proofs", fh)
	assert.Error(t, err)
}

func TestRemoveUploadedFile(t *testing.T) {
	dir := t.TempDir()
	fh := buildFileHeader(t, "bukti.png", pngBytes(t, 8, 8))

	path, err := SaveProofImage(dir, "payment-proofs", fh)
	require.NoError(t, err)

	RemoveUploadedFile(path)
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// path kosong tidak panic
	RemoveUploadedFile("")
}
