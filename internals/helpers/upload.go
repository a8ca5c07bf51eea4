// helpers/upload.go — simpan file bukti ke disk lokal (re-encode WebP)
package helper

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const (
	maxUploadBytes = 5 << 20 // 5MB
	maxProofWidth  = 1600
	maxProofHeight = 1600
	webpQuality    = 80
)

// SaveProofImage membaca file multipart, decode (jpeg/png/webp), downscale
// bila perlu, encode ulang ke WebP, lalu simpan di <baseDir>/<folder>/.
// Path yang dikembalikan selalu pakai forward slash.
func SaveProofImage(baseDir, folder string, fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", fmt.Errorf("file kosong")
	}
	if fh.Size > maxUploadBytes {
		return "", fmt.Errorf("ukuran file melebihi %dMB", maxUploadBytes>>20)
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("gagal membuka file: %w", err)
	}
	defer src.Close()

	all, err := io.ReadAll(io.LimitReader(src, maxUploadBytes+1))
	if err != nil {
		return "", fmt.Errorf("gagal membaca file: %w", err)
	}
	if len(all) == 0 {
		return "", fmt.Errorf("file kosong")
	}

	img, err := decodeImage(all, fh.Filename)
	if err != nil {
		return "", err
	}

	// Downscale (keep aspect)
	b := img.Bounds()
	if b.Dx() > maxProofWidth || b.Dy() > maxProofHeight {
		img = imaging.Fit(img, maxProofWidth, maxProofHeight, imaging.Lanczos)
	}

	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Lossless: false, Quality: webpQuality}); err != nil {
		return "", fmt.Errorf("encode webp gagal: %w", err)
	}

	dir := filepath.Join(baseDir, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("gagal membuat folder upload: %w", err)
	}

	name := uuid.New().String() + ".webp"
	full := filepath.Join(dir, name)
	if err := os.WriteFile(full, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("gagal menyimpan file: %w", err)
	}

	// Normalisasi backslash Windows → forward slash
	return filepath.ToSlash(full), nil
}

// RemoveUploadedFile membersihkan artefak saat transaksi gagal.
func RemoveUploadedFile(path string) {
	if strings.TrimSpace(path) == "" {
		return
	}
	_ = os.Remove(filepath.FromSlash(path))
}

func decodeImage(all []byte, filename string) (image.Image, error) {
	head := all
	if len(head) > 512 {
		head = head[:512]
	}
	ct := http.DetectContentType(head)

	switch {
	case strings.Contains(ct, "jpeg"):
		return jpeg.Decode(bytes.NewReader(all))
	case strings.Contains(ct, "png"):
		return png.Decode(bytes.NewReader(all))
	case strings.Contains(ct, "webp"):
		return webp.Decode(bytes.NewReader(all))
	}

	// fallback by extension
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return jpeg.Decode(bytes.NewReader(all))
	case ".png":
		return png.Decode(bytes.NewReader(all))
	case ".webp":
		return webp.Decode(bytes.NewReader(all))
	}
	return nil, fmt.Errorf("format tidak didukung: %s", ct)
}
