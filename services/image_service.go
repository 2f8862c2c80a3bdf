package services

import (
	"encoding/base64"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// ImageService saves uploaded files under the local uploads directory
// and returns the public URL the router serves them from.
type ImageService struct {
	BaseDir string
}

func NewImageService() *ImageService {
	return &ImageService{BaseDir: "uploads"}
}

// SaveUpload writes a multipart file into uploads/<subdir> and returns
// the public path, e.g. "/uploads/rooms/1716899112000000000.jpg".
func (s *ImageService) SaveUpload(c *gin.Context, file *multipart.FileHeader, subdir string) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		return "", fmt.Errorf("unsupported image type %q", ext)
	}

	dir := filepath.Join(s.BaseDir, subdir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("mkdir uploads dir: %w", err)
	}

	filename := fmt.Sprintf("%d%s", time.Now().UnixNano(), ext)
	if err := c.SaveUploadedFile(file, filepath.Join(dir, filename)); err != nil {
		return "", fmt.Errorf("save upload: %w", err)
	}

	return "/" + filepath.ToSlash(filepath.Join(s.BaseDir, subdir, filename)), nil
}

// SaveBase64 decodes a base64 payload (with or without a data-URL
// prefix) into uploads/<subdir> and returns the public path.
func (s *ImageService) SaveBase64(b64, subdir string) (string, error) {
	if idx := strings.Index(b64, "base64,"); idx >= 0 {
		b64 = b64[idx+7:]
	}

	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return "", fmt.Errorf("decode base64: %w", err)
	}

	dir := filepath.Join(s.BaseDir, subdir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("mkdir uploads dir: %w", err)
	}

	filename := fmt.Sprintf("%d.jpg", time.Now().UnixNano())
	if err := os.WriteFile(filepath.Join(dir, filename), data, 0644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	return "/" + filepath.ToSlash(filepath.Join(s.BaseDir, subdir, filename)), nil
}
