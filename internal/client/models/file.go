package models

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var allowedMIMETypes = []string{"application/pdf", "image/png", "image/jpeg", "image/jpg"}

// File is a document selected for upload.
type File struct {
	Name     string
	MIMEType string
	Content  []byte
}

// LoadFile reads path and detects its MIME type from the content, not from
// the extension.
func LoadFile(path string) (*File, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return &File{
		Name:     filepath.Base(path),
		MIMEType: mimetype.Detect(content).String(),
		Content:  content,
	}, nil
}

// IsAllowedMIME reports whether t (parameters ignored) is PDF, PNG or JPEG.
func IsAllowedMIME(t string) bool {
	return slices.Contains(allowedMIMETypes, baseMIME(t))
}

func baseMIME(t string) string {
	if mt, _, err := mime.ParseMediaType(t); err == nil {
		return mt
	}
	return strings.ToLower(strings.TrimSpace(t))
}

func validateFileType(f *File) error {
	if f == nil {
		return newValidationError("file", "please select a file")
	}
	if !IsAllowedMIME(f.MIMEType) {
		return newValidationError("file", "only PDF and image files (PNG, JPG, JPEG) are allowed")
	}
	return nil
}
