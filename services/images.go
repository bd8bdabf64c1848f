package services

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"notekeep/model"
)

// ErrAmbiguousImage is returned when a note create carries both an uploaded
// file and an external URL; the two are mutually exclusive.
var ErrAmbiguousImage = errors.New("imageFile and imageUrl are mutually exclusive")

// ErrInvalidImageURL is returned for external image URLs that are not
// absolute http(s) URLs.
var ErrInvalidImageURL = errors.New("imageUrl must be an absolute http or https URL")

// PublicUploadPrefix is the URL prefix the uploads directory is served under.
const PublicUploadPrefix = "/uploads"

// ResolveImageSource turns the two optional multipart inputs into a tagged
// image source. An uploaded file is persisted under uploadsDir as
// note_<unix-ms>.<ext>, with the extension sniffed from the file bytes.
func ResolveImageSource(file *multipart.FileHeader, rawURL, uploadsDir string) (model.ImageSource, error) {
	hasFile := file != nil && file.Size > 0
	hasURL := rawURL != ""

	switch {
	case hasFile && hasURL:
		return model.ImageSource{}, ErrAmbiguousImage

	case hasFile:
		path, err := saveUpload(file, uploadsDir)
		if err != nil {
			return model.ImageSource{}, err
		}
		return model.ImageSource{Kind: model.PathTypeLocal, Path: path}, nil

	case hasURL:
		u, err := url.ParseRequestURI(rawURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return model.ImageSource{}, ErrInvalidImageURL
		}
		return model.ImageSource{Kind: model.PathTypeURL, Path: rawURL}, nil
	}

	return model.ImageSource{Kind: model.PathTypeNone}, nil
}

func saveUpload(file *multipart.FileHeader, uploadsDir string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return "", fmt.Errorf("failed to read uploaded file: %w", err)
	}

	// Trust the bytes, not the declared Content-Type.
	ext := mimetype.Detect(data).Extension()
	if ext == "" {
		ext = ".jpg"
	}

	if err := os.MkdirAll(uploadsDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create uploads directory: %w", err)
	}

	name := fmt.Sprintf("note_%d%s", time.Now().UnixMilli(), ext)
	if err := os.WriteFile(filepath.Join(uploadsDir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write uploaded file: %w", err)
	}

	return PublicUploadPrefix + "/" + name, nil
}
