// Package extract turns uploaded report files into plain text, with a
// content-addressed cache so identical files are parsed at most once per
// TTL window.
package extract

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/soilscope/soilscope/internal/cache"
)

// ErrUnsupportedFileType is returned for extensions the pipeline does not accept.
var ErrUnsupportedFileType = errors.New("unsupported file type")

// Placeholder texts returned instead of an error, so downstream validation
// always has something to look at. Office documents and images are
// accepted but not parsed.
const (
	PlaceholderDocument = "Document uploaded - manual analysis required"
	PlaceholderImage    = "Image uploaded - visual analysis required"
	PlaceholderError    = "File uploaded - processing error occurred"
)

// Service extracts text from report files.
type Service struct {
	cache cache.Cache
	ttl   time.Duration
}

// NewService creates an extraction Service backed by the given cache.
func NewService(c cache.Cache, ttl time.Duration) *Service {
	return &Service{cache: c, ttl: ttl}
}

// Extract returns the text content of the file at path. The file is
// fingerprinted by (path, size, mtime); a live cache entry short-circuits
// parsing entirely. Extraction failures degrade to a placeholder string so
// the pipeline never blocks on a file it cannot read.
func (s *Service) Extract(ctx context.Context, path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !supportedExtension(ext) {
		return "", ErrUnsupportedFileType
	}

	info, err := os.Stat(path)
	if err != nil {
		slog.Warn("stat failed, returning placeholder", "path", path, "error", err)
		return PlaceholderError, nil
	}

	fp := cache.FileFingerprint(path, info.Size(), info.ModTime())
	key := cache.ExtractionKey(fp)

	if cached, found, err := s.cache.Get(ctx, key); err == nil && found {
		return string(cached), nil
	}

	text, err := s.extractByType(path, ext)
	if err != nil {
		slog.Warn("extraction failed, returning placeholder", "path", path, "error", err)
		return PlaceholderError, nil
	}

	if err := s.cache.Set(ctx, key, []byte(text), s.ttl); err != nil {
		slog.Warn("caching extracted text failed", "key", key, "error", err)
	}
	return text, nil
}

func (s *Service) extractByType(path, ext string) (string, error) {
	switch ext {
	case ".pdf":
		return extractPDF(path)
	case ".txt":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(data)), nil
	case ".doc", ".docx":
		return PlaceholderDocument, nil
	case ".jpg", ".jpeg", ".png":
		return PlaceholderImage, nil
	default:
		return "", ErrUnsupportedFileType
	}
}

func supportedExtension(ext string) bool {
	switch ext {
	case ".pdf", ".txt", ".doc", ".docx", ".jpg", ".jpeg", ".png":
		return true
	}
	return false
}

// normalizeWhitespace collapses runs of spaces and tabs and drops blank
// lines, which PDF text extraction produces in abundance.
func normalizeWhitespace(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.Join(strings.Fields(line), " ")
		if trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return strings.Join(lines, "\n")
}
