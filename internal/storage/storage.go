// Package storage archives the original decision files next to their
// analysis logs.
package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/JustJay7/hukuk-okuyucu/internal/config"
)

// Storage keeps uploaded files under generated keys
type Storage interface {
	// Upload stores data and returns its key
	Upload(ctx context.Context, fileID uuid.UUID, filename string, data io.Reader) (string, error)
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// New returns the archive selected by cfg, or nil when archiving is off
func New(ctx context.Context, cfg *config.Config) (Storage, error) {
	switch cfg.ArchiveBackend {
	case config.ArchiveNone, "":
		return nil, nil
	case config.ArchiveLocal:
		return NewLocalStorage(cfg.ArchiveLocalPath)
	case config.ArchiveS3:
		return NewS3Storage(ctx, S3Options{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			AccessKey: cfg.AWSAccessKey,
			SecretKey: cfg.AWSSecretKey,
		})
	default:
		return nil, fmt.Errorf("unknown archive backend: %s", cfg.ArchiveBackend)
	}
}

// storageKey spreads files over 256 prefixes: "ab/<uuid>_<name>.pdf"
func storageKey(fileID uuid.UUID, filename string) string {
	filename = filepath.Base(filepath.ToSlash(filename))
	if filename == "." || filename == "/" {
		filename = ""
	}
	ext := strings.ToLower(filepath.Ext(filename))
	base := sanitize(strings.TrimSuffix(filename, filepath.Ext(filename)))
	if ext == "" {
		ext = ".pdf"
	}

	id := fileID.String()
	if base == "" {
		return fmt.Sprintf("%s/%s%s", id[:2], id, ext)
	}
	return fmt.Sprintf("%s/%s_%s%s", id[:2], id, base, ext)
}

// sanitize keeps letters, digits, dots and dashes; anything else becomes
// an underscore
func sanitize(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return strings.Trim(b.String(), "._")
}

func contentType(key string) string {
	switch strings.ToLower(filepath.Ext(key)) {
	case ".pdf":
		return "application/pdf"
	case ".txt":
		return "text/plain; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}
