// Package fs is the local filesystem media store. Files are served back by the router under URLPrefix.
package fs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/desichan/desichan/backend/internal/service"
	"github.com/desichan/desichan/backend/internal/storage"
	"github.com/desichan/desichan/shared/domain"
)

type Storage struct {
	rootPath  string
	urlPrefix string
}

var _ service.MediaStore = (*Storage)(nil)

func New(rootPath, urlPrefix string) (*Storage, error) {
	p := filepath.Clean(rootPath)

	if err := os.MkdirAll(p, 0755); err != nil {
		return nil, fmt.Errorf("failed to create root storage directory %s: %w", p, err)
	}

	return &Storage{rootPath: p, urlPrefix: "/" + strings.Trim(urlPrefix, "/")}, nil
}

// Root is the directory the router serves under URLPrefix.
func (s *Storage) Root() string {
	return s.rootPath
}

func (s *Storage) URLPrefix() string {
	return s.urlPrefix
}

// Store writes the upload to <root>/<kind>/<uuid><ext>.
func (s *Storage) Store(ctx context.Context, upload *domain.Upload) (*domain.Media, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name := storage.ObjectName(upload)
	fullPath := filepath.Join(s.rootPath, filepath.FromSlash(name))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create subdirectories: %w", err)
	}

	dst, err := os.OpenFile(fullPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create destination file: %w", err)
	}

	if _, err := io.Copy(dst, upload.Data); err != nil {
		dst.Close()
		os.Remove(fullPath)
		return nil, fmt.Errorf("failed to copy file data: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(fullPath)
		return nil, fmt.Errorf("failed to close file: %w", err)
	}

	return &domain.Media{URL: path.Join(s.urlPrefix, name), Kind: upload.Kind}, nil
}

// Delete removes the file behind url. Missing files are not an error.
func (s *Storage) Delete(ctx context.Context, url string) error {
	rel, err := s.relativePath(url)
	if err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.rootPath, rel)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// relativePath maps a URL produced by Store back to a path under root, refusing anything that escapes it.
func (s *Storage) relativePath(url string) (string, error) {
	prefix := s.urlPrefix + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", fmt.Errorf("media url %q is not under %q", url, s.urlPrefix)
	}
	rel := path.Clean(strings.TrimPrefix(url, prefix))
	if rel == "." || rel == ".." || strings.HasPrefix(rel, "../") || path.IsAbs(rel) {
		return "", fmt.Errorf("media url %q escapes the media root", url)
	}
	return filepath.FromSlash(rel), nil
}
