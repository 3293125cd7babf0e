// Package storage holds helpers shared by the media store backends.
package storage

import (
	"mime"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/desichan/desichan/shared/domain"
)

// ObjectName returns a fresh "<kind>/<uuid><ext>" key for upload. The client's filename only contributes its extension.
func ObjectName(upload *domain.Upload) string {
	return path.Join(string(upload.Kind), uuid.NewString()+Extension(upload.Filename, upload.MimeType))
}

// Extension prefers the filename's extension when it is plain alphanumerics, else the first one registered for mimeType.
func Extension(filename, mimeType string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if isPlainExt(ext) {
		return ext
	}
	if exts, err := mime.ExtensionsByType(mimeType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ""
}

func isPlainExt(ext string) bool {
	if len(ext) < 2 || len(ext) > 8 {
		return false
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}
