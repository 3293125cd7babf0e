package validation

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"slices"

	_ "golang.org/x/image/webp"

	"github.com/desichan/desichan/shared/domain"
)

// ValidateUpload checks one uploaded file against the allowed MIME lists and returns it ready for the media store.
// Images must decode as the format they claim to be. The returned Upload owns the opened file;
// callers close it through the returned closer.
func ValidateUpload(fileHeader *multipart.FileHeader, allowedImageMimes, allowedVideoMimes []string) (*domain.Upload, io.Closer, error) {
	mimeType, err := DetectMimeType(fileHeader)
	if err != nil {
		return nil, nil, err
	}
	kind, ok := domain.MediaKindFromMime(mimeType)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s (file: %s)", ErrInvalidMimeType, mimeType, fileHeader.Filename)
	}
	allowed := allowedImageMimes
	if kind == domain.MediaVideo {
		allowed = allowedVideoMimes
	}
	if !slices.Contains(allowed, mimeType) {
		return nil, nil, fmt.Errorf("%w: %s (file: %s)", ErrInvalidMimeType, mimeType, fileHeader.Filename)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}

	if kind == domain.MediaImage {
		if err := checkImage(file); err != nil {
			file.Close()
			return nil, nil, fmt.Errorf("%w: %s is not a readable image", ErrInvalidMimeType, fileHeader.Filename)
		}
	}

	return &domain.Upload{
		Filename:  fileHeader.Filename,
		MimeType:  mimeType,
		SizeBytes: fileHeader.Size,
		Kind:      kind,
		Data:      file,
	}, file, nil
}

func DetectMimeType(fileHeader *multipart.FileHeader) (string, error) {
	mimeType := fileHeader.Header.Get("Content-Type")

	// If no Content-Type or it's generic, detect from extension
	if mimeType == "" || mimeType == "application/octet-stream" {
		if detected := mime.TypeByExtension(filepath.Ext(fileHeader.Filename)); detected != "" {
			mimeType = detected
		}
	}
	// last resort: sniff the first bytes
	if mimeType == "" || mimeType == "application/octet-stream" {
		f, err := fileHeader.Open()
		if err != nil {
			return "", fmt.Errorf("failed to open uploaded file: %w", err)
		}
		defer f.Close()
		head := make([]byte, 512)
		n, _ := io.ReadFull(f, head)
		mimeType = http.DetectContentType(head[:n])
	}

	if mimeType == "" {
		return "", fmt.Errorf("could not detect MIME type for file: %s", fileHeader.Filename)
	}
	if parsed, _, err := mime.ParseMediaType(mimeType); err == nil {
		mimeType = parsed
	}
	return mimeType, nil
}

func checkImage(file multipart.File) error {
	head, err := io.ReadAll(io.LimitReader(file, 64<<10))
	if err != nil {
		return err
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return err
	}
	_, _, err = image.DecodeConfig(bytes.NewReader(head))
	return err
}
