package domain

import (
	"io"
	"strings"
)

type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// MediaKindFromMime maps a MIME type to its coarse kind. ok is false for anything that is neither image nor video.
func MediaKindFromMime(mimeType string) (kind MediaKind, ok bool) {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return MediaImage, true
	case strings.HasPrefix(mimeType, "video/"):
		return MediaVideo, true
	default:
		return "", false
	}
}

// Media is a stored blob referenced by a post or comment.
type Media struct {
	URL  string    `json:"url"`
	Kind MediaKind `json:"kind"`
}

// Upload is a validated file waiting to be handed to the media store.
type Upload struct {
	Filename  string
	MimeType  string
	SizeBytes int64
	Kind      MediaKind
	Data      io.Reader
}
