package service

import (
	"context"

	"github.com/desichan/desichan/shared/domain"
	"github.com/desichan/desichan/shared/logger"
)

// MediaStore keeps uploaded blobs and hands back the URL clients fetch them from.
type MediaStore interface {
	Store(ctx context.Context, upload *domain.Upload) (*domain.Media, error)
	Delete(ctx context.Context, url string) error
}

// storeUpload is a no-op for requests without a file.
func storeUpload(ctx context.Context, store MediaStore, upload *domain.Upload) (*domain.Media, error) {
	if upload == nil {
		return nil, nil
	}
	return store.Store(ctx, upload)
}

// dropMedia removes a blob whose owner is gone. Failures only leave an orphaned file, so they are logged.
func dropMedia(ctx context.Context, store MediaStore, media *domain.Media) {
	if media == nil {
		return
	}
	if err := store.Delete(ctx, media.URL); err != nil {
		logger.Log.Warn("failed to delete media", "url", media.URL, "error", err)
	}
}
