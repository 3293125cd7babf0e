package service

import (
	"context"

	"github.com/desichan/desichan/shared/domain"
	"github.com/desichan/desichan/shared/errors"
)

// UserDirectory resolves user ids to accounts. NotFound means the account is gone.
type UserDirectory interface {
	User(ctx context.Context, id domain.UserId) (*domain.User, error)
}

// resolveActor returns nil for ids the directory does not know, so the moderation gate denies them.
// Directory failures are returned as is.
func resolveActor(ctx context.Context, users UserDirectory, id domain.UserId) (*domain.User, error) {
	user, err := users.User(ctx, id)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// requireActor is resolveActor for operations that need a live account.
func requireActor(ctx context.Context, users UserDirectory, id domain.UserId) (*domain.User, error) {
	user, err := resolveActor(ctx, users, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.Unauthenticated("Unknown user")
	}
	return user, nil
}

func deletedBy(actor *domain.User, author *domain.UserId) string {
	if author != nil && *author == actor.Id {
		return "author"
	}
	return "admin"
}
