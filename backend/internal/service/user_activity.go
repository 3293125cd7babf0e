package service

import (
	"context"
	"fmt"

	"github.com/desichan/desichan/shared/domain"
)

// UserActivityService lists what a user has written, newest first.
type UserActivityService interface {
	Posts(ctx context.Context, userId domain.UserId) ([]*domain.Post, error)
	Comments(ctx context.Context, userId domain.UserId) ([]*domain.Comment, error)
}

type UserActivity struct {
	storage UserActivityStorage
	limit   int
}

type UserActivityStorage interface {
	PostsByAuthor(ctx context.Context, userId domain.UserId, limit int) ([]*domain.Post, error)
	CommentsByAuthor(ctx context.Context, userId domain.UserId, limit int) ([]*domain.Comment, error)
}

func NewUserActivity(storage UserActivityStorage, limit int) *UserActivity {
	return &UserActivity{
		storage: storage,
		limit:   limit,
	}
}

func (s *UserActivity) Posts(ctx context.Context, userId domain.UserId) ([]*domain.Post, error) {
	posts, err := s.storage.PostsByAuthor(ctx, userId, s.limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get user posts: %w", err)
	}
	return posts, nil
}

func (s *UserActivity) Comments(ctx context.Context, userId domain.UserId) ([]*domain.Comment, error) {
	comments, err := s.storage.CommentsByAuthor(ctx, userId, s.limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get user comments: %w", err)
	}
	return comments, nil
}
