package service

import (
	"context"

	"github.com/desichan/desichan/backend/internal/moderation"
	"github.com/desichan/desichan/backend/internal/thread"
	"github.com/desichan/desichan/backend/internal/utils"
	"github.com/desichan/desichan/shared/domain"
	"github.com/desichan/desichan/shared/errors"
	"github.com/desichan/desichan/shared/logger"
)

type CommentService interface {
	Create(ctx context.Context, data domain.CommentCreationData, upload *domain.Upload) (domain.CommentId, error)
	Thread(ctx context.Context, postId domain.PostId) (*domain.Thread, error)
	Delete(ctx context.Context, actor domain.UserId, id domain.CommentId) error
	ListAll(ctx context.Context, actor domain.UserId) ([]*domain.Comment, error)
}

type Comment struct {
	storage   CommentStorage
	posts     PostLookup
	validator CommentValidator
	users     UserDirectory
	media     MediaStore
}

type CommentStorage interface {
	CreateComment(ctx context.Context, data domain.CommentCreationData) (domain.CommentId, error)
	GetComment(ctx context.Context, id domain.CommentId) (*domain.Comment, error)
	// DeleteComment removes exactly one row and returns it; NotFound if it was already gone.
	DeleteComment(ctx context.Context, id domain.CommentId) (*domain.Comment, error)
	// PostComments returns every comment of the post ordered by (created_at, id).
	PostComments(ctx context.Context, postId domain.PostId) ([]*domain.Comment, error)
	AllComments(ctx context.Context) ([]*domain.Comment, error)
}

type PostLookup interface {
	GetPost(ctx context.Context, id domain.PostId) (*domain.Post, error)
}

type CommentValidator interface {
	Content(content string) error
}

func NewComment(storage CommentStorage, posts PostLookup, validator CommentValidator, users UserDirectory, media MediaStore) *Comment {
	return &Comment{
		storage:   storage,
		posts:     posts,
		validator: validator,
		users:     users,
		media:     media,
	}
}

// Create adds a comment to an existing post. A parent, when given, must be a comment of the same post.
func (c *Comment) Create(ctx context.Context, data domain.CommentCreationData, upload *domain.Upload) (domain.CommentId, error) {
	data.Content = utils.SanitizeText(data.Content)
	if err := c.validator.Content(data.Content); err != nil {
		return 0, err
	}
	if data.PostId <= 0 {
		return 0, errors.Validation("Post id is required")
	}
	if _, err := requireActor(ctx, c.users, data.Author); err != nil {
		return 0, err
	}
	if _, err := c.posts.GetPost(ctx, data.PostId); err != nil {
		return 0, err
	}
	if data.ParentId != nil {
		parent, err := c.storage.GetComment(ctx, *data.ParentId)
		if err != nil {
			if errors.IsNotFound(err) {
				return 0, errors.Validation("Parent comment not found")
			}
			return 0, err
		}
		if parent.PostId != data.PostId {
			return 0, errors.Validation("Parent comment belongs to another post")
		}
	}

	media, err := storeUpload(ctx, c.media, upload)
	if err != nil {
		return 0, err
	}
	data.Media = media

	id, err := c.storage.CreateComment(ctx, data)
	if err != nil {
		dropMedia(ctx, c.media, media)
		return 0, err
	}

	contentCreated.WithLabelValues("comment").Inc()
	logger.Log.Info("comment created", "comment_id", id, "post_id", data.PostId, "author", data.Author)
	return id, nil
}

// Thread returns the reply forest of a post. The post itself need not exist any more.
func (c *Comment) Thread(ctx context.Context, postId domain.PostId) (*domain.Thread, error) {
	comments, err := c.storage.PostComments(ctx, postId)
	if err != nil {
		return nil, err
	}
	return thread.Build(postId, comments), nil
}

func (c *Comment) Delete(ctx context.Context, actorId domain.UserId, id domain.CommentId) error {
	actor, err := resolveActor(ctx, c.users, actorId)
	if err != nil {
		return err
	}
	comment, err := c.storage.GetComment(ctx, id)
	if err != nil {
		return err
	}
	if !moderation.CanDelete(actor, comment.AuthorId) {
		moderationDenied.WithLabelValues("delete_comment").Inc()
		return errors.Authorization("Not allowed to delete this comment")
	}

	deleted, err := c.storage.DeleteComment(ctx, id)
	if err != nil {
		return err
	}
	dropMedia(ctx, c.media, deleted.Media)

	contentDeleted.WithLabelValues("comment", deletedBy(actor, comment.AuthorId)).Inc()
	logger.Log.Info("comment deleted", "comment_id", id, "actor", actorId)
	return nil
}

func (c *Comment) ListAll(ctx context.Context, actorId domain.UserId) ([]*domain.Comment, error) {
	actor, err := resolveActor(ctx, c.users, actorId)
	if err != nil {
		return nil, err
	}
	if !moderation.CanModerate(actor) {
		moderationDenied.WithLabelValues("list_comments").Inc()
		return nil, errors.Authorization("Access denied. Only for admin")
	}
	return c.storage.AllComments(ctx)
}
