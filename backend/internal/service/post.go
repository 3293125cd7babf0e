package service

import (
	"context"
	"math"
	"strings"

	"github.com/desichan/desichan/backend/internal/moderation"
	"github.com/desichan/desichan/backend/internal/utils"
	"github.com/desichan/desichan/shared/domain"
	"github.com/desichan/desichan/shared/errors"
	"github.com/desichan/desichan/shared/logger"
)

type PostService interface {
	Create(ctx context.Context, data domain.PostCreationData, upload *domain.Upload) (domain.PostId, error)
	Get(ctx context.Context, id domain.PostId) (*domain.Post, error)
	Delete(ctx context.Context, actor domain.UserId, id domain.PostId) error
	ListByBoard(ctx context.Context, slug domain.BoardSlug, page int) (*domain.PostPage, error)
	Search(ctx context.Context, query string) ([]*domain.Post, error)
	ListAll(ctx context.Context, actor domain.UserId) ([]*domain.Post, error)
}

type Post struct {
	storage   PostStorage
	validator PostValidator
	boards    BoardService
	users     UserDirectory
	media     MediaStore
	cfg       PostConfig
}

type PostConfig struct {
	PostsPerPage int
	SearchLimit  int
}

type PostStorage interface {
	CreatePost(ctx context.Context, data domain.PostCreationData) (domain.PostId, error)
	GetPost(ctx context.Context, id domain.PostId) (*domain.Post, error)
	// DeletePost removes exactly one row and returns it; NotFound if it was already gone.
	DeletePost(ctx context.Context, id domain.PostId) (*domain.Post, error)
	// BoardPosts returns one page newest first and the number of posts on the board.
	BoardPosts(ctx context.Context, slug domain.BoardSlug, limit, offset int) ([]*domain.Post, int, error)
	SearchPosts(ctx context.Context, query string, limit int) ([]*domain.Post, error)
	AllPosts(ctx context.Context) ([]*domain.Post, error)
}

type PostValidator interface {
	Title(title string) error
	Content(content string) error
}

func NewPost(storage PostStorage, validator PostValidator, boards BoardService, users UserDirectory, media MediaStore, cfg PostConfig) *Post {
	return &Post{
		storage:   storage,
		validator: validator,
		boards:    boards,
		users:     users,
		media:     media,
		cfg:       cfg,
	}
}

// Create validates the post, stores its media first and then the post itself.
func (p *Post) Create(ctx context.Context, data domain.PostCreationData, upload *domain.Upload) (domain.PostId, error) {
	data.Title = utils.SanitizeText(data.Title)
	data.Content = utils.SanitizeText(data.Content)
	if err := p.validator.Title(data.Title); err != nil {
		return 0, err
	}
	if err := p.validator.Content(data.Content); err != nil {
		return 0, err
	}
	if !p.boards.Exists(data.Board) {
		return 0, errors.Validation("Unknown board")
	}
	if _, err := requireActor(ctx, p.users, data.Author); err != nil {
		return 0, err
	}

	media, err := storeUpload(ctx, p.media, upload)
	if err != nil {
		return 0, err
	}
	data.Media = media

	id, err := p.storage.CreatePost(ctx, data)
	if err != nil {
		dropMedia(ctx, p.media, media)
		return 0, err
	}

	contentCreated.WithLabelValues("post").Inc()
	logger.Log.Info("post created", "post_id", id, "board", data.Board, "author", data.Author)
	return id, nil
}

func (p *Post) Get(ctx context.Context, id domain.PostId) (*domain.Post, error) {
	return p.storage.GetPost(ctx, id)
}

func (p *Post) Delete(ctx context.Context, actorId domain.UserId, id domain.PostId) error {
	actor, err := resolveActor(ctx, p.users, actorId)
	if err != nil {
		return err
	}
	post, err := p.storage.GetPost(ctx, id)
	if err != nil {
		return err
	}
	if !moderation.CanDelete(actor, post.AuthorId) {
		moderationDenied.WithLabelValues("delete_post").Inc()
		return errors.Authorization("Not allowed to delete this post")
	}

	deleted, err := p.storage.DeletePost(ctx, id)
	if err != nil {
		return err
	}
	dropMedia(ctx, p.media, deleted.Media)

	contentDeleted.WithLabelValues("post", deletedBy(actor, post.AuthorId)).Inc()
	logger.Log.Info("post deleted", "post_id", id, "actor", actorId)
	return nil
}

// ListByBoard returns the page-th page (1-based) of a board, newest first. Pages past the end are empty.
func (p *Post) ListByBoard(ctx context.Context, slug domain.BoardSlug, page int) (*domain.PostPage, error) {
	board, err := p.boards.Get(slug)
	if err != nil {
		return nil, err
	}
	page = max(1, page)
	perPage := p.cfg.PostsPerPage

	offset := math.MaxInt
	if page-1 <= math.MaxInt/perPage {
		offset = (page - 1) * perPage
	}

	posts, total, err := p.storage.BoardPosts(ctx, slug, perPage, offset)
	if err != nil {
		return nil, err
	}
	return &domain.PostPage{
		Board:      *board,
		Posts:      posts,
		Page:       page,
		TotalPages: (total + perPage - 1) / perPage,
	}, nil
}

// Search matches the query as a case-insensitive substring of title or content.
func (p *Post) Search(ctx context.Context, query string) ([]*domain.Post, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.Validation("Search query is required")
	}
	return p.storage.SearchPosts(ctx, query, p.cfg.SearchLimit)
}

func (p *Post) ListAll(ctx context.Context, actorId domain.UserId) ([]*domain.Post, error) {
	actor, err := resolveActor(ctx, p.users, actorId)
	if err != nil {
		return nil, err
	}
	if !moderation.CanModerate(actor) {
		moderationDenied.WithLabelValues("list_posts").Inc()
		return nil, errors.Authorization("Access denied. Only for admin")
	}
	return p.storage.AllPosts(ctx)
}
