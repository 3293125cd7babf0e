package service

import (
	"context"

	"github.com/desichan/desichan/shared/domain"
	internal_errors "github.com/desichan/desichan/shared/errors"
)

// --- Mocks ---

type MockUserDirectory struct {
	UserFunc func(ctx context.Context, id domain.UserId) (*domain.User, error)
}

func (m *MockUserDirectory) User(ctx context.Context, id domain.UserId) (*domain.User, error) {
	if m.UserFunc != nil {
		return m.UserFunc(ctx, id)
	}
	return &domain.User{Id: id, Username: "user"}, nil
}

// usersOf is a directory that knows exactly the given users.
func usersOf(users ...*domain.User) *MockUserDirectory {
	return &MockUserDirectory{UserFunc: func(ctx context.Context, id domain.UserId) (*domain.User, error) {
		for _, u := range users {
			if u.Id == id {
				return u, nil
			}
		}
		return nil, internal_errors.NotFound("User not found")
	}}
}

type MockMediaStore struct {
	StoreFunc  func(ctx context.Context, upload *domain.Upload) (*domain.Media, error)
	DeleteFunc func(ctx context.Context, url string) error
	deleted    []string
}

func (m *MockMediaStore) Store(ctx context.Context, upload *domain.Upload) (*domain.Media, error) {
	if m.StoreFunc != nil {
		return m.StoreFunc(ctx, upload)
	}
	return &domain.Media{URL: "/media/" + string(upload.Kind) + "/" + upload.Filename, Kind: upload.Kind}, nil
}

func (m *MockMediaStore) Delete(ctx context.Context, url string) error {
	m.deleted = append(m.deleted, url)
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, url)
	}
	return nil
}

type MockPostStorage struct {
	CreatePostFunc  func(ctx context.Context, data domain.PostCreationData) (domain.PostId, error)
	GetPostFunc     func(ctx context.Context, id domain.PostId) (*domain.Post, error)
	DeletePostFunc  func(ctx context.Context, id domain.PostId) (*domain.Post, error)
	BoardPostsFunc  func(ctx context.Context, slug domain.BoardSlug, limit, offset int) ([]*domain.Post, int, error)
	SearchPostsFunc func(ctx context.Context, query string, limit int) ([]*domain.Post, error)
	AllPostsFunc    func(ctx context.Context) ([]*domain.Post, error)
}

func (m *MockPostStorage) CreatePost(ctx context.Context, data domain.PostCreationData) (domain.PostId, error) {
	if m.CreatePostFunc != nil {
		return m.CreatePostFunc(ctx, data)
	}
	return 1, nil
}

func (m *MockPostStorage) GetPost(ctx context.Context, id domain.PostId) (*domain.Post, error) {
	if m.GetPostFunc != nil {
		return m.GetPostFunc(ctx, id)
	}
	return &domain.Post{Id: id}, nil
}

func (m *MockPostStorage) DeletePost(ctx context.Context, id domain.PostId) (*domain.Post, error) {
	if m.DeletePostFunc != nil {
		return m.DeletePostFunc(ctx, id)
	}
	return &domain.Post{Id: id}, nil
}

func (m *MockPostStorage) BoardPosts(ctx context.Context, slug domain.BoardSlug, limit, offset int) ([]*domain.Post, int, error) {
	if m.BoardPostsFunc != nil {
		return m.BoardPostsFunc(ctx, slug, limit, offset)
	}
	return []*domain.Post{}, 0, nil
}

func (m *MockPostStorage) SearchPosts(ctx context.Context, query string, limit int) ([]*domain.Post, error) {
	if m.SearchPostsFunc != nil {
		return m.SearchPostsFunc(ctx, query, limit)
	}
	return []*domain.Post{}, nil
}

func (m *MockPostStorage) AllPosts(ctx context.Context) ([]*domain.Post, error) {
	if m.AllPostsFunc != nil {
		return m.AllPostsFunc(ctx)
	}
	return []*domain.Post{}, nil
}

type MockCommentStorage struct {
	CreateCommentFunc func(ctx context.Context, data domain.CommentCreationData) (domain.CommentId, error)
	GetCommentFunc    func(ctx context.Context, id domain.CommentId) (*domain.Comment, error)
	DeleteCommentFunc func(ctx context.Context, id domain.CommentId) (*domain.Comment, error)
	PostCommentsFunc  func(ctx context.Context, postId domain.PostId) ([]*domain.Comment, error)
	AllCommentsFunc   func(ctx context.Context) ([]*domain.Comment, error)
}

func (m *MockCommentStorage) CreateComment(ctx context.Context, data domain.CommentCreationData) (domain.CommentId, error) {
	if m.CreateCommentFunc != nil {
		return m.CreateCommentFunc(ctx, data)
	}
	return 1, nil
}

func (m *MockCommentStorage) GetComment(ctx context.Context, id domain.CommentId) (*domain.Comment, error) {
	if m.GetCommentFunc != nil {
		return m.GetCommentFunc(ctx, id)
	}
	return nil, internal_errors.NotFound("Comment not found")
}

func (m *MockCommentStorage) DeleteComment(ctx context.Context, id domain.CommentId) (*domain.Comment, error) {
	if m.DeleteCommentFunc != nil {
		return m.DeleteCommentFunc(ctx, id)
	}
	return &domain.Comment{Id: id}, nil
}

func (m *MockCommentStorage) PostComments(ctx context.Context, postId domain.PostId) ([]*domain.Comment, error) {
	if m.PostCommentsFunc != nil {
		return m.PostCommentsFunc(ctx, postId)
	}
	return []*domain.Comment{}, nil
}

func (m *MockCommentStorage) AllComments(ctx context.Context) ([]*domain.Comment, error) {
	if m.AllCommentsFunc != nil {
		return m.AllCommentsFunc(ctx)
	}
	return []*domain.Comment{}, nil
}

type MockReportStorage struct {
	CreateReportFunc  func(ctx context.Context, data domain.ReportCreationData) (domain.ReportId, error)
	ReportsFunc       func(ctx context.Context, status *domain.ReportStatus) ([]*domain.Report, error)
	ResolveReportFunc func(ctx context.Context, id domain.ReportId, by domain.UserId) (bool, error)
}

func (m *MockReportStorage) CreateReport(ctx context.Context, data domain.ReportCreationData) (domain.ReportId, error) {
	if m.CreateReportFunc != nil {
		return m.CreateReportFunc(ctx, data)
	}
	return 1, nil
}

func (m *MockReportStorage) Reports(ctx context.Context, status *domain.ReportStatus) ([]*domain.Report, error) {
	if m.ReportsFunc != nil {
		return m.ReportsFunc(ctx, status)
	}
	return []*domain.Report{}, nil
}

func (m *MockReportStorage) ResolveReport(ctx context.Context, id domain.ReportId, by domain.UserId) (bool, error) {
	if m.ResolveReportFunc != nil {
		return m.ResolveReportFunc(ctx, id, by)
	}
	return true, nil
}

// MockBoards is a catalog that knows the listed slugs.
type MockBoards struct {
	slugs []domain.BoardSlug
}

func (m *MockBoards) List() []domain.Board {
	boards := make([]domain.Board, len(m.slugs))
	for i, s := range m.slugs {
		boards[i] = domain.Board{Slug: s, Name: s}
	}
	return boards
}

func (m *MockBoards) Get(slug domain.BoardSlug) (*domain.Board, error) {
	for _, s := range m.slugs {
		if s == slug {
			return &domain.Board{Slug: s, Name: s}, nil
		}
	}
	return nil, internal_errors.NotFound("Board not found")
}

func (m *MockBoards) Exists(slug domain.BoardSlug) bool {
	_, err := m.Get(slug)
	return err == nil
}
