package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/desichan/desichan/shared/config"
	"github.com/desichan/desichan/shared/domain"
	mw "github.com/desichan/desichan/shared/middleware"
)

type MockAuthService struct {
	RegisterFunc func(ctx context.Context, creds domain.Credentials) (*domain.User, error)
	LoginFunc    func(ctx context.Context, creds domain.Credentials) (string, error)
	UserFunc     func(ctx context.Context, id domain.UserId) (*domain.User, error)
	SetAdminFunc func(ctx context.Context, username domain.Username, admin bool) error
}

func (m *MockAuthService) Register(ctx context.Context, creds domain.Credentials) (*domain.User, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, creds)
	}
	return &domain.User{Id: 1, Username: creds.Username}, nil
}

func (m *MockAuthService) Login(ctx context.Context, creds domain.Credentials) (string, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, creds)
	}
	return "token", nil
}

func (m *MockAuthService) User(ctx context.Context, id domain.UserId) (*domain.User, error) {
	if m.UserFunc != nil {
		return m.UserFunc(ctx, id)
	}
	return &domain.User{Id: id}, nil
}

func (m *MockAuthService) SetAdmin(ctx context.Context, username domain.Username, admin bool) error {
	if m.SetAdminFunc != nil {
		return m.SetAdminFunc(ctx, username, admin)
	}
	return nil
}

type MockBoardService struct {
	ListFunc func() []domain.Board
}

func (m *MockBoardService) List() []domain.Board {
	if m.ListFunc != nil {
		return m.ListFunc()
	}
	return nil
}

func (m *MockBoardService) Get(slug domain.BoardSlug) (*domain.Board, error) {
	return &domain.Board{Slug: slug}, nil
}

func (m *MockBoardService) Exists(slug domain.BoardSlug) bool {
	return true
}

type MockPostService struct {
	CreateFunc      func(ctx context.Context, data domain.PostCreationData, upload *domain.Upload) (domain.PostId, error)
	GetFunc         func(ctx context.Context, id domain.PostId) (*domain.Post, error)
	DeleteFunc      func(ctx context.Context, actor domain.UserId, id domain.PostId) error
	ListByBoardFunc func(ctx context.Context, slug domain.BoardSlug, page int) (*domain.PostPage, error)
	SearchFunc      func(ctx context.Context, query string) ([]*domain.Post, error)
	ListAllFunc     func(ctx context.Context, actor domain.UserId) ([]*domain.Post, error)
}

func (m *MockPostService) Create(ctx context.Context, data domain.PostCreationData, upload *domain.Upload) (domain.PostId, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, data, upload)
	}
	return 1, nil
}

func (m *MockPostService) Get(ctx context.Context, id domain.PostId) (*domain.Post, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return &domain.Post{Id: id}, nil
}

func (m *MockPostService) Delete(ctx context.Context, actor domain.UserId, id domain.PostId) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, actor, id)
	}
	return nil
}

func (m *MockPostService) ListByBoard(ctx context.Context, slug domain.BoardSlug, page int) (*domain.PostPage, error) {
	if m.ListByBoardFunc != nil {
		return m.ListByBoardFunc(ctx, slug, page)
	}
	return &domain.PostPage{Board: domain.Board{Slug: slug}, Page: page}, nil
}

func (m *MockPostService) Search(ctx context.Context, query string) ([]*domain.Post, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query)
	}
	return []*domain.Post{}, nil
}

func (m *MockPostService) ListAll(ctx context.Context, actor domain.UserId) ([]*domain.Post, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx, actor)
	}
	return []*domain.Post{}, nil
}

type MockCommentService struct {
	CreateFunc  func(ctx context.Context, data domain.CommentCreationData, upload *domain.Upload) (domain.CommentId, error)
	ThreadFunc  func(ctx context.Context, postId domain.PostId) (*domain.Thread, error)
	DeleteFunc  func(ctx context.Context, actor domain.UserId, id domain.CommentId) error
	ListAllFunc func(ctx context.Context, actor domain.UserId) ([]*domain.Comment, error)
}

func (m *MockCommentService) Create(ctx context.Context, data domain.CommentCreationData, upload *domain.Upload) (domain.CommentId, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, data, upload)
	}
	return 1, nil
}

func (m *MockCommentService) Thread(ctx context.Context, postId domain.PostId) (*domain.Thread, error) {
	if m.ThreadFunc != nil {
		return m.ThreadFunc(ctx, postId)
	}
	return &domain.Thread{PostId: postId, Roots: []*domain.ThreadNode{}, Order: []domain.ThreadEntry{}}, nil
}

func (m *MockCommentService) Delete(ctx context.Context, actor domain.UserId, id domain.CommentId) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, actor, id)
	}
	return nil
}

func (m *MockCommentService) ListAll(ctx context.Context, actor domain.UserId) ([]*domain.Comment, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx, actor)
	}
	return []*domain.Comment{}, nil
}

type MockReportService struct {
	FileFunc    func(ctx context.Context, data domain.ReportCreationData) (domain.ReportId, error)
	PendingFunc func(ctx context.Context, actor domain.UserId) ([]*domain.ReportView, error)
	ListFunc    func(ctx context.Context, actor domain.UserId, status *domain.ReportStatus) ([]*domain.ReportView, error)
	ResolveFunc func(ctx context.Context, actor domain.UserId, id domain.ReportId) error
}

func (m *MockReportService) File(ctx context.Context, data domain.ReportCreationData) (domain.ReportId, error) {
	if m.FileFunc != nil {
		return m.FileFunc(ctx, data)
	}
	return 1, nil
}

func (m *MockReportService) Pending(ctx context.Context, actor domain.UserId) ([]*domain.ReportView, error) {
	if m.PendingFunc != nil {
		return m.PendingFunc(ctx, actor)
	}
	return []*domain.ReportView{}, nil
}

func (m *MockReportService) List(ctx context.Context, actor domain.UserId, status *domain.ReportStatus) ([]*domain.ReportView, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, actor, status)
	}
	return []*domain.ReportView{}, nil
}

func (m *MockReportService) Resolve(ctx context.Context, actor domain.UserId, id domain.ReportId) error {
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, actor, id)
	}
	return nil
}

type MockUserActivityService struct {
	PostsFunc    func(ctx context.Context, userId domain.UserId) ([]*domain.Post, error)
	CommentsFunc func(ctx context.Context, userId domain.UserId) ([]*domain.Comment, error)
}

func (m *MockUserActivityService) Posts(ctx context.Context, userId domain.UserId) ([]*domain.Post, error) {
	if m.PostsFunc != nil {
		return m.PostsFunc(ctx, userId)
	}
	return []*domain.Post{}, nil
}

func (m *MockUserActivityService) Comments(ctx context.Context, userId domain.UserId) ([]*domain.Comment, error) {
	if m.CommentsFunc != nil {
		return m.CommentsFunc(ctx, userId)
	}
	return []*domain.Comment{}, nil
}

type MockHealthChecker struct {
	PingFunc func(ctx context.Context) error
}

func (m *MockHealthChecker) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}

func testConfig() *config.Config {
	return &config.Config{Public: config.Public{
		JwtTTL: time.Hour,
		Media: config.Media{
			MaxSizeBytes:          1 << 20,
			AllowedImageMimeTypes: []string{"image/png", "image/jpeg"},
			AllowedVideoMimeTypes: []string{"video/mp4"},
		},
	}}
}

// newTestHandler wires every service to a default mock; tests replace the ones they care about.
func newTestHandler() *Handler {
	return New(
		&MockAuthService{},
		&MockBoardService{},
		&MockPostService{},
		&MockCommentService{},
		&MockReportService{},
		&MockUserActivityService{},
		&MockHealthChecker{},
		testConfig(),
	)
}

func createRequest(t *testing.T, method, url string, body []byte, cookies ...*http.Cookie) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, url, bytes.NewBuffer(body))
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

// asUser puts user in the request context the way NeedAuth does.
func asUser(req *http.Request, user *domain.User) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), mw.UserClaimsKey, user))
}

// serve routes req through a chi router with a single pattern so URL params resolve.
func serve(method, pattern string, fn http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	router.Method(method, pattern, fn)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}
