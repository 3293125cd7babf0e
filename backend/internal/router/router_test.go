package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/desichan/desichan/backend/internal/handler"
	"github.com/desichan/desichan/backend/internal/setup"
	"github.com/desichan/desichan/shared/config"
	"github.com/desichan/desichan/shared/domain"
	internal_errors "github.com/desichan/desichan/shared/errors"
	"github.com/desichan/desichan/shared/jwt"
	mw "github.com/desichan/desichan/shared/middleware"
	rl "github.com/desichan/desichan/shared/middleware/ratelimiter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingOK struct{}

func (pingOK) Ping(ctx context.Context) error { return nil }

type directory map[domain.UserId]*domain.User

func (d directory) User(ctx context.Context, id domain.UserId) (*domain.User, error) {
	if u, ok := d[id]; ok {
		return u, nil
	}
	return nil, internal_errors.NotFound("User not found")
}

type fixture struct {
	router http.Handler
	jwt    jwt.JwtService
	media  string
}

func newFixture(t *testing.T, authLimit *rl.UserRateLimiter) *fixture {
	t.Helper()
	cfg := &config.Config{Public: config.Public{
		JwtTTL: time.Hour,
		Media:  config.Media{URLPrefix: "/media"},
	}}
	jwtService := jwt.New("test-key", time.Hour)
	users := directory{
		1: {Id: 1, Username: "user"},
		2: {Id: 2, Username: "mod", Admin: true},
	}
	if authLimit == nil {
		authLimit = rl.New(100, 100, time.Hour)
	}
	limits := setup.RateLimits{Auth: authLimit, Write: rl.New(100, 100, time.Hour), Read: rl.New(100, 100, time.Hour)}
	t.Cleanup(func() {
		limits.Auth.Stop()
		limits.Write.Stop()
		limits.Read.Stop()
	})

	mediaRoot := t.TempDir()
	deps := &setup.Dependencies{
		Config:         cfg,
		Handler:        handler.New(nil, nil, nil, nil, nil, nil, pingOK{}, cfg),
		AuthMiddleware: mw.NewAuth(jwtService, users, false),
		RateLimits:     limits,
		MediaRoot:      mediaRoot,
	}
	return &fixture{router: New(deps), jwt: jwtService, media: mediaRoot}
}

func (f *fixture) token(t *testing.T, id domain.UserId) string {
	t.Helper()
	token, err := f.jwt.NewToken(domain.User{Id: id})
	require.NoError(t, err)
	return token
}

func (f *fixture) do(method, url, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)
	return rr
}

func TestProbes(t *testing.T) {
	f := newFixture(t, nil)

	rr := f.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))

	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/ready", "").Code)
	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/metrics", "").Code)
	assert.Equal(t, http.StatusNotFound, f.do(http.MethodGet, "/v1/nope", "").Code)
}

func TestAuthGroups(t *testing.T) {
	f := newFixture(t, nil)

	t.Run("me needs a token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodGet, "/v1/me", "").Code)
		assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/v1/me", f.token(t, 1)).Code)
	})

	t.Run("token for a deleted account", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodGet, "/v1/me", f.token(t, 404)).Code)
	})

	t.Run("admin routes", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodGet, "/v1/admin/reports?status=bogus", "").Code)
		assert.Equal(t, http.StatusForbidden, f.do(http.MethodGet, "/v1/admin/reports?status=bogus", f.token(t, 1)).Code)
		// the admin gets through to the handler, which rejects the status before touching any service
		assert.Equal(t, http.StatusBadRequest, f.do(http.MethodGet, "/v1/admin/reports?status=bogus", f.token(t, 2)).Code)
	})

	t.Run("writes need a token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodPost, "/v1/boards/b/posts", "").Code)
		assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodDelete, "/v1/posts/1", "").Code)
		assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodPost, "/v1/reports", "").Code)
	})
}

func TestAuthRateLimit(t *testing.T) {
	f := newFixture(t, rl.New(0.001, 2, time.Hour))

	// bodies are empty so the handler answers 400, but only after the limiter let the request in
	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodPost, "/v1/auth/login", "").Code)
	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodPost, "/v1/auth/login", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, f.do(http.MethodPost, "/v1/auth/login", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, f.do(http.MethodPost, "/v1/auth/register", "").Code)

	// logout is not limited
	assert.Equal(t, http.StatusOK, f.do(http.MethodPost, "/v1/auth/logout", "").Code)
}

func TestMediaFiles(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, os.MkdirAll(filepath.Join(f.media, "image"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(f.media, "image", "a.txt"), []byte("blob"), 0o644))

	rr := f.do(http.MethodGet, "/media/image/a.txt", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "blob", rr.Body.String())

	assert.Equal(t, http.StatusNotFound, f.do(http.MethodGet, "/media/image/missing.png", "").Code)
}
