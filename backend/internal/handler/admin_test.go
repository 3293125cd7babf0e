package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/desichan/desichan/shared/api"
	"github.com/desichan/desichan/shared/domain"
	internal_errors "github.com/desichan/desichan/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var moderator = &domain.User{Id: 99, Username: "mod", Admin: true}

func TestFileReport(t *testing.T) {
	route := "/v1/reports"

	t.Run("filed", func(t *testing.T) {
		h := newTestHandler()
		var got domain.ReportCreationData
		h.reports = &MockReportService{
			FileFunc: func(ctx context.Context, data domain.ReportCreationData) (domain.ReportId, error) {
				got = data
				return 5, nil
			},
		}

		body := []byte(`{"content_id":12,"content_type":"Comment","reason":"spam"}`)
		rr := serve(http.MethodPost, route, h.FileReport, asUser(createRequest(t, http.MethodPost, route, body), author))

		require.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, domain.ReportCreationData{
			Target:   domain.ReportTarget{Kind: domain.ContentComment, Id: 12},
			Reporter: author.Id,
			Reason:   "spam",
		}, got)
	})

	for name, body := range map[string]string{
		"unknown kind":   `{"content_id":12,"content_type":"Board","reason":"spam"}`,
		"missing reason": `{"content_id":12,"content_type":"Post"}`,
		"missing id":     `{"content_type":"Post","reason":"spam"}`,
	} {
		t.Run(name, func(t *testing.T) {
			h := newTestHandler()
			rr := serve(http.MethodPost, route, h.FileReport, asUser(createRequest(t, http.MethodPost, route, []byte(body)), author))
			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

func TestReports(t *testing.T) {
	route := "/v1/admin/reports"

	t.Run("default is pending", func(t *testing.T) {
		h := newTestHandler()
		pendingCalled := false
		h.reports = &MockReportService{
			PendingFunc: func(ctx context.Context, actor domain.UserId) ([]*domain.ReportView, error) {
				pendingCalled = true
				assert.Equal(t, moderator.Id, actor)
				return []*domain.ReportView{{Report: domain.Report{Id: 1}, ReporterName: "anon", Link: "/posts/3", TargetExists: true}}, nil
			},
		}

		rr := serve(http.MethodGet, route, h.Reports, asUser(createRequest(t, http.MethodGet, route, nil), moderator))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, pendingCalled)
		var resp api.ReportListResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		require.Len(t, resp.Reports, 1)
		assert.Equal(t, "/posts/3", resp.Reports[0].Link)
	})

	tests := []struct {
		query      string
		wantStatus *domain.ReportStatus
	}{
		{"?status=all", nil},
		{"?status=resolved", ptr(domain.ReportResolved)},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			h := newTestHandler()
			called := false
			h.reports = &MockReportService{
				ListFunc: func(ctx context.Context, actor domain.UserId, status *domain.ReportStatus) ([]*domain.ReportView, error) {
					called = true
					assert.Equal(t, tt.wantStatus, status)
					return []*domain.ReportView{}, nil
				},
			}
			rr := serve(http.MethodGet, route, h.Reports, asUser(createRequest(t, http.MethodGet, route+tt.query, nil), moderator))
			assert.Equal(t, http.StatusOK, rr.Code)
			assert.True(t, called)
		})
	}

	t.Run("bad status", func(t *testing.T) {
		h := newTestHandler()
		rr := serve(http.MethodGet, route, h.Reports, asUser(createRequest(t, http.MethodGet, route+"?status=open", nil), moderator))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("gate denies", func(t *testing.T) {
		h := newTestHandler()
		h.reports = &MockReportService{
			PendingFunc: func(ctx context.Context, actor domain.UserId) ([]*domain.ReportView, error) {
				return nil, internal_errors.Authorization("Access denied. Only for admin")
			},
		}
		rr := serve(http.MethodGet, route, h.Reports, asUser(createRequest(t, http.MethodGet, route, nil), author))
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})
}

func ptr[T any](v T) *T { return &v }

func TestResolveReport(t *testing.T) {
	pattern := "/v1/admin/reports/{id}/resolve"

	t.Run("resolved", func(t *testing.T) {
		h := newTestHandler()
		var gotId int64
		h.reports = &MockReportService{
			ResolveFunc: func(ctx context.Context, actor domain.UserId, id domain.ReportId) error {
				gotId = id
				return nil
			},
		}
		rr := serve(http.MethodPut, pattern, h.ResolveReport, asUser(createRequest(t, http.MethodPut, "/v1/admin/reports/4/resolve", nil), moderator))
		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Equal(t, int64(4), gotId)
	})

	t.Run("missing report", func(t *testing.T) {
		h := newTestHandler()
		h.reports = &MockReportService{
			ResolveFunc: func(ctx context.Context, actor domain.UserId, id domain.ReportId) error {
				return internal_errors.NotFound("Report not found")
			},
		}
		rr := serve(http.MethodPut, pattern, h.ResolveReport, asUser(createRequest(t, http.MethodPut, "/v1/admin/reports/4/resolve", nil), moderator))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestAdminListings(t *testing.T) {
	h := newTestHandler()
	h.posts = &MockPostService{
		ListAllFunc: func(ctx context.Context, actor domain.UserId) ([]*domain.Post, error) {
			return []*domain.Post{{Id: 1}, {Id: 2}}, nil
		},
	}
	h.comments = &MockCommentService{
		ListAllFunc: func(ctx context.Context, actor domain.UserId) ([]*domain.Comment, error) {
			return []*domain.Comment{{Id: 3}}, nil
		},
	}

	rr := serve(http.MethodGet, "/v1/admin/posts", h.AllPosts, asUser(createRequest(t, http.MethodGet, "/v1/admin/posts", nil), moderator))
	require.Equal(t, http.StatusOK, rr.Code)
	var posts api.PostListResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &posts))
	assert.Len(t, posts.Posts, 2)

	rr = serve(http.MethodGet, "/v1/admin/comments", h.AllComments, asUser(createRequest(t, http.MethodGet, "/v1/admin/comments", nil), moderator))
	require.Equal(t, http.StatusOK, rr.Code)
	var comments api.CommentListResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &comments))
	assert.Len(t, comments.Comments, 1)
}
