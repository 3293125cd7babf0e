package handler

import (
	"net/http"

	"github.com/desichan/desichan/shared/api"
	"github.com/desichan/desichan/shared/domain"
	"github.com/desichan/desichan/shared/utils"
)

// Reports lists the moderation queue. ?status= is pending (default), resolved or all.
func (h *Handler) Reports(w http.ResponseWriter, r *http.Request) {
	user := currentUser(w, r)
	if user == nil {
		return
	}

	var (
		reports []*domain.ReportView
		err     error
	)
	switch status := r.URL.Query().Get("status"); status {
	case "", string(domain.ReportPending):
		reports, err = h.reports.Pending(r.Context(), user.Id)
	case "all":
		reports, err = h.reports.List(r.Context(), user.Id, nil)
	case string(domain.ReportResolved):
		s := domain.ReportResolved
		reports, err = h.reports.List(r.Context(), user.Id, &s)
	default:
		http.Error(w, "invalid status: must be pending, resolved or all", http.StatusBadRequest)
		return
	}
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.ReportListResponse{Reports: reports})
}

func (h *Handler) ResolveReport(w http.ResponseWriter, r *http.Request) {
	user := currentUser(w, r)
	if user == nil {
		return
	}
	id, err := idParam(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.reports.Resolve(r.Context(), user.Id, id); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AllPosts(w http.ResponseWriter, r *http.Request) {
	user := currentUser(w, r)
	if user == nil {
		return
	}
	posts, err := h.posts.ListAll(r.Context(), user.Id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.PostListResponse{Posts: posts})
}

func (h *Handler) AllComments(w http.ResponseWriter, r *http.Request) {
	user := currentUser(w, r)
	if user == nil {
		return
	}
	comments, err := h.comments.ListAll(r.Context(), user.Id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.CommentListResponse{Comments: comments})
}
