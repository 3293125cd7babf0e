package handler

import (
	"net/http"

	"github.com/desichan/desichan/shared/api"
	"github.com/desichan/desichan/shared/utils"
)

func (h *Handler) UserPosts(w http.ResponseWriter, r *http.Request) {
	userId, err := idParam(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	posts, err := h.activity.Posts(r.Context(), userId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.PostListResponse{Posts: posts})
}

func (h *Handler) UserComments(w http.ResponseWriter, r *http.Request) {
	userId, err := idParam(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	comments, err := h.activity.Comments(r.Context(), userId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.CommentListResponse{Comments: comments})
}
