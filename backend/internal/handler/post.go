package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/desichan/desichan/shared/api"
	"github.com/desichan/desichan/shared/domain"
	"github.com/desichan/desichan/shared/utils"
)

func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	user := currentUser(w, r)
	if user == nil {
		return
	}

	body, upload, cleanup, err := parseContentRequest[api.CreatePostRequest](w, r, h)
	defer cleanup()
	if err != nil {
		writeRequestError(w, err)
		return
	}

	id, err := h.posts.Create(r.Context(), domain.PostCreationData{
		Title:   body.Title,
		Content: body.Content,
		Board:   chi.URLParam(r, "slug"),
		Author:  user.Id,
	}, upload)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, api.CreatedResponse{Id: id})
}

func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	post, err := h.posts.Get(r.Context(), id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, post)
}

func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	user := currentUser(w, r)
	if user == nil {
		return
	}
	id, err := idParam(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.posts.Delete(r.Context(), user.Id, id); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.PostListResponse{Posts: posts})
}
