package handler

import (
	"net/http"

	"github.com/desichan/desichan/shared/api"
	"github.com/desichan/desichan/shared/domain"
	"github.com/desichan/desichan/shared/utils"
)

// PostThread returns the comments of a post as a forest plus its render order.
func (h *Handler) PostThread(w http.ResponseWriter, r *http.Request) {
	postId, err := idParam(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	thread, err := h.comments.Thread(r.Context(), postId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.ThreadResponse{Thread: *thread})
}

func (h *Handler) CreateComment(w http.ResponseWriter, r *http.Request) {
	user := currentUser(w, r)
	if user == nil {
		return
	}
	postId, err := idParam(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	body, upload, cleanup, err := parseContentRequest[api.CreateCommentRequest](w, r, h)
	defer cleanup()
	if err != nil {
		writeRequestError(w, err)
		return
	}

	id, err := h.comments.Create(r.Context(), domain.CommentCreationData{
		PostId:   postId,
		ParentId: body.ParentId,
		Author:   user.Id,
		Content:  body.Content,
	}, upload)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, api.CreatedResponse{Id: id})
}

func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	user := currentUser(w, r)
	if user == nil {
		return
	}
	id, err := idParam(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.comments.Delete(r.Context(), user.Id, id); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
