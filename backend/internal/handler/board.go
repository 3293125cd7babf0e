package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/desichan/desichan/shared/api"
	"github.com/desichan/desichan/shared/utils"
)

func (h *Handler) ListBoards(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, api.BoardListResponse{Boards: h.boards.List()})
}

// BoardPosts serves one page of a board. A missing or malformed page is the first page.
func (h *Handler) BoardPosts(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	page := 1
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if parsed, err := strconv.Atoi(pageStr); err == nil && parsed > 0 {
			page = parsed
		}
	}

	result, err := h.posts.ListByBoard(r.Context(), slug, page)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, result)
}
