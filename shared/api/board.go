package api

import "github.com/desichan/desichan/shared/domain"

type BoardListResponse struct {
	Boards []domain.Board `json:"boards"`
}
