package api

import "github.com/desichan/desichan/shared/domain"

type MeResponse struct {
	User *domain.User `json:"user"`
}
