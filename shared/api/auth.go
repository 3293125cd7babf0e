package api

import "github.com/desichan/desichan/shared/domain"

// Request DTOs

type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Response DTOs

type RegisterResponse struct {
	User domain.User `json:"user"`
}

type LoginResponse struct {
	Message     string `json:"message"`
	AccessToken string `json:"access_token,omitempty"` // Token for non-cookie clients
}

type LogoutResponse struct {
	Message string `json:"message"`
}
