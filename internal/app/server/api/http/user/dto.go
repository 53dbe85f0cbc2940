package user

import (
	"time"

	"loancalc/internal/domain/user"
)

type registerInput struct {
	Body user.RegisterRequest
}

type registerOutput struct {
	Body RegisterResponse
}

type RegisterResponse struct {
	ID     int    `json:"user_id"`
	Login  string `json:"login"`
	Status string `json:"status"`
}

type loginInput struct {
	Body user.BaseRequest
}

type loginOutput struct {
	Body LoginResponse
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresIn int64     `json:"expires_in" doc:"Срок жизни токена в секундах"`
	IssuedAt  time.Time `json:"issued_at"`
	Status    string    `json:"status"`
}

type logoutOutput struct {
	Body StatusResponse
}

type StatusResponse struct {
	Status string `json:"status"`
}

type meOutput struct {
	Body MeResponse
}

type MeResponse struct {
	ID    int    `json:"user_id"`
	Login string `json:"login"`
}
