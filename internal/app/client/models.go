package client

import (
	"fmt"
	"time"

	"loancalc/internal/domain/amortization"
	"loancalc/internal/domain/calculation"
)

// APIError - ошибка, которую вернул сервер (формат huma problem+json)
type APIError struct {
	Status int    `json:"status"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("ошибка сервера (%d): %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("ошибка сервера: статус %d", e.Status)
}

type registerRequest struct {
	Login           string `json:"login"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

type credentials struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type RegisterResult struct {
	UserID int    `json:"user_id"`
	Login  string `json:"login"`
}

type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresIn int64     `json:"expires_in"`
	IssuedAt  time.Time `json:"issued_at"`
}

type Me struct {
	UserID int    `json:"user_id"`
	Login  string `json:"login"`
}

type SaveResult struct {
	Calculation calculation.Calculation `json:"calculation"`
	SharePath   string                  `json:"share_path"`
}

type listResult struct {
	Calculations []calculation.Calculation `json:"calculations"`
}

// Shared - расчет, открытый по ссылке
type Shared struct {
	Calculation calculation.Calculation `json:"calculation"`
	Schedule    amortization.Schedule   `json:"schedule"`
}
