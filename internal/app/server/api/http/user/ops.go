package user

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) registerOp() huma.Operation {
	return huma.Operation{
		OperationID:   "user-register",
		Method:        http.MethodPost,
		Path:          "/api/v1/user/register",
		Summary:       "Регистрация пользователя",
		Tags:          []string{"users"},
		DefaultStatus: http.StatusCreated,
		Errors:        []int{http.StatusConflict, http.StatusUnprocessableEntity},
		Middlewares:   h.public,
	}
}

func (h *Handler) loginOp() huma.Operation {
	return huma.Operation{
		OperationID: "user-login",
		Method:      http.MethodPost,
		Path:        "/api/v1/user/login",
		Summary:     "Авторизация пользователя",
		Tags:        []string{"users"},
		Errors:      []int{http.StatusUnauthorized, http.StatusTooManyRequests},
		Middlewares: h.limited,
	}
}

func (h *Handler) logoutOp() huma.Operation {
	return huma.Operation{
		OperationID: "user-logout",
		Method:      http.MethodPost,
		Path:        "/api/v1/user/logout",
		Summary:     "Завершение сессии",
		Tags:        []string{"users"},
		Security:    []map[string][]string{{"bearer": {}}},
		Errors:      []int{http.StatusUnauthorized},
		Middlewares: h.private,
	}
}

func (h *Handler) meOp() huma.Operation {
	return huma.Operation{
		OperationID: "user-me",
		Method:      http.MethodGet,
		Path:        "/api/v1/user/me",
		Summary:     "Текущий пользователь",
		Tags:        []string{"users"},
		Security:    []map[string][]string{{"bearer": {}}},
		Errors:      []int{http.StatusUnauthorized},
		Middlewares: h.private,
	}
}
