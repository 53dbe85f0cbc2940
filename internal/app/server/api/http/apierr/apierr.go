// Package apierr переводит доменные ошибки в HTTP-ответы huma.
package apierr

import (
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"loancalc/internal/domain/amortization"
	"loancalc/internal/domain/calculation"
	"loancalc/internal/domain/user"
)

const InvalidCredentials = "invalid credentials"

// From возвращает huma-ошибку для err. Неизвестные ошибки логируются и отдаются как 500 без деталей.
func From(log *slog.Logger, err error) error {
	switch {
	case errors.Is(err, amortization.ErrInvalidParams),
		errors.Is(err, amortization.ErrUnknownPaymentType),
		errors.Is(err, user.ErrInvalidInput),
		errors.Is(err, user.ErrPasswordMismatch):
		return huma.Error422UnprocessableEntity(err.Error())
	case errors.Is(err, user.ErrAlreadyExists):
		return huma.Error409Conflict(err.Error())
	case errors.Is(err, user.ErrInvalidAuth):
		return huma.Error401Unauthorized(InvalidCredentials)
	case errors.Is(err, calculation.ErrOwnerNotFound):
		return huma.Error401Unauthorized("Unauthorized")
	case errors.Is(err, calculation.ErrNotFound), errors.Is(err, user.ErrNotFound):
		return huma.Error404NotFound("not found")
	default:
		log.Error("request failed", "error", err)
		return huma.Error500InternalServerError("internal error")
	}
}
