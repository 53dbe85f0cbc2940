package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// WriteError пишет ответ в формате huma (application/problem+json).
func WriteError(ctx huma.Context, status int, msg string) error {
	ctx.SetHeader("Content-Type", "application/problem+json")
	ctx.SetStatus(status)
	return json.NewEncoder(ctx.BodyWriter()).Encode(huma.ErrorModel{
		Status: status,
		Title:  http.StatusText(status),
		Detail: msg,
	})
}
