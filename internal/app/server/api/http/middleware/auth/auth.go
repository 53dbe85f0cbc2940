package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"loancalc/internal/app/server/api/http/middleware"
	"loancalc/internal/domain/session"
)

type Auth struct {
	session session.Servicer
	log     *slog.Logger
}

func New(session session.Servicer, log *slog.Logger) *Auth {
	return &Auth{
		session: session,
		log:     log.With(slog.String("component", "auth_middleware")),
	}
}

type contextKey string

const (
	UserIDKey contextKey = "userID"
	LoginKey  contextKey = "login"
	TokenKey  contextKey = "token"
)

const bearerPrefix = "Bearer "

// Middleware пропускает запрос дальше только с действующей сессией
func (a *Auth) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		token, ok := BearerToken(ctx.Header("Authorization"))
		if !ok {
			a.log.Debug("missing bearer token", "path", ctx.URL().Path)
			a.unauthorized(ctx)
			return
		}

		sess, ok, err := a.session.Current(ctx.Context(), token)
		if err != nil {
			a.log.Error("session lookup failed", "error", err)
			if werr := middleware.WriteError(ctx, http.StatusInternalServerError, "internal error"); werr != nil {
				a.log.Error("write response", "error", werr)
			}
			return
		}
		if !ok {
			a.unauthorized(ctx)
			return
		}

		newCtx := WithUserID(ctx.Context(), sess.UserID)
		newCtx = context.WithValue(newCtx, LoginKey, sess.Login)
		newCtx = context.WithValue(newCtx, TokenKey, token)

		next(huma.WithContext(ctx, newCtx))
	}
}

func (a *Auth) unauthorized(ctx huma.Context) {
	if err := middleware.WriteError(ctx, http.StatusUnauthorized, "Unauthorized"); err != nil {
		a.log.Error("write response", "error", err)
	}
}

// BearerToken достает токен из заголовка Authorization
func BearerToken(header string) (string, bool) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	return token, token != ""
}

func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

func GetUserID(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(UserIDKey).(int)
	return userID, ok
}

func GetLogin(ctx context.Context) string {
	login, _ := ctx.Value(LoginKey).(string)
	return login
}

func GetToken(ctx context.Context) string {
	token, _ := ctx.Value(TokenKey).(string)
	return token
}
