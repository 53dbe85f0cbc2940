package user

import (
	"context"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"loancalc/internal/app/server/api/http/apierr"
	"loancalc/internal/app/server/api/http/middleware/auth"
	"loancalc/internal/domain/session"
	"loancalc/internal/domain/user"
)

type Handler struct {
	service    user.Servicer
	session    session.Servicer
	sessionTTL time.Duration
	log        *slog.Logger
	public     huma.Middlewares
	limited    huma.Middlewares
	private    huma.Middlewares
	now        func() time.Time
}

// NewHandler: public - регистрация, limited - вход (с ограничением частоты), private - под авторизацией.
func NewHandler(service user.Servicer, session session.Servicer, sessionTTL time.Duration, log *slog.Logger, public, limited, private huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		session:    session,
		sessionTTL: sessionTTL,
		log:        log.With(slog.String("component", "user_handler")),
		public:     public,
		limited:    limited,
		private:    private,
		now:        time.Now,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.registerOp(), h.register)
	huma.Register(api, h.loginOp(), h.login)
	huma.Register(api, h.logoutOp(), h.logout)
	huma.Register(api, h.meOp(), h.me)
}

func (h *Handler) register(ctx context.Context, input *registerInput) (*registerOutput, error) {
	if err := user.ValidateConfirmation(input.Body.Password, input.Body.PasswordConfirm); err != nil {
		return nil, apierr.From(h.log, err)
	}

	userID, err := h.service.Register(ctx, input.Body.Login, input.Body.Password)
	if err != nil {
		return nil, apierr.From(h.log, err)
	}

	return &registerOutput{
		Body: RegisterResponse{ID: userID, Login: input.Body.Login, Status: "Ok"},
	}, nil
}

func (h *Handler) login(ctx context.Context, input *loginInput) (*loginOutput, error) {
	u, err := h.service.Authenticate(ctx, input.Body.Login, input.Body.Password)
	if err != nil {
		return nil, apierr.From(h.log, err)
	}

	token, err := h.session.Activate(ctx, u.ID)
	if err != nil {
		return nil, apierr.From(h.log, err)
	}

	return &loginOutput{
		Body: LoginResponse{
			Token:     token,
			ExpiresIn: int64(h.sessionTTL / time.Second),
			IssuedAt:  h.now().UTC(),
			Status:    "Ok",
		},
	}, nil
}

func (h *Handler) logout(ctx context.Context, _ *struct{}) (*logoutOutput, error) {
	token := auth.GetToken(ctx)
	if token == "" {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	if err := h.session.Deactivate(ctx, token); err != nil {
		return nil, apierr.From(h.log, err)
	}

	return &logoutOutput{Body: StatusResponse{Status: "Ok"}}, nil
}

func (h *Handler) me(ctx context.Context, _ *struct{}) (*meOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	return &meOutput{
		Body: MeResponse{ID: userID, Login: auth.GetLogin(ctx)},
	}, nil
}
