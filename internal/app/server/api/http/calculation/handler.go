package calculation

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"loancalc/internal/app/server/api/http/apierr"
	"loancalc/internal/app/server/api/http/middleware/auth"
	"loancalc/internal/domain/calculation"
)

const sharePathPrefix = "/api/v1/share/"

type Handler struct {
	service calculation.Servicer
	log     *slog.Logger
	public  huma.Middlewares
	private huma.Middlewares
}

func NewHandler(service calculation.Servicer, log *slog.Logger, public, private huma.Middlewares) *Handler {
	return &Handler{
		service: service,
		log:     log.With(slog.String("component", "calculation_handler")),
		public:  public,
		private: private,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.previewOp(), h.preview)
	huma.Register(api, h.saveOp(), h.save)
	huma.Register(api, h.listOp(), h.list)
}

func (h *Handler) preview(_ context.Context, input *previewInput) (*previewOutput, error) {
	schedule, err := h.service.Calculate(input.Body.Params())
	if err != nil {
		return nil, apierr.From(h.log, err)
	}

	return &previewOutput{Body: schedule}, nil
}

func (h *Handler) save(ctx context.Context, input *saveInput) (*saveOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	calc, err := h.service.Save(ctx, userID, input.Body.Params())
	if err != nil {
		return nil, apierr.From(h.log, err)
	}

	path := sharePathPrefix + calc.UniqueLink

	return &saveOutput{
		Location: path,
		Body:     SaveResponse{Calculation: calc, SharePath: path},
	}, nil
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*listOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	calcs, err := h.service.List(ctx, userID)
	if err != nil {
		return nil, apierr.From(h.log, err)
	}

	return &listOutput{Body: ListResponse{Calculations: calcs}}, nil
}
