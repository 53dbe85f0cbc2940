package share

import (
	"context"
	"fmt"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"loancalc/internal/app/server/api/http/apierr"
	"loancalc/internal/domain/calculation"
)

// Handler отдает сохраненные расчеты по публичной ссылке, без авторизации.
type Handler struct {
	service    calculation.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service calculation.Servicer, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log.With(slog.String("component", "share_handler")),
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.viewOp(), h.view)
	huma.Register(api, h.exportOp(), h.export)
}

func (h *Handler) view(ctx context.Context, input *linkInput) (*viewOutput, error) {
	calc, schedule, err := h.service.Shared(ctx, input.Link)
	if err != nil {
		return nil, apierr.From(h.log, err)
	}

	return &viewOutput{
		Body: ViewResponse{Calculation: toShared(calc), Schedule: schedule},
	}, nil
}

func (h *Handler) export(ctx context.Context, input *linkInput) (*csvOutput, error) {
	data, err := h.service.ExportCSV(ctx, input.Link)
	if err != nil {
		return nil, apierr.From(h.log, err)
	}

	return &csvOutput{
		ContentType:        "text/csv; charset=utf-8",
		ContentDisposition: fmt.Sprintf(`attachment; filename="schedule-%s.csv"`, input.Link),
		Body:               data,
	}, nil
}
