package calculation

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) previewOp() huma.Operation {
	return huma.Operation{
		OperationID: "calculation-preview",
		Method:      http.MethodPost,
		Path:        "/api/v1/calculations/preview",
		Summary:     "Расчет графика без сохранения",
		Tags:        []string{"calculations"},
		Errors:      []int{http.StatusUnprocessableEntity},
		Middlewares: h.public,
	}
}

func (h *Handler) saveOp() huma.Operation {
	return huma.Operation{
		OperationID:   "calculation-save",
		Method:        http.MethodPost,
		Path:          "/api/v1/calculations",
		Summary:       "Сохранить расчет и получить ссылку",
		Tags:          []string{"calculations"},
		DefaultStatus: http.StatusCreated,
		Security:      []map[string][]string{{"bearer": {}}},
		Errors:        []int{http.StatusUnauthorized, http.StatusUnprocessableEntity},
		Middlewares:   h.private,
	}
}

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "calculation-list",
		Method:      http.MethodGet,
		Path:        "/api/v1/calculations",
		Summary:     "Сохраненные расчеты пользователя",
		Tags:        []string{"calculations"},
		Security:    []map[string][]string{{"bearer": {}}},
		Errors:      []int{http.StatusUnauthorized},
		Middlewares: h.private,
	}
}
