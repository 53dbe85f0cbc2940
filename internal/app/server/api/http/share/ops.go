package share

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) viewOp() huma.Operation {
	return huma.Operation{
		OperationID: "share-view",
		Method:      http.MethodGet,
		Path:        "/api/v1/share/{link}",
		Summary:     "Расчет по публичной ссылке",
		Tags:        []string{"share"},
		Errors:      []int{http.StatusNotFound, http.StatusTooManyRequests},
		Middlewares: h.middleware,
	}
}

func (h *Handler) exportOp() huma.Operation {
	return huma.Operation{
		OperationID: "share-export-csv",
		Method:      http.MethodGet,
		Path:        "/api/v1/share/{link}/schedule.csv",
		Summary:     "График платежей в CSV",
		Tags:        []string{"share"},
		Errors:      []int{http.StatusNotFound, http.StatusTooManyRequests},
		Middlewares: h.middleware,
	}
}
