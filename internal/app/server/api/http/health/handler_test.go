package health

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/slog"
)

func TestHandler_healthCheck(t *testing.T) {
	fixed := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	handler := NewHandler(slog.Default(), huma.Middlewares{})
	handler.now = func() time.Time { return fixed }

	output, err := handler.healthCheck(context.Background(), &Input{})

	assert.NoError(t, err)
	assert.Equal(t, "OK", output.Body.Status)
	assert.Equal(t, fixed, output.Body.Time)
}

func TestHandler_Route(t *testing.T) {
	_, api := humatest.New(t)
	NewHandler(slog.Default(), huma.Middlewares{}).SetupRoutes(api)

	resp := api.Get("/api/v1/health")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"status":"OK"`)
}
