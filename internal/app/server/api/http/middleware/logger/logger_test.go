package logger

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/slog"
)

func TestLogger_Middleware(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/calculations/preview", nil)
	rec := httptest.NewRecorder()

	called := false
	New(log).Middleware()(humatest.NewContext(&huma.Operation{}, req, rec), func(ctx huma.Context) {
		called = true
		ctx.SetStatus(http.StatusCreated)
	})

	assert.True(t, called)
	out := buf.String()
	assert.Contains(t, out, `"path":"/api/v1/calculations/preview"`)
	assert.Contains(t, out, `"status":201`)
	assert.Contains(t, out, `"component":"http_logger"`)
}
