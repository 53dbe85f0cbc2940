package types

import (
	"context"
	"errors"

	"loancalc/internal/app/client"
)

type contextKey string

const (
	// ClientAppKey - ключ, под которым корневая команда кладет *client.App в контекст
	ClientAppKey contextKey = "client_app"
	// OutputJSONKey - признак вывода в JSON (флаг --json)
	OutputJSONKey contextKey = "output_json"
)

var ErrNoApp = errors.New("приложение не инициализировано")

func App(ctx context.Context) (*client.App, error) {
	app, ok := ctx.Value(ClientAppKey).(*client.App)
	if !ok || app == nil {
		return nil, ErrNoApp
	}
	return app, nil
}

func JSONOutput(ctx context.Context) bool {
	v, _ := ctx.Value(OutputJSONKey).(bool)
	return v
}
