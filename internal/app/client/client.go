package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/exp/slog"

	"loancalc/internal/app/client/config"
	"loancalc/internal/domain/amortization"
	"loancalc/internal/domain/calculation"
)

// App - фасад клиента для команд CLI
type App struct {
	config     *config.Config
	log        *slog.Logger
	httpClient *httpClient
	tokens     *TokenStore
}

func New(cfg *config.Config, log *slog.Logger) *App {
	app := &App{
		config:     cfg,
		log:        log,
		httpClient: NewHTTPClient(cfg, log),
		tokens:     NewTokenStore(cfg.TokenPath),
	}

	if token, err := app.tokens.Load(); err == nil {
		app.httpClient.SetToken(token)
		log.Debug("Токен загружен из файла")
	}

	return app
}

func (a *App) IsAuthenticated() bool {
	_, err := a.tokens.Load()
	return err == nil
}

func (a *App) CheckConnection(ctx context.Context) error {
	return a.httpClient.HealthCheck(ctx)
}

func (a *App) Register(ctx context.Context, login, password, confirm string) (RegisterResult, error) {
	res, err := a.httpClient.Register(ctx, login, password, confirm)
	if err != nil {
		if IsStatus(err, http.StatusConflict) {
			return RegisterResult{}, fmt.Errorf("логин %q уже занят", login)
		}
		return RegisterResult{}, err
	}

	a.log.Info("Пользователь успешно зарегистрирован", "login", login)
	return res, nil
}

// Login выполняет вход и сохраняет токен
func (a *App) Login(ctx context.Context, login, password string) (LoginResult, error) {
	res, err := a.httpClient.Login(ctx, login, password)
	if err != nil {
		if IsStatus(err, http.StatusUnauthorized) {
			return LoginResult{}, errors.New("неверный логин или пароль")
		}
		return LoginResult{}, err
	}

	if err := a.tokens.Save(res.Token); err != nil {
		return LoginResult{}, err
	}

	a.log.Info("Вход выполнен успешно", "login", login)
	return res, nil
}

// Logout завершает сессию на сервере и удаляет локальный токен в любом случае
func (a *App) Logout(ctx context.Context) error {
	if !a.IsAuthenticated() {
		return ErrNotLoggedIn
	}

	serverErr := a.httpClient.Logout(ctx)
	if serverErr != nil && IsStatus(serverErr, http.StatusUnauthorized) {
		serverErr = nil
	}

	if err := a.tokens.Clear(); err != nil {
		return err
	}
	a.httpClient.SetToken("")

	return serverErr
}

func (a *App) WhoAmI(ctx context.Context) (Me, error) {
	if !a.IsAuthenticated() {
		return Me{}, ErrNotLoggedIn
	}
	me, err := a.httpClient.Me(ctx)
	return me, a.authError(err)
}

func (a *App) Preview(ctx context.Context, p amortization.Params) (amortization.Schedule, error) {
	if err := p.Validate(); err != nil {
		return amortization.Schedule{}, err
	}
	return a.httpClient.Preview(ctx, p)
}

func (a *App) Save(ctx context.Context, p amortization.Params) (SaveResult, error) {
	if !a.IsAuthenticated() {
		return SaveResult{}, ErrNotLoggedIn
	}
	if err := p.Validate(); err != nil {
		return SaveResult{}, err
	}
	res, err := a.httpClient.Save(ctx, p)
	return res, a.authError(err)
}

func (a *App) List(ctx context.Context) ([]calculation.Calculation, error) {
	if !a.IsAuthenticated() {
		return nil, ErrNotLoggedIn
	}
	calcs, err := a.httpClient.List(ctx)
	return calcs, a.authError(err)
}

func (a *App) View(ctx context.Context, link string) (Shared, error) {
	res, err := a.httpClient.Shared(ctx, link)
	if IsStatus(err, http.StatusNotFound) {
		return Shared{}, fmt.Errorf("расчет %q не найден", link)
	}
	return res, err
}

func (a *App) Export(ctx context.Context, link string) ([]byte, error) {
	data, err := a.httpClient.ExportCSV(ctx, link)
	if IsStatus(err, http.StatusNotFound) {
		return nil, fmt.Errorf("расчет %q не найден", link)
	}
	return data, err
}

// ShareURL - полная ссылка для передачи другим
func (a *App) ShareURL(link string) string {
	return a.config.BaseURL() + "/api/v1/share/" + link
}

func (a *App) authError(err error) error {
	if IsStatus(err, http.StatusUnauthorized) {
		return fmt.Errorf("сессия недействительна, выполните вход заново: %w", err)
	}
	return err
}
