package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"golang.org/x/exp/slog"

	"loancalc/internal/app/client/config"
	"loancalc/internal/domain/amortization"
	"loancalc/internal/domain/calculation"
)

type httpClient struct {
	client    *http.Client
	log       *slog.Logger
	baseURL   string
	token     string
	userAgent string
}

func NewHTTPClient(cfg *config.Config, log *slog.Logger) *httpClient {
	return &httpClient{
		client:    &http.Client{Timeout: cfg.Timeout},
		log:       log,
		baseURL:   cfg.BaseURL(),
		userAgent: "LoanCalc-Client/1.0",
	}
}

// SetToken устанавливает токен аутентификации
func (h *httpClient) SetToken(token string) {
	h.token = token
}

// HealthCheck проверяет доступность сервера
func (h *httpClient) HealthCheck(ctx context.Context) error {
	return h.call(ctx, http.MethodGet, "/api/v1/health", nil, nil)
}

func (h *httpClient) Register(ctx context.Context, login, password, confirm string) (RegisterResult, error) {
	var res RegisterResult
	err := h.call(ctx, http.MethodPost, "/api/v1/user/register",
		registerRequest{Login: login, Password: password, PasswordConfirm: confirm}, &res)
	return res, err
}

func (h *httpClient) Login(ctx context.Context, login, password string) (LoginResult, error) {
	var res LoginResult
	if err := h.call(ctx, http.MethodPost, "/api/v1/user/login", credentials{Login: login, Password: password}, &res); err != nil {
		return LoginResult{}, err
	}
	h.SetToken(res.Token)
	return res, nil
}

func (h *httpClient) Logout(ctx context.Context) error {
	return h.call(ctx, http.MethodPost, "/api/v1/user/logout", nil, nil)
}

func (h *httpClient) Me(ctx context.Context) (Me, error) {
	var res Me
	err := h.call(ctx, http.MethodGet, "/api/v1/user/me", nil, &res)
	return res, err
}

func (h *httpClient) Preview(ctx context.Context, p amortization.Params) (amortization.Schedule, error) {
	var res amortization.Schedule
	err := h.call(ctx, http.MethodPost, "/api/v1/calculations/preview", p, &res)
	return res, err
}

func (h *httpClient) Save(ctx context.Context, p amortization.Params) (SaveResult, error) {
	var res SaveResult
	err := h.call(ctx, http.MethodPost, "/api/v1/calculations", p, &res)
	return res, err
}

func (h *httpClient) List(ctx context.Context) ([]calculation.Calculation, error) {
	var res listResult
	if err := h.call(ctx, http.MethodGet, "/api/v1/calculations", nil, &res); err != nil {
		return nil, err
	}
	return res.Calculations, nil
}

func (h *httpClient) Shared(ctx context.Context, link string) (Shared, error) {
	var res Shared
	err := h.call(ctx, http.MethodGet, "/api/v1/share/"+url.PathEscape(link), nil, &res)
	return res, err
}

// ExportCSV возвращает тело ответа как есть
func (h *httpClient) ExportCSV(ctx context.Context, link string) ([]byte, error) {
	resp, err := h.doRequest(ctx, http.MethodGet, "/api/v1/share/"+url.PathEscape(link)+"/schedule.csv", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения ответа: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, apiError(resp.StatusCode, body)
	}

	return body, nil
}

func (h *httpClient) call(ctx context.Context, method, path string, body, result interface{}) error {
	resp, err := h.doRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	return h.parseResponse(resp, result)
}

func (h *httpClient) doRequest(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("ошибка маршалинга тела запроса: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}

	req.Header.Set("User-Agent", h.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}

	h.log.Debug("Отправка запроса", "method", method, "url", req.URL.String())

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("сервер недоступен: %w", err)
	}

	return resp, nil
}

func (h *httpClient) parseResponse(resp *http.Response, result interface{}) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("ошибка чтения ответа: %w", err)
	}

	h.log.Debug("Получен ответ", "status", resp.StatusCode, "bytes", len(body))

	if resp.StatusCode >= http.StatusBadRequest {
		return apiError(resp.StatusCode, body)
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("ошибка парсинга ответа: %w", err)
		}
	}

	return nil
}

func apiError(status int, body []byte) error {
	apiErr := &APIError{}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Status == 0 {
		apiErr = &APIError{Status: status}
	}
	apiErr.Status = status
	return apiErr
}

// IsStatus сообщает, что err - ответ сервера с указанным статусом
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}
