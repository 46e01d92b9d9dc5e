package portal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Client HTTP-клиент portal API. Все мутации и чтения идут через него,
// локального авторитетного состояния у бота нет.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient создаёт новый клиент portal API
func NewClient(baseURL string, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: logger,
	}
}

// errorPayload тело ошибки портала: {"message": "..."}
type errorPayload struct {
	Message string `json:"message"`
}

// do выполняет запрос к порталу и декодирует ответ в out (если out != nil).
// Маппинг ошибок: транспорт -> NetworkError, 401 -> ErrAuth, прочие не-2xx -> RequestError.
func (c *Client) do(ctx context.Context, method, path, token string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	requestID := uuid.New().String()
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Portal request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Error(err))
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%s %s: %w", method, path, ErrAuth)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload := errorPayload{}
		// Тело ошибки может быть и не JSON, тогда остаётся только статус
		if data, readErr := io.ReadAll(io.LimitReader(resp.Body, 64<<10)); readErr == nil {
			_ = json.Unmarshal(data, &payload)
		}
		c.logger.Info("Portal returned error status",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Int("status", resp.StatusCode),
			zap.String("message", payload.Message))
		return &RequestError{Status: resp.StatusCode, Message: payload.Message}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}

	return nil
}

func (c *Client) get(ctx context.Context, path, token string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, token, nil, out)
}
