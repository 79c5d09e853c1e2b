// Package apiclient ходит в API калькулятора и разбирает конверт
// {success, data} / {success: false, error}.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"joyvision-web/internal/storage"
)

// FallbackMessage is used when a failed response carries no error text.
const FallbackMessage = "Ошибка запроса"

var ErrTransport = errors.New("backend unreachable")

// APIError - ответ бэкенда с признаком неуспеха.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

type Request struct {
	Method string
	Body   any
	Header http.Header
}

type Client struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

func New(baseURL string, timeout time.Duration, log *slog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Do выполняет запрос и всегда пытается разобрать тело как JSON.
// Успешный конверт возвращается как есть, success разбирает вызывающий.
func (c *Client) Do(ctx context.Context, path string, req Request) (*Envelope, error) {
	const op = "apiclient.Do"

	log := c.log.With(
		slog.String("op", op),
		slog.String("path", path),
	)

	resp, err := c.send(ctx, path, req)
	if err != nil {
		log.Error("API Error", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	var env Envelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Message: env.Error}
		if apiErr.Message == "" {
			apiErr.Message = FallbackMessage
		}

		log.Error("API Error", slog.Int("status", resp.StatusCode), slog.String("error", apiErr.Message))
		return nil, apiErr
	}

	if decodeErr != nil {
		log.Error("API Error", slog.String("error", decodeErr.Error()))
		return nil, fmt.Errorf("%s: decode response: %w", op, decodeErr)
	}

	return &env, nil
}

func (c *Client) send(ctx context.Context, path string, req Request) (*http.Response, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if reqID := middleware.GetReqID(ctx); reqID != "" {
		httpReq.Header.Set(middleware.RequestIDHeader, reqID)
	}
	for key, values := range req.Header {
		httpReq.Header.Del(key)
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	return resp, nil
}

// unsuccessful превращает 2xx-ответ с success=false в APIError.
func unsuccessful(env *Envelope, fallback string) error {
	msg := env.Error
	if msg == "" {
		msg = fallback
	}
	return &APIError{Status: http.StatusOK, Message: msg}
}

func (c *Client) GetOrder(ctx context.Context, id int) (*storage.Order, error) {
	const op = "apiclient.GetOrder"

	env, err := c.Do(ctx, fmt.Sprintf("/api/orders/%d", id), Request{})
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, unsuccessful(env, "Заказ не найден")
	}

	var order storage.Order
	if err := json.Unmarshal(env.Data, &order); err != nil {
		c.log.Error("API Error", slog.String("op", op), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: decode order: %w", op, err)
	}

	return &order, nil
}

// AddSystem возвращает nil-систему, если бэкенд не прислал data.
func (c *Client) AddSystem(ctx context.Context, orderID int, req storage.SystemRequest) (*storage.System, error) {
	const op = "apiclient.AddSystem"

	env, err := c.Do(ctx, fmt.Sprintf("/api/orders/%d/systems", orderID), Request{
		Method: http.MethodPost,
		Body:   req,
	})
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, unsuccessful(env, FallbackMessage)
	}

	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil, nil
	}

	var system storage.System
	if err := json.Unmarshal(env.Data, &system); err != nil {
		c.log.Error("API Error", slog.String("op", op), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: decode system: %w", op, err)
	}

	return &system, nil
}

func (c *Client) SyncBitrix(ctx context.Context, orderID int) (*storage.SyncResult, error) {
	const op = "apiclient.SyncBitrix"

	env, err := c.Do(ctx, fmt.Sprintf("/api/bitrix/sync/%d", orderID), Request{Method: http.MethodPost})
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, unsuccessful(env, FallbackMessage)
	}

	var result storage.SyncResult
	if err := json.Unmarshal(env.Data, &result); err != nil {
		c.log.Error("API Error", slog.String("op", op), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: decode sync result: %w", op, err)
	}

	return &result, nil
}

// OpenDocument запрашивает выгрузку документа. На успехе тело ответа
// закрывает вызывающий.
func (c *Client) OpenDocument(ctx context.Context, orderID int, kind string) (*http.Response, error) {
	const op = "apiclient.OpenDocument"

	path := fmt.Sprintf("/api/orders/%d/pdf/%s", orderID, kind)
	log := c.log.With(slog.String("op", op), slog.String("path", path))

	resp, err := c.send(ctx, path, Request{Header: http.Header{"Accept": {"application/pdf, application/json"}}})
	if err != nil {
		log.Error("API Error", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()

		var env Envelope
		_ = json.NewDecoder(resp.Body).Decode(&env)

		apiErr := &APIError{Status: resp.StatusCode, Message: env.Error}
		if apiErr.Message == "" {
			apiErr.Message = FallbackMessage
		}

		log.Error("API Error", slog.Int("status", resp.StatusCode), slog.String("error", apiErr.Message))
		return nil, apiErr
	}

	return resp, nil
}
