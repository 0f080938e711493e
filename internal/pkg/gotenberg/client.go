// Package gotenberg конвертирует HTML-документы презентаций в PDF через Gotenberg (маршрут Chromium).
package gotenberg

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"presentation-service-go/internal/pkg/metrics"
	"presentation-service-go/internal/pkg/retry"
)

// Параметры страницы A4 альбомной ориентации в дюймах
const (
	paperWidth  = "11.7"
	paperHeight = "8.27"
)

// convertPath маршрут Chromium для конвертации HTML
const convertPath = "/forms/chromium/convert/html"

// Converter конвертирует HTML-документ в PDF
type Converter interface {
	ConvertHTML(ctx context.Context, html string) ([]byte, error)
}

// StatsHandler получает сведения о каждом запросе к Gotenberg
type StatsHandler interface {
	TrackGotenbergRequest(duration time.Duration, hasError bool, isHealthCheck bool)
}

// Client обращается к Gotenberg напрямую, без повторов
type Client struct {
	baseURL string
	client  *http.Client
	handler StatsHandler
}

var _ Converter = (*Client)(nil)

// NewClient создает клиента. timeout ограничивает один запрос целиком
func NewClient(baseURL string, timeout time.Duration) *Client {
	transport := &http.Transport{
		MaxIdleConns:        50,
		MaxIdleConnsPerHost: 20,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   true,
		WriteBufferSize:     64 * 1024,
		ReadBufferSize:      64 * 1024,
	}

	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
	}
}

// SetHandler устанавливает обработчик для сбора статистики
func (c *Client) SetHandler(handler StatsHandler) {
	c.handler = handler
}

// GetHandler возвращает обработчик статистики
func (c *Client) GetHandler() (StatsHandler, bool) {
	if c.handler == nil {
		return nil, false
	}
	return c.handler, true
}

func (c *Client) track(duration time.Duration, hasError, isHealthCheck bool) {
	if c.handler != nil {
		c.handler.TrackGotenbergRequest(duration, hasError, isHealthCheck)
	}
}

// ConvertHTML отправляет документ как index.html и возвращает PDF.
// Неуспешный статус возвращается как *retry.StatusError
func (c *Client) ConvertHTML(ctx context.Context, html string) (result []byte, err error) {
	start := time.Now()
	status := "error"
	defer func() {
		duration := time.Since(start)
		metrics.GotenbergRequestDuration.WithLabelValues("convert").Observe(duration.Seconds())
		metrics.GotenbergRequestsTotal.WithLabelValues(status).Inc()
		c.track(duration, err != nil, false)
	}()

	body, contentType, err := htmlForm(html)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+convertPath, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		status = strconv.Itoa(resp.StatusCode)
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &retry.StatusError{Service: "gotenberg", StatusCode: resp.StatusCode}
	}

	out := new(bytes.Buffer)
	if _, err := io.Copy(out, resp.Body); err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if out.Len() == 0 {
		return nil, fmt.Errorf("gotenberg returned empty document")
	}

	status = "success"
	return out.Bytes(), nil
}

// htmlForm собирает multipart-форму: документ и параметры страницы
func htmlForm(html string) (io.Reader, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("files", "index.html")
	if err != nil {
		return nil, "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.WriteString(part, html); err != nil {
		return nil, "", fmt.Errorf("failed to write document: %w", err)
	}

	fields := [][2]string{
		{"paperWidth", paperWidth},
		{"paperHeight", paperHeight},
		{"marginTop", "0"},
		{"marginBottom", "0"},
		{"marginLeft", "0"},
		{"marginRight", "0"},
		{"printBackground", "true"},
		{"preferCssPageSize", "false"},
	}
	for _, f := range fields {
		if err := writer.WriteField(f[0], f[1]); err != nil {
			return nil, "", fmt.Errorf("failed to write field %s: %w", f[0], err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close writer: %w", err)
	}
	return body, writer.FormDataContentType(), nil
}

// HealthCheck выполняет проверку здоровья сервиса Gotenberg.
// skipStats отключает учет проверки в метриках и статистике
func (c *Client) HealthCheck(ctx context.Context, skipStats bool) (err error) {
	start := time.Now()
	defer func() {
		if skipStats {
			return
		}
		duration := time.Since(start)
		metrics.GotenbergRequestDuration.WithLabelValues("health").Observe(duration.Seconds())
		status := "success"
		if err != nil {
			status = "error"
		}
		metrics.GotenbergRequestsTotal.WithLabelValues(status).Inc()
		c.track(duration, err != nil, true)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &retry.StatusError{Service: "gotenberg", StatusCode: resp.StatusCode}
	}
	return nil
}
