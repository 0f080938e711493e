package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"presentation-service-go/internal/pkg/metrics"
	"presentation-service-go/internal/pkg/retry"
)

var (
	ErrEmptyURL   = errors.New("media url is empty")
	ErrEmptyMedia = errors.New("media response is empty")
	ErrTooLarge   = errors.New("media response is too large")
)

// maxMediaSize предел размера одного медиафайла
const maxMediaSize = 32 << 20

// Client загружает медиафайлы по HTTP
type Client struct {
	client *http.Client
}

// NewClient создает клиента. Таймаут ограничивает один запрос целиком
func NewClient(timeout time.Duration) *Client {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 20,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   true,
	}

	return &Client{
		client: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
	}
}

// NewClientWithHTTP создает клиента поверх готового http.Client
func NewClientWithHTTP(c *http.Client) *Client {
	return &Client{client: c}
}

// Fetch загружает файл целиком. Ответ с кодом, отличным от 200, возвращается как *retry.StatusError
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, ErrEmptyURL
	}

	start := time.Now()
	status := "error"
	defer func() {
		metrics.MediaFetchTotal.WithLabelValues(status).Inc()
		metrics.MediaFetchDuration.Observe(time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &retry.StatusError{Service: "media", StatusCode: resp.StatusCode}
	}

	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(resp.Body, maxMediaSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if n == 0 {
		return nil, ErrEmptyMedia
	}
	if n > maxMediaSize {
		return nil, retry.Permanent(ErrTooLarge)
	}

	status = "success"
	return buf.Bytes(), nil
}
