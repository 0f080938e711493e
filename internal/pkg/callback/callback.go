// Package callback отправляет готовую презентацию принимающему сервису.
package callback

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"presentation-service-go/internal/pkg/logger"
	"presentation-service-go/internal/pkg/metrics"
	"presentation-service-go/internal/pkg/retry"
	"presentation-service-go/internal/pkg/tracing"
)

// Имя файла и тип содержимого в форме
const (
	FileField   = "file"
	FileName    = "presentation.pdf"
	ContentType = "application/pdf"
)

// ErrNotConfigured адрес принимающего сервиса не задан
var ErrNotConfigured = errors.New("callback url is not configured")

// Config настройки принимающего сервиса
type Config struct {
	// URL адрес вида scheme://host[:port][/path]
	URL string
	// Port заменяет порт из URL, если задан
	Port            string
	ClientID        string
	ClientKey       string
	ClientIDHeader  string
	ClientKeyHeader string
	Timeout         time.Duration
}

// Sender отправляет файлы на адрес <URL>/<presentationId>. Одна попытка на файл
type Sender struct {
	base   *url.URL
	cfg    Config
	client *http.Client
	logger *zap.Logger
}

// NewSender проверяет адрес и создает отправителя
func NewSender(cfg Config) (*Sender, error) {
	if cfg.URL == "" {
		return nil, ErrNotConfigured
	}
	base, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid callback url: %w", err)
	}
	if (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return nil, fmt.Errorf("invalid callback url %q: scheme and host are required", cfg.URL)
	}
	if cfg.Port != "" {
		if _, err := strconv.Atoi(cfg.Port); err != nil {
			return nil, fmt.Errorf("invalid callback port %q: %w", cfg.Port, err)
		}
		base.Host = net.JoinHostPort(base.Hostname(), cfg.Port)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}

	return &Sender{
		base:   base,
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger.Component("callback"),
	}, nil
}

// Endpoint адрес, на который уйдет файл презентации
func (s *Sender) Endpoint(presentationID string) string {
	return s.base.JoinPath(presentationID).String()
}

// Send отправляет PDF одной multipart-формой. Ответ не 2xx возвращается как *retry.StatusError
func (s *Sender) Send(ctx context.Context, presentationID string, pdf []byte) (err error) {
	ctx, span := tracing.StartSpan(ctx, "Callback.Send")
	defer span.End()
	span.SetAttributes(
		attribute.String("presentation.id", presentationID),
		attribute.Int("file.size", len(pdf)),
	)

	status := "error"
	start := time.Now()
	log := s.logger.With(zap.String("presentation_id", presentationID))
	defer func() {
		metrics.CallbackRequestsTotal.WithLabelValues(status).Inc()
		if err != nil {
			tracing.RecordError(ctx, err)
			log.Error("Callback failed", zap.Error(err), zap.Duration("duration", time.Since(start)))
		}
	}()

	body, contentType, err := form(pdf)
	if err != nil {
		return err
	}

	endpoint := s.Endpoint(presentationID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	if s.cfg.ClientID != "" && s.cfg.ClientKey != "" {
		req.Header.Set(s.cfg.ClientIDHeader, s.cfg.ClientID)
		req.Header.Set(s.cfg.ClientKeyHeader, s.cfg.ClientKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send callback: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	status = strconv.Itoa(resp.StatusCode)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &retry.StatusError{Service: "callback", StatusCode: resp.StatusCode}
	}

	status = "success"
	log.Info("Callback delivered",
		zap.String("endpoint", endpoint),
		zap.Int("status_code", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}

func form(pdf []byte) (io.Reader, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, FileField, FileName))
	header.Set("Content-Type", ContentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create form part: %w", err)
	}
	if _, err := part.Write(pdf); err != nil {
		return nil, "", fmt.Errorf("failed to write form part: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close writer: %w", err)
	}
	return body, writer.FormDataContentType(), nil
}
