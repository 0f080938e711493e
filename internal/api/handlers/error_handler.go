package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"presentation-service-go/internal/domain/pdf"
	"presentation-service-go/internal/pkg/circuitbreaker"
	"presentation-service-go/internal/pkg/logger"
	"presentation-service-go/internal/pkg/storage"
)

// determineErrorStatus сопоставляет ошибку сервиса и HTTP статус
func determineErrorStatus(err error) int {
	switch {
	case errors.Is(err, pdf.ErrUnknownTemplate),
		errors.Is(err, pdf.ErrValidationFailed),
		errors.Is(err, storage.ErrInvalidKey):
		return http.StatusBadRequest
	case errors.Is(err, storage.ErrFileNotFound):
		return http.StatusNotFound
	case errors.Is(err, pdf.ErrTemplateNotSupported),
		errors.Is(err, pdf.ErrEmptyDocument):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, circuitbreaker.ErrCircuitOpen):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError пишет ошибку в ответ. Текст внутренних ошибок наружу не отдается
func respondError(c *gin.Context, err error) {
	status := determineErrorStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed",
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Error(err),
		)
		c.JSON(status, gin.H{"error": http.StatusText(status)})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
