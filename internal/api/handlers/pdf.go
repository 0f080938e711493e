package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"presentation-service-go/internal/domain/pdf"
	"presentation-service-go/internal/domain/presentation"
	"presentation-service-go/internal/pkg/logger"
)

type PDFHandler struct {
	service pdf.Service
}

func NewPDFHandler(service pdf.Service) *PDFHandler {
	return &PDFHandler{service: service}
}

type templatesRequest struct {
	DataType presentation.DataType `json:"dataType"`
}

// GetTemplates возвращает шаблоны, подходящие для типа выборки
func (h *PDFHandler) GetTemplates(c *gin.Context) {
	var req templatesRequest
	if !bindJSON(c, &req) {
		return
	}
	c.JSON(http.StatusOK, h.service.Templates(req.DataType))
}

// GetBlocks генерирует блоки шаблона и возвращает их вместе с ошибками проверки
func (h *PDFHandler) GetBlocks(c *gin.Context) {
	var req presentation.Request
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.Blocks(&req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Create проверяет выбранные блоки и запускает сборку. Ответ 204 не ждет готовности файла
func (h *PDFHandler) Create(c *gin.Context) {
	var req presentation.Request
	if !bindJSON(c, &req) {
		return
	}

	if err := h.service.Create(c.Request.Context(), &req); err != nil {
		var verr *pdf.ValidationError
		if errors.As(err, &verr) {
			logger.Warn("Presentation rejected",
				zap.String("presentation_id", req.PresentationID),
				zap.Error(err),
			)
			c.JSON(http.StatusBadRequest, rejectedBlocks(verr))
			return
		}
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Preview возвращает HTML-версию презентации
func (h *PDFHandler) Preview(c *gin.Context) {
	var req presentation.Request
	if !bindJSON(c, &req) {
		return
	}

	doc, err := h.service.Preview(c.Request.Context(), &req)
	if err != nil {
		var verr *pdf.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, rejectedBlocks(verr))
			return
		}
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", doc.Content)
}

// GetFile отдает готовый PDF один раз и удаляет его
func (h *PDFHandler) GetFile(c *gin.Context) {
	fileID := c.Param("fileId")
	ctx := c.Request.Context()

	content, err := h.service.File(ctx, fileID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", fileID))
	c.Data(http.StatusOK, "application/pdf", content)

	if err := h.service.DeleteFile(ctx, fileID); err != nil {
		logger.Warn("Failed to remove downloaded file",
			zap.String("file_id", fileID),
			zap.Error(err),
		)
	}
}

// rejectedBlocks тело ответа 400: только блоки с ошибками, пустой список вместо null
func rejectedBlocks(verr *pdf.ValidationError) []presentation.BlockDescriptor {
	if verr.Blocks == nil {
		return []presentation.BlockDescriptor{}
	}
	return verr.Blocks
}

// bindJSON разбирает тело запроса. При ошибке ответ уже записан
func bindJSON(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}

	logger.Error("Failed to parse request",
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("content_type", c.GetHeader("Content-Type")),
	)
	switch {
	case err.Error() == "EOF":
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty request body"})
	case strings.Contains(err.Error(), "invalid character"):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON format"})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid request format: %v", err)})
	}
	return false
}
