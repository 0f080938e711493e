package handlers

import (
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"presentation-service-go/internal/pkg/assets"
)

// AssetsHandler раздает иконки, фоны и шрифты для HTML-разметки
type AssetsHandler struct {
	lib *assets.Library
}

func NewAssetsHandler(lib *assets.Library) *AssetsHandler {
	return &AssetsHandler{lib: lib}
}

func (h *AssetsHandler) Icon(c *gin.Context) {
	name, ok := strings.CutSuffix(c.Param("name"), ".svg")
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}
	data, err := h.lib.Icon(name)
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "image/svg+xml", data)
}

func (h *AssetsHandler) Pattern(c *gin.Context) {
	data, err := h.lib.Pattern(c.Param("name"))
	if errors.Is(err, assets.ErrPatternNotFound) {
		c.Status(http.StatusNotFound)
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "image/png", data)
}

// Font отдает начертание по имени файла, например Bold.ttf
func (h *AssetsHandler) Font(c *gin.Context) {
	name, ok := strings.CutSuffix(c.Param("name"), ".ttf")
	if !ok || !slices.Contains(assets.Weights, assets.Weight(name)) {
		c.Status(http.StatusNotFound)
		return
	}
	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "font/ttf", h.lib.Font(assets.Weight(name)))
}
