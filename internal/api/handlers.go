package api

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"presentation-service-go/internal/api/handlers"
	"presentation-service-go/internal/domain/pdf"
	"presentation-service-go/internal/pkg/assets"
	"presentation-service-go/internal/pkg/circuitbreaker"
)

// HealthChecker зависимость, защищенная circuit breaker
type HealthChecker interface {
	State() circuitbreaker.State
	IsHealthy() bool
}

// Handlers содержит все обработчики API
type Handlers struct {
	PDF        *handlers.PDFHandler
	Statistics *handlers.StatisticsHandler
	Assets     *handlers.AssetsHandler
	checkers   map[string]HealthChecker
}

// NewHandlers создает обработчики. checkers попадают в ответ /health по имени
func NewHandlers(service pdf.Service, stats handlers.StatisticsProvider, lib *assets.Library, checkers map[string]HealthChecker) *Handlers {
	return &Handlers{
		PDF:        handlers.NewPDFHandler(service),
		Statistics: handlers.NewStatisticsHandler(stats),
		Assets:     handlers.NewAssetsHandler(lib),
		checkers:   checkers,
	}
}

// Health отвечает 503, если хотя бы один breaker не пропускает запросы
func (h *Handlers) Health(c *gin.Context) {
	names := make([]string, 0, len(h.checkers))
	for name := range h.checkers {
		names = append(names, name)
	}
	sort.Strings(names)

	isHealthy := true
	breakers := gin.H{}
	for _, name := range names {
		checker := h.checkers[name]
		healthy := checker.IsHealthy()
		isHealthy = isHealthy && healthy
		breakers[name] = gin.H{
			"status": healthy,
			"state":  checker.State().String(),
		}
	}

	status, code := "healthy", http.StatusOK
	if !isHealthy {
		status, code = "unhealthy", http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"details": gin.H{
			"circuit_breakers": breakers,
		},
	})
}
