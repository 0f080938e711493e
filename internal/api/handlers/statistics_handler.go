package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"presentation-service-go/internal/pkg/statistics"
)

// StatisticsProvider источник сводной статистики
type StatisticsProvider interface {
	GetStatistics(ctx context.Context, since time.Time) (statistics.StatisticsResponse, error)
}

// StatisticsHandler обработчик для статистики
type StatisticsHandler struct {
	stats StatisticsProvider
	now   func() time.Time
}

// NewStatisticsHandler создает новый обработчик статистики
func NewStatisticsHandler(stats StatisticsProvider) *StatisticsHandler {
	return &StatisticsHandler{stats: stats, now: time.Now}
}

// periods допустимые значения параметра period
var periods = map[string]time.Duration{
	"1h":  time.Hour,
	"6h":  6 * time.Hour,
	"24h": 24 * time.Hour,
	"7d":  7 * 24 * time.Hour,
	"30d": 30 * 24 * time.Hour,
}

// GetStatistics возвращает статистику за период, по умолчанию за сутки
func (h *StatisticsHandler) GetStatistics(c *gin.Context) {
	period := c.DefaultQuery("period", "24h")
	d, ok := periods[period]
	if !ok {
		period, d = "24h", periods["24h"]
	}

	stats, err := h.stats.GetStatistics(c.Request.Context(), h.now().Add(-d))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"period":     period,
		"statistics": stats,
	})
}
