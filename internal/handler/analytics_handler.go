package handler

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ERINGRYD/spartano-71e509fa-sub000/internal/service"
)

// AnalyticsHandler обрабатывает запросы аналитических отчетов
type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
}

// NewAnalyticsHandler создает новый обработчик аналитики
func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// GetSummary возвращает полную аналитическую сводку
func (h *AnalyticsHandler) GetSummary(c *gin.Context) {
	summary, err := h.analyticsService.GetSummary(c.Request.Context())
	if err != nil {
		log.Printf("ERROR: Internal server error in AnalyticsHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// ExportSummary выгружает сводку в xlsx
// GET /api/analytics/export
func (h *AnalyticsHandler) ExportSummary(c *gin.Context) {
	content, err := h.analyticsService.ExportSummaryXLSX(c.Request.Context())
	if err != nil {
		log.Printf("ERROR: Failed to export analytics summary: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export summary"})
		return
	}

	filename := fmt.Sprintf("study_analytics_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", content)
}
