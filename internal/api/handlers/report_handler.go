package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/boticaplus/backend/internal/report"
	"github.com/boticaplus/backend/internal/service"
)

type ReportHandler struct {
	reportService *service.ReportService
}

func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// GetSalesReport returns the sales report for the requested period
func (h *ReportHandler) GetSalesReport(c *gin.Context) {
	spec := parsePeriodSpec(c)
	limit := parsePositiveIntWithDefault(c.Query("limit"), report.DefaultTopProducts)

	rep, err := h.reportService.SalesReport(c.Request.Context(), spec, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build sales report"})
		return
	}

	c.JSON(http.StatusOK, rep)
}

// GetFinancialReport returns the financial performance report
func (h *ReportHandler) GetFinancialReport(c *gin.Context) {
	spec := parsePeriodSpec(c)

	rep, err := h.reportService.FinancialReport(c.Request.Context(), spec)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build financial report"})
		return
	}

	c.JSON(http.StatusOK, rep)
}

// GetInventoryReport returns the current stock snapshot report
func (h *ReportHandler) GetInventoryReport(c *gin.Context) {
	rep, err := h.reportService.InventoryReport(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build inventory report"})
		return
	}

	c.JSON(http.StatusOK, rep)
}

// GetDashboard returns the combined sales/inventory/financial dashboard
func (h *ReportHandler) GetDashboard(c *gin.Context) {
	spec := parsePeriodSpec(c)
	limit := parsePositiveIntWithDefault(c.Query("limit"), report.DefaultTopProducts)

	dash, err := h.reportService.Dashboard(c.Request.Context(), spec, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build dashboard"})
		return
	}

	c.JSON(http.StatusOK, dash)
}

func parsePeriodSpec(c *gin.Context) report.PeriodSpec {
	// "range" is the canonical param; "period" is accepted as an alias
	rangeToken := strings.TrimSpace(c.Query("range"))
	if rangeToken == "" {
		rangeToken = strings.TrimSpace(c.Query("period"))
	}
	return report.PeriodSpec{
		Range:     rangeToken,
		StartDate: strings.TrimSpace(c.Query("start_date")),
		EndDate:   strings.TrimSpace(c.Query("end_date")),
	}
}

func parsePositiveIntWithDefault(value string, fallback int) int {
	if v, err := strconv.Atoi(strings.TrimSpace(value)); err == nil && v > 0 {
		return v
	}
	return fallback
}

func parseNonNegativeInt(value string) int {
	if v, err := strconv.Atoi(strings.TrimSpace(value)); err == nil && v >= 0 {
		return v
	}
	return 0
}
