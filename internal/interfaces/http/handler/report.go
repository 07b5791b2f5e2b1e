package handler

import (
	"fmt"
	"net/http"

	reportapp "github.com/21501a05b6/Magnova/internal/application/report"
	"github.com/21501a05b6/Magnova/internal/infrastructure/export"
	"github.com/gin-gonic/gin"
)

// ReportHandler handles dashboard counters and workbook exports
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// RegisterRoutes registers report routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.GET("/dashboard", h.Dashboard)
		reports.GET("/export/master", h.ExportMaster)
		reports.GET("/export/inventory", h.ExportInventory)
	}
}

// Dashboard returns the aggregate counters
func (h *ReportHandler) Dashboard(c *gin.Context) {
	response, err := h.reportService.Dashboard(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, response)
}

// ExportMaster streams the five-section ledger workbook
func (h *ReportHandler) ExportMaster(c *gin.Context) {
	raw, filename, err := h.reportService.ExportMaster(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.sendWorkbook(c, raw, filename)
}

// ExportInventory streams the unit registry workbook
func (h *ReportHandler) ExportInventory(c *gin.Context) {
	raw, filename, err := h.reportService.ExportInventory(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.sendWorkbook(c, raw, filename)
}

func (h *ReportHandler) sendWorkbook(c *gin.Context, raw []byte, filename string) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, export.ContentTypeXLSX, raw)
}
