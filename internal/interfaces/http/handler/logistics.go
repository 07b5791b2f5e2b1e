package handler

import (
	logisticsapp "github.com/21501a05b6/Magnova/internal/application/logistics"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LogisticsHandler handles shipment tracking endpoints
type LogisticsHandler struct {
	BaseHandler
	logisticsService *logisticsapp.LogisticsService
}

// NewLogisticsHandler creates a new LogisticsHandler
func NewLogisticsHandler(logisticsService *logisticsapp.LogisticsService) *LogisticsHandler {
	return &LogisticsHandler{logisticsService: logisticsService}
}

// RegisterRoutes registers logistics routes
func (h *LogisticsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	shipments := rg.Group("/logistics/shipments")
	{
		shipments.POST("", h.Create)
		shipments.GET("", h.List)
		shipments.GET("/:id", h.Get)
		shipments.PATCH("/:id/status", h.UpdateStatus)
	}
}

// Create records a new shipment against a purchase order line
func (h *LogisticsHandler) Create(c *gin.Context) {
	var req logisticsapp.CreateShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	response, err := h.logisticsService.CreateShipment(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, response)
}

// List returns shipments matching the filter
func (h *LogisticsHandler) List(c *gin.Context) {
	var filter logisticsapp.ShipmentListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	shipments, total, err := h.logisticsService.ListShipments(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	h.SuccessWithMeta(c, shipments, total, page, pageSize)
}

// Get returns one shipment by ID
func (h *LogisticsHandler) Get(c *gin.Context) {
	// Shipment ids are system-generated, so an unparseable id can only
	// name a shipment that does not exist.
	shipmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.NotFound(c, "Shipment not found")
		return
	}

	response, err := h.logisticsService.GetShipment(c.Request.Context(), shipmentID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, response)
}

// UpdateStatus moves a shipment through its delivery lifecycle
func (h *LogisticsHandler) UpdateStatus(c *gin.Context) {
	shipmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.NotFound(c, "Shipment not found")
		return
	}

	var req logisticsapp.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	response, err := h.logisticsService.UpdateStatus(c.Request.Context(), shipmentID, req.Status)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, response)
}
