package handler

import (
	inventoryapp "github.com/21501a05b6/Magnova/internal/application/inventory"
	"github.com/gin-gonic/gin"
)

// InventoryHandler handles the unit registry endpoints
type InventoryHandler struct {
	BaseHandler
	inventoryService *inventoryapp.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(inventoryService *inventoryapp.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// RegisterRoutes registers inventory routes
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	inventory := rg.Group("/inventory")
	{
		inventory.POST("/scan", h.Scan)
		inventory.GET("", h.List)
		inventory.GET("/:imei", h.Get)
	}
}

// Scan applies one barcode scan action to a unit
func (h *InventoryHandler) Scan(c *gin.Context) {
	var req inventoryapp.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	response, err := h.inventoryService.Scan(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, response)
}

// List returns units matching the filter
func (h *InventoryHandler) List(c *gin.Context) {
	var filter inventoryapp.UnitListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	units, total, err := h.inventoryService.List(c.Request.Context(), filter)
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
	h.SuccessWithMeta(c, units, total, page, pageSize)
}

// Get returns one unit by IMEI
func (h *InventoryHandler) Get(c *gin.Context) {
	response, err := h.inventoryService.GetByIMEI(c.Request.Context(), c.Param("imei"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, response)
}
