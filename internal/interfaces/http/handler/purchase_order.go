package handler

import (
	procurementapp "github.com/21501a05b6/Magnova/internal/application/procurement"
	"github.com/gin-gonic/gin"
)

// PurchaseOrderHandler handles purchase order lifecycle endpoints
type PurchaseOrderHandler struct {
	BaseHandler
	procurementService *procurementapp.ProcurementService
}

// NewPurchaseOrderHandler creates a new PurchaseOrderHandler
func NewPurchaseOrderHandler(procurementService *procurementapp.ProcurementService) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{procurementService: procurementService}
}

// RegisterRoutes registers purchase order routes
func (h *PurchaseOrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/purchase-orders")
	{
		orders.POST("", h.Create)
		orders.GET("", h.List)
		orders.GET("/:po_number", h.Get)
		orders.POST("/:po_number/approve", h.Decide)
	}
}

// Create registers a new purchase order
func (h *PurchaseOrderHandler) Create(c *gin.Context) {
	var req procurementapp.CreatePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	response, err := h.procurementService.CreatePurchaseOrder(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, response)
}

// List returns purchase orders matching the filter
func (h *PurchaseOrderHandler) List(c *gin.Context) {
	var filter procurementapp.PurchaseOrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	orders, total, err := h.procurementService.ListPurchaseOrders(c.Request.Context(), filter)
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
	h.SuccessWithMeta(c, orders, total, page, pageSize)
}

// Get returns one purchase order by its number
func (h *PurchaseOrderHandler) Get(c *gin.Context) {
	response, err := h.procurementService.GetPurchaseOrder(c.Request.Context(), c.Param("po_number"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, response)
}

// Decide records an approve or reject decision on a pending order
func (h *PurchaseOrderHandler) Decide(c *gin.Context) {
	var req procurementapp.DecideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	response, err := h.procurementService.DecidePurchaseOrder(c.Request.Context(), c.Param("po_number"), req.Action)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, response)
}
