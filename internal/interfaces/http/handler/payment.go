package handler

import (
	paymentapp "github.com/21501a05b6/Magnova/internal/application/payment"
	"github.com/gin-gonic/gin"
)

// PaymentHandler handles the payment ledger endpoints
type PaymentHandler struct {
	BaseHandler
	paymentService *paymentapp.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *paymentapp.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// RegisterRoutes registers payment routes
func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	payments := rg.Group("/payments")
	{
		payments.POST("/internal", h.RecordInternal)
		payments.POST("/external", h.RecordExternal)
		payments.GET("", h.List)
		payments.GET("/summary/:po_number", h.Summary)
	}
}

// RecordInternal appends an internal funding entry to the ledger
func (h *PaymentHandler) RecordInternal(c *gin.Context) {
	var req paymentapp.RecordInternalPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	response, err := h.paymentService.RecordInternal(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, response)
}

// RecordExternal appends a vendor disbursement entry to the ledger
func (h *PaymentHandler) RecordExternal(c *gin.Context) {
	var req paymentapp.RecordExternalPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	response, err := h.paymentService.RecordExternal(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, response)
}

// List returns ledger entries of both subtypes matching the filter
func (h *PaymentHandler) List(c *gin.Context) {
	var filter paymentapp.PaymentListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	payments, total, err := h.paymentService.List(c.Request.Context(), filter)
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
	h.SuccessWithMeta(c, payments, total, page, pageSize)
}

// Summary returns the funding position for one purchase order
func (h *PaymentHandler) Summary(c *gin.Context) {
	response, err := h.paymentService.Summary(c.Request.Context(), c.Param("po_number"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, response)
}
