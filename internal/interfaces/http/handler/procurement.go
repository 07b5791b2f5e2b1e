package handler

import (
	procurementapp "github.com/21501a05b6/Magnova/internal/application/procurement"
	"github.com/gin-gonic/gin"
)

// ProcurementHandler handles the device intake endpoint
type ProcurementHandler struct {
	BaseHandler
	procurementService *procurementapp.ProcurementService
}

// NewProcurementHandler creates a new ProcurementHandler
func NewProcurementHandler(procurementService *procurementapp.ProcurementService) *ProcurementHandler {
	return &ProcurementHandler{procurementService: procurementService}
}

// RegisterRoutes registers procurement intake routes
func (h *ProcurementHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/procurement", h.Intake)
}

// Intake registers one physical device against an approved purchase order
func (h *ProcurementHandler) Intake(c *gin.Context) {
	var req procurementapp.IntakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	response, err := h.procurementService.Intake(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, response)
}
