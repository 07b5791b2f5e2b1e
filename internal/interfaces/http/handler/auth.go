package handler

import (
	identityapp "github.com/21501a05b6/Magnova/internal/application/identity"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles operator authentication endpoints
type AuthHandler struct {
	BaseHandler
	identityService *identityapp.IdentityService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(identityService *identityapp.IdentityService) *AuthHandler {
	return &AuthHandler{identityService: identityService}
}

// RegisterRoutes registers the unauthenticated credential routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)
	}
}

// RegisterProtectedRoutes registers routes that require a valid token
func (h *AuthHandler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.GET("/auth/profile", h.Profile)
}

// Login verifies credentials and issues an access token
func (h *AuthHandler) Login(c *gin.Context) {
	var req identityapp.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	response, err := h.identityService.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, response)
}

// Register creates a new operator account
func (h *AuthHandler) Register(c *gin.Context) {
	var req identityapp.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	response, err := h.identityService.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, response)
}

// Profile returns the authenticated operator's account
func (h *AuthHandler) Profile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	response, err := h.identityService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, response)
}
