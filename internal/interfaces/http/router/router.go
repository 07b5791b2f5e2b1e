package router

import (
	"github.com/gin-gonic/gin"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// RegistrarFunc adapts a plain function to the RouteRegistrar interface
type RegistrarFunc func(rg *gin.RouterGroup)

// RegisterRoutes calls the wrapped function
func (f RegistrarFunc) RegisterRoutes(rg *gin.RouterGroup) {
	f(rg)
}

// Router manages HTTP route registration. Public registrars sit directly
// under /api; protected registrars sit behind the auth middleware.
type Router struct {
	engine         *gin.Engine
	authMiddleware gin.HandlerFunc
	public         []RouteRegistrar
	protected      []RouteRegistrar
}

// NewRouter creates a new Router. authMiddleware may be nil, which
// leaves every route open; tests use this.
func NewRouter(engine *gin.Engine, authMiddleware gin.HandlerFunc) *Router {
	return &Router{
		engine:         engine,
		authMiddleware: authMiddleware,
	}
}

// Public adds registrars whose routes skip authentication
func (r *Router) Public(registrars ...RouteRegistrar) *Router {
	r.public = append(r.public, registrars...)
	return r
}

// Protected adds registrars whose routes require a valid token
func (r *Router) Protected(registrars ...RouteRegistrar) *Router {
	r.protected = append(r.protected, registrars...)
	return r
}

// Setup registers all routes with the engine
func (r *Router) Setup() {
	api := r.engine.Group("/api")

	for _, registrar := range r.public {
		registrar.RegisterRoutes(api)
	}

	guarded := api.Group("")
	if r.authMiddleware != nil {
		guarded.Use(r.authMiddleware)
	}
	for _, registrar := range r.protected {
		registrar.RegisterRoutes(guarded)
	}
}
