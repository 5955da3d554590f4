package router

import (
	"github.com/gin-gonic/gin"
)

// RouteRegistrar is implemented by every handler that exposes routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router assembles the versioned API from registered handlers
type Router struct {
	engine     *gin.Engine
	apiVersion string
	middleware []gin.HandlerFunc
	registrars []RouteRegistrar
}

// Option configures a Router
type Option func(*Router)

// WithAPIVersion overrides the default API version segment
func WithAPIVersion(version string) Option {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// NewRouter creates a router over the given gin engine
func NewRouter(engine *gin.Engine, opts ...Option) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds handlers to the router
func (r *Router) Register(registrars ...RouteRegistrar) {
	r.registrars = append(r.registrars, registrars...)
}

// Use appends middleware applied to the versioned API group
func (r *Router) Use(middleware ...gin.HandlerFunc) {
	r.middleware = append(r.middleware, middleware...)
}

// Setup mounts every registered handler under /api/<version>
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.apiVersion)
	api.Use(r.middleware...)
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
}

// Engine returns the underlying gin engine
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
