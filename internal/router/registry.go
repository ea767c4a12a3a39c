package router

import "github.com/gin-gonic/gin"

// Registry collects feature modules and registers them in one pass.
// API modules mount under /api; page modules mount at the root, behind
// the route gate.
type Registry struct {
	Engine         *gin.Engine
	API            *gin.RouterGroup
	Pages          *gin.RouterGroup
	apiMiddlewares []gin.HandlerFunc
	gate           []gin.HandlerFunc
	apiModules     []Module
	pageModules    []Module
}

func NewRegistry(engine *gin.Engine) *Registry {
	return &Registry{
		Engine: engine,
		API:    engine.Group("/api"),
		Pages:  engine.Group("/"),
	}
}

func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.apiMiddlewares = append(r.apiMiddlewares, mw...)
}

// UseGate installs the route-gate middleware for all page modules.
func (r *Registry) UseGate(mw ...gin.HandlerFunc) {
	r.gate = append(r.gate, mw...)
}

func (r *Registry) Add(mod Module) {
	r.apiModules = append(r.apiModules, mod)
}

func (r *Registry) AddPages(mod Module) {
	r.pageModules = append(r.pageModules, mod)
}

func (r *Registry) RegisterAll() {
	if len(r.apiMiddlewares) > 0 {
		r.API.Use(r.apiMiddlewares...)
	}
	for _, m := range r.apiModules {
		m.Register(r.API)
	}
	if len(r.gate) > 0 {
		r.Pages.Use(r.gate...)
	}
	for _, m := range r.pageModules {
		m.Register(r.Pages)
	}
}
