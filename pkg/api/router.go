// Package api exposes the lighting command layer over a REST interface.
package api

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/tlind/huemcp/pkg/api/handlers"
	"github.com/tlind/huemcp/pkg/bridge/schema"
	"github.com/tlind/huemcp/pkg/control"
)

// Router holds the Gin engine and dependencies
type Router struct {
	engine     *gin.Engine
	controller *control.Controller
	validator  *schema.Validator
}

// NewRouter creates a new API router
func NewRouter(controller *control.Controller, validator *schema.Validator) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	SetupMiddleware(engine)

	router := &Router{
		engine:     engine,
		controller: controller,
		validator:  validator,
	}

	router.setupRoutes()

	return router
}

// setupRoutes configures all API routes
func (r *Router) setupRoutes() {
	// Swagger UI
	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(301, "/swagger/index.html")
	})

	// Health check at root
	healthHandler := handlers.NewHealthHandler(r.controller)
	r.engine.GET("/health", healthHandler.Health)

	// API v1 routes
	v1 := r.engine.Group("/api/v1")
	{
		// Health
		v1.GET("/health", healthHandler.Health)

		// Lights
		lightsHandler := handlers.NewLightsHandler(r.controller, r.validator)
		v1.POST("/refresh", lightsHandler.Refresh)
		lights := v1.Group("/lights")
		{
			lights.GET("", lightsHandler.ListLights)
			lights.GET("/:id", lightsHandler.GetLight)

			lights.POST("/:id/power", lightsHandler.SetPower)
			lights.POST("/:id/brightness", lightsHandler.SetBrightness)
			lights.POST("/:id/color", lightsHandler.SetColor)
			lights.POST("/:id/preset", lightsHandler.SetPreset)
			lights.POST("/:id/alert", lightsHandler.Alert)
			lights.POST("/:id/effect", lightsHandler.SetEffect)
			lights.POST("/:id/state", lightsHandler.SetState)
		}

		// Groups
		groupsHandler := handlers.NewGroupsHandler(r.controller)
		groups := v1.Group("/groups")
		{
			groups.GET("", groupsHandler.ListGroups)
			groups.POST("", groupsHandler.CreateGroup)
			groups.GET("/:id", groupsHandler.GetGroup)

			groups.POST("/:id/power", groupsHandler.SetPower)
			groups.POST("/:id/brightness", groupsHandler.SetBrightness)
			groups.POST("/:id/color", groupsHandler.SetColor)
			groups.POST("/:id/preset", groupsHandler.SetPreset)
			groups.POST("/:id/scene", groupsHandler.SetScene)
		}

		// Scenes
		scenesHandler := handlers.NewScenesHandler(r.controller)
		v1.GET("/scenes", scenesHandler.ListScenes)
		v1.POST("/quick-scene", scenesHandler.QuickScene)
	}
}

// Run starts the HTTP server
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}
