// routes.go - Route registration helpers
// This file provides a clean way to register all API routes
package api

import (
	"github.com/labstack/echo/v4"
	"github.com/svg-loader/backend/internal/preset"
	"github.com/svg-loader/backend/internal/session"
)

// Dependencies holds all handler dependencies
type Dependencies struct {
	Sessions          *session.Manager
	Presets           *preset.Registry
	Version           string
	StrictValidation  bool
	MaxShapes         int
	CacheMaxAge       int
	WebSocketMaxMsgKB int
}

// Handlers holds all handler instances
type Handlers struct {
	Health   HealthHandler
	Render   RenderHandler
	Instance InstanceHandler
	Socket   SocketHandler
}

// NewHandlers creates all handler instances
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(deps.Version, deps.Sessions),
		Render:   NewRenderHandler(deps.Presets, deps.StrictValidation, deps.MaxShapes, deps.CacheMaxAge),
		Instance: NewInstanceHandler(deps.Sessions, deps.Presets, deps.StrictValidation, deps.MaxShapes),
		Socket:   NewWebSocketHandler(deps.Sessions, deps.Presets, deps.StrictValidation, deps.MaxShapes, deps.WebSocketMaxMsgKB),
	}
}

// RegisterRoutes registers all API routes with the Echo instance
func RegisterRoutes(e *echo.Echo, handlers *Handlers) {
	apiGroup := e.Group("/api")

	// Health check
	apiGroup.GET("/health", handlers.Health.HandleHealth)

	// Stateless rendering
	apiGroup.GET("/loader/defaults", handlers.Render.HandleGetDefaults)
	apiGroup.POST("/loader/resolve", handlers.Render.HandleResolve)
	apiGroup.POST("/loader/shapes", handlers.Render.HandleShapes)
	apiGroup.POST("/loader/shapes/msgpack", handlers.Render.HandleShapesMsgpack)
	apiGroup.GET("/loader.svg", handlers.Render.HandleSVG)
	apiGroup.GET("/presets", handlers.Render.HandleListPresets)

	// Live loader instances
	loaders := apiGroup.Group("/loaders")
	loaders.POST("", handlers.Instance.HandleCreateInstance)
	loaders.GET("", handlers.Instance.HandleListInstances)
	loaders.GET("/:id", handlers.Instance.HandleGetInstance)
	loaders.POST("/:id/show", handlers.Instance.HandleShowInstance)
	loaders.POST("/:id/hide", handlers.Instance.HandleHideInstance)
	loaders.POST("/:id/toggle", handlers.Instance.HandleToggleInstance)
	loaders.DELETE("/:id", handlers.Instance.HandleDestroyInstance)
	loaders.GET("/:id/document", handlers.Instance.HandleGetDocument)

	// WebSocket control channel
	apiGroup.GET("/ws/loaders", handlers.Socket.HandleWebSocket)
}

// SetupMiddleware configures common middleware
func SetupMiddleware(e *echo.Echo) {
	// Use custom error handler
	e.HTTPErrorHandler = ErrorHandler
}
