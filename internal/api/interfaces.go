// interfaces.go - Handler interface definitions for clean separation of concerns
package api

import (
	"github.com/labstack/echo/v4"
)

// HealthHandler handles health check operations
type HealthHandler interface {
	HandleHealth(c echo.Context) error
}

// RenderHandler handles stateless option resolution and SVG rendering
type RenderHandler interface {
	HandleGetDefaults(c echo.Context) error
	HandleResolve(c echo.Context) error
	HandleShapes(c echo.Context) error
	HandleShapesMsgpack(c echo.Context) error
	HandleSVG(c echo.Context) error
	HandleListPresets(c echo.Context) error
}

// InstanceHandler handles live loader instances
type InstanceHandler interface {
	HandleCreateInstance(c echo.Context) error
	HandleListInstances(c echo.Context) error
	HandleGetInstance(c echo.Context) error
	HandleShowInstance(c echo.Context) error
	HandleHideInstance(c echo.Context) error
	HandleToggleInstance(c echo.Context) error
	HandleDestroyInstance(c echo.Context) error
	HandleGetDocument(c echo.Context) error
}

// SocketHandler handles the WebSocket control channel
type SocketHandler interface {
	HandleWebSocket(c echo.Context) error
}
