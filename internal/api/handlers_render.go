// handlers_render.go - Stateless option resolution and SVG rendering handlers
package api

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/svg-loader/backend/internal/loader"
	"github.com/svg-loader/backend/internal/models"
	"github.com/svg-loader/backend/internal/preset"
	"github.com/vmihailenco/msgpack/v5"
)

// MIMEImageSVG is the content type of rendered loaders.
const MIMEImageSVG = "image/svg+xml"

// ShapesResponse carries resolved settings and the generated shapes.
type ShapesResponse struct {
	Settings models.Settings `json:"settings" msgpack:"settings"`
	Shapes   []models.Shape  `json:"shapes" msgpack:"shapes"`
}

// RenderHandlerImpl implements the RenderHandler interface
type RenderHandlerImpl struct {
	resolver    optionResolver
	presets     *preset.Registry
	cacheMaxAge int
}

// NewRenderHandler creates a new render handler
func NewRenderHandler(presets *preset.Registry, strict bool, maxShapes, cacheMaxAge int) RenderHandler {
	return &RenderHandlerImpl{
		resolver:    newOptionResolver(presets, strict, maxShapes),
		presets:     presets,
		cacheMaxAge: cacheMaxAge,
	}
}

// HandleGetDefaults returns the built-in default options
func (h *RenderHandlerImpl) HandleGetDefaults(c echo.Context) error {
	return c.JSON(http.StatusOK, loader.DefaultOptions())
}

// HandleResolve merges the posted options over the defaults
func (h *RenderHandlerImpl) HandleResolve(c echo.Context) error {
	s, apiErr := h.bindAndResolve(c)
	if apiErr != nil {
		return RespondWithError(c, apiErr)
	}
	return c.JSON(http.StatusOK, s)
}

// HandleShapes returns the shape descriptors for the posted options
func (h *RenderHandlerImpl) HandleShapes(c echo.Context) error {
	s, apiErr := h.bindAndResolve(c)
	if apiErr != nil {
		return RespondWithError(c, apiErr)
	}
	return c.JSON(http.StatusOK, ShapesResponse{Settings: s, Shapes: loader.Generate(s)})
}

// HandleShapesMsgpack is HandleShapes with a msgpack body
func (h *RenderHandlerImpl) HandleShapesMsgpack(c echo.Context) error {
	s, apiErr := h.bindAndResolve(c)
	if apiErr != nil {
		return RespondWithError(c, apiErr)
	}

	data, err := msgpack.Marshal(ShapesResponse{Settings: s, Shapes: loader.Generate(s)})
	if err != nil {
		return RespondWithError(c, NewInternalError("failed to encode msgpack", err))
	}
	return c.Blob(http.StatusOK, "application/msgpack", data)
}

// HandleSVG renders a loader from query parameters as SVG markup
func (h *RenderHandlerImpl) HandleSVG(c echo.Context) error {
	req, apiErr := requestFromQuery(c)
	if apiErr != nil {
		return RespondWithError(c, apiErr)
	}
	s, apiErr := h.resolver.resolve(req)
	if apiErr != nil {
		return RespondWithError(c, apiErr)
	}

	markup, err := loader.Markup(s)
	if err != nil {
		return RespondWithError(c, NewInternalError("failed to render svg", err))
	}
	if h.cacheMaxAge > 0 {
		c.Response().Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", h.cacheMaxAge))
	}
	return c.Blob(http.StatusOK, MIMEImageSVG, markup)
}

// HandleListPresets returns every known preset
func (h *RenderHandlerImpl) HandleListPresets(c echo.Context) error {
	return c.JSON(http.StatusOK, h.presets.List())
}

func (h *RenderHandlerImpl) bindAndResolve(c echo.Context) (models.Settings, *APIError) {
	var req RenderRequest
	if err := c.Bind(&req); err != nil {
		return models.Settings{}, NewBadRequestError("invalid request body", err)
	}
	return h.resolver.resolve(req)
}
