// options.go - Request option decoding shared by the render and instance handlers
package api

import (
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/svg-loader/backend/internal/loader"
	"github.com/svg-loader/backend/internal/models"
	"github.com/svg-loader/backend/internal/preset"
)

// RenderRequest selects an optional preset and overrides on top of it.
type RenderRequest struct {
	Preset  string         `json:"preset,omitempty"`
	Options models.Options `json:"options"`
}

// DefaultMaxShapes caps nbRects on network requests when no limit is configured.
const DefaultMaxShapes = 100

// optionResolver turns requests into settings, applying presets, the shape
// limit and the optional strict validation.
type optionResolver struct {
	presets   *preset.Registry
	strict    bool
	maxShapes int
}

func newOptionResolver(presets *preset.Registry, strict bool, maxShapes int) optionResolver {
	if maxShapes <= 0 {
		maxShapes = DefaultMaxShapes
	}
	return optionResolver{presets: presets, strict: strict, maxShapes: maxShapes}
}

// options merges the request's overrides over its preset.
func (r optionResolver) options(req RenderRequest) (models.Options, *APIError) {
	if req.Preset == "" {
		return req.Options, nil
	}
	base, ok := r.presets.Get(req.Preset)
	if !ok {
		return models.Options{}, NewNotFoundError("preset", req.Preset)
	}
	return base.Over(req.Options), nil
}

func (r optionResolver) resolve(req RenderRequest) (models.Settings, *APIError) {
	opts, apiErr := r.options(req)
	if apiErr != nil {
		return models.Settings{}, apiErr
	}
	s := loader.Resolve(opts)
	if s.NbRects > r.maxShapes {
		return models.Settings{}, NewBadRequestError(
			fmt.Sprintf("nbRects exceeds the limit of %d", r.maxShapes), nil)
	}
	if r.strict {
		if err := loader.Validate(s); err != nil {
			return models.Settings{}, NewSettingsValidationError(err)
		}
	}
	return s, nil
}

// requestFromQuery reads a RenderRequest from query parameters named after the options.
func requestFromQuery(c echo.Context) (RenderRequest, *APIError) {
	req := RenderRequest{Preset: c.QueryParam("preset")}
	o := &req.Options

	for name, dst := range map[string]**string{
		"containerId": &o.ContainerID,
		"svgId":       &o.SVGID,
		"fill":        &o.Fill,
	} {
		if v := c.QueryParam(name); v != "" {
			*dst = models.Ptr(v)
		}
	}

	for name, dst := range map[string]**float64{
		"size":       &o.Size,
		"radius":     &o.Radius,
		"duration":   &o.Duration,
		"maxOpacity": &o.MaxOpacity,
		"minOpacity": &o.MinOpacity,
		"margin":     &o.Margin,
	} {
		v := c.QueryParam(name)
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return req, NewBadRequestError("invalid number for "+name, err)
		}
		*dst = models.Ptr(f)
	}

	if v := c.QueryParam("nbRects"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return req, NewBadRequestError("invalid integer for nbRects", err)
		}
		o.NbRects = models.Ptr(n)
	}
	return req, nil
}
