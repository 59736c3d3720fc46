// Package loader builds animated SVG loading indicators: option resolution,
// shape generation, markup and the show/hide/toggle/destroy lifecycle.
package loader

import "github.com/svg-loader/backend/internal/models"

// Default option values.
const (
	DefaultContainerID = "loader-container"
	DefaultSVGID       = "loader"
	DefaultFill        = "#000000"
	DefaultSize        = 15
	DefaultRadius      = 2
	DefaultDuration    = 1000
	DefaultMaxOpacity  = 0.75
	DefaultMinOpacity  = 0.25
	DefaultMargin      = 2
	DefaultNbRects     = 3
)

// DefaultOptions returns the option set used when nothing is overridden.
// Every call returns a fresh copy.
func DefaultOptions() models.Config {
	return models.Config{
		ContainerID: DefaultContainerID,
		SVGID:       DefaultSVGID,
		Fill:        DefaultFill,
		Size:        DefaultSize,
		Radius:      DefaultRadius,
		Duration:    DefaultDuration,
		MaxOpacity:  DefaultMaxOpacity,
		MinOpacity:  DefaultMinOpacity,
		Margin:      DefaultMargin,
		NbRects:     DefaultNbRects,
	}
}

// Resolve merges opts over DefaultOptions and derives the graphic width.
// Values are taken as given; see Validate for range checks.
func Resolve(opts models.Options) models.Settings {
	c := DefaultOptions()
	if opts.ContainerID != nil {
		c.ContainerID = *opts.ContainerID
	}
	if opts.SVGID != nil {
		c.SVGID = *opts.SVGID
	}
	if opts.Fill != nil {
		c.Fill = *opts.Fill
	}
	if opts.Size != nil {
		c.Size = *opts.Size
	}
	if opts.Radius != nil {
		c.Radius = *opts.Radius
	}
	if opts.Duration != nil {
		c.Duration = *opts.Duration
	}
	if opts.MaxOpacity != nil {
		c.MaxOpacity = *opts.MaxOpacity
	}
	if opts.MinOpacity != nil {
		c.MinOpacity = *opts.MinOpacity
	}
	if opts.Margin != nil {
		c.Margin = *opts.Margin
	}
	if opts.NbRects != nil {
		c.NbRects = *opts.NbRects
	}
	return models.Settings{
		Config: c,
		Width:  Width(c.Size, c.Margin, c.NbRects),
	}
}

// Width is the total width of nbRects shapes of the given size separated by margin.
func Width(size, margin float64, nbRects int) float64 {
	n := float64(nbRects)
	return size*n + margin*(n-1)
}
