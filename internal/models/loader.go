package models

// Config holds the user-facing loader options.
type Config struct {
	ContainerID string  `json:"containerId" yaml:"containerId" msgpack:"containerId"`
	SVGID       string  `json:"svgId" yaml:"svgId" msgpack:"svgId"`
	Fill        string  `json:"fill" yaml:"fill" msgpack:"fill"`
	Size        float64 `json:"size" yaml:"size" msgpack:"size"`
	Radius      float64 `json:"radius" yaml:"radius" msgpack:"radius"`
	Duration    float64 `json:"duration" yaml:"duration" msgpack:"duration"` // ms
	MaxOpacity  float64 `json:"maxOpacity" yaml:"maxOpacity" msgpack:"maxOpacity"`
	MinOpacity  float64 `json:"minOpacity" yaml:"minOpacity" msgpack:"minOpacity"`
	Margin      float64 `json:"margin" yaml:"margin" msgpack:"margin"`
	NbRects     int     `json:"nbRects" yaml:"nbRects" msgpack:"nbRects"`
}

// Settings is a resolved Config plus the derived graphic width.
// Width is always computed from Size, Margin and NbRects.
type Settings struct {
	Config `yaml:",inline" msgpack:",inline"`
	Width  float64 `json:"width" yaml:"width" msgpack:"width"`
}

// Options are user overrides merged over the defaults. A nil field keeps the default.
type Options struct {
	ContainerID *string  `json:"containerId,omitempty" yaml:"containerId,omitempty"`
	SVGID       *string  `json:"svgId,omitempty" yaml:"svgId,omitempty"`
	Fill        *string  `json:"fill,omitempty" yaml:"fill,omitempty"`
	Size        *float64 `json:"size,omitempty" yaml:"size,omitempty"`
	Radius      *float64 `json:"radius,omitempty" yaml:"radius,omitempty"`
	Duration    *float64 `json:"duration,omitempty" yaml:"duration,omitempty"`
	MaxOpacity  *float64 `json:"maxOpacity,omitempty" yaml:"maxOpacity,omitempty"`
	MinOpacity  *float64 `json:"minOpacity,omitempty" yaml:"minOpacity,omitempty"`
	Margin      *float64 `json:"margin,omitempty" yaml:"margin,omitempty"`
	NbRects     *int     `json:"nbRects,omitempty" yaml:"nbRects,omitempty"`
}

// Over returns o with every field set in top replacing the one in o.
func (o Options) Over(top Options) Options {
	merged := o
	if top.ContainerID != nil {
		merged.ContainerID = top.ContainerID
	}
	if top.SVGID != nil {
		merged.SVGID = top.SVGID
	}
	if top.Fill != nil {
		merged.Fill = top.Fill
	}
	if top.Size != nil {
		merged.Size = top.Size
	}
	if top.Radius != nil {
		merged.Radius = top.Radius
	}
	if top.Duration != nil {
		merged.Duration = top.Duration
	}
	if top.MaxOpacity != nil {
		merged.MaxOpacity = top.MaxOpacity
	}
	if top.MinOpacity != nil {
		merged.MinOpacity = top.MinOpacity
	}
	if top.Margin != nil {
		merged.Margin = top.Margin
	}
	if top.NbRects != nil {
		merged.NbRects = top.NbRects
	}
	return merged
}

// Ptr returns a pointer to v. Handy for building Options literals.
func Ptr[T any](v T) *T {
	return &v
}
