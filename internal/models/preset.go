package models

// Preset is a named set of loader options.
type Preset struct {
	Name    string  `json:"name" yaml:"name"`
	Options Options `json:"options" yaml:"options"`
}
