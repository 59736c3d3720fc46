// Package preset loads named loader option sets from YAML.
package preset

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/svg-loader/backend/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed builtin.yaml
var builtinYAML []byte

// Registry holds presets by name.
type Registry struct {
	presets map[string]models.Options
}

// Parse reads a YAML document mapping preset names to options.
func Parse(r io.Reader) (map[string]models.Options, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	presets := make(map[string]models.Options)
	if err := yaml.Unmarshal(data, &presets); err != nil {
		return nil, fmt.Errorf("parsing presets: %w", err)
	}
	return presets, nil
}

// Builtin returns a registry with the presets shipped in the binary.
func Builtin() *Registry {
	presets := make(map[string]models.Options)
	if err := yaml.Unmarshal(builtinYAML, &presets); err != nil {
		panic(fmt.Sprintf("preset: invalid builtin.yaml: %v", err))
	}
	return &Registry{presets: presets}
}

// Load returns the built-in presets overlaid with the ones in path.
// An empty path or a missing file yields the built-ins only.
func Load(path string) (*Registry, error) {
	reg := Builtin()
	if path == "" {
		return reg, nil
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return reg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening presets file: %w", err)
	}
	defer f.Close()

	custom, err := Parse(f)
	if err != nil {
		return nil, err
	}
	for name, opts := range custom {
		reg.presets[name] = opts
	}
	return reg, nil
}

// Get returns the options of the named preset.
func (r *Registry) Get(name string) (models.Options, bool) {
	opts, ok := r.presets[name]
	return opts, ok
}

// Names returns preset names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.presets))
	for name := range r.presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// List returns all presets sorted by name.
func (r *Registry) List() []models.Preset {
	names := r.Names()
	out := make([]models.Preset, len(names))
	for i, name := range names {
		out[i] = models.Preset{Name: name, Options: r.presets[name]}
	}
	return out
}
