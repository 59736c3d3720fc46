package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/svg-loader/backend/internal/loader"
	"github.com/svg-loader/backend/internal/models"
	"github.com/svg-loader/backend/internal/preset"
)

var renderFlags struct {
	preset      string
	presetsFile string
	format      string
	output      string
	strict      bool

	svgID      string
	fill       string
	size       float64
	radius     float64
	duration   float64
	maxOpacity float64
	minOpacity float64
	margin     float64
	nbRects    int
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a loader as SVG markup or shape JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := renderOptions(cmd)
		if err != nil {
			return err
		}

		s := loader.Resolve(opts)
		if renderFlags.strict {
			if err := loader.Validate(s); err != nil {
				return fmt.Errorf("invalid settings: %w", err)
			}
		}

		out := cmd.OutOrStdout()
		if renderFlags.output != "" && renderFlags.output != "-" {
			f, err := os.Create(renderFlags.output)
			if err != nil {
				return fmt.Errorf("creating output file: %w", err)
			}
			defer f.Close()
			out = f
		}
		return writeRender(out, s, renderFlags.format)
	},
}

func init() {
	f := renderCmd.Flags()
	f.StringVar(&renderFlags.preset, "preset", "", "start from a named preset")
	f.StringVar(&renderFlags.presetsFile, "presets", "", "YAML presets file (built-ins when empty)")
	f.StringVar(&renderFlags.format, "format", "svg", "output format (svg or json)")
	f.StringVarP(&renderFlags.output, "output", "o", "", "output file (stdout when empty)")
	f.BoolVar(&renderFlags.strict, "strict", false, "reject out-of-range settings")

	f.StringVar(&renderFlags.svgID, "svg-id", loader.DefaultSVGID, "id of the svg element")
	f.StringVar(&renderFlags.fill, "fill", loader.DefaultFill, "shape fill color")
	f.Float64Var(&renderFlags.size, "size", loader.DefaultSize, "shape width and height (px)")
	f.Float64Var(&renderFlags.radius, "radius", loader.DefaultRadius, "corner radius")
	f.Float64Var(&renderFlags.duration, "duration", loader.DefaultDuration, "pulse cycle (ms)")
	f.Float64Var(&renderFlags.maxOpacity, "max-opacity", loader.DefaultMaxOpacity, "highest opacity")
	f.Float64Var(&renderFlags.minOpacity, "min-opacity", loader.DefaultMinOpacity, "lowest opacity")
	f.Float64Var(&renderFlags.margin, "margin", loader.DefaultMargin, "gap between shapes (px)")
	f.IntVar(&renderFlags.nbRects, "nb-rects", loader.DefaultNbRects, "number of shapes")
}

// renderOptions builds options from the preset and the flags set explicitly.
func renderOptions(cmd *cobra.Command) (models.Options, error) {
	var opts models.Options
	if renderFlags.preset != "" {
		reg, err := preset.Load(renderFlags.presetsFile)
		if err != nil {
			return opts, err
		}
		p, ok := reg.Get(renderFlags.preset)
		if !ok {
			return opts, fmt.Errorf("unknown preset %q", renderFlags.preset)
		}
		opts = p
	}

	flags := cmd.Flags()
	var set models.Options
	if flags.Changed("svg-id") {
		set.SVGID = models.Ptr(renderFlags.svgID)
	}
	if flags.Changed("fill") {
		set.Fill = models.Ptr(renderFlags.fill)
	}
	if flags.Changed("size") {
		set.Size = models.Ptr(renderFlags.size)
	}
	if flags.Changed("radius") {
		set.Radius = models.Ptr(renderFlags.radius)
	}
	if flags.Changed("duration") {
		set.Duration = models.Ptr(renderFlags.duration)
	}
	if flags.Changed("max-opacity") {
		set.MaxOpacity = models.Ptr(renderFlags.maxOpacity)
	}
	if flags.Changed("min-opacity") {
		set.MinOpacity = models.Ptr(renderFlags.minOpacity)
	}
	if flags.Changed("margin") {
		set.Margin = models.Ptr(renderFlags.margin)
	}
	if flags.Changed("nb-rects") {
		set.NbRects = models.Ptr(renderFlags.nbRects)
	}
	return opts.Over(set), nil
}

func writeRender(w io.Writer, s models.Settings, format string) error {
	switch format {
	case "svg":
		markup, err := loader.Markup(s)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", markup)
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]interface{}{
			"settings": s,
			"shapes":   loader.Generate(s),
		})
	default:
		return fmt.Errorf("unknown format %q (must be svg or json)", format)
	}
}
