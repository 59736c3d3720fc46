package loader

import (
	"bytes"
	"errors"

	"github.com/svg-loader/backend/internal/host"
	"github.com/svg-loader/backend/internal/models"
)

// Render creates the svg root for s in doc. The root is not attached anywhere.
func Render(doc host.Document, s models.Settings) host.Element {
	svg := doc.CreateElementNS(host.SVGNamespace, "svg")
	svg.SetAttribute("id", s.SVGID)
	svg.SetAttribute("viewBox", "0 0 "+FormatNumber(s.Width)+" "+FormatNumber(s.Size))
	svg.SetAttribute("width", FormatNumber(s.Width))
	svg.SetAttribute("height", FormatNumber(s.Size))

	group := doc.CreateElementNS(host.SVGNamespace, "g")
	for _, shape := range Generate(s) {
		group.AppendChild(renderShape(doc, shape))
	}
	svg.AppendChild(group)
	return svg
}

func renderShape(doc host.Document, shape models.Shape) host.Element {
	rect := doc.CreateElementNS(host.SVGNamespace, "rect")
	rect.SetAttribute("id", shape.ID)
	rect.SetAttribute("width", FormatNumber(shape.Width))
	rect.SetAttribute("height", FormatNumber(shape.Height))
	rect.SetAttribute("x", FormatNumber(shape.X))
	rect.SetAttribute("y", FormatNumber(shape.Y))
	rect.SetAttribute("rx", FormatNumber(shape.RX))
	rect.SetAttribute("ry", FormatNumber(shape.RY))
	rect.SetAttribute("fill", shape.Fill)
	rect.SetAttribute("fill-opacity", FormatNumber(shape.FillOpacity))

	anim := shape.Animation
	animate := doc.CreateElementNS(host.SVGNamespace, "animate")
	animate.SetAttribute("attributeName", anim.AttributeName)
	animate.SetAttribute("values", FormatValues(anim.Values))
	animate.SetAttribute("begin", FormatMillis(anim.Begin))
	animate.SetAttribute("dur", FormatMillis(anim.Dur))
	animate.SetAttribute("repeatCount", anim.RepeatCount)

	rect.AppendChild(animate)
	return rect
}

// Markup returns standalone SVG markup for s.
func Markup(s models.Settings) ([]byte, error) {
	doc := host.NewMemoryDocument()
	root, ok := Render(doc, s).(*host.Node)
	if !ok {
		return nil, errors.New("loader: unexpected element type")
	}
	var buf bytes.Buffer
	if err := root.WriteMarkup(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
