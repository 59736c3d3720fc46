// Package host defines the rendering environment a loader is attached to and
// provides an in-memory implementation of it.
package host

// SVGNamespace is the XML namespace of SVG elements.
const SVGNamespace = "http://www.w3.org/2000/svg"

// Display values written by the loader.
const (
	DisplayBlock = "block"
	DisplayNone  = "none"
)

// Document is the subset of a DOM document used by the loader.
type Document interface {
	// GetElementByID returns nil when no attached element carries id.
	GetElementByID(id string) Element
	CreateElementNS(namespace, tag string) Element
	// ComputedDisplay returns the effective CSS display of el.
	ComputedDisplay(el Element) string
}

// Element is the subset of a DOM element used by the loader.
type Element interface {
	SetAttribute(name, value string)
	AppendChild(child Element)
	Remove()
	SetStyle(property, value string)
}
