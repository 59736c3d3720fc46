package host

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// inlineTags are the elements whose default display is inline.
var inlineTags = map[string]bool{
	"svg":     true,
	"g":       true,
	"rect":    true,
	"animate": true,
	"span":    true,
}

// MemoryDocument is an in-memory Document. It is not safe for concurrent use;
// callers serialise access the way a browser main thread would.
type MemoryDocument struct {
	body *Node
}

// Node is an element of a MemoryDocument.
type Node struct {
	doc       *MemoryDocument
	tag       string
	namespace string
	attrs     []xml.Attr
	styles    []xml.Attr
	children  []*Node
	parent    *Node
}

// NewMemoryDocument creates an empty document with a body element.
func NewMemoryDocument() *MemoryDocument {
	d := &MemoryDocument{}
	d.body = &Node{doc: d, tag: "body"}
	return d
}

// Body returns the document's root element.
func (d *MemoryDocument) Body() *Node {
	return d.body
}

// AddContainer appends a div with the given id to the body.
func (d *MemoryDocument) AddContainer(id string) *Node {
	div := d.newNode("", "div")
	div.SetAttribute("id", id)
	d.body.appendNode(div)
	return div
}

// GetElementByID implements Document. Detached nodes are never found.
func (d *MemoryDocument) GetElementByID(id string) Element {
	if n := d.body.find(id); n != nil {
		return n
	}
	return nil
}

// Lookup is GetElementByID returning the concrete node.
func (d *MemoryDocument) Lookup(id string) (*Node, bool) {
	n := d.body.find(id)
	return n, n != nil
}

// CreateElementNS implements Document.
func (d *MemoryDocument) CreateElementNS(namespace, tag string) Element {
	return d.newNode(namespace, tag)
}

// ComputedDisplay implements Document.
func (d *MemoryDocument) ComputedDisplay(el Element) string {
	n, ok := el.(*Node)
	if !ok || n == nil {
		return ""
	}
	if v := n.Style("display"); v != "" {
		return v
	}
	if inlineTags[n.tag] {
		return "inline"
	}
	return DisplayBlock
}

// WriteMarkup serialises the whole body.
func (d *MemoryDocument) WriteMarkup(w io.Writer) error {
	return d.body.WriteMarkup(w)
}

func (d *MemoryDocument) newNode(namespace, tag string) *Node {
	return &Node{doc: d, tag: tag, namespace: namespace}
}

// Tag returns the element's local name.
func (n *Node) Tag() string { return n.tag }

// Namespace returns the element's namespace URI.
func (n *Node) Namespace() string { return n.namespace }

// Parent returns nil for detached nodes and the body.
func (n *Node) Parent() *Node { return n.parent }

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Attribute returns the value of the named attribute.
func (n *Node) Attribute(name string) (string, bool) {
	for _, a := range n.attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// AttributeNames returns attribute names in insertion order.
func (n *Node) AttributeNames() []string {
	names := make([]string, len(n.attrs))
	for i, a := range n.attrs {
		names[i] = a.Name.Local
	}
	return names
}

// SetAttribute implements Element. Existing attributes keep their position.
func (n *Node) SetAttribute(name, value string) {
	n.attrs = setAttr(n.attrs, name, value)
}

// Style returns the inline style property, or "" when unset.
func (n *Node) Style(property string) string {
	for _, s := range n.styles {
		if s.Name.Local == property {
			return s.Value
		}
	}
	return ""
}

// SetStyle implements Element.
func (n *Node) SetStyle(property, value string) {
	n.styles = setAttr(n.styles, property, value)
}

// AppendChild implements Element. A child that already has a parent is moved.
func (n *Node) AppendChild(child Element) {
	c, ok := child.(*Node)
	if !ok || c == nil {
		panic(fmt.Sprintf("host: cannot append %T to a memory document", child))
	}
	if c.doc != n.doc {
		panic("host: node belongs to another document")
	}
	n.appendNode(c)
}

// Remove implements Element.
func (n *Node) Remove() {
	if n.parent == nil {
		return
	}
	siblings := n.parent.children
	for i, c := range siblings {
		if c == n {
			n.parent.children = append(siblings[:i:i], siblings[i+1:]...)
			break
		}
	}
	n.parent = nil
}

// Attached reports whether the node is reachable from the document body.
func (n *Node) Attached() bool {
	for cur := n; cur != nil; cur = cur.parent {
		if cur == n.doc.body {
			return true
		}
	}
	return false
}

// WriteMarkup serialises the node and its subtree as XML.
func (n *Node) WriteMarkup(w io.Writer) error {
	enc := xml.NewEncoder(w)
	if err := n.encode(enc, ""); err != nil {
		return err
	}
	return enc.Flush()
}

func (n *Node) encode(enc *xml.Encoder, parentNS string) error {
	start := xml.StartElement{Name: xml.Name{Local: n.tag}}
	if n.namespace != "" && n.namespace != parentNS {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: "xmlns"}, Value: n.namespace})
	}
	start.Attr = append(start.Attr, n.attrs...)
	if len(n.styles) > 0 {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: "style"}, Value: n.styleText()})
	}
	if err := enc.EncodeToken(start); err != nil {
		return fmt.Errorf("encoding <%s>: %w", n.tag, err)
	}

	ns := parentNS
	if n.namespace != "" {
		ns = n.namespace
	}
	for _, c := range n.children {
		if err := c.encode(enc, ns); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

func (n *Node) styleText() string {
	parts := make([]string, len(n.styles))
	for i, s := range n.styles {
		parts[i] = s.Name.Local + ": " + s.Value + ";"
	}
	return strings.Join(parts, " ")
}

func (n *Node) appendNode(c *Node) {
	c.Remove()
	c.parent = n
	n.children = append(n.children, c)
}

func (n *Node) find(id string) *Node {
	if v, ok := n.Attribute("id"); ok && v == id {
		return n
	}
	for _, c := range n.children {
		if found := c.find(id); found != nil {
			return found
		}
	}
	return nil
}

func setAttr(list []xml.Attr, name, value string) []xml.Attr {
	for i := range list {
		if list[i].Name.Local == name {
			list[i].Value = value
			return list
		}
	}
	return append(list, xml.Attr{Name: xml.Name{Local: name}, Value: value})
}
