//go:build js && wasm

package host

import "syscall/js"

// BrowserDocument is a Document backed by the page's real DOM.
type BrowserDocument struct {
	doc js.Value
	win js.Value
}

type browserElement struct {
	v js.Value
}

// NewBrowserDocument wraps the global document of the running page.
func NewBrowserDocument() *BrowserDocument {
	return &BrowserDocument{
		doc: js.Global().Get("document"),
		win: js.Global(),
	}
}

// GetElementByID implements Document.
func (d *BrowserDocument) GetElementByID(id string) Element {
	v := d.doc.Call("getElementById", id)
	if v.IsNull() || v.IsUndefined() {
		return nil
	}
	return browserElement{v: v}
}

// CreateElementNS implements Document.
func (d *BrowserDocument) CreateElementNS(namespace, tag string) Element {
	return browserElement{v: d.doc.Call("createElementNS", namespace, tag)}
}

// ComputedDisplay implements Document.
func (d *BrowserDocument) ComputedDisplay(el Element) string {
	e, ok := el.(browserElement)
	if !ok {
		return ""
	}
	return d.win.Call("getComputedStyle", e.v).Get("display").String()
}

// Value exposes the wrapped DOM node, or undefined for foreign elements.
func Value(el Element) js.Value {
	if e, ok := el.(browserElement); ok {
		return e.v
	}
	return js.Undefined()
}

func (e browserElement) SetAttribute(name, value string) {
	e.v.Call("setAttributeNS", nil, name, value)
}

func (e browserElement) AppendChild(child Element) {
	c, ok := child.(browserElement)
	if !ok {
		panic("host: cannot append a non-browser element to the DOM")
	}
	e.v.Call("appendChild", c.v)
}

func (e browserElement) Remove() {
	e.v.Call("remove")
}

func (e browserElement) SetStyle(property, value string) {
	e.v.Get("style").Call("setProperty", property, value)
}
