//go:build js && wasm

// Command wasm exposes the loader to page scripts as the SVGLoader global:
//
//	const l = SVGLoader.create({ fill: '#f00', nbRects: 5 });
//	l.toggle().toggle();
//	l.destroy();
package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/labstack/gommon/log"
	"github.com/svg-loader/backend/internal/host"
	"github.com/svg-loader/backend/internal/loader"
	"github.com/svg-loader/backend/internal/models"
)

// consoleLogger forwards loader warnings to console.warn.
type consoleLogger struct{}

func (consoleLogger) Warnj(j log.JSON) {
	data, _ := json.Marshal(j)
	js.Global().Get("console").Call("warn", string(data))
}

func toJS(v interface{}) js.Value {
	data, err := json.Marshal(v)
	if err != nil {
		return js.Null()
	}
	return js.Global().Get("JSON").Call("parse", string(data))
}

func optionsFrom(args []js.Value) (models.Options, error) {
	var opts models.Options
	if len(args) == 0 || args[0].IsUndefined() || args[0].IsNull() {
		return opts, nil
	}
	raw := js.Global().Get("JSON").Call("stringify", args[0]).String()
	err := json.Unmarshal([]byte(raw), &opts)
	return opts, err
}

// handle is the JS object of one loader together with the callbacks it owns.
type handle struct {
	loader *loader.Loader
	obj    js.Value
	funcs  []js.Func
}

// inert replaces every method once the loader is destroyed.
var inert = map[string]string{
	"show":     "return this",
	"hide":     "return this",
	"toggle":   "return this",
	"settings": "",
	"mounted":  "return false",
	"element":  "",
	"destroy":  "",
}

func newHandle(l *loader.Loader) *handle {
	h := &handle{loader: l, obj: js.Global().Get("Object").New()}
	chain := func(op func() *loader.Loader) func([]js.Value) interface{} {
		return func([]js.Value) interface{} {
			op()
			return h.obj
		}
	}

	h.set("show", chain(l.Show))
	h.set("hide", chain(l.Hide))
	h.set("toggle", chain(l.Toggle))
	h.set("settings", func([]js.Value) interface{} {
		return toJS(l.Settings())
	})
	h.set("mounted", func([]js.Value) interface{} {
		return l.Mounted()
	})
	h.set("element", func([]js.Value) interface{} {
		return host.Value(l.Root())
	})
	h.set("destroy", func([]js.Value) interface{} {
		h.destroy()
		return js.Undefined()
	})
	return h
}

func (h *handle) set(name string, fn func(args []js.Value) interface{}) {
	f := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		return fn(args)
	})
	h.funcs = append(h.funcs, f)
	h.obj.Set(name, f)
}

// destroy tears the loader down and releases the Go callbacks. The page may
// still hold the object, so its methods become plain JS stubs.
func (h *handle) destroy() {
	h.loader.Destroy()
	for name, body := range inert {
		h.obj.Set(name, js.Global().Get("Function").New(body))
	}
	for _, f := range h.funcs {
		f.Release()
	}
	h.funcs = nil
}

func main() {
	doc := host.NewBrowserDocument()
	api := js.Global().Get("Object").New()

	api.Set("create", js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		opts, err := optionsFrom(args)
		if err != nil {
			js.Global().Get("console").Call("warn", "SVGLoader: invalid options: "+err.Error())
			return js.Null()
		}
		return newHandle(loader.New(doc, opts, consoleLogger{})).obj
	}))
	api.Set("defaultOptions", js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		return toJS(loader.DefaultOptions())
	}))
	api.Set("markup", js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		opts, err := optionsFrom(args)
		if err != nil {
			return js.Null()
		}
		markup, err := loader.Markup(loader.Resolve(opts))
		if err != nil {
			return js.Null()
		}
		return string(markup)
	}))

	js.Global().Set("SVGLoader", api)
	select {}
}
