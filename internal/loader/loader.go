package loader

import (
	"errors"
	"fmt"

	"github.com/labstack/gommon/log"
	"github.com/svg-loader/backend/internal/host"
	"github.com/svg-loader/backend/internal/models"
)

var (
	// ErrMissingContainer marks a loader whose container id did not resolve.
	ErrMissingContainer = errors.New("loader: container element not found")
	// ErrDestroyed marks a loader after Destroy.
	ErrDestroyed = errors.New("loader: destroyed")
)

// Logger receives the loader's warnings. echo.Logger and *log.Logger satisfy it.
type Logger interface {
	Warnj(j log.JSON)
}

var defaultLogger Logger = log.New("loader")

// Loader is one rendered loading indicator attached to a container element.
// Like the DOM it drives, a Loader is not safe for concurrent use.
type Loader struct {
	doc       host.Document
	settings  *models.Settings
	root      host.Element
	log       Logger
	err       error
	destroyed bool
}

// New resolves opts, renders the svg and appends it to the container element.
//
// A missing container is not fatal: the warning is logged and the returned
// Loader is inert (Mounted reports false, lifecycle calls do nothing).
func New(doc host.Document, opts models.Options, logger Logger) *Loader {
	if logger == nil {
		logger = defaultLogger
	}
	s := Resolve(opts)
	l := &Loader{doc: doc, settings: &s, log: logger}

	container := doc.GetElementByID(s.ContainerID)
	if container == nil {
		l.err = ErrMissingContainer
		logger.Warnj(log.JSON{
			"event":       "missing_container",
			"containerId": s.ContainerID,
			"message":     fmt.Sprintf("there's no element with %q id", s.ContainerID),
		})
		return l
	}

	l.root = Render(doc, s)
	container.AppendChild(l.root)
	return l
}

// Toggle shows a hidden loader and hides a visible one. It returns l.
func (l *Loader) Toggle() *Loader {
	if !l.usable("toggle") {
		return l
	}
	if l.doc.ComputedDisplay(l.root) == host.DisplayNone {
		return l.Show()
	}
	return l.Hide()
}

// Show makes the loader visible. It returns l.
func (l *Loader) Show() *Loader {
	if l.usable("show") {
		l.root.SetStyle("display", host.DisplayBlock)
	}
	return l
}

// Hide makes the loader invisible. It returns l.
func (l *Loader) Hide() *Loader {
	if l.usable("hide") {
		l.root.SetStyle("display", host.DisplayNone)
	}
	return l
}

// Destroy detaches the svg and drops all references. The Loader must not be
// used afterwards; later calls are logged and ignored.
func (l *Loader) Destroy() {
	if l.destroyed {
		return
	}
	if l.root != nil {
		l.root.Remove()
	}
	l.root = nil
	l.settings = nil
	l.doc = nil
	l.err = ErrDestroyed
	l.destroyed = true
}

// Settings returns a copy of the resolved settings, or the zero value after Destroy.
func (l *Loader) Settings() models.Settings {
	if l.settings == nil {
		return models.Settings{}
	}
	return *l.settings
}

// Root returns the rendered svg element, nil when not mounted.
func (l *Loader) Root() host.Element {
	return l.root
}

// Mounted reports whether the svg is attached to a container.
func (l *Loader) Mounted() bool {
	return l.root != nil
}

// Visible reports whether the svg is mounted and not hidden.
func (l *Loader) Visible() bool {
	return l.root != nil && l.doc.ComputedDisplay(l.root) != host.DisplayNone
}

// Destroyed reports whether Destroy has been called.
func (l *Loader) Destroyed() bool {
	return l.destroyed
}

// Err is ErrMissingContainer for an inert loader, ErrDestroyed after Destroy
// and nil otherwise.
func (l *Loader) Err() error {
	return l.err
}

func (l *Loader) usable(op string) bool {
	if l.root != nil {
		return true
	}
	l.log.Warnj(log.JSON{
		"event":  "inactive_loader",
		"op":     op,
		"reason": l.err.Error(),
	})
	return false
}
