package loader

import (
	"testing"

	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/svg-loader/backend/internal/host"
	"github.com/svg-loader/backend/internal/models"
)

type recordLogger struct {
	entries []log.JSON
}

func (r *recordLogger) Warnj(j log.JSON) {
	r.entries = append(r.entries, j)
}

func newPage(containers ...string) *host.MemoryDocument {
	doc := host.NewMemoryDocument()
	for _, id := range containers {
		doc.AddContainer(id)
	}
	return doc
}

func TestNewMountsIntoContainer(t *testing.T) {
	doc := newPage(DefaultContainerID)
	logs := &recordLogger{}

	l := New(doc, models.Options{}, logs)
	require.True(t, l.Mounted())
	assert.NoError(t, l.Err())
	assert.Empty(t, logs.entries)

	container, _ := doc.Lookup(DefaultContainerID)
	require.Len(t, container.Children(), 1)
	svg := container.Children()[0]
	assert.Equal(t, "svg", svg.Tag())

	found, ok := doc.Lookup("loader")
	require.True(t, ok)
	assert.Same(t, svg, found)
	assert.True(t, l.Visible())
}

func TestNewMissingContainerIsInert(t *testing.T) {
	doc := newPage("something-else")
	logs := &recordLogger{}

	var l *Loader
	require.NotPanics(t, func() {
		l = New(doc, models.Options{ContainerID: models.Ptr("nope")}, logs)
	})
	require.NotNil(t, l)
	assert.False(t, l.Mounted())
	assert.Nil(t, l.Root())
	assert.ErrorIs(t, l.Err(), ErrMissingContainer)
	require.Len(t, logs.entries, 1)
	assert.Equal(t, "missing_container", logs.entries[0]["event"])
	assert.Equal(t, "nope", logs.entries[0]["containerId"])

	_, ok := doc.Lookup("loader")
	assert.False(t, ok)

	// Settings stay readable; lifecycle calls do nothing.
	assert.Equal(t, "nope", l.Settings().ContainerID)
	assert.NotPanics(t, func() { l.Show().Hide().Toggle() })
	assert.False(t, l.Visible())
}

func TestShowHideIdempotent(t *testing.T) {
	doc := newPage(DefaultContainerID)
	l := New(doc, models.Options{}, &recordLogger{})
	root := l.Root().(*host.Node)

	l.Hide().Hide()
	assert.Equal(t, "none", root.Style("display"))
	assert.False(t, l.Visible())

	l.Show().Show()
	assert.Equal(t, "block", root.Style("display"))
	assert.True(t, l.Visible())
}

func TestToggle(t *testing.T) {
	doc := newPage(DefaultContainerID)
	l := New(doc, models.Options{}, &recordLogger{})

	// Never styled: computed display is inline, so toggling hides.
	assert.Same(t, l, l.Toggle())
	assert.False(t, l.Visible())

	l.Show()
	l.Toggle()
	assert.False(t, l.Visible())

	l.Hide()
	l.Toggle()
	assert.True(t, l.Visible())
}

func TestDestroy(t *testing.T) {
	doc := newPage(DefaultContainerID)
	logs := &recordLogger{}
	l := New(doc, models.Options{}, logs)
	root := l.Root().(*host.Node)

	l.Destroy()
	assert.True(t, l.Destroyed())
	assert.False(t, l.Mounted())
	assert.ErrorIs(t, l.Err(), ErrDestroyed)
	assert.Equal(t, models.Settings{}, l.Settings())
	assert.False(t, root.Attached())
	_, ok := doc.Lookup("loader")
	assert.False(t, ok)

	l.Show().Toggle()
	assert.False(t, root.Attached())
	assert.Empty(t, root.Style("display"))
	assert.False(t, l.Visible())
	assert.Len(t, logs.entries, 2)
	assert.Equal(t, "inactive_loader", logs.entries[0]["event"])

	assert.NotPanics(t, l.Destroy)
}

func TestDestroyLeavesOtherSVGs(t *testing.T) {
	doc := newPage(DefaultContainerID)
	first := New(doc, models.Options{SVGID: models.Ptr("first")}, &recordLogger{})
	second := New(doc, models.Options{SVGID: models.Ptr("second")}, &recordLogger{})

	second.Destroy()

	_, ok := doc.Lookup("first")
	assert.True(t, ok)
	_, ok = doc.Lookup("second")
	assert.False(t, ok)
	assert.True(t, first.Mounted())
}

func TestSettingsIsACopy(t *testing.T) {
	l := New(newPage(DefaultContainerID), models.Options{}, &recordLogger{})

	s := l.Settings()
	s.Fill = "#ffffff"
	s.Width = 1

	assert.Equal(t, "#000000", l.Settings().Fill)
	assert.Equal(t, 49.0, l.Settings().Width)
	assert.Equal(t, "#000000", DefaultOptions().Fill)
}
