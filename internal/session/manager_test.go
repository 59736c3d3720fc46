package session

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/svg-loader/backend/internal/models"
)

func newTestManager(max int) *Manager {
	logger := log.New("test")
	logger.SetOutput(io.Discard)
	return NewManager(max, logger)
}

func TestCreateAndLifecycle(t *testing.T) {
	m := newTestManager(0)

	st, err := m.Create(nil, models.Options{Fill: models.Ptr("#ff0000")})
	require.NoError(t, err)
	assert.True(t, st.Mounted)
	assert.True(t, st.Visible)
	assert.Empty(t, st.Warning)
	assert.Equal(t, []string{"loader-container"}, st.Containers)
	require.NotNil(t, st.Settings)
	assert.Equal(t, "#ff0000", st.Settings.Fill)

	st, err = m.Hide(st.ID)
	require.NoError(t, err)
	assert.False(t, st.Visible)

	st, err = m.Toggle(st.ID)
	require.NoError(t, err)
	assert.True(t, st.Visible)

	st, err = m.Show(st.ID)
	require.NoError(t, err)
	assert.True(t, st.Visible)

	doc, err := m.Document(st.ID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(doc), `<body><div id="loader-container"><svg xmlns="http://www.w3.org/2000/svg" id="loader"`))
	assert.Contains(t, string(doc), `fill="#ff0000"`)
	assert.Contains(t, string(doc), `style="display: block;"`)
}

func TestCreateMissingContainer(t *testing.T) {
	m := newTestManager(0)

	st, err := m.Create([]string{"page"}, models.Options{})
	require.NoError(t, err)
	assert.False(t, st.Mounted)
	assert.False(t, st.Visible)
	assert.Contains(t, st.Warning, `"loader-container"`)

	// Lifecycle calls on an inert instance are harmless.
	st, err = m.Toggle(st.ID)
	require.NoError(t, err)
	assert.False(t, st.Mounted)

	doc, err := m.Document(st.ID)
	require.NoError(t, err)
	assert.Equal(t, `<body><div id="page"></div></body>`, string(doc))
}

func TestCreateRejectsEmptyContainerID(t *testing.T) {
	m := newTestManager(0)
	_, err := m.Create([]string{"a", ""}, models.Options{})
	assert.Error(t, err)
	assert.Zero(t, m.Count())
}

func TestDestroy(t *testing.T) {
	m := newTestManager(0)
	st, _ := m.Create(nil, models.Options{})

	st, err := m.Destroy(st.ID)
	require.NoError(t, err)
	assert.True(t, st.Destroyed)
	assert.False(t, st.Mounted)
	assert.Nil(t, st.Settings)

	_, err = m.Show(st.ID)
	assert.ErrorIs(t, err, ErrDestroyed)
	_, err = m.Destroy(st.ID)
	assert.ErrorIs(t, err, ErrDestroyed)

	doc, err := m.Document(st.ID)
	require.NoError(t, err)
	assert.NotContains(t, string(doc), "<svg")
}

func TestUnknownInstance(t *testing.T) {
	m := newTestManager(0)
	_, ok := m.Get("missing")
	assert.False(t, ok)
	assert.False(t, m.Touch("missing"))
	_, err := m.Hide("missing")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = m.Document("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLimitEvictsDestroyedFirst(t *testing.T) {
	m := newTestManager(2)

	a, _ := m.Create(nil, models.Options{})
	b, _ := m.Create(nil, models.Options{})
	_, err := m.Destroy(b.ID)
	require.NoError(t, err)

	c, _ := m.Create(nil, models.Options{})
	assert.Equal(t, 2, m.Count())

	_, ok := m.Get(a.ID)
	assert.True(t, ok)
	_, ok = m.Get(b.ID)
	assert.False(t, ok)
	_, ok = m.Get(c.ID)
	assert.True(t, ok)
}

func TestLimitEvictsLeastRecentlyUsed(t *testing.T) {
	m := newTestManager(2)

	a, _ := m.Create(nil, models.Options{})
	time.Sleep(2 * time.Millisecond)
	b, _ := m.Create(nil, models.Options{})
	time.Sleep(2 * time.Millisecond)
	require.True(t, m.Touch(a.ID))

	m.Create(nil, models.Options{})

	_, ok := m.Get(a.ID)
	assert.True(t, ok)
	_, ok = m.Get(b.ID)
	assert.False(t, ok)
}

func TestConcurrentCreateRespectsLimit(t *testing.T) {
	m := newTestManager(4)

	done := make(chan bool, 50)
	for i := 0; i < 50; i++ {
		go func() {
			if _, err := m.Create(nil, models.Options{}); err != nil {
				t.Errorf("create failed: %v", err)
			}
			done <- true
		}()
	}
	for i := 0; i < 50; i++ {
		<-done
	}

	assert.Equal(t, 4, m.Count())
	assert.Len(t, m.List(), 4)
}

func TestCleanupOldInstances(t *testing.T) {
	m := newTestManager(0)
	live, _ := m.Create(nil, models.Options{})
	dead, _ := m.Create(nil, models.Options{})
	m.Destroy(dead.ID)

	// Destroyed instances are not protected by the keep-alive window.
	m.CleanupOldInstances(-time.Second)

	_, ok := m.Get(live.ID)
	assert.True(t, ok)
	_, ok = m.Get(dead.ID)
	assert.False(t, ok)
}

func TestListOrder(t *testing.T) {
	m := newTestManager(0)
	a, _ := m.Create(nil, models.Options{})
	time.Sleep(2 * time.Millisecond)
	b, _ := m.Create(nil, models.Options{})

	list := m.List()
	require.Len(t, list, 2)
	assert.Equal(t, a.ID, list[0].ID)
	assert.Equal(t, b.ID, list[1].ID)
}
