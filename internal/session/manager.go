package session

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
	"github.com/svg-loader/backend/internal/host"
	"github.com/svg-loader/backend/internal/loader"
	"github.com/svg-loader/backend/internal/models"
)

// DefaultMaxInstances limits live loader instances when no limit is configured.
const DefaultMaxInstances = 64

// InstanceKeepAliveWindow protects recently used instances from cleanup.
const InstanceKeepAliveWindow = 5 * time.Minute

var (
	// ErrNotFound is returned for unknown instance ids.
	ErrNotFound = errors.New("loader instance not found")
	// ErrDestroyed is returned for lifecycle calls on a destroyed instance.
	ErrDestroyed = errors.New("loader instance destroyed")
)

// Logger is the logging surface used by the manager and its loaders.
type Logger interface {
	loader.Logger
	Infoj(j log.JSON)
}

// Manager owns live loader instances, each rendered into its own page.
type Manager struct {
	instances    map[string]*instanceState
	mu           sync.RWMutex
	maxInstances int
	logger       Logger
}

type instanceState struct {
	id           string
	containers   []string
	doc          *host.MemoryDocument
	loader       *loader.Loader
	createdAt    time.Time
	lastAccessed time.Time
}

// shortID truncates an id for logging.
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

// NewManager creates a manager holding at most maxInstances instances.
// A non-positive limit selects DefaultMaxInstances; a nil logger logs to stdout.
func NewManager(maxInstances int, logger Logger) *Manager {
	if maxInstances <= 0 {
		maxInstances = DefaultMaxInstances
	}
	if logger == nil {
		logger = log.New("session")
	}
	return &Manager{
		instances:    make(map[string]*instanceState),
		maxInstances: maxInstances,
		logger:       logger,
	}
}

// Create builds a page with the given container ids and mounts a loader on it.
// With no containers the page gets the default container. A loader whose
// container is missing is still created, unmounted.
func (m *Manager) Create(containers []string, opts models.Options) (*models.InstanceState, error) {
	if len(containers) == 0 {
		containers = []string{loader.DefaultContainerID}
	}
	doc := host.NewMemoryDocument()
	for _, id := range containers {
		if id == "" {
			return nil, errors.New("container id must not be empty")
		}
		doc.AddContainer(id)
	}

	now := time.Now()
	state := &instanceState{
		id:           uuid.New().String(),
		containers:   append([]string(nil), containers...),
		doc:          doc,
		loader:       loader.New(doc, opts, m.logger),
		createdAt:    now,
		lastAccessed: now,
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.cleanupOldInstancesIfNeeded()
	m.instances[state.id] = state

	m.logger.Infoj(log.JSON{
		"event":   "instance_created",
		"id":      shortID(state.id),
		"mounted": state.loader.Mounted(),
	})
	return state.snapshot(), nil
}

// Get returns the state of an instance.
func (m *Manager) Get(id string) (*models.InstanceState, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	state, ok := m.instances[id]
	if !ok {
		return nil, false
	}
	return state.snapshot(), true
}

// List returns all instances, oldest first.
func (m *Manager) List() []*models.InstanceState {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*models.InstanceState, 0, len(m.instances))
	for _, state := range m.instances {
		out = append(out, state.snapshot())
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Count returns the number of tracked instances, destroyed ones included.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.instances)
}

// Touch marks an instance as recently used.
func (m *Manager) Touch(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.instances[id]
	if !ok {
		return false
	}
	state.lastAccessed = time.Now()
	return true
}

// Show makes the instance's loader visible.
func (m *Manager) Show(id string) (*models.InstanceState, error) {
	return m.apply(id, (*loader.Loader).Show)
}

// Hide makes the instance's loader invisible.
func (m *Manager) Hide(id string) (*models.InstanceState, error) {
	return m.apply(id, (*loader.Loader).Hide)
}

// Toggle flips the visibility of the instance's loader.
func (m *Manager) Toggle(id string) (*models.InstanceState, error) {
	return m.apply(id, (*loader.Loader).Toggle)
}

// Destroy tears the instance's loader down. The instance stays listed as
// destroyed until cleanup.
func (m *Manager) Destroy(id string) (*models.InstanceState, error) {
	return m.apply(id, func(l *loader.Loader) *loader.Loader {
		l.Destroy()
		return l
	})
}

// Document returns the markup of the instance's page.
func (m *Manager) Document(id string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	state, ok := m.instances[id]
	if !ok {
		return nil, ErrNotFound
	}
	var buf bytes.Buffer
	if err := state.doc.WriteMarkup(&buf); err != nil {
		return nil, fmt.Errorf("serialising document: %w", err)
	}
	return buf.Bytes(), nil
}

func (m *Manager) apply(id string, op func(*loader.Loader) *loader.Loader) (*models.InstanceState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.instances[id]
	if !ok {
		return nil, ErrNotFound
	}
	if state.loader.Destroyed() {
		return nil, ErrDestroyed
	}
	op(state.loader)
	state.lastAccessed = time.Now()
	return state.snapshot(), nil
}

// cleanupOldInstancesIfNeeded frees a slot when the limit is reached,
// dropping destroyed instances first and then the least recently used.
// m.mu must be held.
func (m *Manager) cleanupOldInstancesIfNeeded() {
	if len(m.instances) < m.maxInstances {
		return
	}

	candidates := make([]*instanceState, 0, len(m.instances))
	for _, state := range m.instances {
		candidates = append(candidates, state)
	}
	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.loader.Destroyed() != b.loader.Destroyed() {
			return a.loader.Destroyed()
		}
		return a.lastAccessed.Before(b.lastAccessed)
	})

	toFree := len(m.instances) - m.maxInstances + 1
	for _, state := range candidates[:toFree] {
		m.drop(state, "limit")
	}
}

// CleanupOldInstances drops instances idle for longer than maxAge.
func (m *Manager) CleanupOldInstances(maxAge time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	keepAliveCutoff := time.Now().Add(-InstanceKeepAliveWindow)

	for _, state := range m.instances {
		if !state.loader.Destroyed() && state.lastAccessed.After(keepAliveCutoff) {
			continue
		}
		if state.lastAccessed.Before(cutoff) {
			m.drop(state, "aged")
		}
	}
}

// drop removes an instance; m.mu must be held.
func (m *Manager) drop(state *instanceState, reason string) {
	state.loader.Destroy()
	delete(m.instances, state.id)
	m.logger.Infoj(log.JSON{
		"event":  "instance_dropped",
		"id":     shortID(state.id),
		"reason": reason,
		"idle":   time.Since(state.lastAccessed).Round(time.Second).String(),
	})
}

func (s *instanceState) snapshot() *models.InstanceState {
	out := &models.InstanceState{
		ID:           s.id,
		Containers:   append([]string(nil), s.containers...),
		Mounted:      s.loader.Mounted(),
		Visible:      s.loader.Visible(),
		Destroyed:    s.loader.Destroyed(),
		CreatedAt:    s.createdAt,
		LastAccessed: s.lastAccessed,
	}
	if !out.Destroyed {
		settings := s.loader.Settings()
		out.Settings = &settings
	}
	if errors.Is(s.loader.Err(), loader.ErrMissingContainer) {
		out.Warning = fmt.Sprintf("no element with id %q; loader not rendered", s.loader.Settings().ContainerID)
	}
	return out
}
