package app

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/renderguard/renderguard/internal/blueprint"
	"github.com/renderguard/renderguard/internal/boundary"
	"github.com/renderguard/renderguard/internal/infrastructure/config"
	"github.com/renderguard/renderguard/internal/infrastructure/logging"
	"github.com/renderguard/renderguard/internal/infrastructure/monitoring"
	"github.com/renderguard/renderguard/internal/telemetry"
	"github.com/renderguard/renderguard/internal/theme"
	"github.com/renderguard/renderguard/internal/view"
)

// Instance is the external snapshot of a running app.
type Instance struct {
	ID          string    `json:"id"`
	BlueprintID string    `json:"blueprint_id"`
	Title       string    `json:"title"`
	Boundary    string    `json:"boundary_state"`
	Reloads     int       `json:"reloads"`
	CreatedAt   time.Time `json:"created_at"`
}

// Event describes a boundary transition or a host reload, for observers.
type Event struct {
	Kind      string    `json:"kind"` // "transition" or "reload"
	AppID     string    `json:"app_id"`
	Boundary  string    `json:"boundary"`
	From      string    `json:"from,omitempty"`
	To        string    `json:"to,omitempty"`
	EpisodeID string    `json:"episode_id,omitempty"`
	At        time.Time `json:"at"`
}

// Stats contains app manager statistics
type Stats struct {
	TotalApps    int `json:"total_apps"`
	FaultedApps  int `json:"faulted_apps"`
	TotalReloads int `json:"total_reloads"`
}

// instance couples a blueprint-derived renderer with its own boundary.
type instance struct {
	id        string
	bp        *blueprint.App
	renderer  view.Renderer
	boundary  *boundary.Boundary
	reloads   int
	createdAt time.Time
}

// Manager owns app instances and their boundaries.
type Manager struct {
	mu        sync.RWMutex
	instances map[string]*instance // Protected by mu

	engine  *view.Engine
	mode    config.Mode
	sink    telemetry.Sink
	tokens  theme.Tokens
	logger  *logging.Logger
	metrics *monitoring.Metrics

	subMu sync.Mutex
	subs  map[chan Event]struct{}
}

// NewManager creates a new app manager
func NewManager(engine *view.Engine, mode config.Mode, sink telemetry.Sink, logger *logging.Logger) *Manager {
	if sink == nil {
		sink = telemetry.Nop{}
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Manager{
		instances: make(map[string]*instance),
		engine:    engine,
		mode:      mode,
		sink:      sink,
		tokens:    theme.Default(),
		logger:    logger,
		subs:      make(map[chan Event]struct{}),
	}
}

// WithMetrics adds metrics tracking to the manager
func (m *Manager) WithMetrics(metrics *monitoring.Metrics) *Manager {
	m.metrics = metrics
	return m
}

// WithTokens overrides the theme tokens used for recovery views.
func (m *Manager) WithTokens(tokens theme.Tokens) *Manager {
	m.tokens = tokens
	return m
}

// Spawn creates a running instance from a parsed blueprint.
func (m *Manager) Spawn(bp *blueprint.App) (*Instance, error) {
	if bp == nil || bp.UISpec == nil {
		return nil, fmt.Errorf("blueprint with a ui spec is required")
	}

	id := uuid.New().String()
	inst := &instance{
		id:        id,
		bp:        bp,
		createdAt: time.Now(),
	}
	m.arm(inst)

	m.mu.Lock()
	m.instances[id] = inst
	total := len(m.instances)
	snap := m.snapshot(inst)
	m.mu.Unlock()

	if m.metrics != nil {
		m.metrics.IncAppsTotal()
		m.metrics.SetAppsActive(total)
	}

	return snap, nil
}

// arm gives an instance a fresh renderer and a fresh boundary. Used on
// spawn and again on reload, where the previous boundary is discarded
// wholesale along with any subtree state.
func (m *Manager) arm(inst *instance) {
	appID := inst.id
	inst.renderer = m.engine.Renderer(inst.bp.UISpec)
	inst.boundary = boundary.New(inst.bp.ID, boundary.Settings{
		Mode:   m.mode,
		Sink:   m.sink,
		Tokens: m.tokens,
		Logger: m.logger,
		OnFault: func(f boundary.Fault) {
			if m.metrics != nil {
				m.metrics.RecordCapture(inst.bp.ID)
			}
		},
		OnStateChange: func(name string, from, to boundary.State) {
			m.publish(Event{
				Kind:     "transition",
				AppID:    appID,
				Boundary: name,
				From:     from.String(),
				To:       to.String(),
				At:       time.Now(),
			})
		},
		Reload: func() {
			m.relaunch(appID)
		},
	})
}

// Get retrieves an app snapshot by ID
func (m *Manager) Get(id string) (*Instance, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	inst, ok := m.instances[id]
	if !ok {
		return nil, false
	}
	return m.snapshot(inst), true
}

// List returns snapshots of all running apps
func (m *Manager) List() []*Instance {
	m.mu.RLock()
	defer m.mu.RUnlock()

	apps := make([]*Instance, 0, len(m.instances))
	for _, inst := range m.instances {
		apps = append(apps, m.snapshot(inst))
	}
	return apps
}

// Render renders an app through its boundary. While the boundary is
// healthy this returns the blueprint's tree; after a fault it returns the
// recovery surface until Reset or Reload.
func (m *Manager) Render(id string) (*view.Node, error) {
	m.mu.RLock()
	inst, ok := m.instances[id]
	var (
		b        *boundary.Boundary
		renderer view.Renderer
		bpID     string
	)
	if ok {
		b, renderer, bpID = inst.boundary, inst.renderer, inst.bp.ID
	}
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("app %s not found", id)
	}

	start := time.Now()
	out := b.Render(renderer)
	if m.metrics != nil {
		outcome := "ok"
		if b.State() == boundary.StateFaulted {
			outcome = "faulted"
		}
		m.metrics.RecordRender(bpID, outcome, time.Since(start))
	}
	return out, nil
}

// Reset re-arms an app's boundary ("Try Again").
func (m *Manager) Reset(id string) error {
	m.mu.RLock()
	inst, ok := m.instances[id]
	var (
		b    *boundary.Boundary
		bpID string
	)
	if ok {
		b, bpID = inst.boundary, inst.bp.ID
	}
	m.mu.RUnlock()
	if !ok {
		return fmt.Errorf("app %s not found", id)
	}

	b.Reset()
	if m.metrics != nil {
		m.metrics.RecordReset(bpID)
	}
	return nil
}

// Reload requests a host reload for an app ("Reload Page"). The instance's
// entire subtree state is discarded and rebuilt from its blueprint.
func (m *Manager) Reload(id string) error {
	m.mu.RLock()
	inst, ok := m.instances[id]
	var b *boundary.Boundary
	if ok {
		b = inst.boundary
	}
	m.mu.RUnlock()
	if !ok {
		return fmt.Errorf("app %s not found", id)
	}

	b.Reload()
	return nil
}

// relaunch is the reload primitive handed to each boundary: discard the
// instance's boundary and renderer and start over from the blueprint.
func (m *Manager) relaunch(id string) {
	m.mu.Lock()
	inst, ok := m.instances[id]
	if !ok {
		m.mu.Unlock()
		return
	}
	m.arm(inst)
	inst.reloads++
	m.mu.Unlock()

	if m.metrics != nil {
		m.metrics.RecordReload(inst.bp.ID)
	}
	m.publish(Event{
		Kind:     "reload",
		AppID:    id,
		Boundary: inst.bp.ID,
		At:       time.Now(),
	})
	m.logger.Info("app relaunched after reload request")
}

// Close destroys an app instance
func (m *Manager) Close(id string) bool {
	m.mu.Lock()
	_, ok := m.instances[id]
	if ok {
		delete(m.instances, id)
	}
	total := len(m.instances)
	m.mu.Unlock()

	if ok && m.metrics != nil {
		m.metrics.SetAppsActive(total)
	}
	return ok
}

// Stats returns manager statistics
func (m *Manager) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := Stats{TotalApps: len(m.instances)}
	for _, inst := range m.instances {
		if inst.boundary.State() == boundary.StateFaulted {
			stats.FaultedApps++
		}
		stats.TotalReloads += inst.reloads
	}
	return stats
}

// Subscribe registers an event observer. The returned cancel function must
// be called to release the subscription. Slow observers drop events rather
// than stall boundary transitions.
func (m *Manager) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 16)

	m.subMu.Lock()
	m.subs[ch] = struct{}{}
	m.subMu.Unlock()

	cancel := func() {
		m.subMu.Lock()
		if _, ok := m.subs[ch]; ok {
			delete(m.subs, ch)
			close(ch)
		}
		m.subMu.Unlock()
	}
	return ch, cancel
}

func (m *Manager) publish(ev Event) {
	m.subMu.Lock()
	defer m.subMu.Unlock()

	for ch := range m.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// snapshot builds an external view of an instance. Callers hold m.mu.
func (m *Manager) snapshot(inst *instance) *Instance {
	return &Instance{
		ID:          inst.id,
		BlueprintID: inst.bp.ID,
		Title:       inst.bp.Name,
		Boundary:    inst.boundary.State().String(),
		Reloads:     inst.reloads,
		CreatedAt:   inst.createdAt,
	}
}
