package overlay

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/anchor/pkg/measure"
	"github.com/matzehuels/anchor/pkg/placement"
)

// Manager tracks the overlays of one host surface and fans viewport events
// out to them.
type Manager struct {
	measurer measure.Measurer
	logger   *log.Logger

	mu       sync.RWMutex
	overlays map[string]*Positioner
}

// NewManager creates an empty manager. A nil logger uses log.Default().
func NewManager(m measure.Measurer, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.Default()
	}
	return &Manager{
		measurer: m,
		logger:   logger,
		overlays: make(map[string]*Positioner),
	}
}

// Add registers a new overlay and returns its positioner.
func (m *Manager) Add(profile placement.Profile, triggerID, contentID string) *Positioner {
	p := NewPositioner(m.measurer, profile, triggerID, contentID, m.logger)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.overlays[p.ID] = p
	return p
}

// Remove unregisters an overlay.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.overlays, id)
}

// Get returns the overlay with the given id.
func (m *Manager) Get(id string) (*Positioner, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.overlays[id]
	return p, ok
}

// Len returns the number of registered overlays.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.overlays)
}

// Broadcast sends ev to every open overlay and returns their placements by
// id. Overlays are updated in id order; a failure stops the broadcast.
func (m *Manager) Broadcast(ctx context.Context, ev Event) (map[string]Placement, error) {
	m.mu.RLock()
	targets := make([]*Positioner, 0, len(m.overlays))
	for _, p := range m.overlays {
		if p.Open() {
			targets = append(targets, p)
		}
	}
	m.mu.RUnlock()

	sort.Slice(targets, func(i, j int) bool { return targets[i].ID < targets[j].ID })

	out := make(map[string]Placement, len(targets))
	for _, p := range targets {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		pl, err := p.Update(ctx, ev)
		if err != nil {
			return out, fmt.Errorf("overlay %s: %w", p.ID, err)
		}
		out[p.ID] = pl
	}
	m.logger.Debug("broadcast event", "event", ev, "overlays", len(out))
	return out, nil
}
