package focus

import (
	"sync"

	"github.com/openacuity/acuity/internal/dom"
	"github.com/openacuity/acuity/internal/logger"
)

var log = logger.ForComponent("focus")

type Key int

const (
	KeyTab Key = iota
	KeyShiftTab
)

// Host exposes the focus primitives of the surrounding environment: a
// browser DOM or a test double.
type Host interface {
	Focused() *dom.Element
	SetFocus(el *dom.Element)
	Attached(el *dom.Element) bool
}

type trap struct {
	container  *dom.Element
	focusables []*dom.Element
	previous   *dom.Element
}

// Manager owns the single active focus trap. Activating a new trap
// while another is active deactivates the prior one first, so no two
// traps ever intercept keys at the same time.
type Manager struct {
	host   Host
	mu     sync.Mutex
	active *trap
}

func NewManager(host Host) *Manager {
	return &Manager{host: host}
}

// Activate snapshots the currently focused element, computes the
// container's focusable list once, and moves focus to its first entry.
// A container without focusable elements is a documented no-op: the
// trap still activates but never moves focus. The returned release
// func deactivates this trap and is safe to call more than once.
func (m *Manager) Activate(doc *dom.Document, container *dom.Element) func() {
	m.mu.Lock()

	if m.active != nil {
		log.Debug("displacing active trap", "container", m.active.container.Path())
		m.releaseLocked()
	}

	t := &trap{
		container:  container,
		focusables: doc.Subtree(container).Focusable(),
		previous:   m.host.Focused(),
	}
	m.active = t

	if len(t.focusables) > 0 {
		m.host.SetFocus(t.focusables[0])
	}
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.active == t {
			m.releaseLocked()
		}
	}
}

// HandleKey wraps Tab at the last focusable to the first and Shift+Tab
// at the first to the last. It reports whether the key was consumed;
// anything else is left to the host's native focus order.
func (m *Manager) HandleKey(key Key) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	t := m.active
	if t == nil || len(t.focusables) == 0 {
		return false
	}

	cur := m.host.Focused()
	first := t.focusables[0]
	last := t.focusables[len(t.focusables)-1]

	switch key {
	case KeyTab:
		if cur != nil && cur.Is(last) {
			m.host.SetFocus(first)
			return true
		}
	case KeyShiftTab:
		if cur != nil && cur.Is(first) {
			m.host.SetFocus(last)
			return true
		}
	}

	return false
}

// Deactivate releases the active trap and restores the previously
// focused element when it is still attached. Calling it with no active
// trap is a no-op.
func (m *Manager) Deactivate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.releaseLocked()
}

func (m *Manager) Active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active != nil
}

func (m *Manager) releaseLocked() {
	t := m.active
	if t == nil {
		return
	}
	m.active = nil

	if t.previous != nil && m.host.Attached(t.previous) {
		m.host.SetFocus(t.previous)
	}
}
