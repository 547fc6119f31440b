package audit

import (
	"fmt"
	"sync"

	"github.com/openacuity/acuity/internal/dom"
)

// Auditor scans a document snapshot and reports findings. Auditors
// must not mutate the document and must not panic on malformed
// markup: a missing attribute is a finding, not an error.
type Auditor interface {
	Name() string
	Scan(doc *dom.Document) []Finding
}

// Registry holds the auditors an aggregator will run, in registration
// order.
type Registry struct {
	mu       sync.RWMutex
	auditors map[string]Auditor
	order    []string
}

func NewRegistry() *Registry {
	return &Registry{
		auditors: make(map[string]Auditor),
	}
}

func (r *Registry) Register(a Auditor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := a.Name()
	if _, exists := r.auditors[name]; exists {
		return fmt.Errorf("auditor already registered: %s", name)
	}

	r.auditors[name] = a
	r.order = append(r.order, name)
	return nil
}

func (r *Registry) Get(name string) (Auditor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.auditors[name]
	return a, ok
}

func (r *Registry) List() []Auditor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Auditor, 0, len(r.order))
	for _, name := range r.order {
		result = append(result, r.auditors[name])
	}
	return result
}

func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// DefaultAuditors returns the built-in rule set in its conventional
// order.
func DefaultAuditors() []Auditor {
	return []Auditor{
		&HeadingAuditor{},
		&ImageAltAuditor{},
		&FormLabelAuditor{},
		&ContrastAuditor{},
	}
}
