package engine

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/openacuity/acuity/internal/announce"
	"github.com/openacuity/acuity/internal/audit"
	"github.com/openacuity/acuity/internal/color"
	"github.com/openacuity/acuity/internal/config"
	"github.com/openacuity/acuity/internal/dom"
	"github.com/openacuity/acuity/internal/focus"
	"github.com/openacuity/acuity/internal/logger"
	"github.com/openacuity/acuity/internal/prefs"
	"github.com/openacuity/acuity/internal/watcher"
)

var log = logger.ForComponent("engine")

// Options carries the host collaborators an embedding environment can
// provide. All fields are optional: a headless run (daemon, CLI) has
// no focus host or live region, and the matching operations degrade to
// logged no-ops.
type Options struct {
	FocusHost focus.Host
	Region    announce.Region
	Notifier  watcher.Notifier

	// OnReport is invoked for every audit triggered by a document
	// change event.
	OnReport func(path string, report *audit.Report)
}

// Engine is the explicitly constructed service context. One engine is
// created at application start and disposed at shutdown; nothing in
// this package keeps module-level mutable state.
type Engine struct {
	cfg       *config.Config
	registry  *audit.Registry
	store     *prefs.Store
	focus     *focus.Manager
	announcer *announce.Announcer
	opts      Options

	mu          sync.Mutex
	cancelWatch func()
	disposed    bool
}

func New(cfg *config.Config, opts Options) (*Engine, error) {
	registry := audit.NewRegistry()
	for _, a := range audit.DefaultAuditors() {
		if slices.Contains(cfg.Audit.DisabledRules, a.Name()) {
			log.Info("auditor disabled by config", "name", a.Name())
			continue
		}
		if err := registry.Register(a); err != nil {
			return nil, fmt.Errorf("registering auditor %s: %w", a.Name(), err)
		}
	}

	e := &Engine{
		cfg:      cfg,
		registry: registry,
		opts:     opts,
	}

	if opts.FocusHost != nil {
		e.focus = focus.NewManager(opts.FocusHost)
	}
	if opts.Region != nil {
		e.announcer = announce.New(opts.Region, cfg.Announcer.Delay)
	}

	return e, nil
}

// Init opens the preference store and subscribes to document change
// events when a notifier was provided.
func (e *Engine) Init(ctx context.Context) error {
	store, err := prefs.NewStore(e.cfg.PrefsDBPath)
	if err != nil {
		return fmt.Errorf("opening preference store: %w", err)
	}
	e.store = store

	if e.opts.Notifier != nil {
		e.cancelWatch = e.opts.Notifier.Subscribe(e.onDocumentChanges)
	}

	log.Info("engine initialized", "auditors", e.registry.Names())
	return nil
}

func (e *Engine) onDocumentChanges(changes []watcher.Change) {
	for _, change := range changes {
		if change.Type == watcher.ChangeDelete {
			continue
		}

		report, err := e.AuditFile(change.Path)
		if err != nil {
			log.Warn("re-audit failed", "path", change.Path, "error", err)
			continue
		}

		log.Info("document re-audited", "path", change.Path, "score", report.Score)
		if e.opts.OnReport != nil {
			e.opts.OnReport(change.Path, report)
		}
	}
}

// CheckContrast classifies the contrast between two parsed colors.
func (e *Engine) CheckContrast(fg, bg color.Color) color.Result {
	return color.Check(fg, bg)
}

// CheckContrastHex parses both colors first; malformed input returns
// a *color.ParseError.
func (e *Engine) CheckContrastHex(fg, bg string) (color.Result, error) {
	return color.CheckHex(fg, bg)
}

// RunAudit scans doc with every registered auditor and aggregates the
// findings into a scored report.
func (e *Engine) RunAudit(doc *dom.Document) *audit.Report {
	return audit.Run(doc, e.registry.List())
}

// AuditFile loads the document at path, decoding legacy charsets, and
// audits it.
func (e *Engine) AuditFile(path string) (*audit.Report, error) {
	doc, err := dom.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return e.RunAudit(doc), nil
}

// GenerateReport renders a report as Markdown.
func (e *Engine) GenerateReport(r *audit.Report) string {
	return audit.Markdown(r)
}

// ActivateFocusTrap bounds keyboard cycling to container and returns
// the release func. Without a focus host it is a logged no-op.
func (e *Engine) ActivateFocusTrap(doc *dom.Document, container *dom.Element) func() {
	if e.focus == nil {
		log.Debug("no focus host configured, trap not activated")
		return func() {}
	}
	return e.focus.Activate(doc, container)
}

// HandleKey forwards a key to the active focus trap and reports
// whether it was consumed.
func (e *Engine) HandleKey(key focus.Key) bool {
	if e.focus == nil {
		return false
	}
	return e.focus.HandleKey(key)
}

// Announce vocalizes message through the live region. Without a
// region it is a silent no-op.
func (e *Engine) Announce(message string, priority announce.Priority) {
	if e.announcer == nil {
		log.Debug("no live region configured, dropping announcement")
		return
	}
	e.announcer.Announce(message, priority)
}

func (e *Engine) SetAriaLive(mode announce.LiveMode) {
	if e.opts.Region == nil {
		return
	}
	announce.SetAriaLive(e.opts.Region, mode)
}

// Preferences returns the persisted record, or defaults when nothing
// was saved yet.
func (e *Engine) Preferences() (prefs.Preferences, error) {
	if e.store == nil {
		return prefs.Defaults(), fmt.Errorf("engine not initialized")
	}
	return e.store.Load()
}

func (e *Engine) SetPreferences(p prefs.Preferences) error {
	if e.store == nil {
		return fmt.Errorf("engine not initialized")
	}
	return e.store.Save(p)
}

// Auditors returns the names of the registered auditors in
// registration order.
func (e *Engine) Auditors() []string {
	return e.registry.Names()
}

// Dispose releases the watch subscription, deactivates any focus trap
// and closes the preference store. Safe to call more than once.
func (e *Engine) Dispose() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.disposed {
		return nil
	}
	e.disposed = true

	if e.cancelWatch != nil {
		e.cancelWatch()
		e.cancelWatch = nil
	}
	if e.focus != nil {
		e.focus.Deactivate()
	}
	if e.store != nil {
		return e.store.Close()
	}
	return nil
}
