package announce

import (
	"sync"
	"time"

	"github.com/openacuity/acuity/internal/logger"
)

var log = logger.ForComponent("announce")

type Priority string

const (
	PriorityPolite    Priority = "polite"
	PriorityAssertive Priority = "assertive"
)

type LiveMode string

const (
	LiveOff       LiveMode = "off"
	LivePolite    LiveMode = "polite"
	LiveAssertive LiveMode = "assertive"
)

// DefaultDelay is the minimum gap between clearing the live region and
// writing the message. Assistive technology does not re-announce text
// that never changed, so the clear must be observable on its own.
const DefaultDelay = 100 * time.Millisecond

// Region is the live-region node the announcer owns. A browser DOM
// element or a test double.
type Region interface {
	Mounted() bool
	SetAttr(key, value string)
	SetText(text string)
}

// Announcer drives a single screen-reader live region. There is no
// message queue: announcements that arrive faster than the delay
// window overwrite each other and only the last write is guaranteed
// to be present when assistive technology reads the region.
type Announcer struct {
	mu     sync.Mutex
	region Region
	delay  time.Duration
}

// New returns an announcer for region. A non-positive delay falls back
// to DefaultDelay.
func New(region Region, delay time.Duration) *Announcer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Announcer{region: region, delay: delay}
}

// Announce clears the region synchronously and writes message after
// the configured delay. The pending write is never cancelled; a later
// call simply schedules a later write that supersedes it. An unmounted
// region makes the call a silent no-op.
func (a *Announcer) Announce(message string, priority Priority) {
	if priority == "" {
		priority = PriorityPolite
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.region.Mounted() {
		log.Debug("live region not mounted, dropping announcement")
		return
	}

	a.region.SetAttr("aria-live", string(priority))
	a.region.SetText("")

	time.AfterFunc(a.delay, func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		if !a.region.Mounted() {
			return
		}
		a.region.SetText(message)
	})
}

// SetAriaLive toggles a region's live mode and keeps aria-atomic in
// step: atomic announcements while live, cleared when off.
func SetAriaLive(region Region, mode LiveMode) {
	if !region.Mounted() {
		return
	}
	region.SetAttr("aria-live", string(mode))
	if mode == LiveOff {
		region.SetAttr("aria-atomic", "")
		return
	}
	region.SetAttr("aria-atomic", "true")
}
