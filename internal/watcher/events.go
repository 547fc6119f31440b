package watcher

import "time"

type ChangeType int

const (
	ChangeCreate ChangeType = iota
	ChangeModify
	ChangeDelete
	ChangeRename
)

func (c ChangeType) String() string {
	switch c {
	case ChangeCreate:
		return "create"
	case ChangeModify:
		return "modify"
	case ChangeDelete:
		return "delete"
	case ChangeRename:
		return "rename"
	default:
		return "unknown"
	}
}

// Change records one observed mutation of a watched document.
type Change struct {
	Path      string
	Type      ChangeType
	Timestamp time.Time
}

// Notifier publishes document change batches to subscribers. The
// engine only reacts to published events; how changes are observed is
// the implementation's business.
type Notifier interface {
	Subscribe(fn func([]Change)) (cancel func())
}
