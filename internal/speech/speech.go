// Package speech turns structured engine state into one-line utterances and
// hands them to a text-to-speech backend. The announcer is the only writer
// to the backend, so interrupt/queue policy lives here in one place.
package speech

import (
	"log/slog"
	"strings"
)

// Backend is the text-to-speech collaborator. Say is fire-and-forget; the
// backend's own policy decides whether a new utterance interrupts or queues.
type Backend interface {
	Say(text string)
	Stop()
}

// Category classifies an utterance so users can mute whole classes of
// announcements without losing navigation feedback.
type Category int

const (
	CategoryNavigation Category = iota
	CategoryHooks
	CategoryMap
	CategoryAmbient
)

func (c Category) String() string {
	switch c {
	case CategoryNavigation:
		return "navigation"
	case CategoryHooks:
		return "hooks"
	case CategoryMap:
		return "map"
	case CategoryAmbient:
		return "ambient"
	default:
		return "unknown"
	}
}

// Announcer gates utterances by category and applies the interrupt policy:
// navigation and map speech replaces whatever is pending (stale position
// reports are worse than silence), hooks and ambient speech queues behind
// the current utterance.
type Announcer struct {
	backend Backend
	enabled map[Category]bool
	pending *utteranceQueue
	log     *slog.Logger
}

type Options struct {
	DisabledCategories []Category
	QueueSize          int
}

func NewAnnouncer(backend Backend, opts Options, log *slog.Logger) *Announcer {
	if log == nil {
		log = slog.Default()
	}
	enabled := map[Category]bool{
		CategoryNavigation: true,
		CategoryHooks:      true,
		CategoryMap:        true,
		CategoryAmbient:    true,
	}
	for _, c := range opts.DisabledCategories {
		enabled[c] = false
	}
	return &Announcer{
		backend: backend,
		enabled: enabled,
		pending: newUtteranceQueue(opts.QueueSize),
		log:     log,
	}
}

// Say speaks text under the given category, or drops it when the category
// is muted or the text is blank.
func (a *Announcer) Say(cat Category, text string) {
	if a == nil || a.backend == nil {
		return
	}
	text = strings.TrimSpace(text)
	if text == "" || !a.enabled[cat] {
		return
	}
	switch cat {
	case CategoryNavigation, CategoryMap:
		a.pending.clear()
		a.backend.Stop()
		a.backend.Say(text)
	default:
		if !a.pending.enqueue(text) {
			a.log.Debug("utterance dropped, queue saturated", "category", cat.String())
		}
	}
}

// Flush hands one queued utterance to the backend. The controller calls it
// once per frame so queued ambient speech trails navigation speech instead
// of racing it.
func (a *Announcer) Flush() {
	if a == nil || a.backend == nil {
		return
	}
	if text, ok := a.pending.dequeue(); ok {
		a.backend.Say(text)
	}
}

// Silence stops the backend and drops everything queued.
func (a *Announcer) Silence() {
	if a == nil || a.backend == nil {
		return
	}
	a.pending.clear()
	a.backend.Stop()
}

// SetEnabled flips one category at runtime.
func (a *Announcer) SetEnabled(cat Category, on bool) {
	if a == nil {
		return
	}
	a.enabled[cat] = on
}

// Enabled reports whether a category is currently announced.
func (a *Announcer) Enabled(cat Category) bool {
	return a != nil && a.enabled[cat]
}
