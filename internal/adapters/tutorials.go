package adapters

import (
	"log/slog"

	"github.com/appengine-ltd/storm-access/internal/hostapi"
	"github.com/appengine-ltd/storm-access/internal/reflectcache"
)

// TutorialInfo is one spoken tutorial entry.
type TutorialInfo struct {
	Ref       any
	Title     string
	Body      string
	Completed bool
}

// TutorialAdapter reads the tutorial list.
type TutorialAdapter struct {
	services hostapi.Services
	cache    *reflectcache.Cache
	acc      *reflectcache.Accessor
	log      *slog.Logger

	resolved bool
	h        tutorialHandles
}

type tutorialHandles struct {
	entries   reflectcache.MemberHandle
	title     reflectcache.MemberHandle
	body      reflectcache.MemberHandle
	completed reflectcache.MemberHandle
}

func NewTutorials(services hostapi.Services, cache *reflectcache.Cache, acc *reflectcache.Accessor, log *slog.Logger) *TutorialAdapter {
	if log == nil {
		log = slog.Default()
	}
	return &TutorialAdapter{services: services, cache: cache, acc: acc, log: log}
}

// IsTutorialPopup reports whether root is the tutorial popup.
func (a *TutorialAdapter) IsTutorialPopup(root hostapi.Node) bool {
	return hasComponent(a.cache, root, "TutorialPopup")
}

func (a *TutorialAdapter) resolve() {
	if a.resolved {
		return
	}
	a.resolved = true
	c := a.cache
	a.h.entries = c.MemberOf("TutorialService", "Entries", reflectcache.KindField)
	a.h.title = c.MemberOf("TutorialEntry", "Title", reflectcache.KindField)
	a.h.body = c.MemberOf("TutorialEntry", "Body", reflectcache.KindField)
	a.h.completed = c.MemberOf("TutorialEntry", "Completed", reflectcache.KindField)
}

// Entries snapshots the tutorial list in host order.
func (a *TutorialAdapter) Entries() []TutorialInfo {
	a.resolve()
	if a.services == nil {
		return nil
	}
	svc := a.services.Service("TutorialService")
	if svc == nil {
		return nil
	}
	var out []TutorialInfo
	for _, e := range a.acc.GetSlice(a.h.entries, svc) {
		out = append(out, TutorialInfo{
			Ref:       e,
			Title:     a.acc.GetString(a.h.title, e),
			Body:      a.acc.GetString(a.h.body, e),
			Completed: a.acc.GetBool(a.h.completed, e),
		})
	}
	return out
}

// FormatEntry renders one tutorial entry for speech.
func (a *TutorialAdapter) FormatEntry(e TutorialInfo) string {
	state := "not completed"
	if e.Completed {
		state = "completed"
	}
	return e.Title + ", " + state + ". " + e.Body
}
