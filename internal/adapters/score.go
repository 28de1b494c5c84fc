package adapters

import (
	"fmt"
	"log/slog"

	"github.com/appengine-ltd/storm-access/internal/hostapi"
	"github.com/appengine-ltd/storm-access/internal/reflectcache"
)

// ScoreEntry is one row of the end-of-run score screen.
type ScoreEntry struct {
	Ref      any
	Label    string
	Value    int
	Category string
}

// ScoreAdapter reads the score screen rows.
type ScoreAdapter struct {
	services hostapi.Services
	cache    *reflectcache.Cache
	acc      *reflectcache.Accessor
	log      *slog.Logger

	resolved bool
	h        scoreHandles
}

type scoreHandles struct {
	rows     reflectcache.MemberHandle
	label    reflectcache.MemberHandle
	value    reflectcache.MemberHandle
	category reflectcache.MemberHandle
}

func NewScore(services hostapi.Services, cache *reflectcache.Cache, acc *reflectcache.Accessor, log *slog.Logger) *ScoreAdapter {
	if log == nil {
		log = slog.Default()
	}
	return &ScoreAdapter{services: services, cache: cache, acc: acc, log: log}
}

// IsScorePopup reports whether root is the score popup.
func (a *ScoreAdapter) IsScorePopup(root hostapi.Node) bool {
	return hasComponent(a.cache, root, "ScorePopup")
}

func (a *ScoreAdapter) resolve() {
	if a.resolved {
		return
	}
	a.resolved = true
	c := a.cache
	a.h.rows = c.MemberOf("ScoreService", "Rows", reflectcache.KindField)
	a.h.label = c.MemberOf("ScoreRow", "Label", reflectcache.KindField)
	a.h.value = c.MemberOf("ScoreRow", "Value", reflectcache.KindField)
	a.h.category = c.MemberOf("ScoreRow", "Category", reflectcache.KindField)
}

// Entries snapshots every score row in host order.
func (a *ScoreAdapter) Entries() []ScoreEntry {
	a.resolve()
	if a.services == nil {
		return nil
	}
	svc := a.services.Service("ScoreService")
	if svc == nil {
		return nil
	}
	var out []ScoreEntry
	for _, r := range a.acc.GetSlice(a.h.rows, svc) {
		out = append(out, ScoreEntry{
			Ref:      r,
			Label:    a.acc.GetString(a.h.label, r),
			Value:    a.acc.GetInt(a.h.value, r),
			Category: a.acc.GetString(a.h.category, r),
		})
	}
	return out
}

// ByCategory groups entries keeping host order inside each group.
func (a *ScoreAdapter) ByCategory() map[string][]ScoreEntry {
	out := map[string][]ScoreEntry{}
	for _, e := range a.Entries() {
		out[e.Category] = append(out[e.Category], e)
	}
	return out
}

// FormatEntry renders a score row for speech.
func (a *ScoreAdapter) FormatEntry(e ScoreEntry) string {
	return fmt.Sprintf("%s, %d", e.Label, e.Value)
}
