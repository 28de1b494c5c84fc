package adapters

import (
	"log/slog"

	"github.com/appengine-ltd/storm-access/internal/hostapi"
	"github.com/appengine-ltd/storm-access/internal/reflectcache"
)

// WildcardOption is one blueprint offered in the wildcard pick.
type WildcardOption struct {
	Ref         any
	Name        string
	Description string
}

// WildcardAdapter reads the wildcard blueprint pick.
type WildcardAdapter struct {
	services hostapi.Services
	cache    *reflectcache.Cache
	acc      *reflectcache.Accessor
	log      *slog.Logger

	resolved bool
	h        wildcardHandles
}

type wildcardHandles struct {
	options   reflectcache.MemberHandle
	picksLeft reflectcache.MemberHandle
	pick      reflectcache.MemberHandle
	name      reflectcache.MemberHandle
	desc      reflectcache.MemberHandle
}

func NewWildcards(services hostapi.Services, cache *reflectcache.Cache, acc *reflectcache.Accessor, log *slog.Logger) *WildcardAdapter {
	if log == nil {
		log = slog.Default()
	}
	return &WildcardAdapter{services: services, cache: cache, acc: acc, log: log}
}

// IsWildcardPopup reports whether root is the wildcard pick popup.
func (a *WildcardAdapter) IsWildcardPopup(root hostapi.Node) bool {
	return hasComponent(a.cache, root, "WildcardPopup")
}

func (a *WildcardAdapter) resolve() {
	if a.resolved {
		return
	}
	a.resolved = true
	c := a.cache
	a.h.options = c.MemberOf("WildcardService", "Options", reflectcache.KindField)
	a.h.picksLeft = c.MemberOf("WildcardService", "PicksLeft", reflectcache.KindField)
	a.h.pick = c.MemberOf("WildcardService", "Pick", reflectcache.KindMethod)
	a.h.name = c.MemberOf("WildcardPick", "Name", reflectcache.KindField)
	a.h.desc = c.MemberOf("WildcardPick", "Description", reflectcache.KindField)
}

func (a *WildcardAdapter) service() any {
	if a == nil || a.services == nil {
		return nil
	}
	return a.services.Service("WildcardService")
}

// PicksLeft reports how many blueprints may still be taken.
func (a *WildcardAdapter) PicksLeft() int {
	a.resolve()
	svc := a.service()
	if svc == nil {
		return 0
	}
	return a.acc.GetInt(a.h.picksLeft, svc)
}

// Options snapshots the blueprints on offer.
func (a *WildcardAdapter) Options() []WildcardOption {
	a.resolve()
	svc := a.service()
	if svc == nil {
		return nil
	}
	var out []WildcardOption
	for _, o := range a.acc.GetSlice(a.h.options, svc) {
		out = append(out, WildcardOption{
			Ref:         o,
			Name:        a.acc.GetString(a.h.name, o),
			Description: a.acc.GetString(a.h.desc, o),
		})
	}
	return out
}

// Pick takes the named blueprint. The host removes it from the offer and
// decrements the pick budget.
func (a *WildcardAdapter) Pick(o WildcardOption) (ok bool, reason string) {
	a.resolve()
	svc := a.service()
	if svc == nil {
		return false, "wildcard picks are unavailable"
	}
	if a.acc.GetInt(a.h.picksLeft, svc) <= 0 {
		return false, "no picks left"
	}
	result, invoked := a.acc.Invoke(a.h.pick, svc, o.Name)
	if !invoked {
		return false, "wildcard picks are unavailable"
	}
	if done, _ := result.(bool); !done {
		return false, "that blueprint is no longer offered"
	}
	return true, ""
}
