package adapters

import (
	"log/slog"

	"github.com/appengine-ltd/storm-access/internal/hostapi"
	"github.com/appengine-ltd/storm-access/internal/reflectcache"
)

// StateAdapter reads coarse game-state flags. The controller polls it as
// a fallback for scene-transition events the host does not always fire.
type StateAdapter struct {
	services hostapi.Services
	cache    *reflectcache.Cache
	acc      *reflectcache.Accessor
	log      *slog.Logger

	resolved   bool
	settlement reflectcache.MemberHandle
}

func NewState(services hostapi.Services, cache *reflectcache.Cache, acc *reflectcache.Accessor, log *slog.Logger) *StateAdapter {
	if log == nil {
		log = slog.Default()
	}
	return &StateAdapter{services: services, cache: cache, acc: acc, log: log}
}

// SettlementActive reports whether a settlement scene is loaded. ok is
// false while the host is mid-transition and the flag cannot be read.
func (a *StateAdapter) SettlementActive() (active, ok bool) {
	if !a.resolved {
		a.resolved = true
		a.settlement = a.cache.MemberOf("GameStateService", "SettlementActive", reflectcache.KindField)
	}
	if a.services == nil {
		return false, false
	}
	svc := a.services.Service("GameStateService")
	if svc == nil {
		return false, false
	}
	v, got := a.acc.Get(a.settlement, svc)
	if !got {
		return false, false
	}
	b, _ := v.(bool)
	return b, true
}
