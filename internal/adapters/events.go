package adapters

import (
	"fmt"
	"log/slog"

	"github.com/appengine-ltd/storm-access/internal/hostapi"
	"github.com/appengine-ltd/storm-access/internal/reflectcache"
)

// WorldEventInfo is one active world-map event.
type WorldEventInfo struct {
	Ref         any
	Name        string
	Description string
	TurnsLeft   int
}

// EventAdapter reads active world events for the map summary.
type EventAdapter struct {
	services hostapi.Services
	cache    *reflectcache.Cache
	acc      *reflectcache.Accessor
	log      *slog.Logger

	resolved bool
	h        eventHandles
}

type eventHandles struct {
	active reflectcache.MemberHandle
	name   reflectcache.MemberHandle
	desc   reflectcache.MemberHandle
	turns  reflectcache.MemberHandle
}

func NewEvents(services hostapi.Services, cache *reflectcache.Cache, acc *reflectcache.Accessor, log *slog.Logger) *EventAdapter {
	if log == nil {
		log = slog.Default()
	}
	return &EventAdapter{services: services, cache: cache, acc: acc, log: log}
}

func (a *EventAdapter) resolve() {
	if a.resolved {
		return
	}
	a.resolved = true
	c := a.cache
	a.h.active = c.MemberOf("WorldEventService", "Active", reflectcache.KindField)
	a.h.name = c.MemberOf("WorldEvent", "Name", reflectcache.KindField)
	a.h.desc = c.MemberOf("WorldEvent", "Description", reflectcache.KindField)
	a.h.turns = c.MemberOf("WorldEvent", "TurnsLeft", reflectcache.KindField)
}

// Active snapshots the events currently threatening the map.
func (a *EventAdapter) Active() []WorldEventInfo {
	a.resolve()
	if a.services == nil {
		return nil
	}
	svc := a.services.Service("WorldEventService")
	if svc == nil {
		return nil
	}
	var out []WorldEventInfo
	for _, e := range a.acc.GetSlice(a.h.active, svc) {
		out = append(out, WorldEventInfo{
			Ref:         e,
			Name:        a.acc.GetString(a.h.name, e),
			Description: a.acc.GetString(a.h.desc, e),
			TurnsLeft:   a.acc.GetInt(a.h.turns, e),
		})
	}
	return out
}

// FormatEvent renders one event for speech.
func (a *EventAdapter) FormatEvent(e WorldEventInfo) string {
	line := e.Name
	if e.Description != "" {
		line += ". " + e.Description
	}
	if e.TurnsLeft > 0 {
		line += fmt.Sprintf(" %s left.", plural(e.TurnsLeft, "turn"))
	}
	return line
}
