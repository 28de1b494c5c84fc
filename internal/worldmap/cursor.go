// Package worldmap moves a keyboard cursor over the host's two map grids
// and narrates the tile under it. Bounds are queried live on every move:
// map sizes vary per mission and the services are rebuilt on scene
// transitions, so nothing about the grid is worth caching.
package worldmap

import (
	"fmt"
	"log/slog"

	"github.com/appengine-ltd/storm-access/internal/hostapi"
	"github.com/appengine-ltd/storm-access/internal/reflectcache"
)

// Mode selects which grid the cursor is on. The world map is rectangular;
// the settlement map is cubic hex. Interaction shape is identical.
type Mode int

const (
	ModeWorld Mode = iota
	ModeSettlement
)

func (m Mode) String() string {
	if m == ModeSettlement {
		return "settlement map"
	}
	return "world map"
}

// HexCoord is a cubic hex coordinate with Q+R+S == 0.
type HexCoord struct {
	Q, R, S int
}

// Navigator owns the cursor for both grids. Handles for the map services
// resolve once; service instances are fetched fresh per call.
type Navigator struct {
	services hostapi.Services
	cache    *reflectcache.Cache
	acc      *reflectcache.Accessor
	insp     *Inspector
	log      *slog.Logger

	mode Mode
	x, y int
	hex  HexCoord

	resolved bool
	h        navHandles
}

type navHandles struct {
	worldType reflectcache.TypeHandle
	width     reflectcache.MemberHandle
	height    reflectcache.MemberHandle
	worldAt   reflectcache.MemberHandle

	settleType reflectcache.TypeHandle
	contains   reflectcache.MemberHandle
	settleAt   reflectcache.MemberHandle
}

func NewNavigator(services hostapi.Services, cache *reflectcache.Cache, acc *reflectcache.Accessor, log *slog.Logger) *Navigator {
	if log == nil {
		log = slog.Default()
	}
	return &Navigator{
		services: services,
		cache:    cache,
		acc:      acc,
		insp:     NewInspector(cache, acc),
		log:      log,
	}
}

func (n *Navigator) resolve() {
	if n.resolved {
		return
	}
	n.resolved = true
	c := n.cache
	n.h.worldType = c.Type("WorldMapService")
	n.h.width = c.Member(n.h.worldType, "Width", reflectcache.KindMethod)
	n.h.height = c.Member(n.h.worldType, "Height", reflectcache.KindMethod)
	n.h.worldAt = c.Member(n.h.worldType, "ObjectAt", reflectcache.KindMethod)

	n.h.settleType = c.Type("SettlementMapService")
	n.h.contains = c.Member(n.h.settleType, "Contains", reflectcache.KindMethod)
	n.h.settleAt = c.Member(n.h.settleType, "ObjectAt", reflectcache.KindMethod)
}

// Mode reports which grid the cursor is on.
func (n *Navigator) Mode() Mode { return n.mode }

// EnterMode switches grids and resets the cursor to the start position.
func (n *Navigator) EnterMode(m Mode) string {
	n.mode = m
	n.x, n.y = 0, 0
	n.hex = HexCoord{}
	return fmt.Sprintf("%s. %s", firstUpper(m.String()), n.positionSummary())
}

// Move shifts the cursor by one step. Out-of-bounds moves leave the cursor
// in place and say so; a successful move announces the new position and a
// short summary of the occupant.
func (n *Navigator) Move(dx, dy int) string {
	if dx == 0 && dy == 0 {
		return n.positionSummary()
	}
	n.resolve()
	if n.mode == ModeSettlement {
		return n.moveHex(dx, dy)
	}
	return n.moveRect(dx, dy)
}

// ReadTile narrates the tile under the cursor in full.
func (n *Navigator) ReadTile() string {
	n.resolve()
	obj, available := n.objectAtCursor()
	if !available {
		return "Map unavailable."
	}
	return n.insp.Describe(obj)
}

// Position narrates the cursor coordinate without touching the tile.
func (n *Navigator) Position() string {
	if n.mode == ModeSettlement {
		return fmt.Sprintf("hex %d, %d", n.hex.Q, n.hex.R)
	}
	return fmt.Sprintf("row %d, column %d", n.y, n.x)
}

func (n *Navigator) moveRect(dx, dy int) string {
	svc := n.services.Service("WorldMapService")
	if svc == nil {
		return "Map unavailable."
	}
	width, okW := n.acc.Invoke(n.h.width, svc)
	height, okH := n.acc.Invoke(n.h.height, svc)
	if !okW || !okH {
		return "Map unavailable."
	}
	w, _ := width.(int)
	hgt, _ := height.(int)
	nx, ny := n.x+dx, n.y+dy
	if nx < 0 || ny < 0 || nx >= w || ny >= hgt {
		return "Edge of the map."
	}
	n.x, n.y = nx, ny
	return n.positionSummary()
}

func (n *Navigator) moveHex(dx, dy int) string {
	svc := n.services.Service("SettlementMapService")
	if svc == nil {
		return "Map unavailable."
	}
	step := hexStep(dx, dy)
	cand := HexCoord{Q: n.hex.Q + step.Q, R: n.hex.R + step.R, S: n.hex.S + step.S}
	inside, ok := n.acc.Invoke(n.h.contains, svc, cand.Q, cand.R, cand.S)
	if !ok {
		return "Map unavailable."
	}
	if in, _ := inside.(bool); !in {
		return "Edge of the map."
	}
	n.hex = cand
	return n.positionSummary()
}

// hexStep maps four-way key input onto cubic hex neighbors: horizontal
// keys move east/west, vertical keys move along the northwest/southeast
// diagonals, combined input picks the matching corner neighbor.
func hexStep(dx, dy int) HexCoord {
	switch {
	case dx > 0 && dy > 0:
		return HexCoord{Q: 1, R: -1, S: 0} // northeast
	case dx < 0 && dy < 0:
		return HexCoord{Q: -1, R: 1, S: 0} // southwest
	case dx > 0:
		return HexCoord{Q: 1, R: 0, S: -1} // east
	case dx < 0:
		return HexCoord{Q: -1, R: 0, S: 1} // west
	case dy > 0:
		return HexCoord{Q: 0, R: -1, S: 1} // northwest
	default:
		return HexCoord{Q: 0, R: 1, S: -1} // southeast
	}
}

func (n *Navigator) positionSummary() string {
	obj, available := n.objectAtCursor()
	if !available {
		return n.Position()
	}
	return fmt.Sprintf("%s, %s", n.Position(), n.insp.Summary(obj))
}

// objectAtCursor returns (occupant, service available). A nil occupant
// with available=true is a genuinely empty tile.
func (n *Navigator) objectAtCursor() (any, bool) {
	n.resolve()
	if n.mode == ModeSettlement {
		svc := n.services.Service("SettlementMapService")
		if svc == nil {
			return nil, false
		}
		obj, ok := n.acc.Invoke(n.h.settleAt, svc, n.hex.Q, n.hex.R, n.hex.S)
		return obj, ok
	}
	svc := n.services.Service("WorldMapService")
	if svc == nil {
		return nil, false
	}
	obj, ok := n.acc.Invoke(n.h.worldAt, svc, n.x, n.y)
	return obj, ok
}

func firstUpper(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-('a'-'A')) + s[1:]
}
