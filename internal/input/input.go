// Package input maps raw key events onto engine actions. The host delivers
// one event per physical key press; auto-repeat and focus handling are the
// host's concern. Bindings are data, not code, so players can rebind keys
// without a rebuild.
package input

import "strings"

// Key is a normalized key name: lower case, no modifier prefixes.
// "up", "enter", "escape", "w", "f5".
type Key string

// Modifiers snapshots the modifier state at press time.
type Modifiers struct {
	Shift bool
	Ctrl  bool
	Alt   bool
}

// Event is one key press.
type Event struct {
	Key  Key
	Mods Modifiers
}

// Action is what the engine should do with an event. The controller
// interprets the same action differently per context: ActionPrev on an
// open dropdown moves the option cursor, on a focused slider it nudges
// the value, otherwise it moves the element cursor.
type Action int

const (
	ActionNone Action = iota
	ActionNext
	ActionPrev
	ActionNextPanel
	ActionPrevPanel
	ActionActivate
	ActionDismiss
	ActionReadCurrent
	ActionRepeat
	ActionMapNorth
	ActionMapSouth
	ActionMapWest
	ActionMapEast
	ActionReadTile
	ActionPosition
	ActionMapMode
	ActionSilence
)

var actionNames = map[string]Action{
	"next":         ActionNext,
	"prev":         ActionPrev,
	"next-panel":   ActionNextPanel,
	"prev-panel":   ActionPrevPanel,
	"activate":     ActionActivate,
	"dismiss":      ActionDismiss,
	"read-current": ActionReadCurrent,
	"repeat":       ActionRepeat,
	"map-north":    ActionMapNorth,
	"map-south":    ActionMapSouth,
	"map-west":     ActionMapWest,
	"map-east":     ActionMapEast,
	"read-tile":    ActionReadTile,
	"position":     ActionPosition,
	"map-mode":     ActionMapMode,
	"silence":      ActionSilence,
}

// ParseAction resolves an action name from a keymap file. Unknown names
// map to ActionNone so a stale keymap degrades instead of failing.
func ParseAction(name string) Action {
	if a, ok := actionNames[strings.ToLower(strings.TrimSpace(name))]; ok {
		return a
	}
	return ActionNone
}

func (a Action) String() string {
	for name, act := range actionNames {
		if act == a {
			return name
		}
	}
	return "none"
}
