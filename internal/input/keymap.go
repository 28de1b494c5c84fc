package input

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed keymap.yaml
var defaultKeymap []byte

// Binding is one keymap file entry.
type Binding struct {
	Key    string `yaml:"key"`
	Shift  bool   `yaml:"shift,omitempty"`
	Ctrl   bool   `yaml:"ctrl,omitempty"`
	Alt    bool   `yaml:"alt,omitempty"`
	Action string `yaml:"action"`
}

type keymapFile struct {
	Bindings []Binding `yaml:"bindings"`
}

type chord struct {
	key  Key
	mods Modifiers
}

// Keymap resolves key events to actions.
type Keymap struct {
	bindings map[chord]Action
}

// DefaultKeymap loads the built-in bindings.
func DefaultKeymap() *Keymap {
	km, err := LoadKeymap(defaultKeymap)
	if err != nil {
		// The embedded file is part of the build; a parse failure here is
		// a packaging bug, not a runtime condition.
		panic(fmt.Sprintf("embedded keymap: %v", err))
	}
	return km
}

// LoadKeymap parses a keymap file. Entries with unknown actions are
// skipped; an empty file yields a keymap that maps everything to
// ActionNone.
func LoadKeymap(data []byte) (*Keymap, error) {
	var file keymapFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse keymap: %w", err)
	}
	km := &Keymap{bindings: make(map[chord]Action, len(file.Bindings))}
	for _, b := range file.Bindings {
		action := ParseAction(b.Action)
		key := Key(strings.ToLower(strings.TrimSpace(b.Key)))
		if action == ActionNone || key == "" {
			continue
		}
		km.bindings[chord{
			key:  key,
			mods: Modifiers{Shift: b.Shift, Ctrl: b.Ctrl, Alt: b.Alt},
		}] = action
	}
	return km, nil
}

// Resolve maps an event to its bound action, ActionNone when unbound.
func (k *Keymap) Resolve(ev Event) Action {
	if k == nil {
		return ActionNone
	}
	return k.bindings[chord{key: ev.Key, mods: ev.Mods}]
}
