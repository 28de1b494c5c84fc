// Package reflectcache resolves host types and members by string name and
// memoizes the resolved handles. Handles stay valid for the life of the
// process because the host's type shapes do not change between scene
// reloads; instances do, so nothing in this package ever retains one.
package reflectcache

import (
	"log/slog"
	"reflect"
)

// Assembly is the root type surface of the host. The bootstrap registers
// every reachable host type under the name the rest of the engine will use
// to ask for it. A nil *Assembly is legal and makes every lookup report
// "not found" instead of panicking, so the engine can run before the host
// is available.
type Assembly struct {
	types map[string]reflect.Type
	names map[reflect.Type]string
	log   *slog.Logger
}

func NewAssembly(log *slog.Logger) *Assembly {
	if log == nil {
		log = slog.Default()
	}
	return &Assembly{
		types: make(map[string]reflect.Type),
		names: make(map[reflect.Type]string),
		log:   log,
	}
}

// Register maps name to the dynamic type of prototype. Pointer prototypes
// are unwrapped so that "Button" resolves to the struct type whether the
// host hands out values or pointers.
func (a *Assembly) Register(name string, prototype any) {
	if a == nil || name == "" || prototype == nil {
		return
	}
	rt := reflect.TypeOf(prototype)
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	a.types[name] = rt
	a.names[rt] = name
}

// TypeByName resolves a registered type. The second result is false both
// for unknown names and for a nil assembly.
func (a *Assembly) TypeByName(name string) (reflect.Type, bool) {
	if a == nil {
		return nil, false
	}
	rt, ok := a.types[name]
	return rt, ok
}

// NameOf reports the registered name for the dynamic type of instance, or
// "" when the type was never registered.
func (a *Assembly) NameOf(instance any) string {
	if a == nil || instance == nil {
		return ""
	}
	rt := reflect.TypeOf(instance)
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	return a.names[rt]
}
