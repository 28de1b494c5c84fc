package reflectcache

import (
	"fmt"
	"log/slog"
	"reflect"
)

// MemberKind selects which member namespace a lookup targets.
type MemberKind int

const (
	KindField MemberKind = iota
	KindMethod
)

func (k MemberKind) String() string {
	switch k {
	case KindField:
		return "field"
	case KindMethod:
		return "method"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// TypeHandle is a resolved host type. The zero value is the "not found"
// sentinel; both states are cached so a missing type costs one lookup ever.
type TypeHandle struct {
	rt   reflect.Type
	name string
}

func (t TypeHandle) Valid() bool  { return t.rt != nil }
func (t TypeHandle) Name() string { return t.name }

// Matches reports whether instance's dynamic type (pointer unwrapped) is
// exactly this handle's type. Invalid handles match nothing.
func (t TypeHandle) Matches(instance any) bool {
	if !t.Valid() || instance == nil {
		return false
	}
	rt := reflect.TypeOf(instance)
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	return rt == t.rt
}

// MemberHandle is a resolved field or method, plus an optional element
// specialization applied to invoke results. Zero value = not found.
type MemberHandle struct {
	owner  TypeHandle
	name   string
	kind   MemberKind
	field  reflect.StructField
	method reflect.Method
	elem   reflect.Type // non-nil only for specialized handles
	ok     bool
}

func (m MemberHandle) Valid() bool  { return m.ok }
func (m MemberHandle) Name() string { return m.name }

type memberKey struct {
	typeName string
	member   string
	kind     MemberKind
}

// Cache memoizes type and member resolution against one Assembly.
// Entries are never evicted: type shapes are stable for one host build.
// Reads and writes happen on the host's main thread only.
type Cache struct {
	asm     *Assembly
	types   map[string]TypeHandle
	members map[memberKey]MemberHandle
	log     *slog.Logger
	missed  map[string]bool // name -> already logged
}

func NewCache(asm *Assembly, log *slog.Logger) *Cache {
	if log == nil {
		log = slog.Default()
	}
	return &Cache{
		asm:     asm,
		types:   make(map[string]TypeHandle),
		members: make(map[memberKey]MemberHandle),
		log:     log,
		missed:  make(map[string]bool),
	}
}

// Type resolves a host type by its registered name. Misses are cached and
// logged once.
func (c *Cache) Type(name string) TypeHandle {
	if c == nil || name == "" {
		return TypeHandle{}
	}
	if h, seen := c.types[name]; seen {
		return h
	}
	rt, ok := c.asm.TypeByName(name)
	h := TypeHandle{}
	if ok {
		h = TypeHandle{rt: rt, name: name}
	} else {
		c.missOnce("type "+name, "host type not found", "type", name)
	}
	c.types[name] = h
	return h
}

// Member resolves name on owner as a field or method. Method lookup tries
// the pointer receiver set first, which is where host mutators live.
func (c *Cache) Member(owner TypeHandle, name string, kind MemberKind) MemberHandle {
	if c == nil || !owner.Valid() || name == "" {
		return MemberHandle{}
	}
	key := memberKey{typeName: owner.name, member: name, kind: kind}
	if h, seen := c.members[key]; seen {
		return h
	}
	h := MemberHandle{owner: owner, name: name, kind: kind}
	switch kind {
	case KindField:
		if f, ok := owner.rt.FieldByName(name); ok && f.IsExported() {
			h.field = f
			h.ok = true
		}
	case KindMethod:
		if m, ok := reflect.PointerTo(owner.rt).MethodByName(name); ok {
			h.method = m
			h.ok = true
		} else if m, ok := owner.rt.MethodByName(name); ok {
			h.method = m
			h.ok = true
		}
	}
	if !h.ok {
		c.missOnce(
			"member "+owner.name+"."+name,
			"host member not found",
			"type", owner.name, "member", name, "kind", kind.String(),
		)
	}
	c.members[key] = h
	return h
}

// MemberOf resolves the owning type and the member in one step.
func (c *Cache) MemberOf(typeName, member string, kind MemberKind) MemberHandle {
	return c.Member(c.Type(typeName), member, kind)
}

// Of resolves the handle for instance's dynamic type, provided the
// bootstrap registered that type. Unregistered types are invisible to the
// engine on purpose: an unknown component can't be navigated anyway.
func (c *Cache) Of(instance any) TypeHandle {
	if c == nil || instance == nil {
		return TypeHandle{}
	}
	name := c.asm.NameOf(instance)
	if name == "" {
		return TypeHandle{}
	}
	return c.Type(name)
}

// Specialize binds a method handle to a concrete element type: invoke
// results that are untyped collections are filtered down to instances of
// elem. The specialized handle is cached like any other member.
func (c *Cache) Specialize(m MemberHandle, elem TypeHandle) MemberHandle {
	if c == nil || !m.Valid() || m.kind != KindMethod || !elem.Valid() {
		return MemberHandle{}
	}
	key := memberKey{
		typeName: m.owner.name,
		member:   m.name + "<" + elem.name + ">",
		kind:     KindMethod,
	}
	if h, seen := c.members[key]; seen {
		return h
	}
	h := m
	h.elem = elem.rt
	c.members[key] = h
	return h
}

func (c *Cache) missOnce(site, msg string, args ...any) {
	if c.missed[site] {
		return
	}
	c.missed[site] = true
	c.log.Debug(msg, args...)
}
