package reflectcache

import (
	"log/slog"
	"reflect"
)

// Accessor performs reads, writes and invokes against fresh host instances
// using cached member handles. Every entry point converts failure of any
// shape — wrong instance type, unexported state, a panic inside the host —
// into an "unavailable" result. Nothing here may ever take the host down.
type Accessor struct {
	log    *slog.Logger
	failed map[string]bool // call site -> already logged
}

func NewAccessor(log *slog.Logger) *Accessor {
	if log == nil {
		log = slog.Default()
	}
	return &Accessor{log: log, failed: make(map[string]bool)}
}

// Get reads a field or calls a zero-argument method and returns its value.
func (x *Accessor) Get(h MemberHandle, instance any) (value any, ok bool) {
	if x == nil || !h.Valid() || instance == nil {
		return nil, false
	}
	defer x.recoverSite(&ok, "get", h)
	switch h.kind {
	case KindField:
		v, err := x.fieldValue(h, instance)
		if !err {
			return nil, false
		}
		return v.Interface(), true
	case KindMethod:
		return x.Invoke(h, instance)
	}
	return nil, false
}

// Set writes a field on instance, which must be a pointer for the write to
// stick. Returns false instead of panicking on any mismatch.
func (x *Accessor) Set(h MemberHandle, instance any, value any) (ok bool) {
	if x == nil || !h.Valid() || h.kind != KindField || instance == nil {
		return false
	}
	defer x.recoverSite(&ok, "set", h)
	fv, found := x.fieldValue(h, instance)
	if !found || !fv.CanSet() {
		x.failOnce("set", h, "field not settable")
		return false
	}
	nv := reflect.ValueOf(value)
	if !nv.IsValid() {
		fv.Set(reflect.Zero(fv.Type()))
		return true
	}
	if nv.Type().AssignableTo(fv.Type()) {
		fv.Set(nv)
		return true
	}
	if nv.Type().ConvertibleTo(fv.Type()) {
		fv.Set(nv.Convert(fv.Type()))
		return true
	}
	x.failOnce("set", h, "value type mismatch")
	return false
}

// Invoke calls a method handle on instance. A specialized handle filters
// collection results down to its element type. The method's first return
// value (if any) is handed back; extra returns are dropped.
func (x *Accessor) Invoke(h MemberHandle, instance any, args ...any) (value any, ok bool) {
	if x == nil || !h.Valid() || h.kind != KindMethod || instance == nil {
		return nil, false
	}
	defer x.recoverSite(&ok, "invoke", h)
	recv, found := x.receiver(h, instance)
	if !found {
		return nil, false
	}
	mt := h.method.Func.Type()
	if mt.NumIn() != len(args)+1 {
		x.failOnce("invoke", h, "argument count mismatch")
		return nil, false
	}
	in := make([]reflect.Value, 0, len(args)+1)
	in = append(in, recv)
	for i, a := range args {
		want := mt.In(i + 1)
		av := reflect.ValueOf(a)
		switch {
		case !av.IsValid():
			in = append(in, reflect.Zero(want))
		case av.Type().AssignableTo(want):
			in = append(in, av)
		case av.Type().ConvertibleTo(want):
			in = append(in, av.Convert(want))
		default:
			x.failOnce("invoke", h, "argument type mismatch")
			return nil, false
		}
	}
	out := h.method.Func.Call(in)
	if len(out) == 0 {
		return nil, true
	}
	result := out[0].Interface()
	if h.elem != nil {
		return x.specializeResult(h, result)
	}
	return result, true
}

// GetString reads a member and returns it as a string, "" when absent.
func (x *Accessor) GetString(h MemberHandle, instance any) string {
	v, ok := x.Get(h, instance)
	if !ok || v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetBool reads a member as a bool, false when absent.
func (x *Accessor) GetBool(h MemberHandle, instance any) bool {
	v, ok := x.Get(h, instance)
	if !ok || v == nil {
		return false
	}
	b, _ := v.(bool)
	return b
}

// GetInt reads a member as an int across any integer width, 0 when absent.
func (x *Accessor) GetInt(h MemberHandle, instance any) int {
	v, ok := x.Get(h, instance)
	if !ok || v == nil {
		return 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return int(rv.Float())
	}
	return 0
}

// GetFloat reads a member as a float64, 0 when absent.
func (x *Accessor) GetFloat(h MemberHandle, instance any) float64 {
	v, ok := x.Get(h, instance)
	if !ok || v == nil {
		return 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint())
	}
	return 0
}

// GetSlice reads a member and flattens any slice result to []any.
func (x *Accessor) GetSlice(h MemberHandle, instance any) []any {
	v, ok := x.Get(h, instance)
	if !ok || v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil
	}
	out := make([]any, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		item := rv.Index(i)
		if item.Kind() == reflect.Interface || item.Kind() == reflect.Pointer {
			if item.IsNil() {
				continue
			}
		}
		out = append(out, item.Interface())
	}
	return out
}

// GetCounts reads a string-keyed quantity map (stock, cost, treasury).
// Non-map members and non-string keys yield an empty map, never nil.
func (x *Accessor) GetCounts(h MemberHandle, instance any) map[string]int {
	out := map[string]int{}
	v, ok := x.Get(h, instance)
	if !ok || v == nil {
		return out
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map {
		return out
	}
	for _, key := range rv.MapKeys() {
		name, ok := key.Interface().(string)
		if !ok {
			continue
		}
		val := rv.MapIndex(key)
		switch val.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			out[name] = int(val.Int())
		case reflect.Float32, reflect.Float64:
			out[name] = int(val.Float())
		}
	}
	return out
}

func (x *Accessor) fieldValue(h MemberHandle, instance any) (reflect.Value, bool) {
	rv := reflect.ValueOf(instance)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return reflect.Value{}, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct || rv.Type() != h.owner.rt {
		x.failOnce("get", h, "instance type mismatch")
		return reflect.Value{}, false
	}
	return rv.FieldByIndex(h.field.Index), true
}

// receiver adapts instance to the receiver shape the resolved method wants:
// pointer-receiver methods need an addressable value, value-receiver
// methods accept either.
func (x *Accessor) receiver(h MemberHandle, instance any) (reflect.Value, bool) {
	rv := reflect.ValueOf(instance)
	want := h.method.Func.Type().In(0)
	if rv.Type() == want {
		return rv, true
	}
	if rv.Kind() == reflect.Pointer && rv.Type().Elem() == want {
		return rv.Elem(), true
	}
	if want.Kind() == reflect.Pointer && rv.Type() == want.Elem() {
		// Value instance, pointer receiver: copy to get an address.
		// Mutations then hit the copy, which is the safest failure mode.
		ptr := reflect.New(rv.Type())
		ptr.Elem().Set(rv)
		return ptr, true
	}
	x.failOnce("invoke", h, "receiver type mismatch")
	return reflect.Value{}, false
}

func (x *Accessor) specializeResult(h MemberHandle, result any) (any, bool) {
	rv := reflect.ValueOf(result)
	if !rv.IsValid() {
		return nil, false
	}
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		if matchesElem(rv, h.elem) {
			return result, true
		}
		return nil, false
	}
	out := make([]any, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		item := rv.Index(i)
		if item.Kind() == reflect.Interface {
			item = item.Elem()
		}
		if item.IsValid() && matchesElem(item, h.elem) {
			out = append(out, item.Interface())
		}
	}
	return out, true
}

func matchesElem(v reflect.Value, elem reflect.Type) bool {
	rt := v.Type()
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	return rt == elem
}

func (x *Accessor) recoverSite(ok *bool, op string, h MemberHandle) {
	if r := recover(); r != nil {
		*ok = false
		x.failOnce(op, h, "host panicked", "panic", r)
	}
}

func (x *Accessor) failOnce(op string, h MemberHandle, msg string, args ...any) {
	site := op + " " + h.owner.name + "." + h.name
	if x.failed[site] {
		return
	}
	x.failed[site] = true
	args = append([]any{"op", op, "type", h.owner.name, "member", h.name}, args...)
	x.log.Debug(msg, args...)
}
