package reflectcache

import (
	"log/slog"
	"testing"
)

type fakeToggle struct {
	IsOn         bool
	Interactable bool
	hidden       int // exercises the unexported-field path
}

func (t *fakeToggle) Flip() bool {
	t.IsOn = !t.IsOn
	return t.IsOn
}

type fakeService struct {
	Entries []any
}

func (s *fakeService) All() []any { return s.Entries }

func (s *fakeService) Explode() int {
	panic("host internal error")
}

func testAssembly() *Assembly {
	asm := NewAssembly(slog.Default())
	asm.Register("Toggle", &fakeToggle{})
	asm.Register("Service", &fakeService{})
	return asm
}

func TestNilAssemblyNeverResolvesAndNeverPanics(t *testing.T) {
	var asm *Assembly
	c := NewCache(asm, slog.Default())
	x := NewAccessor(slog.Default())

	th := c.Type("Toggle")
	if th.Valid() {
		t.Fatalf("expected invalid type handle from nil assembly")
	}
	mh := c.Member(th, "IsOn", KindField)
	if mh.Valid() {
		t.Fatalf("expected invalid member handle from invalid type")
	}
	if _, ok := x.Get(mh, &fakeToggle{IsOn: true}); ok {
		t.Fatalf("get through invalid handle must report unavailable")
	}
	if x.Set(mh, &fakeToggle{}, true) {
		t.Fatalf("set through invalid handle must fail")
	}
	if _, ok := x.Invoke(mh, &fakeToggle{}); ok {
		t.Fatalf("invoke through invalid handle must fail")
	}
}

func TestTypeAndMemberResolutionIsIdempotent(t *testing.T) {
	c := NewCache(testAssembly(), slog.Default())

	first := c.Type("Toggle")
	second := c.Type("Toggle")
	if !first.Valid() || first != second {
		t.Fatalf("repeated type lookups must return the cached handle")
	}

	miss1 := c.Type("NoSuchType")
	miss2 := c.Type("NoSuchType")
	if miss1.Valid() || miss1 != miss2 {
		t.Fatalf("missing types must cache the not-found sentinel")
	}

	m1 := c.Member(first, "IsOn", KindField)
	m2 := c.Member(first, "IsOn", KindField)
	if !m1.Valid() || m1.Name() != m2.Name() {
		t.Fatalf("repeated member lookups must agree")
	}
}

func TestHandlesSurviveInstanceReplacement(t *testing.T) {
	c := NewCache(testAssembly(), slog.Default())
	x := NewAccessor(slog.Default())
	h := c.MemberOf("Toggle", "IsOn", KindField)

	// Same type shape, brand new instances, as after a scene reload.
	old := &fakeToggle{IsOn: true}
	if !x.GetBool(h, old) {
		t.Fatalf("expected true from first instance")
	}
	fresh := &fakeToggle{IsOn: false}
	if x.GetBool(h, fresh) {
		t.Fatalf("expected false from replacement instance")
	}
}

func TestFieldReadWriteAndMethodInvoke(t *testing.T) {
	c := NewCache(testAssembly(), slog.Default())
	x := NewAccessor(slog.Default())

	tg := &fakeToggle{Interactable: true}
	isOn := c.MemberOf("Toggle", "IsOn", KindField)
	if !x.Set(isOn, tg, true) {
		t.Fatalf("set IsOn failed")
	}
	if !tg.IsOn {
		t.Fatalf("set did not reach the instance")
	}

	flip := c.MemberOf("Toggle", "Flip", KindMethod)
	v, ok := x.Invoke(flip, tg)
	if !ok {
		t.Fatalf("invoke Flip failed")
	}
	if on, _ := v.(bool); on {
		t.Fatalf("Flip should have turned the toggle off")
	}
}

func TestUnexportedAndMissingMembersAreUnavailable(t *testing.T) {
	c := NewCache(testAssembly(), slog.Default())
	th := c.Type("Toggle")
	if c.Member(th, "hidden", KindField).Valid() {
		t.Fatalf("unexported field must resolve as not found")
	}
	if c.Member(th, "DoesNotExist", KindField).Valid() {
		t.Fatalf("missing field must resolve as not found")
	}
	if c.Member(th, "DoesNotExist", KindMethod).Valid() {
		t.Fatalf("missing method must resolve as not found")
	}
}

func TestHostPanicBecomesUnavailable(t *testing.T) {
	c := NewCache(testAssembly(), slog.Default())
	x := NewAccessor(slog.Default())
	h := c.MemberOf("Service", "Explode", KindMethod)
	if _, ok := x.Invoke(h, &fakeService{}); ok {
		t.Fatalf("a panicking host call must report unavailable, not crash")
	}
}

func TestSpecializedInvokeFiltersByElementType(t *testing.T) {
	c := NewCache(testAssembly(), slog.Default())
	x := NewAccessor(slog.Default())

	all := c.MemberOf("Service", "All", KindMethod)
	toggles := c.Specialize(all, c.Type("Toggle"))
	if !toggles.Valid() {
		t.Fatalf("specialization of a valid method must succeed")
	}

	svc := &fakeService{Entries: []any{&fakeToggle{IsOn: true}, "stray", 42, &fakeToggle{}}}
	v, ok := x.Invoke(toggles, svc)
	if !ok {
		t.Fatalf("specialized invoke failed")
	}
	got, _ := v.([]any)
	if len(got) != 2 {
		t.Fatalf("expected 2 toggles after filtering, got %d", len(got))
	}

	again := c.Specialize(all, c.Type("Toggle"))
	if again.Name() != toggles.Name() {
		t.Fatalf("specialized handles must be cached and stable")
	}
}
