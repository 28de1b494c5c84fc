package discovery

import (
	"fmt"
	"math"

	"github.com/appengine-ltd/storm-access/internal/hostapi"
	"github.com/appengine-ltd/storm-access/internal/reflectcache"
)

// ControlKind is the spoken semantic type of an interactive element.
type ControlKind int

const (
	KindControl ControlKind = iota
	KindButton
	KindCheckbox
	KindRadio
	KindSlider
	KindDropdown
	KindTextField
)

func (k ControlKind) String() string {
	switch k {
	case KindButton:
		return "button"
	case KindCheckbox:
		return "checkbox"
	case KindRadio:
		return "radio button"
	case KindSlider:
		return "slider"
	case KindDropdown:
		return "dropdown"
	case KindTextField:
		return "text field"
	default:
		return "control"
	}
}

// Element is one keyboard-reachable control. Component is the host's
// selectable instance, borrowed for activation; Label is display-ready.
type Element struct {
	Node      hostapi.Node
	Component any
	Kind      ControlKind
	Label     string
}

// elementsUnder scans node and its descendants for valid interactive
// elements in depth-first order. Errors on one node skip that node only.
func (d *Discoverer) elementsUnder(node hostapi.Node, popupContext bool, root hostapi.Node) []Element {
	if node == nil {
		return nil
	}
	var out []Element
	for _, n := range append([]hostapi.Node{node}, hostapi.Descendants(node)...) {
		if el, ok := d.elementAt(n, popupContext, root); ok {
			out = append(out, el)
		}
	}
	return out
}

// elementAt classifies a single node, applying the decorative, hidden and
// demo-only filters.
func (d *Discoverer) elementAt(n hostapi.Node, popupContext bool, root hostapi.Node) (el Element, ok bool) {
	defer func() {
		// One malformed node must never abort a whole discovery pass.
		if r := recover(); r != nil {
			d.log.Debug("discovery skipped node", "node", safeName(n), "panic", r)
			ok = false
		}
	}()
	if n == nil || d.hints.ignored(n.Name()) {
		return Element{}, false
	}
	comp, interactable := d.selectable(n)
	if comp == nil || !interactable {
		return Element{}, false
	}
	if popupContext && d.hiddenInContext(n, root) {
		return Element{}, false
	}
	kind := d.classify(comp)
	return Element{
		Node:      n,
		Component: comp,
		Kind:      kind,
		Label:     d.Label(n, comp, kind),
	}, true
}

// selectable returns the node's selectable-capable component: the first
// component exposing an Interactable flag.
func (d *Discoverer) selectable(n hostapi.Node) (any, bool) {
	for _, comp := range n.Components() {
		th := d.cache.Of(comp)
		if !th.Valid() {
			continue
		}
		h := d.cache.Member(th, "Interactable", reflectcache.KindField)
		if !h.Valid() {
			continue
		}
		return comp, d.acc.GetBool(h, comp)
	}
	return nil, false
}

// hiddenInContext applies the popup-only visibility rules: an inactive
// ancestor inside the popup, a zero-opacity group on the node or any
// ancestor, or a demo-only marker.
func (d *Discoverer) hiddenInContext(n hostapi.Node, root hostapi.Node) bool {
	for cur := n; cur != nil; cur = cur.Parent() {
		if !cur.Active() {
			return true
		}
		for _, comp := range cur.Components() {
			th := d.cache.Of(comp)
			if !th.Valid() {
				continue
			}
			if h := d.cache.Member(th, "Alpha", reflectcache.KindField); h.Valid() {
				if d.acc.GetFloat(h, comp) <= 0 {
					return true
				}
			}
			if h := d.cache.Member(th, "InFullGame", reflectcache.KindField); h.Valid() {
				if !d.acc.GetBool(h, comp) {
					return true
				}
			}
		}
		if hostapi.SameNode(cur, root) {
			break
		}
	}
	return false
}

// classify maps a selectable component to its semantic control type by the
// members it exposes. Order matters: a dropdown also has Interactable, so
// the most specific shape wins.
func (d *Discoverer) classify(comp any) ControlKind {
	th := d.cache.Of(comp)
	has := func(name string) bool {
		return d.cache.Member(th, name, reflectcache.KindField).Valid()
	}
	switch {
	case has("Options") && has("SelectedIndex"):
		return KindDropdown
	case has("Value") && has("MaxValue"):
		return KindSlider
	case has("IsOn"):
		if g := d.cache.Member(th, "Group", reflectcache.KindField); g.Valid() &&
			d.acc.GetString(g, comp) != "" {
			return KindRadio
		}
		return KindCheckbox
	case has("Text") && has("Placeholder"):
		return KindTextField
	case d.cache.Member(th, "Click", reflectcache.KindMethod).Valid():
		return KindButton
	default:
		return KindControl
	}
}

// State extracts the spoken state of an element: checked/unchecked for
// toggles, a rounded percentage for sliders, the selected option for
// dropdowns, nothing otherwise.
func (d *Discoverer) State(el Element) string {
	th := d.cache.Of(el.Component)
	switch el.Kind {
	case KindCheckbox, KindRadio:
		h := d.cache.Member(th, "IsOn", reflectcache.KindField)
		if d.acc.GetBool(h, el.Component) {
			return "checked"
		}
		return "unchecked"
	case KindSlider:
		val := d.acc.GetFloat(d.cache.Member(th, "Value", reflectcache.KindField), el.Component)
		low := d.acc.GetFloat(d.cache.Member(th, "MinValue", reflectcache.KindField), el.Component)
		high := d.acc.GetFloat(d.cache.Member(th, "MaxValue", reflectcache.KindField), el.Component)
		if high <= low {
			return ""
		}
		pct := int(math.Round((val - low) / (high - low) * 100))
		return fmt.Sprintf("%d percent", pct)
	case KindDropdown:
		return d.dropdownSelection(el.Component)
	default:
		return ""
	}
}

// DropdownOptions lists a dropdown component's options, empty when the
// component is not a dropdown.
func (d *Discoverer) DropdownOptions(comp any) []string {
	th := d.cache.Of(comp)
	h := d.cache.Member(th, "Options", reflectcache.KindField)
	var out []string
	for _, item := range d.acc.GetSlice(h, comp) {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// DropdownIndex reads the selected index, -1 when unavailable.
func (d *Discoverer) DropdownIndex(comp any) int {
	th := d.cache.Of(comp)
	h := d.cache.Member(th, "SelectedIndex", reflectcache.KindField)
	if !h.Valid() {
		return -1
	}
	return d.acc.GetInt(h, comp)
}

// SetDropdownIndex commits a selection back to the host component.
func (d *Discoverer) SetDropdownIndex(comp any, idx int) bool {
	th := d.cache.Of(comp)
	h := d.cache.Member(th, "SelectedIndex", reflectcache.KindField)
	return d.acc.Set(h, comp, idx)
}

func (d *Discoverer) dropdownSelection(comp any) string {
	opts := d.DropdownOptions(comp)
	idx := d.DropdownIndex(comp)
	if idx < 0 || idx >= len(opts) {
		return ""
	}
	return opts[idx]
}

func safeName(n hostapi.Node) string {
	if n == nil {
		return ""
	}
	return n.Name()
}
