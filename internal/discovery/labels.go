package discovery

import (
	"strings"

	"github.com/appengine-ltd/storm-access/internal/hostapi"
	"github.com/appengine-ltd/storm-access/internal/reflectcache"
)

// Label resolves the spoken label of an element. Priority order:
// inline text on the element or its children, legacy text, input-field
// text-or-placeholder, a nearby non-interactive text node, and finally the
// cleaned internal node name. Placeholder and purely numeric strings are
// rejected at every step so "Toggle" or "42" never becomes a label.
func (d *Discoverer) Label(n hostapi.Node, comp any, kind ControlKind) string {
	if kind == KindTextField {
		if s := d.inputFieldLabel(comp); s != "" {
			return s
		}
	}
	if s := d.inlineText(n); d.usable(s) {
		return s
	}
	if s := d.legacyText(n); d.usable(s) {
		return s
	}
	if s := d.nearbyText(n); d.usable(s) {
		return s
	}
	return CleanName(n.Name())
}

func (d *Discoverer) usable(s string) bool {
	s = strings.TrimSpace(s)
	return s != "" && !d.hints.placeholder(s) && !numericOnly(s)
}

// inlineText finds text content on the element node itself or any of its
// descendants, skipping components that are themselves interactive (their
// Text member is a value, not a caption).
func (d *Discoverer) inlineText(n hostapi.Node) string {
	for _, cur := range append([]hostapi.Node{n}, hostapi.Descendants(n)...) {
		if s := d.textOn(cur, "Text"); s != "" {
			return s
		}
	}
	return ""
}

func (d *Discoverer) legacyText(n hostapi.Node) string {
	for _, cur := range append([]hostapi.Node{n}, hostapi.Descendants(n)...) {
		if s := d.textOn(cur, "LegacyText"); s != "" {
			return s
		}
	}
	return ""
}

// textOn reads a text member from a non-interactive component on node.
func (d *Discoverer) textOn(n hostapi.Node, member string) string {
	for _, comp := range n.Components() {
		th := d.cache.Of(comp)
		if !th.Valid() {
			continue
		}
		if d.cache.Member(th, "Interactable", reflectcache.KindField).Valid() {
			continue
		}
		h := d.cache.Member(th, member, reflectcache.KindField)
		if !h.Valid() {
			continue
		}
		if s := strings.TrimSpace(d.acc.GetString(h, comp)); s != "" {
			return s
		}
	}
	return ""
}

// inputFieldLabel prefers the field's current text and falls back to its
// placeholder prompt.
func (d *Discoverer) inputFieldLabel(comp any) string {
	th := d.cache.Of(comp)
	if s := strings.TrimSpace(d.acc.GetString(d.cache.Member(th, "Text", reflectcache.KindField), comp)); s != "" {
		return s
	}
	return strings.TrimSpace(d.acc.GetString(d.cache.Member(th, "Placeholder", reflectcache.KindField), comp))
}

// nearbyText looks for a caption among the element's siblings first, then
// its parent's siblings, nearest tree distance winning. Only nodes that
// are not interactive themselves qualify.
func (d *Discoverer) nearbyText(n hostapi.Node) string {
	for _, scope := range []hostapi.Node{n.Parent(), grandparent(n)} {
		if scope == nil {
			continue
		}
		for _, sib := range scope.Children() {
			if hostapi.SameNode(sib, n) || hostapi.SameNode(sib, n.Parent()) {
				continue
			}
			if comp, _ := d.selectable(sib); comp != nil {
				continue
			}
			if s := d.textOn(sib, "Text"); s != "" {
				return s
			}
			if s := d.textOn(sib, "LegacyText"); s != "" {
				return s
			}
		}
	}
	return ""
}

func grandparent(n hostapi.Node) hostapi.Node {
	if p := n.Parent(); p != nil {
		return p.Parent()
	}
	return nil
}
