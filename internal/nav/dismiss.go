package nav

import (
	"github.com/appengine-ltd/storm-access/internal/hostapi"
	"github.com/appengine-ltd/storm-access/internal/reflectcache"
)

// Dismiss closes the current surface the way a sighted player would:
// first the designated back marker's button, then any button whose name
// reads like close/hide/back/cancel/exit/dismiss, then the full-screen
// blend surface. No match is a silent no-op; the host decides what the
// click actually does.
func (m *Machine) Dismiss() {
	s := m.current()
	if s == nil {
		return
	}
	nodes := append([]hostapi.Node{s.root}, hostapi.Descendants(s.root)...)

	if n := m.findBackMarker(nodes); n != nil && m.clickNode(n) {
		return
	}
	for _, n := range nodes {
		if m.hints.DismissLike(n.Name()) && m.clickNode(n) {
			return
		}
	}
	for _, n := range nodes {
		if m.hints.BlendLike(n.Name()) && m.clickNode(n) {
			return
		}
	}
}

func (m *Machine) findBackMarker(nodes []hostapi.Node) hostapi.Node {
	marker := m.cache.Type(m.hints.BackMarkerType)
	if !marker.Valid() {
		return nil
	}
	for _, n := range nodes {
		for _, comp := range n.Components() {
			if marker.Matches(comp) {
				return n
			}
		}
	}
	return nil
}

// clickNode invokes the first clickable component on n.
func (m *Machine) clickNode(n hostapi.Node) bool {
	for _, comp := range n.Components() {
		th := m.cache.Of(comp)
		if !th.Valid() {
			continue
		}
		h := m.cache.Member(th, "Click", reflectcache.KindMethod)
		if !h.Valid() {
			continue
		}
		if _, ok := m.acc.Invoke(h, comp); ok {
			return true
		}
	}
	return false
}
