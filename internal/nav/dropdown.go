package nav

import (
	"fmt"

	"github.com/appengine-ltd/storm-access/internal/discovery"
	"github.com/appengine-ltd/storm-access/internal/speech"
)

// Dropdown sub-state. While open, the controller routes every key here;
// anything that isn't cycle/commit/cancel is absorbed so transient input
// can't leak into the host.

func (m *Machine) openDropdown(s *session, el discovery.Element) {
	options := m.disc.DropdownOptions(el.Component)
	if len(options) == 0 {
		return
	}
	idx := m.disc.DropdownIndex(el.Component)
	if idx < 0 || idx >= len(options) {
		idx = 0
	}
	s.dropdown = &dropdownState{element: el, options: options, idx: idx}
	m.ann.Say(speech.CategoryNavigation,
		fmt.Sprintf("%s, %s, option %d of %d", el.Label, options[idx], idx+1, len(options)))
}

// DropdownMove cycles the open option list with wraparound.
func (m *Machine) DropdownMove(delta int) {
	s := m.current()
	if s == nil || s.dropdown == nil {
		return
	}
	d := s.dropdown
	n := len(d.options)
	d.idx = ((d.idx+delta)%n + n) % n
	m.ann.Say(speech.CategoryNavigation,
		fmt.Sprintf("%s, option %d of %d", d.options[d.idx], d.idx+1, n))
}

// DropdownCommit writes the highlighted option back to the host component
// and closes the sub-state.
func (m *Machine) DropdownCommit() {
	s := m.current()
	if s == nil || s.dropdown == nil {
		return
	}
	d := s.dropdown
	s.dropdown = nil
	if m.disc.SetDropdownIndex(d.element.Component, d.idx) {
		m.ann.Say(speech.CategoryNavigation,
			fmt.Sprintf("%s selected", d.options[d.idx]))
	}
}

// DropdownCancel closes the sub-state without selecting.
func (m *Machine) DropdownCancel() {
	s := m.current()
	if s == nil || s.dropdown == nil {
		return
	}
	s.dropdown = nil
	m.ann.Say(speech.CategoryNavigation, "canceled")
}
