// Package nav owns what is currently keyboard-navigable: the active popup
// session, the menu session beneath it, panel and element cursors, and
// the dropdown sub-state. It re-derives its model from discovery whenever
// the host changes structure and never trusts event counts, only node
// identity.
package nav

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/appengine-ltd/storm-access/internal/discovery"
	"github.com/appengine-ltd/storm-access/internal/hostapi"
	"github.com/appengine-ltd/storm-access/internal/reflectcache"
	"github.com/appengine-ltd/storm-access/internal/speech"
)

type Machine struct {
	disc  *discovery.Discoverer
	cache *reflectcache.Cache
	acc   *reflectcache.Accessor
	ann   *speech.Announcer
	hints discovery.NameHints
	log   *slog.Logger

	popup *session
	menu  *session
}

func NewMachine(disc *discovery.Discoverer, cache *reflectcache.Cache, acc *reflectcache.Accessor, ann *speech.Announcer, hints discovery.NameHints, log *slog.Logger) *Machine {
	if log == nil {
		log = slog.Default()
	}
	return &Machine{disc: disc, cache: cache, acc: acc, ann: ann, hints: hints, log: log}
}

// Active reports whether any session is open. The popup session always
// shadows the menu session.
func (m *Machine) Active() bool { return m.current() != nil }

// DropdownOpen reports whether the dropdown sub-state is absorbing input.
func (m *Machine) DropdownOpen() bool {
	s := m.current()
	return s != nil && s.dropdown != nil
}

// SliderFocused reports whether directional keys are adjusting a slider.
func (m *Machine) SliderFocused() bool {
	s := m.current()
	return s != nil && s.sliderFocused
}

func (m *Machine) current() *session {
	if m == nil {
		return nil
	}
	if m.popup != nil {
		return m.popup
	}
	return m.menu
}

// ShowPopup opens a popup session. A show for the node already tracked is
// a duplicate event and changes nothing.
func (m *Machine) ShowPopup(root hostapi.Node) {
	if root == nil {
		return
	}
	if m.popup != nil && hostapi.SameNode(m.popup.root, root) {
		return
	}
	m.popup = m.openSession(root, true)
}

// HidePopup closes the popup session only when ref matches the tracked
// popup; hide events from stacked or unrelated popups are ignored.
func (m *Machine) HidePopup(root hostapi.Node) {
	if m.popup == nil || !hostapi.SameNode(m.popup.root, root) {
		return
	}
	m.log.Debug("popup session closed", "session", m.popup.id.String())
	m.popup = nil
}

// ShowMenu opens the menu session. It stays dormant under an open popup.
func (m *Machine) ShowMenu(root hostapi.Node) {
	if root == nil {
		return
	}
	if m.menu != nil && hostapi.SameNode(m.menu.root, root) {
		return
	}
	m.menu = m.openSession(root, false)
}

// HideMenu closes the menu session when ref matches.
func (m *Machine) HideMenu(root hostapi.Node) {
	if m.menu == nil || !hostapi.SameNode(m.menu.root, root) {
		return
	}
	m.menu = nil
}

func (m *Machine) openSession(root hostapi.Node, isPopup bool) *session {
	s := &session{
		id:      uuid.New(),
		root:    root,
		isPopup: isPopup,
		panels:  m.disc.DiscoverPanels(root, isPopup),
	}
	s.elements = m.disc.ElementsInPanel(s.panels, 0, isPopup)
	m.log.Debug("session opened",
		"session", s.id.String(),
		"popup", isPopup,
		"panels", len(s.panels.Panels),
		"tabbed", s.panels.IsTabbed,
	)
	m.announceOpen(s)
	return s
}

func (m *Machine) announceOpen(s *session) {
	var parts []string
	if title, desc := m.popupText(s.root); title != "" {
		parts = append(parts, title)
		if desc != "" {
			parts = append(parts, desc)
		}
	} else {
		parts = append(parts, discovery.CleanName(s.root.Name()))
	}
	if el, ok := s.currentElement(); ok {
		parts = append(parts, m.elementPhrase(el))
	}
	m.ann.Say(speech.CategoryNavigation, strings.Join(parts, ". "))
}

// popupText reads Title and Description off whatever marker component the
// popup carries; every feature popup exposes that pair.
func (m *Machine) popupText(root hostapi.Node) (string, string) {
	if root == nil {
		return "", ""
	}
	for _, comp := range root.Components() {
		th := m.cache.Of(comp)
		if !th.Valid() {
			continue
		}
		titleH := m.cache.Member(th, "Title", reflectcache.KindField)
		descH := m.cache.Member(th, "Description", reflectcache.KindField)
		if !titleH.Valid() {
			continue
		}
		return m.acc.GetString(titleH, comp), m.acc.GetString(descH, comp)
	}
	return "", ""
}

// NavigatePanel moves the panel cursor with wraparound and announces the
// panel plus its first element. A single-panel session ignores it.
func (m *Machine) NavigatePanel(delta int) {
	s := m.current()
	if s == nil || len(s.panels.Panels) <= 1 {
		return
	}
	s.sliderFocused = false
	n := len(s.panels.Panels)
	s.panelIdx = ((s.panelIdx+delta)%n + n) % n
	s.elements = m.disc.ElementsInPanel(s.panels, s.panelIdx, s.isPopup)
	s.elemIdx = 0
	parts := []string{m.disc.PanelLabel(s.panels, s.panelIdx)}
	if el, ok := s.currentElement(); ok {
		parts = append(parts, m.elementPhrase(el))
	} else {
		parts = append(parts, "no controls")
	}
	m.ann.Say(speech.CategoryNavigation, strings.Join(parts, ". "))
}

// NavigateElement moves the element cursor with wraparound. An empty
// panel ignores it.
func (m *Machine) NavigateElement(delta int) {
	s := m.current()
	if s == nil || len(s.elements) == 0 {
		return
	}
	s.sliderFocused = false
	n := len(s.elements)
	s.elemIdx = ((s.elemIdx+delta)%n + n) % n
	if el, ok := s.currentElement(); ok {
		m.ann.Say(speech.CategoryNavigation, m.elementPhrase(el))
	}
}

// Activate operates the current element by its semantic type.
func (m *Machine) Activate() {
	s := m.current()
	el, ok := s.currentElement()
	if !ok {
		return
	}
	th := m.cache.Of(el.Component)
	switch el.Kind {
	case discovery.KindCheckbox, discovery.KindRadio:
		h := m.cache.Member(th, "IsOn", reflectcache.KindField)
		next := !m.acc.GetBool(h, el.Component)
		if m.acc.Set(h, el.Component, next) {
			m.ann.Say(speech.CategoryNavigation, fmt.Sprintf("%s, %s", el.Label, m.disc.State(el)))
		}
	case discovery.KindDropdown:
		m.openDropdown(s, el)
	case discovery.KindSlider:
		s.sliderFocused = true
		m.ann.Say(speech.CategoryNavigation,
			fmt.Sprintf("%s, adjust with up and down, escape to finish", el.Label))
	default:
		clickH := m.cache.Member(th, "Click", reflectcache.KindMethod)
		if _, ok := m.acc.Invoke(clickH, el.Component); ok {
			m.ann.Say(speech.CategoryNavigation, el.Label+", activated")
			m.refreshAfterActivate(s)
		}
	}
}

// refreshAfterActivate re-reads the current panel; clicking a tab button
// or any structural button may have changed what is under the cursor.
func (m *Machine) refreshAfterActivate(s *session) {
	s.elements = m.disc.ElementsInPanel(s.panels, s.panelIdx, s.isPopup)
	s.clampIndices()
}

// AdjustSlider nudges a focused slider by 5% of its range per step.
func (m *Machine) AdjustSlider(delta int) {
	s := m.current()
	if s == nil || !s.sliderFocused {
		return
	}
	el, ok := s.currentElement()
	if !ok || el.Kind != discovery.KindSlider {
		s.sliderFocused = false
		return
	}
	th := m.cache.Of(el.Component)
	valH := m.cache.Member(th, "Value", reflectcache.KindField)
	minH := m.cache.Member(th, "MinValue", reflectcache.KindField)
	maxH := m.cache.Member(th, "MaxValue", reflectcache.KindField)
	low := m.acc.GetFloat(minH, el.Component)
	high := m.acc.GetFloat(maxH, el.Component)
	if high <= low {
		return
	}
	step := (high - low) / 20
	next := m.acc.GetFloat(valH, el.Component) + float64(delta)*step
	if next < low {
		next = low
	}
	if next > high {
		next = high
	}
	if m.acc.Set(valH, el.Component, next) {
		m.ann.Say(speech.CategoryNavigation, m.disc.State(el))
	}
}

// ReleaseSlider drops slider focus without announcing.
func (m *Machine) ReleaseSlider() {
	if s := m.current(); s != nil {
		s.sliderFocused = false
	}
}

// ReadCurrent re-announces the current element without moving.
func (m *Machine) ReadCurrent() {
	s := m.current()
	if el, ok := s.currentElement(); ok {
		m.ann.Say(speech.CategoryNavigation, m.elementPhrase(el))
	}
}

// Refresh re-derives panels and elements after a structural change,
// keeping the cursor in bounds.
func (m *Machine) Refresh() {
	s := m.current()
	if s == nil {
		return
	}
	s.panels = m.disc.DiscoverPanels(s.root, s.isPopup)
	s.clampIndices()
	s.elements = m.disc.ElementsInPanel(s.panels, s.panelIdx, s.isPopup)
	s.clampIndices()
}

// ValidatePopup drops the popup session when its root is no longer live.
// The polling fallback calls this to compensate for missed hide events.
func (m *Machine) ValidatePopup() {
	if m.popup == nil {
		return
	}
	if !hostapi.ActiveInHierarchy(m.popup.root) {
		m.log.Debug("popup vanished without a hide event", "session", m.popup.id.String())
		m.popup = nil
	}
}

func (m *Machine) elementPhrase(el discovery.Element) string {
	parts := []string{el.Label, el.Kind.String()}
	if state := m.disc.State(el); state != "" {
		parts = append(parts, state)
	}
	return strings.Join(parts, ", ")
}

// indices exposes the cursor for tests and the harness status line.
func (m *Machine) indices() (panel, element int, ok bool) {
	s := m.current()
	if s == nil {
		return 0, 0, false
	}
	return s.panelIdx, s.elemIdx, true
}

// Status describes the machine for the harness status bar.
func (m *Machine) Status() string {
	s := m.current()
	if s == nil {
		return "no session"
	}
	kind := "menu"
	if s.isPopup {
		kind = "popup"
	}
	return fmt.Sprintf("%s, panel %d of %d, element %d of %d",
		kind, s.panelIdx+1, len(s.panels.Panels), s.elemIdx+1, len(s.elements))
}
