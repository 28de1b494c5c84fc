package nav

import (
	"github.com/google/uuid"

	"github.com/appengine-ltd/storm-access/internal/discovery"
	"github.com/appengine-ltd/storm-access/internal/hostapi"
)

// session models one keyboard-navigable surface: an open popup or the
// game menu. The root node is borrowed from the host and compared by
// identity to tell "same popup re-shown" from "new popup".
type session struct {
	id       uuid.UUID
	root     hostapi.Node
	isPopup  bool
	panels   discovery.PanelSet
	panelIdx int
	elemIdx  int
	elements []discovery.Element

	dropdown      *dropdownState
	sliderFocused bool
}

// dropdownState is the transient sub-session while a dropdown's option
// list is open. All unrelated input is absorbed until it closes.
type dropdownState struct {
	element discovery.Element
	options []string
	idx     int
}

func (s *session) clampIndices() {
	if s == nil {
		return
	}
	if s.panelIdx < 0 || s.panelIdx >= len(s.panels.Panels) {
		s.panelIdx = 0
	}
	if s.elemIdx < 0 || s.elemIdx >= len(s.elements) {
		s.elemIdx = 0
	}
}

func (s *session) currentElement() (discovery.Element, bool) {
	if s == nil || len(s.elements) == 0 {
		return discovery.Element{}, false
	}
	s.clampIndices()
	return s.elements[s.elemIdx], true
}
