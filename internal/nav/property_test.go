//go:build property
// +build property

// Property-based tests for the navigation cursor laws: panel and element
// navigation form cyclic groups over the discovered lists.
package nav

import (
	"log/slog"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/appengine-ltd/storm-access/internal/discovery"
	"github.com/appengine-ltd/storm-access/internal/hostsim"
	"github.com/appengine-ltd/storm-access/internal/reflectcache"
	"github.com/appengine-ltd/storm-access/internal/speech"
)

func propMachine() *Machine {
	asm := reflectcache.NewAssembly(slog.Default())
	hostsim.RegisterTypes(asm)
	cache := reflectcache.NewCache(asm, slog.Default())
	acc := reflectcache.NewAccessor(slog.Default())
	hints := discovery.DefaultHints()
	disc := discovery.New(cache, acc, hints, slog.Default())
	ann := speech.NewAnnouncer(speech.NewTranscript(0), speech.Options{}, slog.Default())
	return NewMachine(disc, cache, acc, ann, hints, slog.Default())
}

// TestElementNavigationIsCyclic verifies that for a panel with M elements,
// applying M single steps returns to the starting element, from any start
// offset and in either direction.
func TestElementNavigationIsCyclic(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("M element steps return to start", prop.ForAll(
		func(offset int, backwards bool) bool {
			m := propMachine()
			popup := hostsim.BuildRewardPopup()
			m.ShowPopup(popup.Root)

			for i := 0; i < offset; i++ {
				m.NavigateElement(1)
			}
			_, start, ok := m.indices()
			if !ok {
				return false
			}
			step := 1
			if backwards {
				step = -1
			}
			// Panel 0 is the tab bar with 3 buttons.
			for i := 0; i < 3; i++ {
				m.NavigateElement(step)
			}
			_, end, _ := m.indices()
			return start == end
		},
		gen.IntRange(0, 10),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

// TestPanelNavigationIsCyclic verifies the same law for panels.
func TestPanelNavigationIsCyclic(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("N panel steps return to start", prop.ForAll(
		func(offset int, backwards bool) bool {
			m := propMachine()
			m.ShowMenu(hostsim.BuildSettingsMenu())

			for i := 0; i < offset; i++ {
				m.NavigatePanel(1)
			}
			start, _, ok := m.indices()
			if !ok {
				return false
			}
			step := 1
			if backwards {
				step = -1
			}
			// The settings menu discovers exactly 2 panels.
			for i := 0; i < 2; i++ {
				m.NavigatePanel(step)
			}
			end, _, _ := m.indices()
			return start == end
		},
		gen.IntRange(0, 10),
		gen.Bool(),
	))

	properties.TestingRun(t)
}
