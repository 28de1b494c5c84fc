package discovery

import (
	"log/slog"
	"testing"

	"github.com/appengine-ltd/storm-access/internal/hostsim"
	"github.com/appengine-ltd/storm-access/internal/reflectcache"
)

func testDiscoverer(t *testing.T) *Discoverer {
	t.Helper()
	asm := reflectcache.NewAssembly(slog.Default())
	hostsim.RegisterTypes(asm)
	cache := reflectcache.NewCache(asm, slog.Default())
	acc := reflectcache.NewAccessor(slog.Default())
	return New(cache, acc, DefaultHints(), slog.Default())
}

func labels(els []Element) []string {
	out := make([]string, 0, len(els))
	for _, el := range els {
		out = append(out, el.Label)
	}
	return out
}

func TestTabbedPopupBecomesTwoVirtualPanels(t *testing.T) {
	d := testDiscoverer(t)
	popup := hostsim.BuildRewardPopup()

	ps := d.DiscoverPanels(popup.Root, true)
	if !ps.IsTabbed {
		t.Fatalf("reward popup must be detected as tabbed")
	}
	if len(ps.Panels) != 2 {
		t.Fatalf("tabbed popup must present exactly 2 panels, got %d", len(ps.Panels))
	}
	if len(ps.TabButtons) != 3 {
		t.Fatalf("expected 3 tab buttons, got %d", len(ps.TabButtons))
	}

	bar := d.ElementsInPanel(ps, 0, true)
	if got := labels(bar); len(got) != 3 || got[0] != "Goods" || got[1] != "Perks" || got[2] != "History" {
		t.Fatalf("tab bar elements wrong: %v", got)
	}
}

func TestActiveTabContentIsReResolvedPerQuery(t *testing.T) {
	d := testDiscoverer(t)
	popup := hostsim.BuildRewardPopup()
	ps := d.DiscoverPanels(popup.Root, true)

	popup.SwitchTab(1)
	els := d.ElementsInPanel(ps, 1, true)
	if len(els) != 4 {
		t.Fatalf("perks tab must expose exactly 4 controls, got %d: %v", len(els), labels(els))
	}
	for _, el := range els {
		if el.Label == "Demo bonus" || el.Label == "Ghost" {
			t.Fatalf("filtered control leaked into the active tab: %v", labels(els))
		}
	}

	// Host-driven switch (mouse click) must be reflected without a rebuild.
	popup.SwitchTab(2)
	els = d.ElementsInPanel(ps, 1, true)
	if len(els) != 1 || els[0].Label != "Clear history" {
		t.Fatalf("tab content did not follow the controller: %v", labels(els))
	}
	if got := d.PanelLabel(ps, 1); got != "Content History" {
		t.Fatalf("tab content panel label = %q", got)
	}
}

func TestNamedPanelsTopmostOnlyWithFallbackToRoot(t *testing.T) {
	d := testDiscoverer(t)
	menu := hostsim.BuildSettingsMenu()

	ps := d.DiscoverPanels(menu, false)
	if ps.IsTabbed {
		t.Fatalf("settings menu is not tabbed")
	}
	if len(ps.Panels) != 2 {
		t.Fatalf("expected the two named panels, got %d", len(ps.Panels))
	}

	bare := hostsim.NewNode("BarePopup").
		Add(hostsim.NewNode("ButtonOk", &hostsim.Button{Interactable: true}).
			Add(hostsim.NewNode("Text", &hostsim.Label{Text: "OK"})))
	ps = d.DiscoverPanels(bare, true)
	if len(ps.Panels) != 1 || ps.Panels[0].Kind != PanelRoot {
		t.Fatalf("panel-less popup must fall back to the root panel: %+v", ps.Panels)
	}
}

func TestScrollbarIsAlwaysExcluded(t *testing.T) {
	d := testDiscoverer(t)
	menu := hostsim.BuildSettingsMenu()
	ps := d.DiscoverPanels(menu, false)

	for idx := range ps.Panels {
		for _, el := range d.ElementsInPanel(ps, idx, false) {
			if el.Node.Name() == "Scrollbar_Vertical" {
				t.Fatalf("decorative scrollbar leaked into panel %d", idx)
			}
		}
	}
}

func TestLabelPriorityChain(t *testing.T) {
	d := testDiscoverer(t)
	menu := hostsim.BuildSettingsMenu()
	ps := d.DiscoverPanels(menu, false)

	var audio, gameplay []Element
	for idx := range ps.Panels {
		els := d.ElementsInPanel(ps, idx, false)
		if ps.Panels[idx].Label == "Panel Audio" {
			audio = els
		} else {
			gameplay = els
		}
	}

	// Numeric inner text must lose to the sibling caption.
	if len(audio) != 2 || audio[0].Label != "Master volume" {
		t.Fatalf("slider label chain failed: %v", labels(audio))
	}
	if audio[1].Label != "Language" {
		t.Fatalf("dropdown caption failed: %v", labels(audio))
	}

	// Placeholder inner text ("Toggle") must fall back to the cleaned name.
	want := map[string]bool{"Auto pause": true, "Easy Mode": true, "Slow": true, "Fast": true}
	if len(gameplay) != 4 {
		t.Fatalf("gameplay panel elements: %v", labels(gameplay))
	}
	for _, el := range gameplay {
		if !want[el.Label] {
			t.Fatalf("unexpected label %q in %v", el.Label, labels(gameplay))
		}
	}
}

func TestNumericOnlyTextFallsBackToCleanedName(t *testing.T) {
	d := testDiscoverer(t)
	slider := hostsim.NewNode("SliderBrightness",
		&hostsim.Slider{Interactable: true, Value: 42, MinValue: 0, MaxValue: 100}).
		Add(hostsim.NewNode("Text", &hostsim.Label{Text: "42"}))
	root := hostsim.NewNode("Popup").Add(slider)

	ps := d.DiscoverPanels(root, true)
	els := d.ElementsInPanel(ps, 0, true)
	if len(els) != 1 {
		t.Fatalf("expected the slider, got %v", labels(els))
	}
	if els[0].Label != "Brightness" {
		t.Fatalf("numeric inner text must not become the label, got %q", els[0].Label)
	}
}

func TestClassificationAndState(t *testing.T) {
	d := testDiscoverer(t)
	menu := hostsim.BuildSettingsMenu()
	ps := d.DiscoverPanels(menu, false)

	kinds := map[string]ControlKind{}
	states := map[string]string{}
	for idx := range ps.Panels {
		for _, el := range d.ElementsInPanel(ps, idx, false) {
			kinds[el.Label] = el.Kind
			states[el.Label] = d.State(el)
		}
	}

	if kinds["Master volume"] != KindSlider || states["Master volume"] != "42 percent" {
		t.Fatalf("slider: kind=%v state=%q", kinds["Master volume"], states["Master volume"])
	}
	if kinds["Language"] != KindDropdown || states["Language"] != "English" {
		t.Fatalf("dropdown: kind=%v state=%q", kinds["Language"], states["Language"])
	}
	if kinds["Auto pause"] != KindCheckbox || states["Auto pause"] != "checked" {
		t.Fatalf("toggle: kind=%v state=%q", kinds["Auto pause"], states["Auto pause"])
	}
	if kinds["Slow"] != KindRadio || states["Slow"] != "checked" {
		t.Fatalf("radio: kind=%v state=%q", kinds["Slow"], states["Slow"])
	}
	if kinds["Fast"] != KindRadio || states["Fast"] != "unchecked" {
		t.Fatalf("radio: kind=%v state=%q", kinds["Fast"], states["Fast"])
	}
}

func TestHiddenBranchesOnlyFilteredInPopupContext(t *testing.T) {
	d := testDiscoverer(t)
	faded := hostsim.NewNode("FadedGroup", &hostsim.CanvasGroup{Alpha: 0}).
		Add(hostsim.NewNode("ButtonGhost", &hostsim.Button{Interactable: true}).
			Add(hostsim.NewNode("Text", &hostsim.Label{Text: "Ghost"})))
	root := hostsim.NewNode("Popup").
		Add(hostsim.NewNode("ButtonReal", &hostsim.Button{Interactable: true}).
			Add(hostsim.NewNode("Text", &hostsim.Label{Text: "Real"}))).
		Add(faded)

	ps := d.DiscoverPanels(root, true)
	els := d.ElementsInPanel(ps, 0, true)
	if len(els) != 1 || els[0].Label != "Real" {
		t.Fatalf("zero-alpha branch must be hidden in popups: %v", labels(els))
	}
}
