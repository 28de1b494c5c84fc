package hostsim

import "github.com/appengine-ltd/storm-access/internal/hostapi"

// Popup fixtures. These reproduce the layout quirks discovery has to cope
// with: captions on sibling nodes, placeholder inner text, decorative
// scrollbars, demo-only branches, tab controllers with host-owned state.

// BuildSettingsMenu is a plain multi-panel popup: named panels with
// toggles, sliders, dropdowns and a back button.
func BuildSettingsMenu() *Node {
	masterVolume := NewNode("SliderMasterVolume", &Slider{Interactable: true, Value: 42, MinValue: 0, MaxValue: 100}).
		Add(NewNode("ValueText", &Label{Text: "42"}))
	volumeRow := NewNode("RowVolume").
		Add(NewNode("CaptionVolume", &Label{Text: "Master volume"})).
		Add(masterVolume)

	language := NewNode("DropdownLanguage",
		&Dropdown{Interactable: true, Options: []string{"English", "Polski", "Deutsch"}, SelectedIndex: 0})
	languageRow := NewNode("RowLanguage").
		Add(NewNode("CaptionLanguage", &Label{Text: "Language"})).
		Add(language)

	audioPanel := NewNode("PanelAudio").
		Add(volumeRow).
		Add(languageRow).
		Add(NewNode("Scrollbar_Vertical", &Button{Interactable: true}))

	gameplayPanel := NewNode("PanelGameplay").
		Add(NewNode("ToggleAutoPause", &Toggle{Interactable: true, IsOn: true}).
			Add(NewNode("TextInner", &Label{Text: "Auto pause"}))).
		Add(NewNode("ToggleEasyMode", &Toggle{Interactable: true}).
			Add(NewNode("TextInner", &Label{Text: "Toggle"}))). // placeholder text on purpose
		Add(NewNode("RadioSpeedSlow", &Toggle{Interactable: true, IsOn: true, Group: "speed"}).
			Add(NewNode("TextInner", &Label{Text: "Slow"}))).
		Add(NewNode("RadioSpeedFast", &Toggle{Interactable: true, Group: "speed"}).
			Add(NewNode("TextInner", &Label{Text: "Fast"})))

	back := NewNode("ButtonBack", &Button{Interactable: true}, &PopupBackButton{Marker: true}).
		Add(NewNode("Text", &Label{Text: "Back"}))

	return NewNode("SettingsMenu", &SettingsPopup{Title: "Settings", Description: "Adjust game options."}).
		Add(NewNode("Background")).
		Add(audioPanel).
		Add(gameplayPanel).
		Add(back)
}

// TabbedPopup bundles a built tab fixture with the handles tests and the
// harness use to flip tabs the way the host would.
type TabbedPopup struct {
	Root     *Node
	Controls *TabsController
	Tabs     []*Node // content subtrees, index-aligned with tab buttons
}

// SwitchTab mimics a host-driven tab change: content active flags flip and
// the controller's current reference moves.
func (p *TabbedPopup) SwitchTab(idx int) {
	if p == nil || idx < 0 || idx >= len(p.Tabs) {
		return
	}
	for i, content := range p.Tabs {
		content.SetActive(i == idx)
	}
	p.Controls.CurrentContent = p.Tabs[idx]
}

// BuildRewardPopup is a three-tab popup; tab two holds four controls, the
// demo-only branch and hidden branch must never surface.
func BuildRewardPopup() *TabbedPopup {
	tabGoods := NewNode("TabContentGoods").
		Add(NewNode("ButtonClaimWood", &Button{Interactable: true}).
			Add(NewNode("Text", &Label{Text: "Claim wood"}))).
		Add(NewNode("ButtonClaimAmber", &Button{Interactable: true}).
			Add(NewNode("Text", &Label{Text: "Claim amber"})))

	tabPerks := NewNode("TabContentPerks").
		Add(NewNode("ButtonPerkOne", &Button{Interactable: true}).
			Add(NewNode("Text", &Label{Text: "Resilient roots"}))).
		Add(NewNode("ButtonPerkTwo", &Button{Interactable: true}).
			Add(NewNode("Text", &Label{Text: "Storm shelter"}))).
		Add(NewNode("ToggleFavor", &Toggle{Interactable: true}).
			Add(NewNode("Text", &Label{Text: "Mark as favorite"}))).
		Add(NewNode("ButtonReroll", &Button{Interactable: true}).
			Add(NewNode("Text", &Label{Text: "Reroll"}))).
		Add(NewNode("ButtonDemoExtra", &Button{Interactable: true}, &DemoMarker{InFullGame: false}).
			Add(NewNode("Text", &Label{Text: "Demo bonus"}))).
		Add(NewNode("FadedGroup", &CanvasGroup{Alpha: 0}).
			Add(NewNode("ButtonGhost", &Button{Interactable: true}).
				Add(NewNode("Text", &Label{Text: "Ghost"}))))

	tabHistory := NewNode("TabContentHistory").
		Add(NewNode("ButtonClearHistory", &Button{Interactable: true}).
			Add(NewNode("Text", &Label{Text: "Clear history"})))

	controller := &TabsController{}
	btnGoods := NewNode("TabButtonGoods", &Button{Interactable: true}).
		Add(NewNode("Text", &Label{Text: "Goods"}))
	btnPerks := NewNode("TabButtonPerks", &Button{Interactable: true}).
		Add(NewNode("Text", &Label{Text: "Perks"}))
	btnHistory := NewNode("TabButtonHistory", &Button{Interactable: true}).
		Add(NewNode("Text", &Label{Text: "History"}))
	controller.TabButtons = []hostapi.Node{btnGoods, btnPerks, btnHistory}

	tabBar := NewNode("TabsBar", controller).Add(btnGoods, btnPerks, btnHistory)

	root := NewNode("RewardPopup", &RewardPickPopup{Title: "Rewards", Description: "Pick your reward."}).
		Add(NewNode("Blend", &Button{Interactable: true})).
		Add(tabBar).
		Add(tabGoods, tabPerks, tabHistory)

	popup := &TabbedPopup{Root: root, Controls: controller, Tabs: []*Node{tabGoods, tabPerks, tabHistory}}
	popup.SwitchTab(0)

	// Tab buttons activate their content when clicked, like the host's own
	// mouse handling.
	for i, btn := range []*Node{btnGoods, btnPerks, btnHistory} {
		idx := i
		for _, comp := range btn.Components() {
			if b, ok := comp.(*Button); ok {
				b.OnClick = func() { popup.SwitchTab(idx) }
			}
		}
	}
	return popup
}

// BuildTradePopup carries the trade marker so the trade adapter detects it.
func BuildTradePopup() *Node {
	offers := NewNode("PanelOffers").
		Add(NewNode("ButtonSendCaravan", &Button{Interactable: true}).
			Add(NewNode("Text", &Label{Text: "Send caravan"}))).
		Add(NewNode("ButtonNextTown", &Button{Interactable: true}).
			Add(NewNode("Text", &Label{Text: "Next town"})))
	return NewNode("TradeRoutesPopup",
		&TradeRoutesPopup{Title: "Trade Routes", Description: "Send caravans to nearby towns."}).
		Add(NewNode("Background")).
		Add(offers).
		Add(NewNode("ButtonClose", &Button{Interactable: true}).
			Add(NewNode("Text", &Label{Text: "Close"})))
}
