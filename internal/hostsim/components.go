package hostsim

import (
	"github.com/appengine-ltd/storm-access/internal/hostapi"
	"github.com/appengine-ltd/storm-access/internal/reflectcache"
)

// UI component shapes. Field and method names are what the engine probes
// for through the reflection layer; they match the host build's widget
// surface, not Go taste.

type Button struct {
	Interactable bool
	OnClick      func()
}

func (b *Button) Click() {
	if b.OnClick != nil {
		b.OnClick()
	}
}

type Toggle struct {
	Interactable bool
	IsOn         bool
	Group        string // non-empty groups render as radio buttons
}

type Slider struct {
	Interactable bool
	Value        float64
	MinValue     float64
	MaxValue     float64
}

type Dropdown struct {
	Interactable  bool
	Options       []string
	SelectedIndex int
}

type InputField struct {
	Interactable bool
	Text         string
	Placeholder  string
}

// Label is the current-generation text component.
type Label struct {
	Text string
}

// LegacyLabel is the old text component still present on older popups.
type LegacyLabel struct {
	LegacyText string
}

// CanvasGroup fades a whole subtree; alpha zero means invisible.
type CanvasGroup struct {
	Alpha float64
}

// TabsController owns a tabbed popup's tab buttons and the reference to
// the currently shown content subtree.
type TabsController struct {
	TabButtons     []hostapi.Node
	CurrentContent hostapi.Node
}

// DemoMarker tags content that only exists outside the full game.
type DemoMarker struct {
	InFullGame bool
}

// PopupBackButton marks the designated dismiss button of a popup.
type PopupBackButton struct {
	Marker bool
}

// Popup identity markers, one per feature popup. Adapters detect popups by
// these exact type names.

type TradeRoutesPopup struct{ Title, Description string }
type RewardPickPopup struct{ Title, Description string }
type SettingsPopup struct{ Title, Description string }
type TutorialPopup struct{ Title, Description string }
type ScorePopup struct{ Title, Description string }
type CapitalUpgradesPopup struct{ Title, Description string }
type PerkForgePopup struct{ Title, Description string }
type WildcardPopup struct{ Title, Description string }

// RegisterTypes registers every sim type under the names the engine looks
// up, the way the bootstrap registers the real game's types.
func RegisterTypes(asm *reflectcache.Assembly) {
	asm.Register("Button", &Button{})
	asm.Register("Toggle", &Toggle{})
	asm.Register("Slider", &Slider{})
	asm.Register("Dropdown", &Dropdown{})
	asm.Register("InputField", &InputField{})
	asm.Register("Label", &Label{})
	asm.Register("LegacyLabel", &LegacyLabel{})
	asm.Register("CanvasGroup", &CanvasGroup{})
	asm.Register("TabsController", &TabsController{})
	asm.Register("DemoMarker", &DemoMarker{})
	asm.Register("PopupBackButton", &PopupBackButton{})

	asm.Register("TradeRoutesPopup", &TradeRoutesPopup{})
	asm.Register("RewardPickPopup", &RewardPickPopup{})
	asm.Register("SettingsPopup", &SettingsPopup{})
	asm.Register("TutorialPopup", &TutorialPopup{})
	asm.Register("ScorePopup", &ScorePopup{})
	asm.Register("CapitalUpgradesPopup", &CapitalUpgradesPopup{})
	asm.Register("PerkForgePopup", &PerkForgePopup{})
	asm.Register("WildcardPopup", &WildcardPopup{})

	asm.Register("TradeService", &TradeService{})
	asm.Register("TradeTown", &TradeTown{})
	asm.Register("TradeOffer", &TradeOffer{})
	asm.Register("TutorialService", &TutorialService{})
	asm.Register("TutorialEntry", &TutorialEntry{})
	asm.Register("ScoreService", &ScoreService{})
	asm.Register("ScoreRow", &ScoreRow{})
	asm.Register("CapitalService", &CapitalService{})
	asm.Register("CapitalUpgrade", &CapitalUpgrade{})
	asm.Register("PerkForgeService", &PerkForgeService{})
	asm.Register("PerkHook", &PerkHook{})
	asm.Register("PerkEffect", &PerkEffect{})
	asm.Register("CraftedPerk", &CraftedPerk{})
	asm.Register("WildcardService", &WildcardService{})
	asm.Register("WildcardPick", &WildcardPick{})
	asm.Register("WorldEventService", &WorldEventService{})
	asm.Register("WorldEvent", &WorldEvent{})
	asm.Register("GameStateService", &GameStateService{})

	asm.Register("WorldMapService", &WorldMapService{})
	asm.Register("SettlementMapService", &SettlementMapService{})
	asm.Register("Building", &Building{})
	asm.Register("Hearth", &Hearth{})
	asm.Register("WoodcutterCamp", &WoodcutterCamp{})
	asm.Register("ResourceNode", &ResourceNode{})
	asm.Register("WeightedProduct", WeightedProduct{})
	asm.Register("ResourceNodeModel", &ResourceNodeModel{})
	asm.Register("ResourceNodeState", &ResourceNodeState{})
	asm.Register("Deposit", &Deposit{})
	asm.Register("DepositState", &DepositState{})
}
