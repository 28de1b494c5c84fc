// Package controller is the single long-lived object behind the hooks:
// host callbacks and key events come in, navigation state changes and
// speech go out. Everything runs on the host's main thread; there is no
// locking because there is no second thread.
package controller

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/appengine-ltd/storm-access/internal/adapters"
	"github.com/appengine-ltd/storm-access/internal/hostapi"
	"github.com/appengine-ltd/storm-access/internal/input"
	"github.com/appengine-ltd/storm-access/internal/nav"
	"github.com/appengine-ltd/storm-access/internal/speech"
	"github.com/appengine-ltd/storm-access/internal/worldmap"
)

// Adapters bundles the domain adapters the controller consults when a
// popup opens.
type Adapters struct {
	Trade     *adapters.TradeAdapter
	Tutorials *adapters.TutorialAdapter
	Score     *adapters.ScoreAdapter
	Capital   *adapters.CapitalAdapter
	Perks     *adapters.PerkAdapter
	Wildcards *adapters.WildcardAdapter
	Events    *adapters.EventAdapter
	State     *adapters.StateAdapter
}

// Controller routes host hooks and key presses.
type Controller struct {
	machine *nav.Machine
	mapNav  *worldmap.Navigator
	ann     *speech.Announcer
	keymap  *input.Keymap
	ad      Adapters
	log     *slog.Logger

	pollTicks   int
	tick        int
	settlement  bool
	settleKnown bool
}

func New(machine *nav.Machine, mapNav *worldmap.Navigator, ann *speech.Announcer, keymap *input.Keymap, ad Adapters, pollTicks int, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.Default()
	}
	if pollTicks < 1 {
		pollTicks = 30
	}
	return &Controller{
		machine:   machine,
		mapNav:    mapNav,
		ann:       ann,
		keymap:    keymap,
		ad:        ad,
		log:       log,
		pollTicks: pollTicks,
	}
}

// PopupShown is the hook for a popup becoming visible. On top of opening
// the navigation session it speaks a one-line domain summary for popups an
// adapter recognizes.
func (c *Controller) PopupShown(root hostapi.Node) {
	c.machine.ShowPopup(root)
	if line := c.domainSummary(root); line != "" {
		c.ann.Say(speech.CategoryHooks, line)
	}
}

// PopupHidden is the hook for a popup closing.
func (c *Controller) PopupHidden(root hostapi.Node) {
	c.machine.HidePopup(root)
}

// MenuShown is the hook for a full-screen menu opening.
func (c *Controller) MenuShown(root hostapi.Node) {
	c.machine.ShowMenu(root)
}

// MenuHidden is the hook for a full-screen menu closing.
func (c *Controller) MenuHidden(root hostapi.Node) {
	c.machine.HideMenu(root)
}

// TabClicked is the hook for a host-driven tab change; the session re-reads
// its panels because the live content subtree moved.
func (c *Controller) TabClicked(root hostapi.Node) {
	c.machine.Refresh()
}

// HandleKey routes one key press. Sub-states absorb input first: an open
// dropdown sees every action, then a focused slider, then the active
// session, and only with no session open do map actions apply.
func (c *Controller) HandleKey(ev input.Event) {
	action := c.keymap.Resolve(ev)
	if action == input.ActionNone {
		return
	}
	if action == input.ActionSilence {
		c.ann.Silence()
		return
	}

	switch {
	case c.machine.DropdownOpen():
		c.handleDropdown(action)
	case c.machine.SliderFocused():
		c.handleSlider(action)
	case c.machine.Active():
		c.handleSession(action)
	default:
		c.handleMap(action)
	}
}

func (c *Controller) handleDropdown(action input.Action) {
	switch action {
	case input.ActionNext:
		c.machine.DropdownMove(1)
	case input.ActionPrev:
		c.machine.DropdownMove(-1)
	case input.ActionActivate:
		c.machine.DropdownCommit()
	case input.ActionDismiss:
		c.machine.DropdownCancel()
	}
}

func (c *Controller) handleSlider(action input.Action) {
	switch action {
	case input.ActionNext:
		c.machine.AdjustSlider(-1)
	case input.ActionPrev:
		c.machine.AdjustSlider(1)
	case input.ActionActivate, input.ActionDismiss:
		c.machine.ReleaseSlider()
	}
}

func (c *Controller) handleSession(action input.Action) {
	switch action {
	case input.ActionNext:
		c.machine.NavigateElement(1)
	case input.ActionPrev:
		c.machine.NavigateElement(-1)
	case input.ActionNextPanel:
		c.machine.NavigatePanel(1)
	case input.ActionPrevPanel:
		c.machine.NavigatePanel(-1)
	case input.ActionActivate:
		c.machine.Activate()
	case input.ActionDismiss:
		c.machine.Dismiss()
	case input.ActionReadCurrent, input.ActionRepeat:
		c.machine.ReadCurrent()
	}
}

func (c *Controller) handleMap(action input.Action) {
	switch action {
	case input.ActionMapNorth:
		c.sayMap(c.mapNav.Move(0, -1))
	case input.ActionMapSouth:
		c.sayMap(c.mapNav.Move(0, 1))
	case input.ActionMapWest:
		c.sayMap(c.mapNav.Move(-1, 0))
	case input.ActionMapEast:
		c.sayMap(c.mapNav.Move(1, 0))
	case input.ActionReadTile, input.ActionRepeat:
		c.sayMap(c.mapNav.ReadTile())
	case input.ActionPosition:
		c.sayMap(c.mapNav.Position())
	case input.ActionMapMode:
		c.sayMap(c.toggleMapMode())
	}
}

func (c *Controller) toggleMapMode() string {
	if c.mapNav.Mode() == worldmap.ModeWorld {
		return c.mapNav.EnterMode(worldmap.ModeSettlement)
	}
	return c.mapNav.EnterMode(worldmap.ModeWorld)
}

func (c *Controller) sayMap(line string) {
	c.ann.Say(speech.CategoryMap, line)
}

// Tick runs once per frame. It drains one queued utterance and, at the
// poll interval, re-checks state the host does not reliably report:
// whether the tracked popup is still visible and whether a settlement
// scene came or went.
func (c *Controller) Tick() {
	c.ann.Flush()
	c.tick++
	if c.tick%c.pollTicks != 0 {
		return
	}
	c.machine.ValidatePopup()
	c.pollSettlement()
}

func (c *Controller) pollSettlement() {
	if c.ad.State == nil {
		return
	}
	active, ok := c.ad.State.SettlementActive()
	if !ok {
		return
	}
	if c.settleKnown && active != c.settlement {
		mode := worldmap.ModeWorld
		line := "World map."
		if active {
			mode = worldmap.ModeSettlement
			line = "Settlement loaded."
		}
		c.mapNav.EnterMode(mode)
		c.ann.Say(speech.CategoryAmbient, line)
	}
	c.settlement = active
	c.settleKnown = true
}

// domainSummary builds the extra line spoken when a recognized feature
// popup opens. Unrecognized popups get no extra line.
func (c *Controller) domainSummary(root hostapi.Node) string {
	switch {
	case c.ad.Trade != nil && c.ad.Trade.IsTradeRoutesPopup(root):
		used, limit, ok := c.ad.Trade.Routes()
		if !ok {
			return ""
		}
		return fmt.Sprintf("%d of %d routes used, %s fuel.",
			used, limit, trimFloat(c.ad.Trade.FuelAvailable()))
	case c.ad.Tutorials != nil && c.ad.Tutorials.IsTutorialPopup(root):
		entries := c.ad.Tutorials.Entries()
		done := 0
		for _, e := range entries {
			if e.Completed {
				done++
			}
		}
		return fmt.Sprintf("%d lessons, %d completed.", len(entries), done)
	case c.ad.Score != nil && c.ad.Score.IsScorePopup(root):
		return fmt.Sprintf("%d score rows.", len(c.ad.Score.Entries()))
	case c.ad.Capital != nil && c.ad.Capital.IsCapitalUpgradesPopup(root):
		buyable := 0
		for _, u := range c.ad.Capital.Upgrades() {
			if u.Status == adapters.StatusBuyable {
				buyable++
			}
		}
		return fmt.Sprintf("Capital level %d, %d upgrades available.",
			c.ad.Capital.Level(), buyable)
	case c.ad.Perks != nil && c.ad.Perks.IsPerkForgePopup(root):
		return fmt.Sprintf("%d charges, %d essence. %s.",
			c.ad.Perks.Charges(), c.ad.Perks.Essence(), capitalize(c.ad.Perks.Stage().String()))
	case c.ad.Wildcards != nil && c.ad.Wildcards.IsWildcardPopup(root):
		return fmt.Sprintf("%d picks left of %d blueprints.",
			c.ad.Wildcards.PicksLeft(), len(c.ad.Wildcards.Options()))
	default:
		return ""
	}
}

func trimFloat(f float64) string {
	if f == float64(int(f)) {
		return fmt.Sprint(int(f))
	}
	return fmt.Sprintf("%.1f", f)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
