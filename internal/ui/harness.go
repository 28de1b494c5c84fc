package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/appengine-ltd/storm-access/internal/console"
	"github.com/appengine-ltd/storm-access/internal/controller"
	"github.com/appengine-ltd/storm-access/internal/hostapi"
	"github.com/appengine-ltd/storm-access/internal/hostsim"
)

// Harness owns the simulated host fixtures and exposes console commands
// that stand in for the host events a terminal cannot raise: popups
// opening and closing, scene reloads, tab clicks.
type Harness struct {
	ctrl  *controller.Controller
	world *hostsim.World
	ad    controller.Adapters

	popup   hostapi.Node
	menu    hostapi.Node
	rewards *hostsim.TabbedPopup
}

func NewHarness(ctrl *controller.Controller, world *hostsim.World, ad controller.Adapters) *Harness {
	return &Harness{ctrl: ctrl, world: world, ad: ad}
}

// RegisterCommands wires every harness verb into the console.
func (h *Harness) RegisterCommands(c *console.Console) {
	c.Register(console.Command{
		Name: "help", Help: "list commands",
		Run: func([]string) string { return c.Help() },
	})
	c.Register(console.Command{
		Name: "open", Aliases: []string{"show"},
		Help: "open a fixture: open settings|rewards|trade",
		Run:  h.open,
	})
	c.Register(console.Command{
		Name: "close", Aliases: []string{"hide"},
		Help: "fire the hidden hook for the open fixture",
		Run:  func([]string) string { return h.close() },
	})
	c.Register(console.Command{
		Name: "trade", Help: "list trade offers: trade [multiplier]",
		Run:  h.trade,
	})
	c.Register(console.Command{
		Name: "accept", Help: "accept an offer: accept <town> <offer> [multiplier]",
		Run:  h.accept,
	})
	c.Register(console.Command{
		Name: "tutorials", Aliases: []string{"lessons"},
		Help: "list tutorial entries",
		Run:  h.tutorials,
	})
	c.Register(console.Command{
		Name: "score", Help: "list score rows",
		Run:  h.score,
	})
	c.Register(console.Command{
		Name: "upgrades", Help: "list capital upgrades",
		Run:  h.upgrades,
	})
	c.Register(console.Command{
		Name: "buy", Help: "buy an upgrade: buy <name>",
		Run:  h.buy,
	})
	c.Register(console.Command{
		Name: "perks", Help: "show the forge state",
		Run:  h.perks,
	})
	c.Register(console.Command{
		Name: "wildcards", Help: "list wildcard blueprints",
		Run:  h.wildcards,
	})
	c.Register(console.Command{
		Name: "events", Help: "list active world events",
		Run:  h.events,
	})
	c.Register(console.Command{
		Name: "reload", Help: "simulate a scene transition",
		Run: func([]string) string {
			h.world.Reload()
			return fmt.Sprintf("Scene reloaded (%d so far). Handles stay, instances did not.", h.world.Reloads())
		},
	})
}

func (h *Harness) open(args []string) string {
	if len(args) == 0 {
		return "open what? settings, rewards or trade"
	}
	h.close()
	switch args[0] {
	case "settings":
		h.menu = hostsim.BuildSettingsMenu()
		h.ctrl.MenuShown(h.menu)
		return "Settings menu shown."
	case "rewards":
		h.rewards = hostsim.BuildRewardPopup()
		h.popup = h.rewards.Root
		h.ctrl.PopupShown(h.popup)
		return "Reward popup shown."
	case "trade":
		h.popup = hostsim.BuildTradePopup()
		h.ctrl.PopupShown(h.popup)
		return "Trade popup shown."
	default:
		return fmt.Sprintf("no fixture named %q", args[0])
	}
}

func (h *Harness) close() string {
	closed := false
	if h.popup != nil {
		h.ctrl.PopupHidden(h.popup)
		h.popup, h.rewards = nil, nil
		closed = true
	}
	if h.menu != nil {
		h.ctrl.MenuHidden(h.menu)
		h.menu = nil
		closed = true
	}
	if !closed {
		return "Nothing is open."
	}
	return "Closed."
}

func (h *Harness) trade(args []string) string {
	mult := 1
	if len(args) > 0 {
		if n, err := strconv.Atoi(args[0]); err == nil {
			mult = n
		}
	}
	towns := h.ad.Trade.Towns(mult)
	if len(towns) == 0 {
		return "Trade is unavailable."
	}
	var b strings.Builder
	for i, town := range towns {
		fmt.Fprintf(&b, "%d. %s\n", i+1, h.ad.Trade.FormatTown(town))
		for j, offer := range town.Offers {
			fmt.Fprintf(&b, "   %d. %s\n", j+1, h.ad.Trade.FormatOffer(offer))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (h *Harness) accept(args []string) string {
	if len(args) < 2 {
		return "accept <town> <offer> [multiplier]"
	}
	town, err1 := strconv.Atoi(args[0])
	offer, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil {
		return "accept <town> <offer> [multiplier]"
	}
	mult := 1
	if len(args) > 2 {
		if n, err := strconv.Atoi(args[2]); err == nil {
			mult = n
		}
	}
	towns := h.ad.Trade.Towns(mult)
	if town < 1 || town > len(towns) || offer < 1 || offer > len(towns[town-1].Offers) {
		return "No such offer."
	}
	ok, reason := h.ad.Trade.Accept(towns[town-1].Offers[offer-1])
	if !ok {
		return "Cannot accept: " + reason
	}
	return "Caravan sent."
}

func (h *Harness) tutorials([]string) string {
	entries := h.ad.Tutorials.Entries()
	if len(entries) == 0 {
		return "Tutorials are unavailable."
	}
	var lines []string
	for _, e := range entries {
		lines = append(lines, h.ad.Tutorials.FormatEntry(e))
	}
	return strings.Join(lines, "\n")
}

func (h *Harness) score([]string) string {
	entries := h.ad.Score.Entries()
	if len(entries) == 0 {
		return "Scores are unavailable."
	}
	var lines []string
	for _, e := range entries {
		lines = append(lines, h.ad.Score.FormatEntry(e))
	}
	return strings.Join(lines, "\n")
}

func (h *Harness) upgrades([]string) string {
	ups := h.ad.Capital.Upgrades()
	if len(ups) == 0 {
		return "Upgrades are unavailable."
	}
	var lines []string
	for _, u := range ups {
		lines = append(lines, h.ad.Capital.FormatUpgrade(u))
	}
	return strings.Join(lines, "\n")
}

func (h *Harness) buy(args []string) string {
	if len(args) == 0 {
		return "buy <name>"
	}
	want := strings.ToLower(strings.Join(args, " "))
	for _, u := range h.ad.Capital.Upgrades() {
		if strings.ToLower(u.Name) != want {
			continue
		}
		ok, reason := h.ad.Capital.Buy(u)
		if !ok {
			return "Cannot buy: " + reason
		}
		return u.Name + " unlocked."
	}
	return "No such upgrade."
}

func (h *Harness) perks([]string) string {
	var lines []string
	lines = append(lines, fmt.Sprintf("Charges %d, essence %d, stage: %s.",
		h.ad.Perks.Charges(), h.ad.Perks.Essence(), h.ad.Perks.Stage()))
	for _, p := range h.ad.Perks.Crafted() {
		lines = append(lines, h.ad.Perks.FormatCrafted(p))
	}
	return strings.Join(lines, "\n")
}

func (h *Harness) wildcards([]string) string {
	opts := h.ad.Wildcards.Options()
	if len(opts) == 0 {
		return "Wildcards are unavailable."
	}
	var lines []string
	lines = append(lines, fmt.Sprintf("%d picks left.", h.ad.Wildcards.PicksLeft()))
	for _, o := range opts {
		lines = append(lines, o.Name+": "+o.Description)
	}
	return strings.Join(lines, "\n")
}

func (h *Harness) events([]string) string {
	evs := h.ad.Events.Active()
	if len(evs) == 0 {
		return "No active events."
	}
	var lines []string
	for _, e := range evs {
		lines = append(lines, h.ad.Events.FormatEvent(e))
	}
	return strings.Join(lines, "\n")
}
