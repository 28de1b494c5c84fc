package ui

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/appengine-ltd/storm-access/internal/adapters"
	"github.com/appengine-ltd/storm-access/internal/console"
	"github.com/appengine-ltd/storm-access/internal/controller"
	"github.com/appengine-ltd/storm-access/internal/discovery"
	"github.com/appengine-ltd/storm-access/internal/hostsim"
	"github.com/appengine-ltd/storm-access/internal/input"
	"github.com/appengine-ltd/storm-access/internal/nav"
	"github.com/appengine-ltd/storm-access/internal/reflectcache"
	"github.com/appengine-ltd/storm-access/internal/speech"
	"github.com/appengine-ltd/storm-access/internal/worldmap"
)

func testHarness(t *testing.T) (*Harness, *console.Console, *nav.Machine) {
	t.Helper()
	log := slog.Default()
	asm := reflectcache.NewAssembly(log)
	hostsim.RegisterTypes(asm)
	cache := reflectcache.NewCache(asm, log)
	acc := reflectcache.NewAccessor(log)
	world := hostsim.NewWorld(hostsim.DefaultScenario())

	hints := discovery.DefaultHints()
	disc := discovery.New(cache, acc, hints, log)
	ann := speech.NewAnnouncer(speech.NewTranscript(0), speech.Options{}, log)
	machine := nav.NewMachine(disc, cache, acc, ann, hints, log)
	mapNav := worldmap.NewNavigator(world, cache, acc, log)

	ad := controller.Adapters{
		Trade:     adapters.NewTrade(world, cache, acc, log),
		Tutorials: adapters.NewTutorials(world, cache, acc, log),
		Score:     adapters.NewScore(world, cache, acc, log),
		Capital:   adapters.NewCapital(world, cache, acc, log),
		Perks:     adapters.NewPerks(world, cache, acc, log),
		Wildcards: adapters.NewWildcards(world, cache, acc, log),
		Events:    adapters.NewEvents(world, cache, acc, log),
		State:     adapters.NewState(world, cache, acc, log),
	}
	ctrl := controller.New(machine, mapNav, ann, input.DefaultKeymap(), ad, 30, log)
	h := NewHarness(ctrl, world, ad)
	c := console.New()
	h.RegisterCommands(c)
	return h, c, machine
}

func TestOpenAndCloseDriveTheHooks(t *testing.T) {
	_, c, machine := testHarness(t)

	if got := c.Execute("open trade"); got != "Trade popup shown." {
		t.Fatalf("open trade: %q", got)
	}
	if !machine.Active() {
		t.Fatalf("popup hook should open a session")
	}
	if got := c.Execute("close"); got != "Closed." {
		t.Fatalf("close: %q", got)
	}
	if machine.Active() {
		t.Fatalf("hidden hook should close the session")
	}
	if got := c.Execute("close"); got != "Nothing is open." {
		t.Fatalf("double close: %q", got)
	}
}

func TestOpeningAFixtureReplacesTheLastOne(t *testing.T) {
	h, c, machine := testHarness(t)

	c.Execute("open settings")
	first := h.menu
	c.Execute("open rewards")
	if h.menu != nil {
		t.Fatalf("settings should be hidden before rewards opens")
	}
	if h.popup == nil || h.popup == first {
		t.Fatalf("rewards should be tracked as the open popup")
	}
	if !machine.Active() {
		t.Fatalf("session should follow the newest fixture")
	}
}

func TestTradeListingAndAccept(t *testing.T) {
	_, c, _ := testHarness(t)

	listing := c.Execute("trade")
	if !strings.Contains(listing, "Windward Post, 12 days travel, 2 offers") {
		t.Fatalf("trade listing: %q", listing)
	}
	if !strings.Contains(listing, "not enough goods") {
		t.Fatalf("blocked offer missing from listing: %q", listing)
	}

	if got := c.Execute("accept 1 1 2"); got != "Caravan sent." {
		t.Fatalf("accept: %q", got)
	}
	if got := c.Execute("accept 1 1"); got != "Cannot accept: already accepted" {
		t.Fatalf("re-accept: %q", got)
	}
	if got := c.Execute("accept 9 9"); got != "No such offer." {
		t.Fatalf("bad index: %q", got)
	}
}

func TestBuyAndReloadRoundTrip(t *testing.T) {
	h, c, _ := testHarness(t)

	if got := c.Execute("buy brewery"); got != "Brewery unlocked." {
		t.Fatalf("buy: %q", got)
	}
	if got := c.Execute("buy observatory"); !strings.Contains(got, "requires capital level 6") {
		t.Fatalf("level gate: %q", got)
	}

	// A reload replaces every service instance; listings keep working
	// against the fresh ones.
	c.Execute("reload")
	if h.world.Reloads() < 2 {
		t.Fatalf("reload should bump the transition count")
	}
	if got := c.Execute("upgrades"); !strings.Contains(got, "Brewery, available") {
		t.Fatalf("fresh instances should reset state: %q", got)
	}
}

func TestListings(t *testing.T) {
	_, c, _ := testHarness(t)

	if got := c.Execute("tutorials"); !strings.Contains(got, "Hearth, completed") {
		t.Fatalf("tutorials: %q", got)
	}
	if got := c.Execute("score"); !strings.Contains(got, "Villagers housed, 41") {
		t.Fatalf("score: %q", got)
	}
	if got := c.Execute("perks"); !strings.Contains(got, "Charges 2, essence 25") {
		t.Fatalf("perks: %q", got)
	}
	if got := c.Execute("wildcards"); !strings.Contains(got, "1 picks left.") {
		t.Fatalf("wildcards: %q", got)
	}
	if got := c.Execute("events"); !strings.Contains(got, "Blightstorm") {
		t.Fatalf("events: %q", got)
	}
}
