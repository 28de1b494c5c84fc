package worldmap

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/appengine-ltd/storm-access/internal/hostsim"
	"github.com/appengine-ltd/storm-access/internal/reflectcache"
)

func testNavigator(t *testing.T) (*Navigator, *hostsim.World) {
	t.Helper()
	asm := reflectcache.NewAssembly(slog.Default())
	hostsim.RegisterTypes(asm)
	cache := reflectcache.NewCache(asm, slog.Default())
	acc := reflectcache.NewAccessor(slog.Default())
	world := hostsim.NewWorld(hostsim.DefaultScenario())
	return NewNavigator(world, cache, acc, slog.Default()), world
}

func TestChargesFormatting(t *testing.T) {
	if got := FormatCharges(3, 5); got != "3 of 5 charges" {
		t.Fatalf("FormatCharges(3,5) = %q", got)
	}
	if got := FormatCharges(0, 0); got != "" {
		t.Fatalf("FormatCharges(0,0) must be omitted entirely, got %q", got)
	}
	if got := FormatCharges(2, -1); got != "" {
		t.Fatalf("negative maximum must be omitted, got %q", got)
	}
}

func TestPercentRounding(t *testing.T) {
	if got := FormatPercent(0.25); got != "25 percent" {
		t.Fatalf("FormatPercent(0.25) = %q", got)
	}
	if got := FormatPercent(0.046); got != "5 percent" {
		t.Fatalf("FormatPercent(0.046) = %q", got)
	}
}

func TestEmptyTileReadsAsEmptyRegardlessOfHistory(t *testing.T) {
	nav, _ := testNavigator(t)
	nav.EnterMode(ModeWorld)
	if got := nav.ReadTile(); got != "Empty tile." {
		t.Fatalf("empty origin tile: %q", got)
	}
	nav.Move(1, 0)
	nav.Move(0, 1)
	nav.Move(-1, 0)
	nav.Move(0, -1)
	if got := nav.ReadTile(); got != "Empty tile." {
		t.Fatalf("empty tile after wandering: %q", got)
	}
}

func TestOutOfBoundsMovesNeverMoveTheCursor(t *testing.T) {
	nav, _ := testNavigator(t)
	nav.EnterMode(ModeWorld)
	before := nav.Position()
	for i := 0; i < 5; i++ {
		if got := nav.Move(-1, 0); got != "Edge of the map." {
			t.Fatalf("expected edge rejection, got %q", got)
		}
		if got := nav.Move(0, -1); got != "Edge of the map." {
			t.Fatalf("expected edge rejection, got %q", got)
		}
	}
	if nav.Position() != before {
		t.Fatalf("cursor moved from %q to %q on rejected moves", before, nav.Position())
	}
}

func TestResourceNodeNarration(t *testing.T) {
	nav, _ := testNavigator(t)
	nav.EnterMode(ModeWorld)
	// Ancient Grove sits at (4, 3) in the default scenario.
	for i := 0; i < 4; i++ {
		nav.Move(1, 0)
	}
	for i := 0; i < 3; i++ {
		nav.Move(0, 1)
	}
	got := nav.ReadTile()
	for _, want := range []string{
		"Ancient Grove",
		"12 of 12 charges",
		"Produces Wood",
		"Berries 25 percent",
		"Sea Marrow 5 percent",
		"Harvested by Woodcutters' Camp",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("resource narration missing %q: %q", want, got)
		}
	}
}

func TestDepositNarrationAndExhaustedCharges(t *testing.T) {
	nav, _ := testNavigator(t)
	nav.EnterMode(ModeSettlement)

	// Clay Pit at hex (-2, 1) has a 0/0 charge tuple; no charges clause.
	nav.Move(-1, 0)
	nav.Move(-1, 0)
	nav.Move(0, -1) // southeast: r+1
	got := nav.ReadTile()
	if !strings.Contains(got, "Clay Pit") {
		t.Fatalf("expected Clay Pit under cursor, got %q", got)
	}
	if strings.Contains(got, "0 of 0") {
		t.Fatalf("exhausted deposit must omit the charges clause: %q", got)
	}
	if !strings.Contains(got, "Yields Bricks") {
		t.Fatalf("deposit product missing: %q", got)
	}
}

func TestZeroChanceAndUnnamedSecondariesAreOmitted(t *testing.T) {
	nav, _ := testNavigator(t)
	nav.EnterMode(ModeSettlement)
	// Lush Grove at hex (2, -1): east, east, northwest lands on (2,-1).
	nav.Move(1, 0)
	nav.Move(1, 0)
	nav.Move(0, 1)
	got := nav.ReadTile()
	if !strings.Contains(got, "Lush Grove") {
		t.Fatalf("expected Lush Grove, got %q", got)
	}
	if !strings.Contains(got, "Eggs 50 percent") {
		t.Fatalf("expected the weighted secondary product: %q", got)
	}
	if strings.Contains(got, "Meat") {
		t.Fatalf("zero-probability secondary must be omitted: %q", got)
	}
}

func TestBuildingSubtypeClassifiedByName(t *testing.T) {
	nav, _ := testNavigator(t)
	nav.EnterMode(ModeSettlement)
	got := nav.ReadTile() // hearth at origin
	if !strings.Contains(got, "Ancient Hearth") {
		t.Fatalf("expected hearth name, got %q", got)
	}
	if !strings.Contains(got, "Keep it burning") {
		t.Fatalf("building description missing: %q", got)
	}
}

func TestServicesRebuiltOnReloadStayReadable(t *testing.T) {
	nav, world := testNavigator(t)
	nav.EnterMode(ModeWorld)
	first := nav.ReadTile()
	world.Reload()
	if got := nav.ReadTile(); got != first {
		t.Fatalf("narration changed across scene reload: %q vs %q", first, got)
	}
}
