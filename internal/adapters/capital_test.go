package adapters

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/appengine-ltd/storm-access/internal/hostsim"
)

func TestUpgradeStatusCoversAllFiveStates(t *testing.T) {
	world, cache, acc := testWorld(t)
	a := NewCapital(world, cache, acc, nil)

	byName := map[string]UpgradeInfo{}
	for _, u := range a.Upgrades() {
		byName[u.Name] = u
	}
	require.Len(t, byName, 5)
	require.Equal(t, StatusUnlocked, byName["Warehouse"].Status)
	require.Equal(t, StatusBuyable, byName["Brewery"].Status)
	require.Equal(t, StatusTooExpensive, byName["Forge"].Status)
	require.Equal(t, StatusLevelRequired, byName["Observatory"].Status)
	require.Equal(t, StatusLocked, byName["Grand Hall"].Status)
}

func TestStatusPrecedenceUnlockedBeatsEverything(t *testing.T) {
	world, cache, acc := testWorld(t)
	a := NewCapital(world, cache, acc, nil)
	svc, ok := world.Service("CapitalService").(*hostsim.CapitalService)
	require.True(t, ok)

	// Unlock the level-gated upgrade directly: even though the level is
	// still too low, the status must report unlocked.
	svc.Upgrades[3].Unlocked = true
	for _, u := range a.Upgrades() {
		if u.Name == "Observatory" {
			require.Equal(t, StatusUnlocked, u.Status)
		}
		// Its dependent is now gated by cost alone.
		if u.Name == "Grand Hall" {
			require.Equal(t, StatusTooExpensive, u.Status)
		}
	}
}

func TestBuySucceedsOnlyFromBuyable(t *testing.T) {
	world, cache, acc := testWorld(t)
	a := NewCapital(world, cache, acc, nil)
	svc, ok := world.Service("CapitalService").(*hostsim.CapitalService)
	require.True(t, ok)

	find := func(name string) UpgradeInfo {
		for _, u := range a.Upgrades() {
			if u.Name == name {
				return u
			}
		}
		t.Fatalf("upgrade %q not found", name)
		return UpgradeInfo{}
	}

	ok2, reason := a.Buy(find("Brewery"))
	require.True(t, ok2, reason)
	require.Equal(t, 30, svc.Treasury["[Valuable] Amber"])
	require.Equal(t, StatusUnlocked, find("Brewery").Status)

	_, reason = a.Buy(find("Brewery"))
	require.Equal(t, "already unlocked", reason)

	_, reason = a.Buy(find("Forge"))
	require.Equal(t, "not enough goods", reason)

	_, reason = a.Buy(find("Observatory"))
	require.Equal(t, "requires capital level 6", reason)

	_, reason = a.Buy(find("Grand Hall"))
	require.Equal(t, "requires Observatory first", reason)
}

func TestUpgradeSpeechFormatting(t *testing.T) {
	world, cache, acc := testWorld(t)
	a := NewCapital(world, cache, acc, nil)

	var forge, observatory UpgradeInfo
	for _, u := range a.Upgrades() {
		switch u.Name {
		case "Forge":
			forge = u
		case "Observatory":
			observatory = u
		}
	}
	require.Equal(t, "Forge, too expensive, costs 90 Amber", a.FormatUpgrade(forge))
	require.Equal(t, "Observatory, level required, costs 20 Amber, needs level 6",
		a.FormatUpgrade(observatory))
}
