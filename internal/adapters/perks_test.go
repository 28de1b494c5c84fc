package adapters

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/appengine-ltd/storm-access/internal/hostsim"
)

func perkService(t *testing.T, world *hostsim.World) *hostsim.PerkForgeService {
	t.Helper()
	svc, ok := world.Service("PerkForgeService").(*hostsim.PerkForgeService)
	require.True(t, ok)
	return svc
}

func TestCraftFlowHappyPath(t *testing.T) {
	world, cache, acc := testWorld(t)
	a := NewPerks(world, cache, acc, nil)

	require.Equal(t, StageHook, a.Stage())
	require.Equal(t, 2, a.Charges())
	require.Equal(t, 25, a.Essence())

	hooks := a.Hooks()
	require.Len(t, hooks, 2)
	require.True(t, a.SelectHook(hooks[0]))
	require.Equal(t, StagePositive, a.Stage())

	positives := a.Positives()
	require.Len(t, positives, 2)
	require.True(t, a.SelectPositive(positives[0]))
	require.Equal(t, StageNegative, a.Stage())

	negatives := a.Negatives()
	require.Len(t, negatives, 1)
	require.True(t, a.SelectNegative(negatives[0]))
	require.Equal(t, StageName, a.Stage())

	// Positive costs 10, the drawback refunds 8.
	require.Equal(t, 2, a.Cost())
	require.True(t, a.SetName("Stormward"))

	ok, reason := a.Craft()
	require.True(t, ok, reason)
	require.Equal(t, 1, a.Charges())
	require.Equal(t, 23, a.Essence())
	require.Equal(t, StageHook, a.Stage())

	crafted := a.Crafted()
	require.Len(t, crafted, 1)
	require.Equal(t, "Stormward, After each storm, Gain 5 Amber, but Lose 2 Villagers' hope",
		a.FormatCrafted(crafted[0]))
}

func TestCraftFlowRejectsOutOfOrderSteps(t *testing.T) {
	world, cache, acc := testWorld(t)
	a := NewPerks(world, cache, acc, nil)

	require.False(t, a.SelectPositive(EffectOption{Name: "early"}))
	require.False(t, a.SkipNegative())
	require.False(t, a.SetName("early"))

	ok, reason := a.Craft()
	require.False(t, ok)
	require.Equal(t, "the perk is not finished", reason)
}

func TestCraftBlockedByEssence(t *testing.T) {
	world, cache, acc := testWorld(t)
	a := NewPerks(world, cache, acc, nil)
	perkService(t, world).Essence = 5

	require.True(t, a.SelectHook(a.Hooks()[1]))
	require.True(t, a.SelectPositive(a.Positives()[1])) // costs 20
	require.True(t, a.SkipNegative())
	require.Equal(t, 20, a.Cost())
	require.True(t, a.SetName("Swift Hands"))

	ok, reason := a.Craft()
	require.False(t, ok)
	require.Equal(t, "not enough essence", reason)
	require.Equal(t, 2, a.Charges())
	require.Empty(t, a.Crafted())
}

func TestForgeFinishesWhenChargesRunOut(t *testing.T) {
	world, cache, acc := testWorld(t)
	a := NewPerks(world, cache, acc, nil)
	svc := perkService(t, world)
	svc.ChargesLeft = 0
	svc.Crafted = []*hostsim.CraftedPerk{
		{Name: "Old Flame", Hook: "After each storm", Positive: "Gain 5 Amber"},
	}

	require.Equal(t, StageDone, a.Stage())
	require.False(t, a.SelectHook(HookOption{Name: "late"}))

	ok, reason := a.Craft()
	require.False(t, ok)
	require.Equal(t, "no charges left", reason)

	crafted := a.Crafted()
	require.Len(t, crafted, 1)
	require.Equal(t, "Old Flame, After each storm, Gain 5 Amber",
		a.FormatCrafted(crafted[0]))
}
