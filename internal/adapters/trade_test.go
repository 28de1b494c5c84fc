package adapters

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/appengine-ltd/storm-access/internal/hostsim"
)

func tradeService(t *testing.T, world *hostsim.World) *hostsim.TradeService {
	t.Helper()
	svc, ok := world.Service("TradeService").(*hostsim.TradeService)
	require.True(t, ok)
	return svc
}

func TestTownsScaleWithTheMultiplier(t *testing.T) {
	world, cache, acc := testWorld(t)
	a := NewTrade(world, cache, acc, nil)

	require.Equal(t, 3, a.MaxMultiplier())

	towns := a.Towns(1)
	require.Len(t, towns, 2)
	require.Equal(t, "Windward Post", towns[0].Name)
	require.Equal(t, 12.0, towns[0].TravelTime)

	planks := towns[0].Offers[0]
	require.Equal(t, 10, planks.Amount)
	require.Equal(t, 14, planks.Price)
	require.Equal(t, 6.0, planks.Fuel)
	require.Equal(t, BlockNone, planks.Blocked)

	scaled := a.Towns(3)
	planks = scaled[0].Offers[0]
	require.Equal(t, 30, planks.Amount)
	require.Equal(t, 42, planks.Price)
	require.Equal(t, 18.0, planks.Fuel)
	require.Equal(t, 36.0, scaled[0].TravelTime)
	require.Equal(t, BlockNone, planks.Blocked)

	// Stock holds 12 jerky; three times the offer needs 24.
	require.Equal(t, BlockGoods, scaled[0].Offers[1].Blocked)

	// Out-of-range multipliers clamp instead of failing.
	require.Equal(t, 30, a.Towns(9)[0].Offers[0].Amount)
	require.Equal(t, 10, a.Towns(0)[0].Offers[0].Amount)
}

func TestBlockReasonPrecedence(t *testing.T) {
	world, cache, acc := testWorld(t)
	a := NewTrade(world, cache, acc, nil)
	svc := tradeService(t, world)

	// The big plank offer exceeds stock at any multiplier.
	require.Equal(t, BlockGoods, a.Towns(1)[1].Offers[1].Blocked)

	// Route limit outranks goods and fuel.
	svc.RoutesUsed = svc.RouteLimit
	require.Equal(t, BlockRouteLimit, a.Towns(1)[1].Offers[1].Blocked)

	// An accepted offer outranks everything, even with goods and fuel to
	// spare.
	svc.RoutesUsed = 0
	svc.Towns[0].Offers[0].Accpeted = true
	offer := a.Towns(1)[0].Offers[0]
	require.True(t, offer.Accepted)
	require.Equal(t, BlockAccepted, offer.Blocked)
	require.Equal(t, "already accepted", offer.Blocked.String())
}

func TestFuelBlockWhenThePoolRunsLow(t *testing.T) {
	world, cache, acc := testWorld(t)
	a := NewTrade(world, cache, acc, nil)
	tradeService(t, world).Fuel = 5

	coal := a.Towns(1)[1].Offers[0]
	require.Equal(t, BlockFuel, coal.Blocked)
	require.Equal(t, "not enough fuel", coal.Blocked.String())
}

func TestAcceptConsumesRouteFuelAndStock(t *testing.T) {
	world, cache, acc := testWorld(t)
	a := NewTrade(world, cache, acc, nil)
	svc := tradeService(t, world)

	planks := a.Towns(2)[0].Offers[0]
	ok, reason := a.Accept(planks)
	require.True(t, ok, reason)
	require.Equal(t, 1, svc.RoutesUsed)
	require.Equal(t, 28.0, svc.Fuel)
	require.Equal(t, 10, svc.Stock["[Mat Processed] Planks"])

	// The same offer is now blocked at the accept boundary too.
	ok, reason = a.Accept(a.Towns(2)[0].Offers[0])
	require.False(t, ok)
	require.Equal(t, "already accepted", reason)

	ok, reason = a.Accept(a.Towns(1)[0].Offers[1])
	require.True(t, ok, reason)

	ok, reason = a.Accept(a.Towns(1)[1].Offers[0])
	require.False(t, ok)
	require.Equal(t, "no trade routes left", reason)
}

func TestOfferSpeechFormatting(t *testing.T) {
	world, cache, acc := testWorld(t)
	a := NewTrade(world, cache, acc, nil)

	towns := a.Towns(1)
	require.Equal(t, "Windward Post, 12 days travel, 2 offers", a.FormatTown(towns[0]))
	require.Equal(t, "Planks, 10 for 14 amber, 6 fuel", a.FormatOffer(towns[0].Offers[0]))
	require.Equal(t, "Planks, 40 for 48 amber, 8 fuel, not enough goods",
		a.FormatOffer(towns[1].Offers[1]))
}

func TestAcceptedFlagReadsThroughTheMisspelledField(t *testing.T) {
	world, cache, acc := testWorld(t)
	a := NewTrade(world, cache, acc, nil)

	tradeService(t, world).Towns[1].Offers[0].Accpeted = true
	require.True(t, a.Towns(1)[1].Offers[0].Accepted)
}
