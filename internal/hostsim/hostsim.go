package hostsim

// World owns every live service instance and implements hostapi.Services.
// Reload replaces all instances with fresh ones of the same shape, which
// is exactly what a scene transition does to the real host: cached member
// handles must keep working, cached instances must not exist.
type World struct {
	scenario Scenario
	services map[string]any
	reloads  int
}

func NewWorld(sc Scenario) *World {
	w := &World{scenario: sc}
	w.Reload()
	return w
}

// Service returns the live instance, nil when unknown; hostapi.Services.
func (w *World) Service(name string) any {
	if w == nil {
		return nil
	}
	return w.services[name]
}

// Reload rebuilds every service instance from the scenario.
func (w *World) Reload() {
	w.reloads++
	w.services = map[string]any{
		"WorldMapService":      w.scenario.buildWorldMap(),
		"SettlementMapService": w.scenario.buildSettlementMap(),
		"TradeService":         defaultTradeService(),
		"TutorialService":      defaultTutorialService(),
		"ScoreService":         defaultScoreService(),
		"CapitalService":       defaultCapitalService(),
		"PerkForgeService":     defaultPerkForgeService(),
		"WildcardService":      defaultWildcardService(),
		"WorldEventService":    defaultWorldEventService(),
		"GameStateService":     &GameStateService{SettlementActive: true},
	}
}

// Reloads reports how many scene transitions the sim has simulated.
func (w *World) Reloads() int {
	if w == nil {
		return 0
	}
	return w.reloads
}

func defaultTradeService() *TradeService {
	return &TradeService{
		RouteLimit:    2,
		Fuel:          40,
		MaxMultiplier: 3,
		Stock: map[string]int{
			"[Mat Processed] Planks": 30,
			"[Food Processed] Jerky": 12,
			"[Crafting] Coal":        8,
		},
		Towns: []*TradeTown{
			{
				Name:       "Windward Post",
				TravelTime: 12,
				Offers: []*TradeOffer{
					{Id: "ww-planks", Good: "[Mat Processed] Planks", Amount: 10, Fuel: 6, Price: 14},
					{Id: "ww-jerky", Good: "[Food Processed] Jerky", Amount: 8, Fuel: 4, Price: 9},
				},
			},
			{
				Name:       "Last Harbor",
				TravelTime: 20,
				Offers: []*TradeOffer{
					{Id: "lh-coal", Good: "[Crafting] Coal", Amount: 6, Fuel: 10, Price: 22},
					{Id: "lh-planks", Good: "[Mat Processed] Planks", Amount: 40, Fuel: 8, Price: 48},
				},
			},
		},
	}
}

func defaultTutorialService() *TutorialService {
	return &TutorialService{Entries: []*TutorialEntry{
		{Title: "Hearth", Body: "Keep the fire burning to hold the storm at bay.", Completed: true},
		{Title: "Gathering", Body: "Place camps next to resource nodes to gather goods.", Completed: false},
		{Title: "Trade Routes", Body: "Send caravans to nearby towns to exchange goods.", Completed: false},
	}}
}

func defaultScoreService() *ScoreService {
	return &ScoreService{Rows: []*ScoreRow{
		{Label: "Settlements won", Value: 3, Category: "Progress"},
		{Label: "Villagers housed", Value: 41, Category: "Population"},
		{Label: "Storms survived", Value: 7, Category: "Progress"},
	}}
}

func defaultCapitalService() *CapitalService {
	return &CapitalService{
		Level:    4,
		Treasury: map[string]int{"[Valuable] Amber": 60, "[Mat Processed] Planks": 25},
		Upgrades: []*CapitalUpgrade{
			{Name: "Warehouse", RequiredLevel: 1, Cost: map[string]int{"[Valuable] Amber": 10}, Unlocked: true},
			{Name: "Brewery", RequiredLevel: 2, Cost: map[string]int{"[Valuable] Amber": 30}},
			{Name: "Forge", RequiredLevel: 3, Cost: map[string]int{"[Valuable] Amber": 90}},
			{Name: "Observatory", RequiredLevel: 6, Cost: map[string]int{"[Valuable] Amber": 20}},
			{Name: "Grand Hall", RequiredLevel: 3, Cost: map[string]int{"[Valuable] Amber": 200}, Prerequisite: "Observatory"},
		},
	}
}

func defaultPerkForgeService() *PerkForgeService {
	return &PerkForgeService{
		ChargesLeft: 2,
		Essence:     25,
		Hooks: []*PerkHook{
			{Name: "After each storm", Description: "Triggers when the storm season ends."},
			{Name: "On trader arrival", Description: "Triggers when a trader reaches the settlement."},
		},
		Positives: []*PerkEffect{
			{Name: "Gain 5 Amber", Description: "Adds amber to the treasury.", Cost: 10},
			{Name: "Speed up gathering", Description: "Gatherers work faster for one season.", Cost: 20},
		},
		Negatives: []*PerkEffect{
			{Name: "Lose 2 Villagers' hope", Description: "Hope drops when it triggers.", Cost: -8},
		},
	}
}

func defaultWildcardService() *WildcardService {
	return &WildcardService{
		PicksLeft: 1,
		Options: []*WildcardPick{
			{Name: "Smithy", Description: "Produces tools from copper bars."},
			{Name: "Apothecary", Description: "Produces tonics from herbs."},
			{Name: "Tinkerer", Description: "Produces parts from planks."},
		},
	}
}

func defaultWorldEventService() *WorldEventService {
	return &WorldEventService{Active: []*WorldEvent{
		{Name: "Blightstorm", Description: "A corrupting storm front.", TurnsLeft: 2},
	}}
}
