package hostsim

// Domain service shapes. The engine reaches these only through the
// reflection layer; instances are replaced wholesale on Reload the way a
// scene transition replaces them in the game.

type TradeService struct {
	Towns         []*TradeTown
	RouteLimit    int
	RoutesUsed    int
	Fuel          float64
	Stock         map[string]int
	MaxMultiplier int
}

type TradeTown struct {
	Name       string
	TravelTime float64
	Offers     []*TradeOffer
}

type TradeOffer struct {
	Id       string
	Good     string
	Amount   int
	Fuel     float64
	Price    int
	Accpeted bool // sic: this field is misspelled in the host assembly
}

// Accept marks an offer accepted at the given multiplier and consumes
// goods, fuel and a route slot. It mirrors the host mutator: it does not
// re-validate, callers are expected to have checked affordability.
func (s *TradeService) Accept(id string, times int) bool {
	if times < 1 {
		times = 1
	}
	for _, town := range s.Towns {
		for _, offer := range town.Offers {
			if offer.Id != id || offer.Accpeted {
				continue
			}
			offer.Accpeted = true
			s.RoutesUsed++
			s.Fuel -= offer.Fuel * float64(times)
			if s.Stock != nil {
				s.Stock[offer.Good] -= offer.Amount * times
			}
			return true
		}
	}
	return false
}

type TutorialService struct {
	Entries []*TutorialEntry
}

type TutorialEntry struct {
	Title     string
	Body      string
	Completed bool
}

type ScoreService struct {
	Rows []*ScoreRow
}

type ScoreRow struct {
	Label    string
	Value    int
	Category string
}

type CapitalService struct {
	Level    int
	Treasury map[string]int
	Upgrades []*CapitalUpgrade
}

type CapitalUpgrade struct {
	Name          string
	RequiredLevel int
	Cost          map[string]int
	Unlocked      bool
	Prerequisite  string // name of another upgrade, "" when none
}

// Buy unlocks an upgrade and deducts its cost. Like the host, it trusts
// the caller's precondition checks.
func (s *CapitalService) Buy(name string) bool {
	for _, u := range s.Upgrades {
		if u.Name != name || u.Unlocked {
			continue
		}
		u.Unlocked = true
		for good, amount := range u.Cost {
			s.Treasury[good] -= amount
		}
		return true
	}
	return false
}

type PerkForgeService struct {
	Hooks       []*PerkHook
	Positives   []*PerkEffect
	Negatives   []*PerkEffect
	ChargesLeft int
	Essence     int
	Crafted     []*CraftedPerk
}

type PerkHook struct {
	Name        string
	Description string
}

type PerkEffect struct {
	Name        string
	Description string
	Cost        int
}

type CraftedPerk struct {
	Name     string
	Hook     string
	Positive string
	Negative string
}

// Craft consumes a charge and essence and records the perk.
func (s *PerkForgeService) Craft(hook, positive, negative, name string, cost int) bool {
	if s.ChargesLeft <= 0 || s.Essence < cost {
		return false
	}
	s.ChargesLeft--
	s.Essence -= cost
	s.Crafted = append(s.Crafted, &CraftedPerk{
		Name:     name,
		Hook:     hook,
		Positive: positive,
		Negative: negative,
	})
	return true
}

type WildcardService struct {
	Options   []*WildcardPick
	PicksLeft int
}

type WildcardPick struct {
	Name        string
	Description string
}

// Pick consumes one pick and removes the option.
func (s *WildcardService) Pick(name string) bool {
	if s.PicksLeft <= 0 {
		return false
	}
	for i, opt := range s.Options {
		if opt.Name == name {
			s.Options = append(s.Options[:i], s.Options[i+1:]...)
			s.PicksLeft--
			return true
		}
	}
	return false
}

type WorldEventService struct {
	Active []*WorldEvent
}

type WorldEvent struct {
	Name        string
	Description string
	TurnsLeft   int
}

type GameStateService struct {
	SettlementActive bool
}
