package adapters

import (
	"fmt"
	"log/slog"

	"github.com/appengine-ltd/storm-access/internal/gamenames"
	"github.com/appengine-ltd/storm-access/internal/hostapi"
	"github.com/appengine-ltd/storm-access/internal/reflectcache"
)

// BlockReason says why an offer cannot be accepted right now. Exactly one
// reason applies per offer, checked in this precedence order.
type BlockReason int

const (
	BlockNone BlockReason = iota
	BlockAccepted
	BlockRouteLimit
	BlockGoods
	BlockFuel
)

func (r BlockReason) String() string {
	switch r {
	case BlockAccepted:
		return "already accepted"
	case BlockRouteLimit:
		return "no trade routes left"
	case BlockGoods:
		return "not enough goods"
	case BlockFuel:
		return "not enough fuel"
	default:
		return ""
	}
}

// OfferInfo is one trade offer scaled to the requested multiplier. Ref is
// the live host offer, kept only to issue the accept action.
type OfferInfo struct {
	Ref        any
	ID         string
	Good       string
	Amount     int
	Fuel       float64
	Price      int
	Multiplier int
	Accepted   bool
	Blocked    BlockReason
}

// TownInfo is one trade destination with its offers.
type TownInfo struct {
	Ref        any
	Name       string
	TravelTime float64
	Offers     []OfferInfo
}

// TradeAdapter reads the trade-routes service.
type TradeAdapter struct {
	services hostapi.Services
	cache    *reflectcache.Cache
	acc      *reflectcache.Accessor
	log      *slog.Logger

	resolved bool
	h        tradeHandles
}

type tradeHandles struct {
	towns    reflectcache.MemberHandle
	limit    reflectcache.MemberHandle
	used     reflectcache.MemberHandle
	fuel     reflectcache.MemberHandle
	stock    reflectcache.MemberHandle
	maxMult  reflectcache.MemberHandle
	accept   reflectcache.MemberHandle
	townName reflectcache.MemberHandle
	travel   reflectcache.MemberHandle
	offers   reflectcache.MemberHandle
	offerID  reflectcache.MemberHandle
	good     reflectcache.MemberHandle
	amount   reflectcache.MemberHandle
	oFuel    reflectcache.MemberHandle
	price    reflectcache.MemberHandle
	accepted reflectcache.MemberHandle
}

func NewTrade(services hostapi.Services, cache *reflectcache.Cache, acc *reflectcache.Accessor, log *slog.Logger) *TradeAdapter {
	if log == nil {
		log = slog.Default()
	}
	return &TradeAdapter{services: services, cache: cache, acc: acc, log: log}
}

// IsTradeRoutesPopup reports whether root is the trade-routes popup.
func (a *TradeAdapter) IsTradeRoutesPopup(root hostapi.Node) bool {
	return hasComponent(a.cache, root, "TradeRoutesPopup")
}

func (a *TradeAdapter) resolve() {
	if a.resolved {
		return
	}
	a.resolved = true
	c := a.cache
	a.h.towns = c.MemberOf("TradeService", "Towns", reflectcache.KindField)
	a.h.limit = c.MemberOf("TradeService", "RouteLimit", reflectcache.KindField)
	a.h.used = c.MemberOf("TradeService", "RoutesUsed", reflectcache.KindField)
	a.h.fuel = c.MemberOf("TradeService", "Fuel", reflectcache.KindField)
	a.h.stock = c.MemberOf("TradeService", "Stock", reflectcache.KindField)
	a.h.maxMult = c.MemberOf("TradeService", "MaxMultiplier", reflectcache.KindField)
	a.h.accept = c.MemberOf("TradeService", "Accept", reflectcache.KindMethod)
	a.h.townName = c.MemberOf("TradeTown", "Name", reflectcache.KindField)
	a.h.travel = c.MemberOf("TradeTown", "TravelTime", reflectcache.KindField)
	a.h.offers = c.MemberOf("TradeTown", "Offers", reflectcache.KindField)
	a.h.offerID = c.MemberOf("TradeOffer", "Id", reflectcache.KindField)
	a.h.good = c.MemberOf("TradeOffer", "Good", reflectcache.KindField)
	a.h.amount = c.MemberOf("TradeOffer", "Amount", reflectcache.KindField)
	a.h.oFuel = c.MemberOf("TradeOffer", "Fuel", reflectcache.KindField)
	a.h.price = c.MemberOf("TradeOffer", "Price", reflectcache.KindField)
	// The live build misspells this field. Try the real name first, fall
	// back to the corrected spelling so a fixed build keeps working.
	a.h.accepted = c.MemberOf("TradeOffer", "Accpeted", reflectcache.KindField)
	if !a.h.accepted.Valid() {
		a.h.accepted = c.MemberOf("TradeOffer", "Accepted", reflectcache.KindField)
	}
}

func (a *TradeAdapter) service() any {
	if a == nil || a.services == nil {
		return nil
	}
	return a.services.Service("TradeService")
}

// MaxMultiplier reports the largest trade multiplier the host allows, at
// least 1 even when the service is unavailable.
func (a *TradeAdapter) MaxMultiplier() int {
	a.resolve()
	svc := a.service()
	if svc == nil {
		return 1
	}
	if m := a.acc.GetInt(a.h.maxMult, svc); m > 1 {
		return m
	}
	return 1
}

// Routes reports used and total route slots.
func (a *TradeAdapter) Routes() (used, limit int, ok bool) {
	a.resolve()
	svc := a.service()
	if svc == nil {
		return 0, 0, false
	}
	return a.acc.GetInt(a.h.used, svc), a.acc.GetInt(a.h.limit, svc), true
}

// FuelAvailable reports the fuel pool shared by all routes.
func (a *TradeAdapter) FuelAvailable() float64 {
	a.resolve()
	svc := a.service()
	if svc == nil {
		return 0
	}
	return a.acc.GetFloat(a.h.fuel, svc)
}

// Towns assembles the full destination list at the given multiplier.
// Amounts, fuel, price and travel time scale linearly; the multiplier is
// clamped into 1..MaxMultiplier.
func (a *TradeAdapter) Towns(multiplier int) []TownInfo {
	a.resolve()
	svc := a.service()
	if svc == nil {
		return nil
	}
	mult := a.clamp(svc, multiplier)
	used := a.acc.GetInt(a.h.used, svc)
	limit := a.acc.GetInt(a.h.limit, svc)
	fuel := a.acc.GetFloat(a.h.fuel, svc)
	stock := a.acc.GetCounts(a.h.stock, svc)

	var out []TownInfo
	for _, town := range a.acc.GetSlice(a.h.towns, svc) {
		info := TownInfo{
			Ref:        town,
			Name:       a.acc.GetString(a.h.townName, town),
			TravelTime: a.acc.GetFloat(a.h.travel, town) * float64(mult),
		}
		for _, offer := range a.acc.GetSlice(a.h.offers, town) {
			info.Offers = append(info.Offers, a.offerInfo(offer, mult, used, limit, fuel, stock))
		}
		out = append(out, info)
	}
	return out
}

func (a *TradeAdapter) offerInfo(offer any, mult, used, limit int, fuel float64, stock map[string]int) OfferInfo {
	o := OfferInfo{
		Ref:        offer,
		ID:         a.acc.GetString(a.h.offerID, offer),
		Good:       a.acc.GetString(a.h.good, offer),
		Amount:     a.acc.GetInt(a.h.amount, offer) * mult,
		Fuel:       a.acc.GetFloat(a.h.oFuel, offer) * float64(mult),
		Price:      a.acc.GetInt(a.h.price, offer) * mult,
		Multiplier: mult,
		Accepted:   a.acc.GetBool(a.h.accepted, offer),
	}
	o.Blocked = a.blockReason(o, used, limit, fuel, stock)
	return o
}

// blockReason applies the precedence order: an accepted offer is always
// "already accepted" even when goods and fuel would suffice.
func (a *TradeAdapter) blockReason(o OfferInfo, used, limit int, fuel float64, stock map[string]int) BlockReason {
	switch {
	case o.Accepted:
		return BlockAccepted
	case limit > 0 && used >= limit:
		return BlockRouteLimit
	case stock[o.Good] < o.Amount:
		return BlockGoods
	case fuel < o.Fuel:
		return BlockFuel
	default:
		return BlockNone
	}
}

// Accept checks the offer against live state and, when nothing blocks it,
// invokes the host mutator. The returned reason is the spoken explanation
// when ok is false.
func (a *TradeAdapter) Accept(o OfferInfo) (ok bool, reason string) {
	a.resolve()
	svc := a.service()
	if svc == nil {
		return false, "trade is unavailable"
	}
	live := a.offerInfo(o.Ref, max(o.Multiplier, 1),
		a.acc.GetInt(a.h.used, svc),
		a.acc.GetInt(a.h.limit, svc),
		a.acc.GetFloat(a.h.fuel, svc),
		a.acc.GetCounts(a.h.stock, svc))
	if live.Blocked != BlockNone {
		return false, live.Blocked.String()
	}
	result, invoked := a.acc.Invoke(a.h.accept, svc, live.ID, live.Multiplier)
	if !invoked {
		return false, "trade is unavailable"
	}
	if done, _ := result.(bool); !done {
		return false, "the offer was refused"
	}
	return true, ""
}

// FormatOffer renders one offer for speech.
func (a *TradeAdapter) FormatOffer(o OfferInfo) string {
	line := fmt.Sprintf("%s, %d for %d amber, %s fuel",
		gamenames.Good(o.Good), o.Amount, o.Price, trimFloat(o.Fuel))
	if o.Blocked != BlockNone {
		line += ", " + o.Blocked.String()
	}
	return line
}

// FormatTown renders a town header for speech.
func (a *TradeAdapter) FormatTown(t TownInfo) string {
	return fmt.Sprintf("%s, %s days travel, %s",
		t.Name, trimFloat(t.TravelTime), plural(len(t.Offers), "offer"))
}

func (a *TradeAdapter) clamp(svc any, multiplier int) int {
	maxMult := a.acc.GetInt(a.h.maxMult, svc)
	if maxMult < 1 {
		maxMult = 1
	}
	if multiplier < 1 {
		return 1
	}
	if multiplier > maxMult {
		return maxMult
	}
	return multiplier
}

func trimFloat(f float64) string {
	if f == float64(int(f)) {
		return fmt.Sprint(int(f))
	}
	return fmt.Sprintf("%.1f", f)
}
