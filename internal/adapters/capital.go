package adapters

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/appengine-ltd/storm-access/internal/gamenames"
	"github.com/appengine-ltd/storm-access/internal/hostapi"
	"github.com/appengine-ltd/storm-access/internal/reflectcache"
)

// UpgradeStatus is the five-state availability of a capital upgrade.
// States are decided in declaration order: an unlocked upgrade is never
// reported as unaffordable, an unaffordable one never as level-gated.
type UpgradeStatus int

const (
	StatusUnlocked UpgradeStatus = iota
	StatusBuyable
	StatusTooExpensive
	StatusLevelRequired
	StatusLocked
)

func (s UpgradeStatus) String() string {
	switch s {
	case StatusUnlocked:
		return "unlocked"
	case StatusBuyable:
		return "available"
	case StatusTooExpensive:
		return "too expensive"
	case StatusLevelRequired:
		return "level required"
	case StatusLocked:
		return "locked"
	default:
		return "unknown"
	}
}

// UpgradeInfo is one capital upgrade snapshot.
type UpgradeInfo struct {
	Ref           any
	Name          string
	Status        UpgradeStatus
	RequiredLevel int
	Cost          map[string]int
	Prerequisite  string
}

// CapitalAdapter reads the capital city upgrade tree.
type CapitalAdapter struct {
	services hostapi.Services
	cache    *reflectcache.Cache
	acc      *reflectcache.Accessor
	log      *slog.Logger

	resolved bool
	h        capitalHandles
}

type capitalHandles struct {
	level    reflectcache.MemberHandle
	treasury reflectcache.MemberHandle
	upgrades reflectcache.MemberHandle
	buy      reflectcache.MemberHandle
	name     reflectcache.MemberHandle
	reqLevel reflectcache.MemberHandle
	cost     reflectcache.MemberHandle
	unlocked reflectcache.MemberHandle
	prereq   reflectcache.MemberHandle
}

func NewCapital(services hostapi.Services, cache *reflectcache.Cache, acc *reflectcache.Accessor, log *slog.Logger) *CapitalAdapter {
	if log == nil {
		log = slog.Default()
	}
	return &CapitalAdapter{services: services, cache: cache, acc: acc, log: log}
}

// IsCapitalUpgradesPopup reports whether root is the upgrades popup.
func (a *CapitalAdapter) IsCapitalUpgradesPopup(root hostapi.Node) bool {
	return hasComponent(a.cache, root, "CapitalUpgradesPopup")
}

func (a *CapitalAdapter) resolve() {
	if a.resolved {
		return
	}
	a.resolved = true
	c := a.cache
	a.h.level = c.MemberOf("CapitalService", "Level", reflectcache.KindField)
	a.h.treasury = c.MemberOf("CapitalService", "Treasury", reflectcache.KindField)
	a.h.upgrades = c.MemberOf("CapitalService", "Upgrades", reflectcache.KindField)
	a.h.buy = c.MemberOf("CapitalService", "Buy", reflectcache.KindMethod)
	a.h.name = c.MemberOf("CapitalUpgrade", "Name", reflectcache.KindField)
	a.h.reqLevel = c.MemberOf("CapitalUpgrade", "RequiredLevel", reflectcache.KindField)
	a.h.cost = c.MemberOf("CapitalUpgrade", "Cost", reflectcache.KindField)
	a.h.unlocked = c.MemberOf("CapitalUpgrade", "Unlocked", reflectcache.KindField)
	a.h.prereq = c.MemberOf("CapitalUpgrade", "Prerequisite", reflectcache.KindField)
}

func (a *CapitalAdapter) service() any {
	if a == nil || a.services == nil {
		return nil
	}
	return a.services.Service("CapitalService")
}

// Level reports the current capital level, 0 when unavailable.
func (a *CapitalAdapter) Level() int {
	a.resolve()
	svc := a.service()
	if svc == nil {
		return 0
	}
	return a.acc.GetInt(a.h.level, svc)
}

// Upgrades snapshots the full tree with statuses computed against live
// level, treasury and unlock state.
func (a *CapitalAdapter) Upgrades() []UpgradeInfo {
	a.resolve()
	svc := a.service()
	if svc == nil {
		return nil
	}
	level := a.acc.GetInt(a.h.level, svc)
	treasury := a.acc.GetCounts(a.h.treasury, svc)
	raw := a.acc.GetSlice(a.h.upgrades, svc)

	unlockedByName := map[string]bool{}
	for _, u := range raw {
		if a.acc.GetBool(a.h.unlocked, u) {
			unlockedByName[a.acc.GetString(a.h.name, u)] = true
		}
	}

	var out []UpgradeInfo
	for _, u := range raw {
		info := UpgradeInfo{
			Ref:           u,
			Name:          a.acc.GetString(a.h.name, u),
			RequiredLevel: a.acc.GetInt(a.h.reqLevel, u),
			Cost:          a.acc.GetCounts(a.h.cost, u),
			Prerequisite:  a.acc.GetString(a.h.prereq, u),
		}
		info.Status = a.status(info, level, treasury, unlockedByName,
			a.acc.GetBool(a.h.unlocked, u))
		out = append(out, info)
	}
	return out
}

func (a *CapitalAdapter) status(u UpgradeInfo, level int, treasury map[string]int, unlockedByName map[string]bool, unlocked bool) UpgradeStatus {
	levelOK := level >= u.RequiredLevel
	prereqOK := u.Prerequisite == "" || unlockedByName[u.Prerequisite]
	affordable := affords(treasury, u.Cost)
	switch {
	case unlocked:
		return StatusUnlocked
	case levelOK && prereqOK && affordable:
		return StatusBuyable
	case levelOK && prereqOK:
		return StatusTooExpensive
	case !levelOK:
		return StatusLevelRequired
	default:
		return StatusLocked
	}
}

// Buy attempts the purchase. On failure the reason matches the status a
// fresh snapshot would report.
func (a *CapitalAdapter) Buy(u UpgradeInfo) (ok bool, reason string) {
	a.resolve()
	svc := a.service()
	if svc == nil {
		return false, "upgrades are unavailable"
	}
	for _, live := range a.Upgrades() {
		if live.Name != u.Name {
			continue
		}
		switch live.Status {
		case StatusUnlocked:
			return false, "already unlocked"
		case StatusTooExpensive:
			return false, "not enough goods"
		case StatusLevelRequired:
			return false, fmt.Sprintf("requires capital level %d", live.RequiredLevel)
		case StatusLocked:
			return false, fmt.Sprintf("requires %s first", live.Prerequisite)
		}
		result, invoked := a.acc.Invoke(a.h.buy, svc, live.Name)
		if !invoked {
			return false, "upgrades are unavailable"
		}
		if done, _ := result.(bool); !done {
			return false, "the purchase was refused"
		}
		return true, ""
	}
	return false, "no such upgrade"
}

// FormatUpgrade renders one upgrade for speech.
func (a *CapitalAdapter) FormatUpgrade(u UpgradeInfo) string {
	parts := []string{u.Name, u.Status.String()}
	if u.Status != StatusUnlocked && len(u.Cost) > 0 {
		parts = append(parts, "costs "+formatCost(u.Cost))
	}
	if u.Status == StatusLevelRequired {
		parts = append(parts, fmt.Sprintf("needs level %d", u.RequiredLevel))
	}
	if u.Status == StatusLocked && u.Prerequisite != "" {
		parts = append(parts, "needs "+u.Prerequisite)
	}
	return strings.Join(parts, ", ")
}

func affords(treasury, cost map[string]int) bool {
	for good, amount := range cost {
		if treasury[good] < amount {
			return false
		}
	}
	return true
}

func formatCost(cost map[string]int) string {
	goods := make([]string, 0, len(cost))
	for good := range cost {
		goods = append(goods, good)
	}
	sort.Strings(goods)
	parts := make([]string, 0, len(goods))
	for _, good := range goods {
		parts = append(parts, fmt.Sprintf("%d %s", cost[good], gamenames.Good(good)))
	}
	return strings.Join(parts, " and ")
}
