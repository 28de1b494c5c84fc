package adapters

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/appengine-ltd/storm-access/internal/hostapi"
	"github.com/appengine-ltd/storm-access/internal/reflectcache"
)

// CraftStage tracks where an in-progress perk sits in the forge flow:
// pick a hook, pick a positive effect, optionally pick a negative one,
// name it, craft it. Once every charge is spent the forge is finished and
// only the crafted list remains readable.
type CraftStage int

const (
	StageHook CraftStage = iota
	StagePositive
	StageNegative
	StageName
	StageDone
)

func (s CraftStage) String() string {
	switch s {
	case StageHook:
		return "choose a trigger"
	case StagePositive:
		return "choose an effect"
	case StageNegative:
		return "choose a drawback or skip"
	case StageName:
		return "name the perk"
	case StageDone:
		return "crafted"
	default:
		return "unknown"
	}
}

// HookOption is a perk trigger choice.
type HookOption struct {
	Ref         any
	Name        string
	Description string
}

// EffectOption is a positive or negative effect choice. Negative effects
// carry a negative cost: they refund essence.
type EffectOption struct {
	Ref         any
	Name        string
	Description string
	Cost        int
}

// CraftedInfo is one finished perk.
type CraftedInfo struct {
	Name     string
	Hook     string
	Positive string
	Negative string
}

// PerkAdapter reads the perk forge and drives the crafting flow. The flow
// state is the adapter's own; the host only sees the final Craft call.
type PerkAdapter struct {
	services hostapi.Services
	cache    *reflectcache.Cache
	acc      *reflectcache.Accessor
	log      *slog.Logger

	resolved bool
	h        perkHandles

	stage    CraftStage
	hook     HookOption
	positive EffectOption
	negative EffectOption
	hasNeg   bool
	name     string
}

type perkHandles struct {
	hooks     reflectcache.MemberHandle
	positives reflectcache.MemberHandle
	negatives reflectcache.MemberHandle
	charges   reflectcache.MemberHandle
	essence   reflectcache.MemberHandle
	crafted   reflectcache.MemberHandle
	craft     reflectcache.MemberHandle

	hookName reflectcache.MemberHandle
	hookDesc reflectcache.MemberHandle
	effName  reflectcache.MemberHandle
	effDesc  reflectcache.MemberHandle
	effCost  reflectcache.MemberHandle

	doneName reflectcache.MemberHandle
	doneHook reflectcache.MemberHandle
	donePos  reflectcache.MemberHandle
	doneNeg  reflectcache.MemberHandle
}

func NewPerks(services hostapi.Services, cache *reflectcache.Cache, acc *reflectcache.Accessor, log *slog.Logger) *PerkAdapter {
	if log == nil {
		log = slog.Default()
	}
	return &PerkAdapter{services: services, cache: cache, acc: acc, log: log}
}

// IsPerkForgePopup reports whether root is the perk forge popup.
func (a *PerkAdapter) IsPerkForgePopup(root hostapi.Node) bool {
	return hasComponent(a.cache, root, "PerkForgePopup")
}

func (a *PerkAdapter) resolve() {
	if a.resolved {
		return
	}
	a.resolved = true
	c := a.cache
	a.h.hooks = c.MemberOf("PerkForgeService", "Hooks", reflectcache.KindField)
	a.h.positives = c.MemberOf("PerkForgeService", "Positives", reflectcache.KindField)
	a.h.negatives = c.MemberOf("PerkForgeService", "Negatives", reflectcache.KindField)
	a.h.charges = c.MemberOf("PerkForgeService", "ChargesLeft", reflectcache.KindField)
	a.h.essence = c.MemberOf("PerkForgeService", "Essence", reflectcache.KindField)
	a.h.crafted = c.MemberOf("PerkForgeService", "Crafted", reflectcache.KindField)
	a.h.craft = c.MemberOf("PerkForgeService", "Craft", reflectcache.KindMethod)
	a.h.hookName = c.MemberOf("PerkHook", "Name", reflectcache.KindField)
	a.h.hookDesc = c.MemberOf("PerkHook", "Description", reflectcache.KindField)
	a.h.effName = c.MemberOf("PerkEffect", "Name", reflectcache.KindField)
	a.h.effDesc = c.MemberOf("PerkEffect", "Description", reflectcache.KindField)
	a.h.effCost = c.MemberOf("PerkEffect", "Cost", reflectcache.KindField)
	a.h.doneName = c.MemberOf("CraftedPerk", "Name", reflectcache.KindField)
	a.h.doneHook = c.MemberOf("CraftedPerk", "Hook", reflectcache.KindField)
	a.h.donePos = c.MemberOf("CraftedPerk", "Positive", reflectcache.KindField)
	a.h.doneNeg = c.MemberOf("CraftedPerk", "Negative", reflectcache.KindField)
}

func (a *PerkAdapter) service() any {
	if a == nil || a.services == nil {
		return nil
	}
	return a.services.Service("PerkForgeService")
}

// Stage reports where the flow is. A forge out of charges is always Done.
func (a *PerkAdapter) Stage() CraftStage {
	if a.Charges() <= 0 {
		return StageDone
	}
	return a.stage
}

// Charges reports how many perks can still be forged.
func (a *PerkAdapter) Charges() int {
	a.resolve()
	svc := a.service()
	if svc == nil {
		return 0
	}
	return a.acc.GetInt(a.h.charges, svc)
}

// Essence reports the currency pool effects are paid from.
func (a *PerkAdapter) Essence() int {
	a.resolve()
	svc := a.service()
	if svc == nil {
		return 0
	}
	return a.acc.GetInt(a.h.essence, svc)
}

// Hooks lists the trigger choices.
func (a *PerkAdapter) Hooks() []HookOption {
	a.resolve()
	svc := a.service()
	if svc == nil {
		return nil
	}
	var out []HookOption
	for _, h := range a.acc.GetSlice(a.h.hooks, svc) {
		out = append(out, HookOption{
			Ref:         h,
			Name:        a.acc.GetString(a.h.hookName, h),
			Description: a.acc.GetString(a.h.hookDesc, h),
		})
	}
	return out
}

// Positives lists the positive effect choices.
func (a *PerkAdapter) Positives() []EffectOption {
	return a.effects(a.h.positives)
}

// Negatives lists the drawback choices.
func (a *PerkAdapter) Negatives() []EffectOption {
	return a.effects(a.h.negatives)
}

func (a *PerkAdapter) effects(h reflectcache.MemberHandle) []EffectOption {
	a.resolve()
	svc := a.service()
	if svc == nil {
		return nil
	}
	var out []EffectOption
	for _, e := range a.acc.GetSlice(h, svc) {
		out = append(out, EffectOption{
			Ref:         e,
			Name:        a.acc.GetString(a.h.effName, e),
			Description: a.acc.GetString(a.h.effDesc, e),
			Cost:        a.acc.GetInt(a.h.effCost, e),
		})
	}
	return out
}

// SelectHook advances the flow past the trigger stage.
func (a *PerkAdapter) SelectHook(h HookOption) bool {
	if a.Stage() != StageHook {
		return false
	}
	a.hook = h
	a.stage = StagePositive
	return true
}

// SelectPositive advances the flow past the effect stage.
func (a *PerkAdapter) SelectPositive(e EffectOption) bool {
	if a.Stage() != StagePositive {
		return false
	}
	a.positive = e
	a.stage = StageNegative
	return true
}

// SelectNegative records a drawback and moves to naming.
func (a *PerkAdapter) SelectNegative(e EffectOption) bool {
	if a.Stage() != StageNegative {
		return false
	}
	a.negative = e
	a.hasNeg = true
	a.stage = StageName
	return true
}

// SkipNegative moves to naming without a drawback.
func (a *PerkAdapter) SkipNegative() bool {
	if a.Stage() != StageNegative {
		return false
	}
	a.hasNeg = false
	a.stage = StageName
	return true
}

// SetName records the perk's name, completing the last choice.
func (a *PerkAdapter) SetName(name string) bool {
	if a.Stage() != StageName || strings.TrimSpace(name) == "" {
		return false
	}
	a.name = strings.TrimSpace(name)
	return true
}

// Cost is the essence the current selection would spend. Drawbacks have
// negative costs and refund part of it.
func (a *PerkAdapter) Cost() int {
	cost := a.positive.Cost
	if a.hasNeg {
		cost += a.negative.Cost
	}
	if cost < 0 {
		cost = 0
	}
	return cost
}

// Craft submits the assembled perk to the host. The flow resets to the
// hook stage on success so the next charge can be spent.
func (a *PerkAdapter) Craft() (ok bool, reason string) {
	a.resolve()
	svc := a.service()
	if svc == nil {
		return false, "the forge is unavailable"
	}
	if a.Charges() <= 0 {
		return false, "no charges left"
	}
	if a.Stage() != StageName || a.name == "" {
		return false, "the perk is not finished"
	}
	if a.Essence() < a.Cost() {
		return false, "not enough essence"
	}
	negName := ""
	if a.hasNeg {
		negName = a.negative.Name
	}
	result, invoked := a.acc.Invoke(a.h.craft, svc,
		a.hook.Name, a.positive.Name, negName, a.name, a.Cost())
	if !invoked {
		return false, "the forge is unavailable"
	}
	if done, _ := result.(bool); !done {
		return false, "the forge refused the perk"
	}
	a.Reset()
	return true, ""
}

// Reset abandons the in-progress selection.
func (a *PerkAdapter) Reset() {
	a.stage = StageHook
	a.hook = HookOption{}
	a.positive = EffectOption{}
	a.negative = EffectOption{}
	a.hasNeg = false
	a.name = ""
}

// Crafted lists finished perks, the only thing left to read once the
// forge runs dry.
func (a *PerkAdapter) Crafted() []CraftedInfo {
	a.resolve()
	svc := a.service()
	if svc == nil {
		return nil
	}
	var out []CraftedInfo
	for _, p := range a.acc.GetSlice(a.h.crafted, svc) {
		out = append(out, CraftedInfo{
			Name:     a.acc.GetString(a.h.doneName, p),
			Hook:     a.acc.GetString(a.h.doneHook, p),
			Positive: a.acc.GetString(a.h.donePos, p),
			Negative: a.acc.GetString(a.h.doneNeg, p),
		})
	}
	return out
}

// FormatCrafted renders a finished perk for speech.
func (a *PerkAdapter) FormatCrafted(p CraftedInfo) string {
	line := fmt.Sprintf("%s, %s, %s", p.Name, p.Hook, p.Positive)
	if p.Negative != "" {
		line += ", but " + p.Negative
	}
	return line
}
