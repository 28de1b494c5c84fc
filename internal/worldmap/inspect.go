package worldmap

import (
	"strings"

	"github.com/appengine-ltd/storm-access/internal/gamenames"
	"github.com/appengine-ltd/storm-access/internal/reflectcache"
)

// TileCategory is the closed set of tile-content variants the narrator
// distinguishes. Classification is by registered type name, not by a live
// inheritance walk: building subtypes vary per host build, so unknown
// names fall back to a substring check against known building words.
type TileCategory int

const (
	CategoryUnknown TileCategory = iota
	CategoryBuilding
	CategoryResource
	CategoryDeposit
)

var defaultCategories = map[string]TileCategory{
	"Building":       CategoryBuilding,
	"Hearth":         CategoryBuilding,
	"WoodcutterCamp": CategoryBuilding,
	"ResourceNode":   CategoryResource,
	"Deposit":        CategoryDeposit,
}

var buildingWords = []string{"building", "camp", "hearth", "house", "shelter"}

// Inspector narrates tile contents. Member handles resolve lazily on first
// use and are never re-resolved; tile instances are always fresh.
type Inspector struct {
	cache *reflectcache.Cache
	acc   *reflectcache.Accessor

	categories map[string]TileCategory

	resolved bool
	h        inspectorHandles
}

type inspectorHandles struct {
	nodeModel   reflectcache.MemberHandle
	nodeState   reflectcache.MemberHandle
	modelName   reflectcache.MemberHandle
	modelDesc   reflectcache.MemberHandle
	modelMax    reflectcache.MemberHandle
	modelPrim   reflectcache.MemberHandle
	modelSecond reflectcache.MemberHandle
	modelHarv   reflectcache.MemberHandle
	stateLeft   reflectcache.MemberHandle

	depName      reflectcache.MemberHandle
	depDesc      reflectcache.MemberHandle
	depProduct   reflectcache.MemberHandle
	depState     reflectcache.MemberHandle
	depStateLeft reflectcache.MemberHandle
	depStateMax  reflectcache.MemberHandle

	prodName   reflectcache.MemberHandle
	prodChance reflectcache.MemberHandle
}

func NewInspector(cache *reflectcache.Cache, acc *reflectcache.Accessor) *Inspector {
	return &Inspector{cache: cache, acc: acc, categories: defaultCategories}
}

func (in *Inspector) resolve() {
	if in.resolved {
		return
	}
	in.resolved = true
	c := in.cache
	in.h.nodeModel = c.MemberOf("ResourceNode", "Model", reflectcache.KindField)
	in.h.nodeState = c.MemberOf("ResourceNode", "State", reflectcache.KindField)
	in.h.modelName = c.MemberOf("ResourceNodeModel", "DisplayName", reflectcache.KindField)
	in.h.modelDesc = c.MemberOf("ResourceNodeModel", "Description", reflectcache.KindField)
	in.h.modelMax = c.MemberOf("ResourceNodeModel", "MaxCharges", reflectcache.KindField)
	in.h.modelPrim = c.MemberOf("ResourceNodeModel", "PrimaryProduct", reflectcache.KindField)
	in.h.modelSecond = c.MemberOf("ResourceNodeModel", "SecondaryProducts", reflectcache.KindField)
	in.h.modelHarv = c.MemberOf("ResourceNodeModel", "HarvestedBy", reflectcache.KindField)
	in.h.stateLeft = c.MemberOf("ResourceNodeState", "ChargesLeft", reflectcache.KindField)

	in.h.depName = c.MemberOf("Deposit", "DisplayName", reflectcache.KindField)
	in.h.depDesc = c.MemberOf("Deposit", "Description", reflectcache.KindField)
	in.h.depProduct = c.MemberOf("Deposit", "Product", reflectcache.KindField)
	in.h.depState = c.MemberOf("Deposit", "State", reflectcache.KindField)
	in.h.depStateLeft = c.MemberOf("DepositState", "ChargesLeft", reflectcache.KindField)
	in.h.depStateMax = c.MemberOf("DepositState", "MaxCharges", reflectcache.KindField)
}

// Classify maps a tile occupant to its narration category.
func (in *Inspector) Classify(obj any) TileCategory {
	if obj == nil {
		return CategoryUnknown
	}
	name := in.typeName(obj)
	if cat, ok := in.categories[name]; ok {
		return cat
	}
	lower := strings.ToLower(name)
	for _, w := range buildingWords {
		if strings.Contains(lower, w) {
			return CategoryBuilding
		}
	}
	return CategoryUnknown
}

// Describe narrates the occupant of a tile. Nil means an empty tile, which
// reads differently from an occupant we know nothing about.
func (in *Inspector) Describe(obj any) string {
	if obj == nil {
		return "Empty tile."
	}
	in.resolve()
	switch in.Classify(obj) {
	case CategoryBuilding:
		return in.describeBuilding(obj)
	case CategoryResource:
		return in.describeResource(obj)
	case CategoryDeposit:
		return in.describeDeposit(obj)
	default:
		return in.describeUnknown(obj)
	}
}

// Summary is the short form spoken while the cursor moves.
func (in *Inspector) Summary(obj any) string {
	if obj == nil {
		return "empty"
	}
	in.resolve()
	// Building subtypes vary per host build, so the display name is
	// resolved against the occupant's own type, not a fixed base type.
	if th := in.cache.Of(obj); th.Valid() {
		h := in.cache.Member(th, "DisplayName", reflectcache.KindField)
		if s := in.acc.GetString(h, obj); s != "" {
			return s
		}
	}
	if model, ok := in.acc.Get(in.h.nodeModel, obj); ok && model != nil {
		if s := in.acc.GetString(in.h.modelName, model); s != "" {
			return s
		}
	}
	if name := in.typeName(obj); name != "" {
		return name
	}
	return "something"
}

func (in *Inspector) describeBuilding(obj any) string {
	th := in.cache.Of(obj)
	name := in.acc.GetString(in.cache.Member(th, "DisplayName", reflectcache.KindField), obj)
	desc := in.acc.GetString(in.cache.Member(th, "Description", reflectcache.KindField), obj)
	return joinSentences(name, desc)
}

func (in *Inspector) describeResource(obj any) string {
	model, okM := in.acc.Get(in.h.nodeModel, obj)
	state, okS := in.acc.Get(in.h.nodeState, obj)
	if !okM || model == nil {
		return in.describeUnknown(obj)
	}
	parts := []string{
		in.acc.GetString(in.h.modelName, model),
		in.acc.GetString(in.h.modelDesc, model),
	}
	if okS && state != nil {
		left := in.acc.GetInt(in.h.stateLeft, state)
		max := in.acc.GetInt(in.h.modelMax, model)
		parts = append(parts, FormatCharges(left, max))
	}
	if prim := in.acc.GetString(in.h.modelPrim, model); prim != "" {
		parts = append(parts, "Produces "+gamenames.Good(prim))
	}
	parts = append(parts, in.secondaryClause(model))
	parts = append(parts, in.harvestClause(model))
	return joinSentences(parts...)
}

func (in *Inspector) describeDeposit(obj any) string {
	parts := []string{
		in.acc.GetString(in.h.depName, obj),
		in.acc.GetString(in.h.depDesc, obj),
	}
	if state, ok := in.acc.Get(in.h.depState, obj); ok && state != nil {
		left := in.acc.GetInt(in.h.depStateLeft, state)
		max := in.acc.GetInt(in.h.depStateMax, state)
		parts = append(parts, FormatCharges(left, max))
	}
	if product := in.acc.GetString(in.h.depProduct, obj); product != "" {
		parts = append(parts, "Yields "+gamenames.Good(product))
	}
	return joinSentences(parts...)
}

// describeUnknown reports a present-but-unrecognized occupant: display
// name when one exists, else the type name. Never "empty".
func (in *Inspector) describeUnknown(obj any) string {
	th := in.cache.Of(obj)
	if th.Valid() {
		h := in.cache.Member(th, "DisplayName", reflectcache.KindField)
		if s := in.acc.GetString(h, obj); s != "" {
			return s + "."
		}
	}
	if name := in.typeName(obj); name != "" {
		return name + ". No further information."
	}
	return "Unknown object. No further information."
}

func (in *Inspector) secondaryClause(model any) string {
	items := in.acc.GetSlice(in.h.modelSecond, model)
	if len(items) == 0 {
		return ""
	}
	var out []string
	for _, item := range items {
		th := in.cache.Of(item)
		name := in.acc.GetString(in.cache.Member(th, "Name", reflectcache.KindField), item)
		chance := in.acc.GetFloat(in.cache.Member(th, "Chance", reflectcache.KindField), item)
		if name == "" || chance <= 0 {
			continue
		}
		out = append(out, gamenames.Good(name)+" "+FormatPercent(chance))
	}
	if len(out) == 0 {
		return ""
	}
	return "Also yields " + strings.Join(out, ", ")
}

func (in *Inspector) harvestClause(model any) string {
	items := in.acc.GetSlice(in.h.modelHarv, model)
	var out []string
	for _, item := range items {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return ""
	}
	return "Harvested by " + strings.Join(out, ", ")
}

func (in *Inspector) typeName(obj any) string {
	return in.cache.Of(obj).Name()
}

func joinSentences(parts ...string) string {
	var out []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !strings.HasSuffix(p, ".") {
			p += "."
		}
		out = append(out, p)
	}
	return strings.Join(out, " ")
}
