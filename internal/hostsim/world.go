package hostsim

// Map services and tile contents. The world map is a rectangle indexed
// (x, y); the settlement map is cubic-hex indexed (q, r, s) with
// q + r + s = 0 and a radius bound, matching the host's two grid systems.

type WorldMapService struct {
	MapWidth  int
	MapHeight int
	tiles     map[[2]int]any
}

func NewWorldMapService(width, height int) *WorldMapService {
	return &WorldMapService{
		MapWidth:  width,
		MapHeight: height,
		tiles:     make(map[[2]int]any),
	}
}

func (s *WorldMapService) Width() int  { return s.MapWidth }
func (s *WorldMapService) Height() int { return s.MapHeight }

func (s *WorldMapService) Place(x, y int, obj any) {
	if s.tiles == nil {
		s.tiles = make(map[[2]int]any)
	}
	s.tiles[[2]int{x, y}] = obj
}

// ObjectAt returns the tile occupant, nil for an empty tile.
func (s *WorldMapService) ObjectAt(x, y int) any {
	return s.tiles[[2]int{x, y}]
}

type SettlementMapService struct {
	MapRadius int
	tiles     map[[3]int]any
}

func NewSettlementMapService(radius int) *SettlementMapService {
	return &SettlementMapService{MapRadius: radius, tiles: make(map[[3]int]any)}
}

func (s *SettlementMapService) Radius() int { return s.MapRadius }

func (s *SettlementMapService) Contains(q, r, z int) bool {
	if q+r+z != 0 {
		return false
	}
	return abs(q) <= s.MapRadius && abs(r) <= s.MapRadius && abs(z) <= s.MapRadius
}

func (s *SettlementMapService) Place(q, r, z int, obj any) {
	if s.tiles == nil {
		s.tiles = make(map[[3]int]any)
	}
	s.tiles[[3]int{q, r, z}] = obj
}

func (s *SettlementMapService) ObjectAt(q, r, z int) any {
	return s.tiles[[3]int{q, r, z}]
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Tile contents.

type Building struct {
	DisplayName string
	Description string
}

// Hearth and WoodcutterCamp stand in for the host's building subtype
// zoo; the engine classifies them by name table, not by Go embedding.
type Hearth struct {
	Building
}

type WoodcutterCamp struct {
	Building
}

type WeightedProduct struct {
	Name   string
	Chance float64
}

// ResourceNodeModel is the static description shared by every node of a
// kind, including the charge maximum; ResourceNodeState tracks charges
// left per instance. The split mirrors the host, which keeps them on
// separate objects.
type ResourceNodeModel struct {
	DisplayName       string
	Description       string
	MaxCharges        int
	PrimaryProduct    string
	SecondaryProducts []WeightedProduct
	HarvestedBy       []string
}

type ResourceNodeState struct {
	ChargesLeft int
}

type ResourceNode struct {
	Model *ResourceNodeModel
	State *ResourceNodeState
}

// Deposit keeps both charge numbers on its state object, unlike resource
// nodes where the maximum lives on the owning instance.
type DepositState struct {
	ChargesLeft int
	MaxCharges  int
}

type Deposit struct {
	DisplayName string
	Description string
	Product     string
	State       *DepositState
}
