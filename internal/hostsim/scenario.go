package hostsim

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed scenario.yaml
var defaultScenarioYAML []byte

// Scenario is the YAML-loadable layout of the sim's two maps.
type Scenario struct {
	Name       string         `yaml:"name"`
	World      WorldLayout    `yaml:"world"`
	Settlement HexLayout      `yaml:"settlement"`
	Tiles      []TileFixture  `yaml:"tiles"`
	HexTiles   []HexTileSetup `yaml:"hex_tiles"`
}

type WorldLayout struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type HexLayout struct {
	Radius int `yaml:"radius"`
}

type TileFixture struct {
	X    int        `yaml:"x"`
	Y    int        `yaml:"y"`
	Kind string     `yaml:"kind"` // building | resource | deposit
	Spec TileDetail `yaml:"spec"`
}

type HexTileSetup struct {
	Q    int        `yaml:"q"`
	R    int        `yaml:"r"`
	Kind string     `yaml:"kind"`
	Spec TileDetail `yaml:"spec"`
}

type TileDetail struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Charges     int      `yaml:"charges"`
	MaxCharges  int      `yaml:"max_charges"`
	Product     string   `yaml:"product"`
	Secondary   []Chance `yaml:"secondary"`
	HarvestedBy []string `yaml:"harvested_by"`
}

type Chance struct {
	Name   string  `yaml:"name"`
	Chance float64 `yaml:"chance"`
}

// LoadScenario parses a YAML scenario and validates its dimensions.
func LoadScenario(data []byte) (Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return Scenario{}, fmt.Errorf("parse scenario: %w", err)
	}
	if sc.World.Width <= 0 || sc.World.Height <= 0 {
		return Scenario{}, fmt.Errorf("scenario %q: world map needs positive dimensions", sc.Name)
	}
	if sc.Settlement.Radius <= 0 {
		return Scenario{}, fmt.Errorf("scenario %q: settlement map needs a positive radius", sc.Name)
	}
	return sc, nil
}

// DefaultScenario returns the embedded layout.
func DefaultScenario() Scenario {
	sc, err := LoadScenario(defaultScenarioYAML)
	if err != nil {
		// The embedded file ships with the binary; failing to parse it is
		// a build defect, not a runtime condition.
		panic(err)
	}
	return sc
}

func (sc Scenario) buildWorldMap() *WorldMapService {
	svc := NewWorldMapService(sc.World.Width, sc.World.Height)
	for _, t := range sc.Tiles {
		if obj := t.Spec.build(t.Kind); obj != nil {
			svc.Place(t.X, t.Y, obj)
		}
	}
	return svc
}

func (sc Scenario) buildSettlementMap() *SettlementMapService {
	svc := NewSettlementMapService(sc.Settlement.Radius)
	for _, t := range sc.HexTiles {
		if obj := t.Spec.build(t.Kind); obj != nil {
			svc.Place(t.Q, t.R, -t.Q-t.R, obj)
		}
	}
	return svc
}

func (d TileDetail) build(kind string) any {
	switch kind {
	case "building":
		return &Building{DisplayName: d.Name, Description: d.Description}
	case "hearth":
		return &Hearth{Building: Building{DisplayName: d.Name, Description: d.Description}}
	case "camp":
		return &WoodcutterCamp{Building: Building{DisplayName: d.Name, Description: d.Description}}
	case "resource":
		secondary := make([]WeightedProduct, 0, len(d.Secondary))
		for _, c := range d.Secondary {
			secondary = append(secondary, WeightedProduct{Name: c.Name, Chance: c.Chance})
		}
		return &ResourceNode{
			Model: &ResourceNodeModel{
				DisplayName:       d.Name,
				Description:       d.Description,
				MaxCharges:        d.MaxCharges,
				PrimaryProduct:    d.Product,
				SecondaryProducts: secondary,
				HarvestedBy:       d.HarvestedBy,
			},
			State: &ResourceNodeState{ChargesLeft: d.Charges},
		}
	case "deposit":
		return &Deposit{
			DisplayName: d.Name,
			Description: d.Description,
			Product:     d.Product,
			State:       &DepositState{ChargesLeft: d.Charges, MaxCharges: d.MaxCharges},
		}
	default:
		return nil
	}
}
