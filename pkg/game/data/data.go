// Package data loads the immutable rule tables: leaders, locations, card
// decks, faction starting values, and camera nodes. The tables are read-only
// input to the rules engine; nothing in the engine mutates them.
package data

import (
	"fmt"
	"io"

	"github.com/cbodonnell/melange/pkg/game/types"
	"github.com/cbodonnell/melange/pkg/kinematic"
	"gopkg.in/yaml.v3"

	_ "embed"
)

//go:embed rules.yaml
var defaultRules []byte

// InitialValues is a faction's starting allotment: reserve troops, free
// starting placements, and starting spice.
type InitialValues struct {
	Troops    int      `yaml:"troops"`
	Spice     int      `yaml:"spice"`
	Locations []string `yaml:"locations"`
}

// CameraNode is a named camera placement on the board.
type CameraNode struct {
	At       [3]float64 `yaml:"at"`
	Rotation [3]float64 `yaml:"rotation"`
}

// Transform returns the node as a camera transform.
func (n CameraNode) Transform() kinematic.Transform {
	return kinematic.Transform{
		Position: kinematic.Vector3{X: n.At[0], Y: n.At[1], Z: n.At[2]},
		Rotation: kinematic.Vector3{X: n.Rotation[0], Y: n.Rotation[1], Z: n.Rotation[2]},
	}
}

type rulesFile struct {
	Leaders     map[string][]types.Leader `yaml:"leaders"`
	Locations   []types.Location          `yaml:"locations"`
	Treachery   []types.TreacheryCard     `yaml:"treachery"`
	Spice       []types.SpiceCard         `yaml:"spice"`
	Storm       []int                     `yaml:"storm"`
	Factions    map[string]InitialValues  `yaml:"factions"`
	CameraNodes map[string]CameraNode     `yaml:"camera_nodes"`
}

// RuleData holds the parsed rule tables.
type RuleData struct {
	Leaders        []types.Leader
	Locations      []types.Location
	TreacheryCards []types.TreacheryCard
	SpiceCards     []types.SpiceCard
	StormCards     []types.StormCard

	initialValues map[types.Faction]InitialValues
	cameraNodes   map[string]CameraNode
}

// Default loads the embedded rule tables.
func Default() (*RuleData, error) {
	return load(defaultRules)
}

// Load parses rule tables from r, for overriding the embedded defaults.
func Load(r io.Reader) (*RuleData, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule data: %v", err)
	}
	return load(b)
}

func load(b []byte) (*RuleData, error) {
	file := &rulesFile{}
	if err := yaml.Unmarshal(b, file); err != nil {
		return nil, fmt.Errorf("failed to parse rule data: %v", err)
	}

	d := &RuleData{
		Locations:      file.Locations,
		TreacheryCards: file.Treachery,
		SpiceCards:     file.Spice,
		initialValues:  make(map[types.Faction]InitialValues),
		cameraNodes:    file.CameraNodes,
	}

	for code, leaders := range file.Leaders {
		faction, err := types.ParseFaction(code)
		if err != nil {
			return nil, fmt.Errorf("failed to parse leader table: %v", err)
		}
		for _, leader := range leaders {
			leader.Faction = faction
			d.Leaders = append(d.Leaders, leader)
		}
	}

	for _, val := range file.Storm {
		if val <= 0 {
			return nil, fmt.Errorf("storm card value must be positive, got %d", val)
		}
		d.StormCards = append(d.StormCards, types.StormCard{Val: val})
	}

	for code, values := range file.Factions {
		faction, err := types.ParseFaction(code)
		if err != nil {
			return nil, fmt.Errorf("failed to parse faction table: %v", err)
		}
		for _, loc := range values.Locations {
			if _, err := d.LocationByName(loc); err != nil {
				return nil, fmt.Errorf("faction %s starts in unknown location: %v", faction, err)
			}
		}
		d.initialValues[faction] = values
	}

	for _, faction := range types.Factions {
		if _, ok := d.initialValues[faction]; !ok {
			return nil, fmt.Errorf("missing initial values for faction %s", faction)
		}
	}

	return d, nil
}

// InitialValues returns the starting allotment for the given faction.
func (d *RuleData) InitialValues(faction types.Faction) (InitialValues, error) {
	values, ok := d.initialValues[faction]
	if !ok {
		return InitialValues{}, fmt.Errorf("no initial values for faction %s", faction)
	}
	return values, nil
}

// LocationByName returns the named location.
func (d *RuleData) LocationByName(name string) (types.Location, error) {
	for _, loc := range d.Locations {
		if loc.Name == name {
			return loc, nil
		}
	}
	return types.Location{}, fmt.Errorf("unknown location: %s", name)
}

// CameraNode returns the named camera node as a transform.
func (d *RuleData) CameraNode(name string) (kinematic.Transform, error) {
	node, ok := d.cameraNodes[name]
	if !ok {
		return kinematic.Transform{}, fmt.Errorf("unknown camera node: %s", name)
	}
	return node.Transform(), nil
}
