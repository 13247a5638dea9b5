package tuning

import (
	"fmt"
	"os"

	"gridharvest/internal/domain/economy"
	"gridharvest/internal/domain/unit"
	"gridharvest/internal/domain/world"

	"gopkg.in/yaml.v3"
)

type Tuning struct {
	WorldSize int     `yaml:"world_size"`
	Seed      int64   `yaml:"seed"`
	Topology  string  `yaml:"topology"`
	TileSize  float64 `yaml:"tile_size"`

	TickRateHz int     `yaml:"tick_rate_hz"`
	MoverSpeed float64 `yaml:"mover_speed"`

	HarvestSpeed     float64 `yaml:"harvest_speed"`
	HarvestThreshold float64 `yaml:"harvest_threshold"`

	Yields         map[string]int     `yaml:"yields"`
	Caps           map[string]int     `yaml:"caps"`
	InitialAmounts map[string]float64 `yaml:"initial_amounts"`

	DespawnDepleted bool `yaml:"despawn_depleted"`
}

// maxTickRateHz keeps the loop interval at a millisecond or more.
const maxTickRateHz = 1000

func Defaults() Tuning {
	t := Tuning{
		WorldSize:        110,
		Seed:             1,
		Topology:         world.TopologyOctile.String(),
		TileSize:         1,
		TickRateHz:       10,
		MoverSpeed:       2,
		HarvestSpeed:     economy.HarvestSpeed,
		HarvestThreshold: economy.HarvestThreshold,
		Yields:           map[string]int{},
		Caps:             map[string]int{},
		InitialAmounts:   map[string]float64{},
		DespawnDepleted:  true,
	}
	for k, v := range economy.DefaultYields() {
		t.Yields[string(k)] = v
	}
	for k, v := range economy.DefaultCaps() {
		t.Caps[string(k)] = v
	}
	for k, v := range economy.DefaultAmounts() {
		t.InitialAmounts[string(k)] = v
	}
	return t
}

// Load reads a YAML file over Defaults. Keys absent from the file keep their
// default values.
func Load(path string) (Tuning, error) {
	t := Defaults()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning yaml: %w", err)
	}
	if err := t.Validate(); err != nil {
		return t, err
	}
	return t, nil
}

func (t Tuning) Validate() error {
	if t.WorldSize <= 0 {
		return fmt.Errorf("tuning: world_size must be positive, got %d", t.WorldSize)
	}
	if t.TickRateHz < 0 || t.TickRateHz > maxTickRateHz {
		return fmt.Errorf("tuning: tick_rate_hz must be within [0, %d], got %d", maxTickRateHz, t.TickRateHz)
	}
	if t.HarvestSpeed <= 0 || t.HarvestThreshold <= 0 {
		return fmt.Errorf("tuning: harvest_speed and harvest_threshold must be positive")
	}
	for k := range t.Yields {
		if !knownResource(k) {
			return fmt.Errorf("tuning: unknown resource type %q in yields", k)
		}
	}
	for k := range t.Caps {
		if !knownResource(k) {
			return fmt.Errorf("tuning: unknown resource type %q in caps", k)
		}
	}
	return nil
}

func knownResource(s string) bool {
	switch world.ResourceType(s) {
	case world.ResourceGem, world.ResourceMineral:
		return true
	}
	return false
}

func (t Tuning) BuildConfig() world.BuildConfig {
	amounts := make(map[world.ResourceType]float64, len(t.InitialAmounts))
	for k, v := range t.InitialAmounts {
		amounts[world.ResourceType(k)] = v
	}
	return world.BuildConfig{
		Topology:       world.ParseTopology(t.Topology),
		TileSize:       t.TileSize,
		InitialAmounts: amounts,
	}
}

func (t Tuning) HarvestConfig() unit.HarvestConfig {
	return unit.HarvestConfig{Threshold: t.HarvestThreshold, Speed: t.HarvestSpeed}
}

func (t Tuning) YieldTable() economy.YieldTable {
	out := economy.YieldTable{}
	for k, v := range t.Yields {
		out[world.ResourceType(k)] = v
	}
	return out
}

func (t Tuning) CapMap() map[world.ResourceType]int {
	out := make(map[world.ResourceType]int, len(t.Caps))
	for k, v := range t.Caps {
		out[world.ResourceType(k)] = v
	}
	return out
}
