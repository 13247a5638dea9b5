package noise

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"

	"gridharvest/internal/domain/world"
)

type Config struct {
	Size  int
	Seed  int64
	Scale float64
	// Island is the fraction of the half-size covered by land. Cells past it
	// are left empty so the map has a ragged coast.
	Island       float64
	WaterLevel   float64
	MineLevel    float64
	MineralLevel float64
}

func DefaultConfig() Config {
	return Config{
		Size:         110,
		Seed:         1,
		Scale:        0.08,
		Island:       0.92,
		WaterLevel:   0.32,
		MineLevel:    0.86,
		MineralLevel: 0.78,
	}
}

// Generator builds island terrain from two opensimplex channels: one for
// height (water vs ground) and one for ore (mine and mineral deposits).
type Generator struct {
	cfg    Config
	height opensimplex.Noise
	ore    opensimplex.Noise
}

func New(cfg Config) *Generator {
	def := DefaultConfig()
	if cfg.Size <= 0 {
		cfg.Size = def.Size
	}
	if cfg.Scale <= 0 {
		cfg.Scale = def.Scale
	}
	if cfg.Island <= 0 {
		cfg.Island = def.Island
	}
	if cfg.WaterLevel == 0 && cfg.MineLevel == 0 && cfg.MineralLevel == 0 {
		cfg.WaterLevel = def.WaterLevel
		cfg.MineLevel = def.MineLevel
		cfg.MineralLevel = def.MineralLevel
	}
	return &Generator{
		cfg:    cfg,
		height: opensimplex.New(cfg.Seed),
		ore:    opensimplex.New(cfg.Seed ^ 0x5eed),
	}
}

func (g *Generator) WorldSize() int { return g.cfg.Size }

func (g *Generator) IsInBounds(i, j int) bool {
	return i >= 0 && i < g.cfg.Size && j >= 0 && j < g.cfg.Size
}

func (g *Generator) Generate() world.TypeMap {
	size := g.cfg.Size
	m := world.NewTypeMap(size)
	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			if !g.onIsland(i, j) {
				continue
			}
			x := float64(i) * g.cfg.Scale
			y := float64(j) * g.cfg.Scale
			m[i][j] = classify(g.cfg, normalize(g.height.Eval2(x, y)), normalize(g.ore.Eval2(x+1000, y+1000)))
		}
	}
	placeBase(m)
	return m
}

// onIsland perturbs the radius with the height channel so the coast is not a
// perfect circle.
func (g *Generator) onIsland(i, j int) bool {
	half := float64(g.cfg.Size) / 2
	dx := float64(i) + 0.5 - half
	dy := float64(j) + 0.5 - half
	r := math.Sqrt(dx*dx+dy*dy) / half
	wobble := 0.06 * g.height.Eval2(float64(i)*0.2, float64(j)*0.2)
	return r <= g.cfg.Island+wobble
}

func classify(cfg Config, height, ore float64) world.TileType {
	if height < cfg.WaterLevel {
		return world.TileWater
	}
	switch {
	case ore >= cfg.MineLevel:
		return world.TileMine
	case ore >= cfg.MineralLevel:
		return world.TileMineral
	default:
		return world.TileGround
	}
}

// placeBase puts the base at the centre and clears its neighbourhood to
// ground so it always has a reachable apron.
func placeBase(m world.TypeMap) {
	size := m.Size()
	if size == 0 {
		return
	}
	c := size / 2
	for di := -2; di <= 2; di++ {
		for dj := -2; dj <= 2; dj++ {
			i, j := c+di, c+dj
			if i < 0 || i >= size || j < 0 || j >= size {
				continue
			}
			m[i][j] = world.TileGround
		}
	}
	m[c][c] = world.TileBase
}

func normalize(v float64) float64 {
	n := (v + 1) / 2
	if n < 0 {
		return 0
	}
	if n > 1 {
		return 1
	}
	return n
}
