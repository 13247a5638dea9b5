package world

import "math"

const NoTile TileID = -1

// TypeMap is the generator output, indexed [i][j].
type TypeMap [][]TileType

func NewTypeMap(size int) TypeMap {
	m := make(TypeMap, size)
	for i := range m {
		m[i] = make([]TileType, size)
		for j := range m[i] {
			m[i][j] = TileNone
		}
	}
	return m
}

func (m TypeMap) Size() int { return len(m) }

func (m TypeMap) has(i, j int) bool {
	return i >= 0 && i < len(m) && j >= 0 && j < len(m[i])
}

// BoundsFunc is the generator's in-bounds predicate.
type BoundsFunc func(i, j int) bool

// SquareBounds is the in-bounds predicate of a size x size grid.
func SquareBounds(size int) BoundsFunc {
	return func(i, j int) bool {
		return i >= 0 && i < size && j >= 0 && j < size
	}
}

type Topology int

const (
	TopologyCardinal Topology = iota
	TopologyOctile
)

func ParseTopology(s string) Topology {
	switch s {
	case "cardinal", "4":
		return TopologyCardinal
	default:
		return TopologyOctile
	}
}

func (t Topology) String() string {
	if t == TopologyCardinal {
		return "cardinal"
	}
	return "octile"
}

type offset struct{ di, dj int }

var (
	cardinalOffsets = []offset{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}
	diagonalOffsets = []offset{{1, 1}, {1, -1}, {-1, -1}, {-1, 1}}
)

// TilePos returns the world-space centre of tile (i, j) for a grid of the
// given size, with the grid centred on the origin.
func TilePos(size int, tileSize float64, i, j int) Vec3 {
	half := float64(size) * tileSize / 2
	return Vec3{X: -half + tileSize*float64(i), Y: 0, Z: -half + tileSize*float64(j)}
}

type Grid struct {
	size     int
	tileSize float64
	topology Topology
	tiles    []TileData
}

func (g *Grid) Size() int          { return g.size }
func (g *Grid) TileSize() float64  { return g.tileSize }
func (g *Grid) Topology() Topology { return g.topology }

func (g *Grid) InBounds(i, j int) bool {
	return i >= 0 && i < g.size && j >= 0 && j < g.size
}

func (g *Grid) index(i, j int) TileID { return TileID(j*g.size + i) }

// At returns the tile at (i, j), or false when the coordinates fall outside
// the grid.
func (g *Grid) At(i, j int) (*TileData, bool) {
	if g == nil || !g.InBounds(i, j) {
		return nil, false
	}
	return &g.tiles[g.index(i, j)], true
}

func (g *Grid) Tile(id TileID) (*TileData, bool) {
	if g == nil || id < 0 || int(id) >= len(g.tiles) {
		return nil, false
	}
	return &g.tiles[id], true
}

// Tiles returns every tile in row-major order, empty ones included.
func (g *Grid) Tiles() []TileData { return g.tiles }

func (g *Grid) Occupy(id TileID, unit UnitID) {
	if t, ok := g.Tile(id); ok {
		t.occupant = unit
	}
}

// Vacate clears the tile only if unit is the current occupant.
func (g *Grid) Vacate(id TileID, unit UnitID) {
	if t, ok := g.Tile(id); ok && t.occupant == unit {
		t.occupant = NoUnit
	}
}

// GridDistance is the Chebyshev distance between two cells, so every
// connection of a tile (diagonals included) lies at distance 1. This is a
// deliberate departure from a Euclidean cell distance, under which a diagonal
// neighbour sits at sqrt(2) and would fall out of harvest range even though
// octile grids hand it out as an approach tile.
func GridDistance(a, b Point) int {
	di := abs(a.I - b.I)
	dj := abs(a.J - b.J)
	if di > dj {
		return di
	}
	return dj
}

func Distance(a, b Vec3) float64 {
	d := a.Sub(b)
	return math.Sqrt(d.X*d.X + d.Y*d.Y + d.Z*d.Z)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
