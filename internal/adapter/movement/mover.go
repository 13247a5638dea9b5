package movement

import (
	"math"

	"gridharvest/internal/adapter/pathfinding"
	"gridharvest/internal/domain/world"
)

const DefaultSpeed = 2.0

// GridMover walks a unit tile by tile along an A* path. It enters a tile only
// when no other unit holds it and otherwise waits in place.
type GridMover struct {
	grid     *world.Grid
	unit     world.UnitID
	mobility world.Mobility
	speed    float64

	current  world.TileID
	dest     world.TileID
	path     []world.TileID
	progress float64
	pos      world.Vec3
	facing   world.Vec3
}

// New places a mover on tile at. speed is in tiles per second.
func New(g *world.Grid, unit world.UnitID, at world.TileID, m world.Mobility, speed float64) *GridMover {
	if speed <= 0 {
		speed = DefaultSpeed
	}
	mv := &GridMover{grid: g, unit: unit, mobility: m, speed: speed, current: at, dest: at, facing: world.Vec3{Z: 1}}
	if t, ok := g.Tile(at); ok {
		mv.pos = t.WorldPos
	}
	return mv
}

// MoveTo replans toward tile. An unreachable tile keeps the order as the
// destination with an empty path, so the mover stays put without reporting
// arrival.
func (m *GridMover) MoveTo(tile world.TileID) {
	m.progress = 0
	m.snapToCurrent()
	m.dest = tile
	m.path = pathfinding.FindPath(m.grid, m.current, tile, m.mobility)
}

func (m *GridMover) HasReachedDestination() bool { return m.current == m.dest }

func (m *GridMover) FaceTile(tile world.TileID) {
	t, ok := m.grid.Tile(tile)
	if !ok {
		return
	}
	d := t.WorldPos.Sub(m.pos)
	d.Y = 0
	if n := math.Hypot(d.X, d.Z); n > 0 {
		m.facing = d.Scale(1 / n)
	}
}

func (m *GridMover) Position() world.Vec3      { return m.pos }
func (m *GridMover) Facing() world.Vec3        { return m.facing }
func (m *GridMover) Mobility() world.Mobility  { return m.mobility }
func (m *GridMover) Current() world.TileID     { return m.current }
func (m *GridMover) Destination() world.TileID { return m.dest }

// Remaining returns the tiles still to be entered.
func (m *GridMover) Remaining() []world.TileID {
	return append([]world.TileID(nil), m.path...)
}

// Advance moves along the path for dt seconds and enters at most one tile.
func (m *GridMover) Advance(dt float64) (world.TileID, bool) {
	if len(m.path) == 0 || dt <= 0 {
		return m.current, false
	}
	next, ok := m.grid.Tile(m.path[0])
	if !ok {
		m.dest, m.path = m.current, nil
		return m.current, false
	}
	if !next.FreeFor(m.unit) {
		return m.current, false
	}
	from, _ := m.grid.Tile(m.current)
	step := 1.0
	if from.I != next.I && from.J != next.J {
		step = math.Sqrt2
	}

	m.progress += dt * m.speed
	if m.progress < step {
		m.pos = lerp(from.WorldPos, next.WorldPos, m.progress/step)
		m.FaceTile(next.ID)
		return m.current, false
	}

	m.current = next.ID
	m.path = m.path[1:]
	m.progress = 0
	m.pos = next.WorldPos
	return m.current, true
}

func (m *GridMover) snapToCurrent() {
	if t, ok := m.grid.Tile(m.current); ok {
		m.pos = t.WorldPos
	}
}

func lerp(a, b world.Vec3, f float64) world.Vec3 {
	return a.Add(b.Sub(a).Scale(f))
}
