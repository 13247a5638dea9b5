package unit

import (
	"gridharvest/internal/domain/economy"
	"gridharvest/internal/domain/world"
)

type fakeMover struct {
	grid     *world.Grid
	current  world.TileID
	dest     world.TileID
	pos      world.Vec3
	mobility world.Mobility
	faced    []world.TileID
	moves    []world.TileID
	// arrive teleports the unit to its destination on the next Advance.
	arrive bool
}

func newFakeMover(g *world.Grid, at world.TileID) *fakeMover {
	t, _ := g.Tile(at)
	return &fakeMover{grid: g, current: at, dest: at, pos: t.WorldPos, arrive: true}
}

func (m *fakeMover) MoveTo(tile world.TileID) {
	m.dest = tile
	m.moves = append(m.moves, tile)
}

func (m *fakeMover) HasReachedDestination() bool { return m.current == m.dest }
func (m *fakeMover) FaceTile(tile world.TileID)  { m.faced = append(m.faced, tile) }
func (m *fakeMover) Position() world.Vec3        { return m.pos }
func (m *fakeMover) Mobility() world.Mobility    { return m.mobility }

func (m *fakeMover) Advance(float64) (world.TileID, bool) {
	if !m.arrive || m.current == m.dest {
		return m.current, false
	}
	m.current = m.dest
	if t, ok := m.grid.Tile(m.dest); ok {
		m.pos = t.WorldPos
	}
	return m.current, true
}

type resourceMap map[world.ResourceID]*world.ResourceObject

func (r resourceMap) Resource(id world.ResourceID) (*world.ResourceObject, bool) {
	res, ok := r[id]
	return res, ok
}

type eventLog []Event

func (l *eventLog) OnHarvestEvent(e Event) { *l = append(*l, e) }

func (l eventLog) count(kind EventKind) int {
	n := 0
	for _, e := range l {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

type fixture struct {
	grid   *world.Grid
	res    resourceMap
	ledger *economy.Ledger
	events *eventLog
	env    Env
}

// newFixture builds a small world from rows (top row first). '.' ground,
// '~' water, 'G' gem mine, 'M' mineral, ' ' empty.
func newFixture(topo world.Topology, caps map[world.ResourceType]int, rows ...string) *fixture {
	m := world.ParseLayout(rows...)
	built := world.NewBuilder(world.BuildConfig{
		Topology:       topo,
		TileSize:       1,
		InitialAmounts: map[world.ResourceType]float64{world.ResourceGem: 100, world.ResourceMineral: 100},
	}).Build(m, world.SquareBounds(m.Size()))

	f := &fixture{
		grid:   built.Grid,
		res:    resourceMap{},
		ledger: economy.NewLedger(caps),
		events: &eventLog{},
	}
	for _, r := range built.Resources {
		f.res[r.ID] = r
	}
	f.env = Env{
		Grid:      f.grid,
		Resources: f.res,
		Economy:   f.ledger,
		Yields:    economy.DefaultYields(),
		Observer:  f.events,
	}
	return f
}

func (f *fixture) tile(i, j int) world.TileID {
	t, ok := f.grid.At(i, j)
	if !ok {
		panic("tile out of bounds")
	}
	return t.ID
}

func (f *fixture) resourceAt(i, j int) *world.ResourceObject {
	for _, r := range f.res {
		if r.Pos == (world.Point{I: i, J: j}) {
			return r
		}
	}
	panic("no resource at tile")
}

// spawn places a harvester on (i, j) with a binary-exact harvest config:
// threshold 0.25, speed 0.5.
func (f *fixture) spawn(id world.UnitID, i, j int) (*Unit, *fakeMover) {
	at := f.tile(i, j)
	mv := newFakeMover(f.grid, at)
	u := New(id, KindHarvester, at, mv, HarvestConfig{Threshold: 0.25, Speed: 0.5})
	f.grid.Occupy(at, id)
	return u, mv
}
