package unit

import (
	"math"
	"testing"

	"gridharvest/internal/domain/economy"
	"gridharvest/internal/domain/world"
)

var plainMineral = []string{
	".....",
	".....",
	"..M..",
	".....",
	".....",
}

func TestHarvestResource_PicksNearestFreeTileFirstOnTies(t *testing.T) {
	f := newFixture(world.TopologyCardinal, nil, plainMineral...)
	u, mv := f.spawn(1, 0, 0)
	res := f.resourceAt(2, 2)

	u.HarvestResource(f.env, res)

	// S (2,1) and W (1,2) are equally close; S comes first in connection order.
	if len(mv.moves) != 1 || mv.moves[0] != f.tile(2, 1) {
		t.Fatalf("moves = %v, want [tile(2,1)]", mv.moves)
	}
	if got, ok := u.Behavior.Harvest.Target(); !ok || got != res.ID {
		t.Fatalf("target = %v,%v, want %v", got, ok, res.ID)
	}
	if u.State() != StateApproaching {
		t.Fatalf("state = %s, want approaching", u.State())
	}
}

func TestHarvestResource_SkipsOccupiedTiles(t *testing.T) {
	f := newFixture(world.TopologyCardinal, nil, plainMineral...)
	u, mv := f.spawn(1, 0, 0)
	f.spawn(2, 2, 1)

	u.HarvestResource(f.env, f.resourceAt(2, 2))

	if len(mv.moves) != 1 || mv.moves[0] != f.tile(1, 2) {
		t.Fatalf("moves = %v, want [tile(1,2)]", mv.moves)
	}
}

func TestHarvestResource_SelectsSmallestStraightLineDistance(t *testing.T) {
	m := world.NewTypeMap(5)
	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			m[i][j] = world.TileGround
		}
	}
	m[2][2] = world.TileMineral
	built := world.NewBuilder(world.BuildConfig{
		Topology:       world.TopologyCardinal,
		TileSize:       2,
		InitialAmounts: economy.DefaultAmounts(),
	}).Build(m, world.SquareBounds(5))
	g := built.Grid
	res := built.Resources[0]
	env := Env{Grid: g, Resources: resourceMap{res.ID: res}, Economy: economy.NewLedger(nil), Yields: economy.DefaultYields()}

	// West neighbour is taken, leaving N, E and S eligible.
	west, _ := g.At(1, 2)
	g.Occupy(west.ID, 99)

	start, _ := g.At(0, 0)
	mv := newFakeMover(g, start.ID)
	mv.pos = world.Vec3{X: 0.0625, Y: math.Sqrt(0.98046875), Z: -1.625}
	u := New(1, KindHarvester, start.ID, mv, DefaultHarvestConfig())

	north, _ := g.At(2, 3)
	east, _ := g.At(3, 2)
	south, _ := g.At(2, 1)
	for _, c := range []struct {
		tile *world.TileData
		want float64
	}{{north, 3.0}, {east, 1.5}, {south, 2.0}} {
		if d := world.Distance(c.tile.WorldPos, mv.pos); math.Abs(d-c.want) > 1e-9 {
			t.Fatalf("distance to %v = %v, want %v", c.tile.Pos(), d, c.want)
		}
	}

	u.HarvestResource(env, res)

	if len(mv.moves) != 1 || mv.moves[0] != east.ID {
		t.Fatalf("moves = %v, want east tile %d", mv.moves, east.ID)
	}
}

func TestHarvestResource_NoEligibleTileStaysIdle(t *testing.T) {
	f := newFixture(world.TopologyCardinal, nil,
		".....",
		"..~..",
		".~M~.",
		"..~..",
		".....",
	)
	u, mv := f.spawn(1, 0, 0)
	u.HarvestResource(f.env, f.resourceAt(2, 2))

	if len(mv.moves) != 0 {
		t.Fatalf("ground unit must not move, moves=%v", mv.moves)
	}
	if _, ok := u.Behavior.Harvest.Target(); ok {
		t.Fatalf("ground unit must have no target")
	}

	mv.mobility = world.MobilityFlying
	u.HarvestResource(f.env, f.resourceAt(2, 2))
	if len(mv.moves) != 1 {
		t.Fatalf("flying unit must reach the water ring, moves=%v", mv.moves)
	}
}

func TestHarvestResource_IgnoresCurrentTargetAndCappedTypes(t *testing.T) {
	f := newFixture(world.TopologyCardinal, map[world.ResourceType]int{world.ResourceGem: 5},
		".....",
		".G...",
		".....",
		"...M.",
		".....",
	)
	u, mv := f.spawn(1, 0, 0)
	mineral := f.resourceAt(3, 1)

	u.HarvestResource(f.env, mineral)
	u.HarvestResource(f.env, mineral)
	if len(mv.moves) != 1 {
		t.Fatalf("retargeting the same resource must be a no-op, moves=%v", mv.moves)
	}

	f.ledger.AddYield(world.ResourceGem, 5)
	u.HarvestResource(f.env, f.resourceAt(1, 3))
	if len(mv.moves) != 1 {
		t.Fatalf("capped type must be ignored, moves=%v", mv.moves)
	}
	if got, _ := u.Behavior.Harvest.Target(); got != mineral.ID {
		t.Fatalf("capped request must keep the existing target, got %v", got)
	}
}

func TestTick_AccumulatesAndExtracts(t *testing.T) {
	f := newFixture(world.TopologyCardinal, nil, plainMineral...)
	u, mv := f.spawn(1, 0, 0)
	res := f.resourceAt(2, 2)
	u.HarvestResource(f.env, res)

	// 5 ticks x 0.25s x speed 0.5 = 0.625 progress over a 0.25 threshold.
	for i := 0; i < 5; i++ {
		u.Tick(f.env, 0.25)
	}

	h := u.Behavior.Harvest
	if got := f.events.count(EventExtracted); got != 2 {
		t.Fatalf("extractions = %d, want 2", got)
	}
	if got := h.Progress(); got != 0.125 {
		t.Fatalf("leftover progress = %v, want 0.125", got)
	}
	if got := f.ledger.Total(world.ResourceMineral); got != 2*economy.MineralYieldPerExtraction {
		t.Fatalf("mineral total = %d", got)
	}
	if got := res.Amount(); got != 99.5 {
		t.Fatalf("resource amount = %v, want 99.5", got)
	}
	if !h.IsHarvesting() || !res.HasHarvester(u.ID) || res.HarvesterCount() != 1 {
		t.Fatalf("unit must be registered exactly once while harvesting")
	}
	if u.Tile != f.tile(2, 1) {
		t.Fatalf("unit tile = %d, want tile(2,1)", u.Tile)
	}
	if tile, _ := f.grid.At(2, 1); tile.Occupant() != u.ID {
		t.Fatalf("destination must be occupied by the unit")
	}
	if len(mv.faced) == 0 || mv.faced[len(mv.faced)-1] != res.Tile {
		t.Fatalf("harvester must face the resource tile")
	}
}

func TestCancel_KeepsProgressForNextHarvest(t *testing.T) {
	f := newFixture(world.TopologyCardinal, nil, plainMineral...)
	u, _ := f.spawn(1, 0, 0)
	res := f.resourceAt(2, 2)
	u.HarvestResource(f.env, res)
	u.Tick(f.env, 0.25)

	u.CancelHarvesting(f.env)
	h := u.Behavior.Harvest
	if h.Progress() != 0.125 {
		t.Fatalf("cancel must keep progress, got %v", h.Progress())
	}
	if res.HasHarvester(u.ID) || h.IsHarvesting() || u.State() != StateIdle {
		t.Fatalf("cancel must detach the unit")
	}

	u.HarvestResource(f.env, res)
	u.Tick(f.env, 0.25)
	if got := f.events.count(EventExtracted); got != 1 {
		t.Fatalf("carried progress must complete an extraction in one tick, got %d", got)
	}
}

func TestCancel_IsIdempotent(t *testing.T) {
	f := newFixture(world.TopologyCardinal, nil, plainMineral...)
	u, _ := f.spawn(1, 0, 0)
	res := f.resourceAt(2, 2)

	u.CancelHarvesting(f.env)
	if len(*f.events) != 0 {
		t.Fatalf("cancel without target must not emit events")
	}

	u.HarvestResource(f.env, res)
	u.Tick(f.env, 0.25)
	u.CancelHarvesting(f.env)
	first := *u.Behavior.Harvest
	u.CancelHarvesting(f.env)
	if *u.Behavior.Harvest != first {
		t.Fatalf("second cancel changed state: %+v -> %+v", first, *u.Behavior.Harvest)
	}
	if got := f.events.count(EventCancelled); got != 1 {
		t.Fatalf("cancelled events = %d, want 1", got)
	}
}

func TestMoveTo_CancelsHarvest(t *testing.T) {
	f := newFixture(world.TopologyCardinal, nil, plainMineral...)
	u, mv := f.spawn(1, 0, 0)
	res := f.resourceAt(2, 2)
	u.HarvestResource(f.env, res)
	u.Tick(f.env, 0.1)
	if !u.Behavior.Harvest.IsHarvesting() {
		t.Fatalf("expected harvesting before redirect")
	}

	u.MoveTo(f.env, f.tile(4, 4))

	if u.Behavior.Harvest.IsHarvesting() || res.HasHarvester(u.ID) {
		t.Fatalf("move order must cancel harvesting")
	}
	if _, ok := u.Behavior.Harvest.Target(); ok {
		t.Fatalf("move order must clear the target")
	}
	if mv.dest != f.tile(4, 4) {
		t.Fatalf("move order not forwarded to movement")
	}
}

func TestTick_CancelsWhenLeavingRangeOrDepleted(t *testing.T) {
	f := newFixture(world.TopologyCardinal, nil, plainMineral...)
	u, mv := f.spawn(1, 0, 0)
	res := f.resourceAt(2, 2)
	u.HarvestResource(f.env, res)
	u.Tick(f.env, 0.1)

	// Destination changed underneath the harvester.
	mv.arrive = false
	mv.dest = f.tile(4, 4)
	u.Tick(f.env, 0.1)
	if _, ok := u.Behavior.Harvest.Target(); ok || res.HasHarvester(u.ID) {
		t.Fatalf("changing destination must cancel")
	}

	mv.arrive = true
	mv.dest = mv.current
	u.HarvestResource(f.env, res)
	u.Tick(f.env, 0.1)
	res.Harvest(res.Amount())
	u.Tick(f.env, 0.1)
	if _, ok := u.Behavior.Harvest.Target(); ok || res.HasHarvester(u.ID) {
		t.Fatalf("depleted resource must cancel")
	}
}

func TestTick_CancelsWhenTargetDisappears(t *testing.T) {
	f := newFixture(world.TopologyCardinal, nil, plainMineral...)
	u, _ := f.spawn(1, 0, 0)
	res := f.resourceAt(2, 2)
	u.HarvestResource(f.env, res)

	delete(f.res, res.ID)
	u.Tick(f.env, 0.1)
	if u.State() != StateIdle {
		t.Fatalf("state = %s, want idle", u.State())
	}
}

func TestTick_CapStopsEveryHarvesterOfThatType(t *testing.T) {
	f := newFixture(world.TopologyCardinal, map[world.ResourceType]int{world.ResourceMineral: 20}, plainMineral...)
	a, _ := f.spawn(1, 0, 0)
	b, _ := f.spawn(2, 4, 4)
	res := f.resourceAt(2, 2)
	a.HarvestResource(f.env, res)
	b.HarvestResource(f.env, res)

	a.Tick(f.env, 0.25)
	b.Tick(f.env, 0.25)
	if res.HarvesterCount() != 2 {
		t.Fatalf("both harvesters must share the resource, got %d", res.HarvesterCount())
	}

	a.Tick(f.env, 0.25)
	if !f.ledger.IsAtCap(world.ResourceMineral) {
		t.Fatalf("expected cap after first extraction")
	}
	if f.events.count(EventCapReached) != 1 {
		t.Fatalf("expected a cap event")
	}
	for i := 0; i < 10; i++ {
		a.Tick(f.env, 0.25)
		b.Tick(f.env, 0.25)
	}
	if got := f.ledger.Total(world.ResourceMineral); got != 20 {
		t.Fatalf("no yield may follow the cap, total=%d", got)
	}
	if a.State() != StateIdle || b.State() != StateIdle || res.HarvesterCount() != 0 {
		t.Fatalf("capped harvesters must be idle and detached")
	}
}

func TestTick_DiagonalNeighbourIsInRange(t *testing.T) {
	f := newFixture(world.TopologyOctile, nil,
		"...",
		".M.",
		"...",
	)
	u, _ := f.spawn(1, 0, 0)
	res := f.resourceAt(1, 1)
	u.HarvestResource(f.env, res)
	u.Tick(f.env, 0.5)
	if f.events.count(EventExtracted) != 1 {
		t.Fatalf("diagonal neighbour must be able to harvest")
	}
}

func TestScoutHasNoHarvestBehavior(t *testing.T) {
	f := newFixture(world.TopologyCardinal, nil, plainMineral...)
	at := f.tile(0, 0)
	s := New(7, KindScout, at, newFakeMover(f.grid, at), DefaultHarvestConfig())
	s.HarvestResource(f.env, f.resourceAt(2, 2))
	s.CancelHarvesting(f.env)
	if _, ok := s.Harvester(); ok || s.Behavior.Kind != BehaviorNone {
		t.Fatalf("scout must not carry a harvester")
	}
	if KindScout.Mobility() != world.MobilityFlying || KindHarvester.Mobility() != world.MobilityGround {
		t.Fatalf("unexpected kind mobility")
	}
}
