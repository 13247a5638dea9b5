package pathfinding

import (
	"container/heap"
	"math"

	"gridharvest/internal/domain/world"
)

// FindPath returns the tiles to step through from start to goal, excluding
// start and including goal. Only connections accessible for m are followed.
// Occupancy is ignored; movers wait on occupied tiles instead. It returns nil
// when goal is unreachable and an empty path when start == goal.
func FindPath(g *world.Grid, start, goal world.TileID, m world.Mobility) []world.TileID {
	if start == goal {
		return []world.TileID{}
	}
	src, ok := g.Tile(start)
	if !ok {
		return nil
	}
	dst, ok := g.Tile(goal)
	if !ok || !dst.IsTileAccessible(m) {
		return nil
	}

	pq := &queue{}
	heap.Init(pq)
	seq := 0
	heap.Push(pq, &node{tile: src.ID, f: heuristic(g, src, dst), seq: seq})

	cameFrom := map[world.TileID]world.TileID{}
	costSoFar := map[world.TileID]float64{src.ID: 0}
	closed := map[world.TileID]bool{}

	for pq.Len() > 0 {
		current := heap.Pop(pq).(*node)
		if current.tile == goal {
			return reconstruct(cameFrom, start, goal)
		}
		if closed[current.tile] {
			continue
		}
		closed[current.tile] = true

		t, _ := g.Tile(current.tile)
		for _, c := range t.Connections() {
			if !c.Accessible(m) || closed[c.To] {
				continue
			}
			step := 1.0
			if c.Diagonal {
				step = math.Sqrt2
			}
			cost := costSoFar[current.tile] + step
			if prev, seen := costSoFar[c.To]; seen && cost >= prev {
				continue
			}
			costSoFar[c.To] = cost
			cameFrom[c.To] = current.tile
			next, _ := g.Tile(c.To)
			seq++
			heap.Push(pq, &node{tile: c.To, f: cost + heuristic(g, next, dst), seq: seq})
		}
	}
	return nil
}

// heuristic is octile distance on octile grids and Manhattan distance on
// cardinal ones. Both are admissible for their step costs.
func heuristic(g *world.Grid, a, b *world.TileData) float64 {
	di := math.Abs(float64(a.I - b.I))
	dj := math.Abs(float64(a.J - b.J))
	if g.Topology() == world.TopologyCardinal {
		return di + dj
	}
	lo, hi := math.Min(di, dj), math.Max(di, dj)
	return hi + (math.Sqrt2-1)*lo
}

func reconstruct(cameFrom map[world.TileID]world.TileID, start, goal world.TileID) []world.TileID {
	path := []world.TileID{}
	for at := goal; at != start; at = cameFrom[at] {
		path = append(path, at)
	}
	for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
		path[l], path[r] = path[r], path[l]
	}
	return path
}

type node struct {
	tile world.TileID
	f    float64
	seq  int
}

type queue []*node

func (q queue) Len() int { return len(q) }
func (q queue) Less(i, j int) bool {
	if q[i].f != q[j].f {
		return q[i].f < q[j].f
	}
	return q[i].seq < q[j].seq
}
func (q queue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *queue) Push(x interface{}) { *q = append(*q, x.(*node)) }
func (q *queue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}
