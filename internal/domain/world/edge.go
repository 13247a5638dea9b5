package world

// IsEdgeTile reports whether the non-empty tile at (i, j) borders the grid
// boundary or an empty tile on any cardinal side. Diagonals never count,
// whatever topology is used for pathing. The result depends only on the type
// map, never on which tiles have been processed.
func IsEdgeTile(types TypeMap, inBounds BoundsFunc, i, j int) bool {
	for _, o := range cardinalOffsets {
		if !solidAt(types, inBounds, i+o.di, j+o.dj) {
			return true
		}
	}
	return false
}

// ClassifyEdges maps every non-empty tile to true (edge) or false (interior).
func ClassifyEdges(types TypeMap, inBounds BoundsFunc) map[Point]bool {
	out := make(map[Point]bool)
	for i := range types {
		for j := range types[i] {
			if types[i][j].IsEmpty() {
				continue
			}
			out[Point{I: i, J: j}] = IsEdgeTile(types, inBounds, i, j)
		}
	}
	return out
}

func solidAt(types TypeMap, inBounds BoundsFunc, i, j int) bool {
	if inBounds == nil || !inBounds(i, j) || !types.has(i, j) {
		return false
	}
	return !types[i][j].IsEmpty()
}
