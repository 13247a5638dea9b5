package world

// Generator produces the tile-type map a world is built from.
type Generator interface {
	WorldSize() int
	Generate() TypeMap
	IsInBounds(i, j int) bool
}
