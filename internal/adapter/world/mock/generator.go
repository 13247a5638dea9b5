package mock

import (
	"gridharvest/internal/domain/world"
)

// Generator serves a fixed layout regardless of seed.
type Generator struct {
	Types world.TypeMap
}

// NewGenerator parses rows in the world layout notation, top row first.
func NewGenerator(rows ...string) Generator {
	return Generator{Types: world.ParseLayout(rows...)}
}

func (g Generator) WorldSize() int { return g.Types.Size() }

func (g Generator) Generate() world.TypeMap {
	out := world.NewTypeMap(g.Types.Size())
	for i := range g.Types {
		copy(out[i], g.Types[i])
	}
	return out
}

func (g Generator) IsInBounds(i, j int) bool {
	return i >= 0 && i < g.Types.Size() && j >= 0 && j < g.Types.Size()
}
