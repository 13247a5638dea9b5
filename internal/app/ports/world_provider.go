package ports

import (
	"context"

	"gridharvest/internal/domain/world"
)

type Terrain struct {
	Seed     int64
	Types    world.TypeMap
	InBounds world.BoundsFunc
}

type TerrainProvider interface {
	Terrain(ctx context.Context, seed int64) (Terrain, error)
}
