package memory

import (
	"fmt"
	"sync"

	"gridharvest/internal/app/ports"
	"gridharvest/internal/domain/world"
)

type Store struct {
	mu      sync.RWMutex
	txMu    sync.Mutex
	events  map[string][]ports.HarvestEvent
	terrain map[string]world.TypeMap
}

func NewStore() *Store {
	return &Store{
		events:  make(map[string][]ports.HarvestEvent),
		terrain: make(map[string]world.TypeMap),
	}
}

func terrainKey(seed int64, size int) string {
	return fmt.Sprintf("%d::%d", seed, size)
}

func copyTypes(m world.TypeMap) world.TypeMap {
	out := make(world.TypeMap, len(m))
	for i := range m {
		out[i] = append([]world.TileType(nil), m[i]...)
	}
	return out
}
