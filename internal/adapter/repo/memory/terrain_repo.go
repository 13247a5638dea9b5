package memory

import (
	"context"

	"gridharvest/internal/app/ports"
	"gridharvest/internal/domain/world"
)

type TerrainRepo struct {
	store *Store
}

func NewTerrainRepo(store *Store) TerrainRepo {
	return TerrainRepo{store: store}
}

func (r TerrainRepo) Get(_ context.Context, seed int64, size int) (world.TypeMap, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	m, ok := r.store.terrain[terrainKey(seed, size)]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return copyTypes(m), nil
}

func (r TerrainRepo) Save(_ context.Context, seed int64, size int, types world.TypeMap) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.terrain[terrainKey(seed, size)] = copyTypes(types)
	return nil
}
