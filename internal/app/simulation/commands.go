package simulation

import (
	"fmt"

	"gridharvest/internal/app/ports"
	"gridharvest/internal/domain/unit"
	"gridharvest/internal/domain/world"
)

// SpawnUnit places a new unit of kind on tile (i, j).
func (s *Simulation) SpawnUnit(kind unit.Kind, i, j int) (UnitView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !kind.Valid() {
		return UnitView{}, fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}
	if s.grid == nil {
		return UnitView{}, ports.ErrNotBuilt
	}
	tile, ok := s.grid.At(i, j)
	if !ok || tile.Type.IsEmpty() {
		return UnitView{}, fmt.Errorf("tile (%d,%d): %w", i, j, ports.ErrNotFound)
	}
	if !tile.IsTileAccessible(kind.Mobility()) || !tile.IsFree() {
		return UnitView{}, fmt.Errorf("tile (%d,%d): %w", i, j, ports.ErrTileBlocked)
	}
	u := s.spawn(kind, tile)
	return s.unitView(u), nil
}

// SpawnNear spawns on (i, j) when that tile is usable, otherwise on the usable
// tile closest to the grid centre.
func (s *Simulation) SpawnNear(kind unit.Kind, i, j int) (UnitView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !kind.Valid() {
		return UnitView{}, fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}
	if s.grid == nil {
		return UnitView{}, ports.ErrNotBuilt
	}
	m := kind.Mobility()
	if tile, ok := s.grid.At(i, j); ok && tile.IsTileAccessible(m) && tile.IsFree() {
		return s.unitView(s.spawn(kind, tile)), nil
	}

	centre := world.Point{I: s.grid.Size() / 2, J: s.grid.Size() / 2}
	var best *world.TileData
	bestDist := -1
	tiles := s.grid.Tiles()
	for k := range tiles {
		t := &tiles[k]
		if !t.IsTileAccessible(m) || !t.IsFree() {
			continue
		}
		if d := world.GridDistance(t.Pos(), centre); best == nil || d < bestDist {
			best, bestDist = t, d
		}
	}
	if best == nil {
		return UnitView{}, fmt.Errorf("spawn %s: %w", kind, ports.ErrTileBlocked)
	}
	return s.unitView(s.spawn(kind, best)), nil
}

func (s *Simulation) spawn(kind unit.Kind, tile *world.TileData) *unit.Unit {
	s.nextUnit++
	id := s.nextUnit
	var mv unit.Movement
	if s.deps.NewMover != nil {
		mv = s.deps.NewMover(s.grid, id, tile.ID, kind.Mobility())
	}
	u := unit.New(id, kind, tile.ID, mv, s.cfg.Harvest)
	s.grid.Occupy(tile.ID, id)
	s.units[id] = u
	s.logger.Printf("unit spawned id=%d kind=%s tile=(%d,%d)", id, kind, tile.I, tile.J)
	return u
}

// DestroyUnit cancels the unit's harvest, frees its tile and removes it.
func (s *Simulation) DestroyUnit(id world.UnitID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.units[id]
	if !ok {
		return fmt.Errorf("unit %d: %w", id, ports.ErrNotFound)
	}
	u.CancelHarvesting(s.env())
	s.grid.Vacate(u.Tile, u.ID)
	delete(s.units, id)
	return nil
}

// MoveUnit orders a unit to tile (i, j). Any harvest in progress is cancelled.
func (s *Simulation) MoveUnit(id world.UnitID, i, j int) (UnitView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.units[id]
	if !ok {
		return UnitView{}, fmt.Errorf("unit %d: %w", id, ports.ErrNotFound)
	}
	tile, ok := s.grid.At(i, j)
	if !ok || tile.Type.IsEmpty() {
		return UnitView{}, fmt.Errorf("tile (%d,%d): %w", i, j, ports.ErrNotFound)
	}
	if u.Movement == nil || !tile.IsTileAccessible(u.Movement.Mobility()) {
		return UnitView{}, fmt.Errorf("tile (%d,%d): %w", i, j, ports.ErrTileBlocked)
	}
	u.MoveTo(s.env(), tile.ID)
	return s.unitView(u), nil
}

// HarvestResource targets a resource with a harvester. Capped or already
// targeted resources leave the unit unchanged.
func (s *Simulation) HarvestResource(id world.UnitID, resID world.ResourceID) (UnitView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.units[id]
	if !ok {
		return UnitView{}, fmt.Errorf("unit %d: %w", id, ports.ErrNotFound)
	}
	if _, ok := u.Harvester(); !ok {
		return UnitView{}, fmt.Errorf("unit %d: %w", id, ErrNotHarvester)
	}
	res, ok := s.resources[resID]
	if !ok {
		return UnitView{}, fmt.Errorf("resource %d: %w", resID, ports.ErrNotFound)
	}
	u.HarvestResource(s.env(), res)
	return s.unitView(u), nil
}
