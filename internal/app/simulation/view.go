package simulation

import (
	"sort"

	"gridharvest/internal/app/ports"
	"gridharvest/internal/domain/economy"
	"gridharvest/internal/domain/unit"
	"gridharvest/internal/domain/world"
)

type TileView struct {
	ID       int    `json:"id"`
	I        int    `json:"i"`
	J        int    `json:"j"`
	Type     string `json:"type"`
	Edge     bool   `json:"edge"`
	Occupant int64  `json:"occupant,omitempty"`
}

type ResourceView struct {
	ID         int64   `json:"id"`
	Type       string  `json:"type"`
	I          int     `json:"i"`
	J          int     `json:"j"`
	Amount     float64 `json:"amount"`
	Harvesters []int64 `json:"harvesters"`
}

type StructureView struct {
	ID   int64  `json:"id"`
	Kind string `json:"kind"`
	I    int    `json:"i"`
	J    int    `json:"j"`
}

type UnitView struct {
	ID          int64      `json:"id"`
	Kind        string     `json:"kind"`
	I           int        `json:"i"`
	J           int        `json:"j"`
	State       string     `json:"state"`
	Target      int64      `json:"target,omitempty"`
	Progress    float64    `json:"progress"`
	Position    world.Vec3 `json:"position"`
	Destination *[2]int    `json:"destination,omitempty"`
}

type WorldView struct {
	BuildInfo
	Tick       int64             `json:"tick"`
	Topology   string            `json:"topology"`
	Tiles      []TileView        `json:"tiles"`
	Resources  []ResourceView    `json:"resources"`
	Structures []StructureView   `json:"structures"`
	Units      []UnitView        `json:"units"`
	Economy    []economy.Balance `json:"economy"`
}

// Snapshot copies the live world into plain views. Empty tiles are omitted.
func (s *Simulation) Snapshot() (WorldView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.grid == nil {
		return WorldView{}, ports.ErrNotBuilt
	}
	out := WorldView{
		BuildInfo:  s.buildInfo(),
		Tick:       s.tick,
		Topology:   s.grid.Topology().String(),
		Tiles:      []TileView{},
		Resources:  make([]ResourceView, 0, len(s.resources)),
		Structures: make([]StructureView, 0, len(s.structures)),
		Units:      make([]UnitView, 0, len(s.units)),
		Economy:    s.ledger.Balances(),
	}
	for _, t := range s.grid.Tiles() {
		if t.Type.IsEmpty() {
			continue
		}
		out.Tiles = append(out.Tiles, TileView{
			ID:       int(t.ID),
			I:        t.I,
			J:        t.J,
			Type:     string(t.Type),
			Edge:     t.Edge,
			Occupant: int64(t.Occupant()),
		})
	}
	for _, r := range s.resources {
		out.Resources = append(out.Resources, resourceView(r))
	}
	sort.Slice(out.Resources, func(a, b int) bool { return out.Resources[a].ID < out.Resources[b].ID })
	for _, st := range s.structures {
		out.Structures = append(out.Structures, StructureView{ID: int64(st.ID), Kind: string(st.Kind), I: st.Pos.I, J: st.Pos.J})
	}
	sort.Slice(out.Structures, func(a, b int) bool { return out.Structures[a].ID < out.Structures[b].ID })
	for _, id := range s.unitIDs() {
		out.Units = append(out.Units, s.unitView(s.units[id]))
	}
	return out, nil
}

func (s *Simulation) Unit(id world.UnitID) (UnitView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.units[id]
	if !ok {
		return UnitView{}, ports.ErrNotFound
	}
	return s.unitView(u), nil
}

func (s *Simulation) Resource(id world.ResourceID) (ResourceView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.resources[id]
	if !ok {
		return ResourceView{}, ports.ErrNotFound
	}
	return resourceView(r), nil
}

func (s *Simulation) Economy() []economy.Balance {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Balances()
}

func (s *Simulation) BuildID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buildID
}

func resourceView(r *world.ResourceObject) ResourceView {
	hs := r.Harvesters()
	ids := make([]int64, 0, len(hs))
	for _, h := range hs {
		ids = append(ids, int64(h))
	}
	return ResourceView{ID: int64(r.ID), Type: string(r.Type), I: r.Pos.I, J: r.Pos.J, Amount: r.Amount(), Harvesters: ids}
}

type destinationReporter interface {
	Destination() world.TileID
}

func (s *Simulation) unitView(u *unit.Unit) UnitView {
	v := UnitView{ID: int64(u.ID), Kind: string(u.Kind), State: string(u.State())}
	if t, ok := s.grid.Tile(u.Tile); ok {
		v.I, v.J = t.I, t.J
	}
	if h, ok := u.Harvester(); ok {
		v.Progress = h.Progress()
		if target, ok := h.Target(); ok {
			v.Target = int64(target)
		}
	}
	if u.Movement != nil {
		v.Position = u.Movement.Position()
		if d, ok := u.Movement.(destinationReporter); ok && d.Destination() != u.Tile {
			if t, ok := s.grid.Tile(d.Destination()); ok {
				v.Destination = &[2]int{t.I, t.J}
			}
		}
	}
	return v
}
