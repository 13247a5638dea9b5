package simulation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sort"
	"sync"
	"time"

	"gridharvest/internal/app/ports"
	"gridharvest/internal/domain/economy"
	"gridharvest/internal/domain/unit"
	"gridharvest/internal/domain/world"

	"github.com/google/uuid"
)

var (
	ErrInvalidKind  = errors.New("invalid unit kind")
	ErrNotHarvester = errors.New("unit cannot harvest")
)

// MoverFactory creates the movement capability for a freshly spawned unit.
type MoverFactory func(g *world.Grid, id world.UnitID, at world.TileID, m world.Mobility) unit.Movement

type Config struct {
	Seed            int64
	Build           world.BuildConfig
	Harvest         unit.HarvestConfig
	Yields          economy.YieldTable
	Caps            map[world.ResourceType]int
	DespawnDepleted bool
}

type Deps struct {
	Terrain   ports.TerrainProvider
	NewMover  MoverFactory
	Events    ports.HarvestEventRepository
	TxManager ports.TxManager
	Sink      ports.EventSink
	Metrics   ports.HarvestMetrics
	Now       func() time.Time
	Logger    *log.Logger
}

// Simulation owns the live world: one grid plus index-keyed stores of
// resources, structures and units. Every exported method takes the lock, so
// operator commands and ticks never interleave.
type Simulation struct {
	mu      sync.Mutex
	cfg     Config
	deps    Deps
	builder *world.Builder
	logger  *log.Logger

	buildID    string
	seed       int64
	grid       *world.Grid
	resources  resourceIndex
	structures map[world.StructureID]world.Structure
	units      map[world.UnitID]*unit.Unit
	nextUnit   world.UnitID
	ledger     *economy.Ledger
	tick       int64
	pending    []ports.HarvestEvent
}

type resourceIndex map[world.ResourceID]*world.ResourceObject

func (r resourceIndex) Resource(id world.ResourceID) (*world.ResourceObject, bool) {
	res, ok := r[id]
	return res, ok
}

func New(cfg Config, deps Deps) *Simulation {
	if cfg.Yields == nil {
		cfg.Yields = economy.DefaultYields()
	}
	if cfg.Caps == nil {
		cfg.Caps = economy.DefaultCaps()
	}
	if cfg.Build.InitialAmounts == nil {
		cfg.Build.InitialAmounts = economy.DefaultAmounts()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Simulation{
		cfg:        cfg,
		deps:       deps,
		builder:    world.NewBuilder(cfg.Build),
		logger:     logger,
		seed:       cfg.Seed,
		resources:  resourceIndex{},
		structures: map[world.StructureID]world.Structure{},
		units:      map[world.UnitID]*unit.Unit{},
		ledger:     economy.NewLedger(cfg.Caps),
	}
}

type BuildInfo struct {
	BuildID    string `json:"build_id"`
	Seed       int64  `json:"seed"`
	Size       int    `json:"size"`
	Tiles      int    `json:"tiles"`
	Resources  int    `json:"resources"`
	Structures int    `json:"structures"`
}

// Build discards the current world, including every unit, and builds a new
// one from the terrain for seed. Pending harvest events of the old world are
// flushed first.
func (s *Simulation) Build(ctx context.Context, seed int64) (BuildInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.deps.Terrain == nil {
		return BuildInfo{}, fmt.Errorf("build world: no terrain provider")
	}
	if s.deps.NewMover == nil {
		return BuildInfo{}, fmt.Errorf("build world: no mover factory")
	}
	terrain, err := s.deps.Terrain.Terrain(ctx, seed)
	if err != nil {
		return BuildInfo{}, fmt.Errorf("build world: %w", err)
	}
	s.flush(ctx)
	s.teardown()

	built := s.builder.Build(terrain.Types, terrain.InBounds)
	s.grid = built.Grid
	for _, r := range built.Resources {
		s.resources[r.ID] = r
	}
	for _, st := range built.Structures {
		s.structures[st.ID] = st
	}
	s.seed = seed
	s.buildID = uuid.NewString()

	info := s.buildInfo()
	s.logger.Printf("world built id=%s seed=%d size=%d tiles=%d resources=%d structures=%d",
		info.BuildID, info.Seed, info.Size, info.Tiles, info.Resources, info.Structures)
	return info, nil
}

// teardown drops every live reference so nothing from the previous build
// stays reachable.
func (s *Simulation) teardown() {
	s.grid = nil
	s.resources = resourceIndex{}
	s.structures = map[world.StructureID]world.Structure{}
	s.units = map[world.UnitID]*unit.Unit{}
	s.ledger = economy.NewLedger(s.cfg.Caps)
	s.tick = 0
	s.pending = nil
}

func (s *Simulation) buildInfo() BuildInfo {
	info := BuildInfo{
		BuildID:    s.buildID,
		Seed:       s.seed,
		Resources:  len(s.resources),
		Structures: len(s.structures),
	}
	if s.grid != nil {
		info.Size = s.grid.Size()
		for _, t := range s.grid.Tiles() {
			if !t.Type.IsEmpty() {
				info.Tiles++
			}
		}
	}
	return info
}

func (s *Simulation) Info() BuildInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buildInfo()
}

func (s *Simulation) Seed() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seed
}

func (s *Simulation) env() unit.Env {
	return unit.Env{
		Grid:      s.grid,
		Resources: s.resources,
		Economy:   s.ledger,
		Yields:    s.cfg.Yields,
		Observer:  s,
	}
}

// OnHarvestEvent buffers a harvester transition until the end of the tick.
// It is only called from inside locked sections.
func (s *Simulation) OnHarvestEvent(e unit.Event) {
	s.pending = append(s.pending, ports.HarvestEvent{
		EventID:      uuid.NewString(),
		BuildID:      s.buildID,
		Tick:         s.tick,
		Kind:         string(e.Kind),
		UnitID:       int64(e.Unit),
		ResourceID:   int64(e.Resource),
		ResourceType: string(e.Type),
		Amount:       e.Amount,
		Yield:        e.Yield,
		OccurredAt:   s.deps.Now(),
	})
}

func (s *Simulation) resourceIDs() []world.ResourceID {
	ids := make([]world.ResourceID, 0, len(s.resources))
	for id := range s.resources {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(a, b int) bool { return ids[a] < ids[b] })
	return ids
}

func (s *Simulation) unitIDs() []world.UnitID {
	ids := make([]world.UnitID, 0, len(s.units))
	for id := range s.units {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(a, b int) bool { return ids[a] < ids[b] })
	return ids
}
