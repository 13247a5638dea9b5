package unit

import (
	"gridharvest/internal/domain/economy"
	"gridharvest/internal/domain/world"
)

type Kind string

const (
	KindHarvester Kind = "harvester"
	KindScout     Kind = "scout"
)

func (k Kind) Valid() bool {
	return k == KindHarvester || k == KindScout
}

// Mobility is the movement class a unit kind is spawned with.
func (k Kind) Mobility() world.Mobility {
	if k == KindScout {
		return world.MobilityFlying
	}
	return world.MobilityGround
}

// Movement drives a unit toward a destination tile. Advance reports the tile
// the unit stepped onto during this tick, if any.
type Movement interface {
	MoveTo(tile world.TileID)
	HasReachedDestination() bool
	FaceTile(tile world.TileID)
	Position() world.Vec3
	Mobility() world.Mobility
	Advance(dt float64) (world.TileID, bool)
}

type Economy interface {
	AddYield(t world.ResourceType, amount int)
	IsAtCap(t world.ResourceType) bool
}

type Resources interface {
	Resource(id world.ResourceID) (*world.ResourceObject, bool)
}

type Observer interface {
	OnHarvestEvent(e Event)
}

// Env carries the collaborators a unit update needs. Nothing is looked up
// globally.
type Env struct {
	Grid      *world.Grid
	Resources Resources
	Economy   Economy
	Yields    economy.YieldTable
	Observer  Observer
}

func (e Env) emit(ev Event) {
	if e.Observer != nil {
		e.Observer.OnHarvestEvent(ev)
	}
}

type BehaviorKind string

const (
	BehaviorNone    BehaviorKind = "none"
	BehaviorHarvest BehaviorKind = "harvest"
)

// Behavior is a tagged variant over the optional behavior modules. Only the
// field matching Kind is set.
type Behavior struct {
	Kind    BehaviorKind
	Harvest *Harvester
}

type Unit struct {
	ID       world.UnitID
	Kind     Kind
	Tile     world.TileID
	Movement Movement
	Behavior Behavior
}

func New(id world.UnitID, kind Kind, tile world.TileID, mv Movement, cfg HarvestConfig) *Unit {
	u := &Unit{
		ID:       id,
		Kind:     kind,
		Tile:     tile,
		Movement: mv,
		Behavior: Behavior{Kind: BehaviorNone},
	}
	if kind == KindHarvester {
		u.Behavior = Behavior{Kind: BehaviorHarvest, Harvest: NewHarvester(cfg)}
	}
	return u
}

func (u *Unit) Harvester() (*Harvester, bool) {
	if u.Behavior.Kind != BehaviorHarvest || u.Behavior.Harvest == nil {
		return nil, false
	}
	return u.Behavior.Harvest, true
}

// MoveTo issues a movement order. Movement intent always supersedes
// harvesting, so any harvest in progress is cancelled first.
func (u *Unit) MoveTo(env Env, tile world.TileID) {
	if h, ok := u.Harvester(); ok {
		h.Cancel(env, u)
	}
	u.Movement.MoveTo(tile)
}

func (u *Unit) HarvestResource(env Env, res *world.ResourceObject) {
	if h, ok := u.Harvester(); ok {
		h.HarvestResource(env, u, res)
	}
}

func (u *Unit) CancelHarvesting(env Env) {
	if h, ok := u.Harvester(); ok {
		h.Cancel(env, u)
	}
}

// Tick advances movement, commits any tile change to the grid, then runs the
// behavior module.
func (u *Unit) Tick(env Env, dt float64) {
	if u.Movement != nil {
		if next, moved := u.Movement.Advance(dt); moved && next != u.Tile {
			env.Grid.Vacate(u.Tile, u.ID)
			env.Grid.Occupy(next, u.ID)
			u.Tile = next
		}
	}
	if h, ok := u.Harvester(); ok {
		h.Tick(env, u, dt)
	}
}

type State string

const (
	StateIdle        State = "idle"
	StateApproaching State = "approaching"
	StateHarvesting  State = "harvesting"
	StateMoving      State = "moving"
)

func (u *Unit) State() State {
	if h, ok := u.Harvester(); ok {
		if s := h.State(); s != StateIdle {
			return s
		}
	}
	if u.Movement != nil && !u.Movement.HasReachedDestination() {
		return StateMoving
	}
	return StateIdle
}
