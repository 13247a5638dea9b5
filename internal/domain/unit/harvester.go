package unit

import (
	"math"

	"gridharvest/internal/domain/economy"
	"gridharvest/internal/domain/world"
)

type HarvestConfig struct {
	Threshold float64
	Speed     float64
}

func DefaultHarvestConfig() HarvestConfig {
	return HarvestConfig{Threshold: economy.HarvestThreshold, Speed: economy.HarvestSpeed}
}

// Harvester is the harvesting behavior module. Progress toward the next
// extraction survives cancels and retargets.
type Harvester struct {
	cfg        HarvestConfig
	progress   float64
	target     world.ResourceID
	harvesting bool
}

func NewHarvester(cfg HarvestConfig) *Harvester {
	def := DefaultHarvestConfig()
	if cfg.Threshold <= 0 {
		cfg.Threshold = def.Threshold
	}
	if cfg.Speed <= 0 {
		cfg.Speed = def.Speed
	}
	return &Harvester{cfg: cfg}
}

func (h *Harvester) Progress() float64 { return h.progress }

func (h *Harvester) IsHarvesting() bool { return h.harvesting }

// Target returns the targeted resource, if any.
func (h *Harvester) Target() (world.ResourceID, bool) {
	return h.target, h.target != 0
}

func (h *Harvester) State() State {
	switch {
	case h.target == 0:
		return StateIdle
	case h.harvesting:
		return StateHarvesting
	default:
		return StateApproaching
	}
}

// HarvestResource targets res and sends u to the nearest free, accessible
// tile connected to it. It does nothing when res is already the target, when
// its type is capped, or when no such tile exists.
func (h *Harvester) HarvestResource(env Env, u *Unit, res *world.ResourceObject) {
	if res == nil || res.ID == h.target || env.Economy.IsAtCap(res.Type) {
		return
	}
	h.Cancel(env, u)

	resTile, ok := env.Grid.Tile(res.Tile)
	if !ok {
		return
	}
	mobility := u.Movement.Mobility()
	from := u.Movement.Position()

	best := world.NoTile
	bestDist := math.Inf(1)
	for _, c := range resTile.Connections() {
		if !c.Accessible(mobility) {
			continue
		}
		t, ok := env.Grid.Tile(c.To)
		if !ok || !t.FreeFor(u.ID) {
			continue
		}
		if d := world.Distance(t.WorldPos, from); d < bestDist {
			best, bestDist = t.ID, d
		}
	}
	if best == world.NoTile {
		return
	}

	u.Movement.MoveTo(best)
	h.target = res.ID
}

func (h *Harvester) Tick(env Env, u *Unit, dt float64) {
	if h.target == 0 {
		return
	}
	res, ok := env.Resources.Resource(h.target)
	if !ok {
		h.Cancel(env, u)
		return
	}
	// A type capped by another harvester stops this one before it can
	// report again.
	if env.Economy.IsAtCap(res.Type) {
		h.Cancel(env, u)
		return
	}
	tile, ok := env.Grid.Tile(u.Tile)
	if !ok {
		h.Cancel(env, u)
		return
	}

	inRange := world.GridDistance(tile.Pos(), res.Pos) <= 1
	if inRange && u.Movement.HasReachedDestination() && res.Amount() > 0 {
		u.Movement.FaceTile(res.Tile)

		h.progress += dt * h.cfg.Speed
		if h.progress >= h.cfg.Threshold {
			h.progress = 0
			taken := res.Harvest(h.cfg.Threshold)
			yield := env.Yields.For(res.Type)
			env.Economy.AddYield(res.Type, yield)
			env.emit(Event{Kind: EventExtracted, Unit: u.ID, Resource: res.ID, Type: res.Type, Amount: taken, Yield: yield})
			if env.Economy.IsAtCap(res.Type) {
				env.emit(Event{Kind: EventCapReached, Unit: u.ID, Resource: res.ID, Type: res.Type})
				h.Cancel(env, u)
				return
			}
		}
		h.harvesting = true
		res.AddHarvester(u.ID)
	} else if h.harvesting {
		h.Cancel(env, u)
	}
}

// Cancel detaches u from its target. It is a no-op without a target and never
// touches the accumulated progress.
func (h *Harvester) Cancel(env Env, u *Unit) {
	if h.target == 0 {
		h.harvesting = false
		return
	}
	target := h.target
	var typ world.ResourceType
	if env.Resources != nil {
		if res, ok := env.Resources.Resource(target); ok {
			res.RemoveHarvester(u.ID)
			typ = res.Type
		}
	}
	h.target = 0
	h.harvesting = false
	env.emit(Event{Kind: EventCancelled, Unit: u.ID, Resource: target, Type: typ})
}
