package world

import (
	"sort"

	"github.com/zyedidia/generic/mapset"
)

type ResourceType string

const (
	ResourceGem     ResourceType = "gem"
	ResourceMineral ResourceType = "mineral"
)

type ResourceID int

// ResourceObject is a harvestable entity bound to a tile. The tile is a
// back-reference; the grid owns it.
type ResourceObject struct {
	ID   ResourceID
	Tile TileID
	Pos  Point
	Type ResourceType

	amount     float64
	harvesters mapset.Set[UnitID]
}

func NewResourceObject(id ResourceID, tile *TileData, typ ResourceType, amount float64) *ResourceObject {
	if amount < 0 {
		amount = 0
	}
	return &ResourceObject{
		ID:         id,
		Tile:       tile.ID,
		Pos:        tile.Pos(),
		Type:       typ,
		amount:     amount,
		harvesters: mapset.New[UnitID](),
	}
}

func (r *ResourceObject) Amount() float64 { return r.amount }

func (r *ResourceObject) Depleted() bool { return r.amount <= 0 }

// Harvest deducts up to amount and returns what was actually taken. The
// remaining amount never drops below zero.
func (r *ResourceObject) Harvest(amount float64) float64 {
	if amount <= 0 || r.amount <= 0 {
		return 0
	}
	if amount > r.amount {
		amount = r.amount
	}
	r.amount -= amount
	if r.amount < 1e-9 {
		r.amount = 0
	}
	return amount
}

func (r *ResourceObject) HasHarvester(unit UnitID) bool { return r.harvesters.Has(unit) }

// AddHarvester registers unit; it reports false if it was already present.
func (r *ResourceObject) AddHarvester(unit UnitID) bool {
	if r.harvesters.Has(unit) {
		return false
	}
	r.harvesters.Put(unit)
	return true
}

func (r *ResourceObject) RemoveHarvester(unit UnitID) bool {
	if !r.harvesters.Has(unit) {
		return false
	}
	r.harvesters.Remove(unit)
	return true
}

func (r *ResourceObject) HarvesterCount() int { return r.harvesters.Size() }

// Harvesters lists the registered units in ascending id order.
func (r *ResourceObject) Harvesters() []UnitID {
	out := make([]UnitID, 0, r.harvesters.Size())
	r.harvesters.Each(func(u UnitID) {
		out = append(out, u)
	})
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
