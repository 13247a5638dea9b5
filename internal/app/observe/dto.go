package observe

import (
	"gridharvest/internal/app/simulation"
	"gridharvest/internal/domain/world"
)

type Request struct {
	// IncludeTiles adds the tile list, which is large on full-size worlds.
	IncludeTiles bool
	// Center and Radius restrict tiles, resources, structures and units to a
	// square window. Radius 0 means the whole world.
	Center world.Point
	Radius int
}

type Response struct {
	World simulation.WorldView `json:"world"`
	View  View                 `json:"view"`
}

type View struct {
	Center world.Point `json:"center"`
	Radius int         `json:"radius"`
	Full   bool        `json:"full"`
}
