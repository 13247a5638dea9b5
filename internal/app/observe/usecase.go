package observe

import (
	"context"
	"errors"

	"gridharvest/internal/app/simulation"
	"gridharvest/internal/domain/world"
)

var ErrInvalidRequest = errors.New("invalid observe request")

type WorldReader interface {
	Snapshot() (simulation.WorldView, error)
}

type UseCase struct {
	World WorldReader
}

func (u UseCase) Execute(_ context.Context, req Request) (Response, error) {
	if req.Radius < 0 {
		return Response{}, ErrInvalidRequest
	}
	view, err := u.World.Snapshot()
	if err != nil {
		return Response{}, err
	}
	full := req.Radius == 0
	if !full {
		view = window(view, req.Center, req.Radius)
	}
	if !req.IncludeTiles {
		view.Tiles = nil
	}
	return Response{
		World: view,
		View:  View{Center: req.Center, Radius: req.Radius, Full: full},
	}, nil
}

func window(v simulation.WorldView, center world.Point, radius int) simulation.WorldView {
	in := func(i, j int) bool {
		return world.GridDistance(world.Point{I: i, J: j}, center) <= radius
	}
	tiles := make([]simulation.TileView, 0, (2*radius+1)*(2*radius+1))
	for _, t := range v.Tiles {
		if in(t.I, t.J) {
			tiles = append(tiles, t)
		}
	}
	resources := make([]simulation.ResourceView, 0, len(v.Resources))
	for _, r := range v.Resources {
		if in(r.I, r.J) {
			resources = append(resources, r)
		}
	}
	structures := make([]simulation.StructureView, 0, len(v.Structures))
	for _, s := range v.Structures {
		if in(s.I, s.J) {
			structures = append(structures, s)
		}
	}
	units := make([]simulation.UnitView, 0, len(v.Units))
	for _, u := range v.Units {
		if in(u.I, u.J) {
			units = append(units, u)
		}
	}
	v.Tiles, v.Resources, v.Structures, v.Units = tiles, resources, structures, units
	return v
}
