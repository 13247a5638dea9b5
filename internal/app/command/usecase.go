package command

import (
	"context"
	"errors"
	"strings"

	"gridharvest/internal/app/simulation"
	"gridharvest/internal/domain/unit"
	"gridharvest/internal/domain/world"
)

var ErrInvalidRequest = errors.New("invalid command request")

// maxTickDT bounds a manual step so one request cannot fast-forward the
// world arbitrarily far.
const maxTickDT = 10.0

type World interface {
	SpawnUnit(kind unit.Kind, i, j int) (simulation.UnitView, error)
	MoveUnit(id world.UnitID, i, j int) (simulation.UnitView, error)
	HarvestResource(id world.UnitID, res world.ResourceID) (simulation.UnitView, error)
	DestroyUnit(id world.UnitID) error
	Build(ctx context.Context, seed int64) (simulation.BuildInfo, error)
	Seed() int64
	Tick(ctx context.Context, dt float64) int64
}

type SpawnUseCase struct {
	World World
}

func (u SpawnUseCase) Execute(_ context.Context, req SpawnRequest) (UnitResponse, error) {
	kind := unit.Kind(strings.ToLower(strings.TrimSpace(req.Kind)))
	if !kind.Valid() || req.I < 0 || req.J < 0 {
		return UnitResponse{}, ErrInvalidRequest
	}
	v, err := u.World.SpawnUnit(kind, req.I, req.J)
	if err != nil {
		return UnitResponse{}, err
	}
	return UnitResponse{Unit: v}, nil
}

type MoveUseCase struct {
	World World
}

func (u MoveUseCase) Execute(_ context.Context, req MoveRequest) (UnitResponse, error) {
	if req.UnitID <= 0 || req.I < 0 || req.J < 0 {
		return UnitResponse{}, ErrInvalidRequest
	}
	v, err := u.World.MoveUnit(world.UnitID(req.UnitID), req.I, req.J)
	if err != nil {
		return UnitResponse{}, err
	}
	return UnitResponse{Unit: v}, nil
}

type HarvestUseCase struct {
	World World
}

func (u HarvestUseCase) Execute(_ context.Context, req HarvestRequest) (UnitResponse, error) {
	if req.UnitID <= 0 || req.ResourceID <= 0 {
		return UnitResponse{}, ErrInvalidRequest
	}
	v, err := u.World.HarvestResource(world.UnitID(req.UnitID), world.ResourceID(req.ResourceID))
	if err != nil {
		return UnitResponse{}, err
	}
	return UnitResponse{Unit: v}, nil
}

type DestroyUseCase struct {
	World World
}

func (u DestroyUseCase) Execute(_ context.Context, req DestroyRequest) error {
	if req.UnitID <= 0 {
		return ErrInvalidRequest
	}
	return u.World.DestroyUnit(world.UnitID(req.UnitID))
}

type RebuildUseCase struct {
	World World
}

func (u RebuildUseCase) Execute(ctx context.Context, req RebuildRequest) (RebuildResponse, error) {
	seed := u.World.Seed()
	if req.Seed != nil {
		seed = *req.Seed
	}
	info, err := u.World.Build(ctx, seed)
	if err != nil {
		return RebuildResponse{}, err
	}
	return RebuildResponse{Build: info}, nil
}

type TickUseCase struct {
	World World
}

func (u TickUseCase) Execute(ctx context.Context, req TickRequest) (TickResponse, error) {
	if req.DT <= 0 || req.DT > maxTickDT {
		return TickResponse{}, ErrInvalidRequest
	}
	return TickResponse{Tick: u.World.Tick(ctx, req.DT)}, nil
}
