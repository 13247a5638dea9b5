package command

import "gridharvest/internal/app/simulation"

type SpawnRequest struct {
	Kind string `json:"kind"`
	I    int    `json:"i"`
	J    int    `json:"j"`
}

type MoveRequest struct {
	UnitID int64 `json:"-"`
	I      int   `json:"i"`
	J      int   `json:"j"`
}

type HarvestRequest struct {
	UnitID     int64 `json:"-"`
	ResourceID int64 `json:"resource_id"`
}

type DestroyRequest struct {
	UnitID int64
}

type RebuildRequest struct {
	// Seed defaults to the seed of the live world.
	Seed *int64 `json:"seed,omitempty"`
}

type TickRequest struct {
	DT float64 `json:"dt"`
}

type UnitResponse struct {
	Unit simulation.UnitView `json:"unit"`
}

type RebuildResponse struct {
	Build simulation.BuildInfo `json:"build"`
}

type TickResponse struct {
	Tick int64 `json:"tick"`
}
