package replay

import "gridharvest/internal/app/ports"

type Request struct {
	// BuildID defaults to the live build.
	BuildID      string
	Limit        int
	Kind         string
	OccurredFrom int64
	OccurredTo   int64
}

type Response struct {
	BuildID string               `json:"build_id"`
	Events  []ports.HarvestEvent `json:"events"`
	Totals  map[string]int       `json:"totals"`
}
