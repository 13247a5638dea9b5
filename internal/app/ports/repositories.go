package ports

import (
	"context"
	"time"

	"gridharvest/internal/domain/world"
)

// HarvestEvent is the persisted form of a harvester transition.
type HarvestEvent struct {
	EventID      string    `json:"event_id"`
	BuildID      string    `json:"build_id"`
	Tick         int64     `json:"tick"`
	Kind         string    `json:"kind"`
	UnitID       int64     `json:"unit_id"`
	ResourceID   int64     `json:"resource_id"`
	ResourceType string    `json:"resource_type"`
	Amount       float64   `json:"amount"`
	Yield        int       `json:"yield"`
	OccurredAt   time.Time `json:"occurred_at"`
}

type HarvestEventRepository interface {
	Append(ctx context.Context, events []HarvestEvent) error
	// ListByBuild returns the newest events first.
	ListByBuild(ctx context.Context, buildID string, limit int) ([]HarvestEvent, error)
}

type TerrainRepository interface {
	Get(ctx context.Context, seed int64, size int) (world.TypeMap, error)
	Save(ctx context.Context, seed int64, size int, types world.TypeMap) error
}

// EventSink receives every flushed batch after it has been persisted.
type EventSink interface {
	Write(events []HarvestEvent) error
}
