package unit

import "gridharvest/internal/domain/world"

type EventKind string

const (
	EventExtracted  EventKind = "extracted"
	EventCapReached EventKind = "cap_reached"
	EventCancelled  EventKind = "cancelled"
)

type Event struct {
	Kind     EventKind
	Unit     world.UnitID
	Resource world.ResourceID
	Type     world.ResourceType
	Amount   float64
	Yield    int
}
