package replay

import (
	"context"
	"errors"
	"strings"

	"gridharvest/internal/app/ports"
	"gridharvest/internal/domain/unit"
)

var ErrInvalidRequest = errors.New("invalid replay request")

const maxLimit = 1000

type BuildReader interface {
	BuildID() string
}

type UseCase struct {
	Events ports.HarvestEventRepository
	World  BuildReader
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if req.Limit < 0 || req.Limit > maxLimit {
		return Response{}, ErrInvalidRequest
	}
	if req.OccurredFrom > 0 && req.OccurredTo > 0 && req.OccurredFrom > req.OccurredTo {
		return Response{}, ErrInvalidRequest
	}
	buildID := strings.TrimSpace(req.BuildID)
	if buildID == "" && u.World != nil {
		buildID = u.World.BuildID()
	}
	if buildID == "" {
		return Response{}, ErrInvalidRequest
	}

	events, err := u.Events.ListByBuild(ctx, buildID, req.Limit)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			events = nil
		} else {
			return Response{}, err
		}
	}
	events = filter(events, req.Kind, req.OccurredFrom, req.OccurredTo)
	return Response{BuildID: buildID, Events: events, Totals: reconstruct(events)}, nil
}

func filter(events []ports.HarvestEvent, kind string, from, to int64) []ports.HarvestEvent {
	out := make([]ports.HarvestEvent, 0, len(events))
	for _, evt := range events {
		if kind != "" && evt.Kind != kind {
			continue
		}
		ts := evt.OccurredAt.Unix()
		if from > 0 && ts < from {
			continue
		}
		if to > 0 && ts > to {
			continue
		}
		out = append(out, evt)
	}
	return out
}

// reconstruct sums the yield of the replayed extractions per resource type.
func reconstruct(events []ports.HarvestEvent) map[string]int {
	totals := map[string]int{}
	for _, evt := range events {
		if evt.Kind != string(unit.EventExtracted) {
			continue
		}
		totals[evt.ResourceType] += evt.Yield
	}
	return totals
}
