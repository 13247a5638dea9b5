package memory

import (
	"context"

	"gridharvest/internal/app/ports"
)

type EventRepo struct {
	store *Store
}

func NewEventRepo(store *Store) EventRepo {
	return EventRepo{store: store}
}

func (r EventRepo) Append(_ context.Context, events []ports.HarvestEvent) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, e := range events {
		r.store.events[e.BuildID] = append(r.store.events[e.BuildID], e)
	}
	return nil
}

func (r EventRepo) ListByBuild(_ context.Context, buildID string, limit int) ([]ports.HarvestEvent, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	events := r.store.events[buildID]
	if len(events) == 0 {
		return nil, ports.ErrNotFound
	}
	n := len(events)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]ports.HarvestEvent, 0, n)
	for i := len(events) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, events[i])
	}
	return out, nil
}
