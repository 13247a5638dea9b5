package simulation

import (
	"context"
	"time"

	"gridharvest/internal/app/ports"
	"gridharvest/internal/domain/unit"
)

// Tick advances the world by dt seconds. Units update in ascending ID order
// and see each other's mutations immediately.
func (s *Simulation) Tick(ctx context.Context, dt float64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step(ctx, dt)
}

func (s *Simulation) step(ctx context.Context, dt float64) int64 {
	if s.grid == nil || dt <= 0 {
		return s.tick
	}
	s.tick++
	env := s.env()
	for _, id := range s.unitIDs() {
		s.units[id].Tick(env, dt)
	}
	if s.cfg.DespawnDepleted {
		s.despawnDepleted()
	}
	s.flush(ctx)
	return s.tick
}

// despawnDepleted removes exhausted resources. Units still targeting one
// cancel on their next update.
func (s *Simulation) despawnDepleted() {
	for _, id := range s.resourceIDs() {
		res := s.resources[id]
		if !res.Depleted() {
			continue
		}
		for _, uid := range res.Harvesters() {
			if u, ok := s.units[uid]; ok {
				u.CancelHarvesting(s.env())
			}
		}
		delete(s.resources, id)
		s.logger.Printf("resource depleted id=%d type=%s", id, res.Type)
	}
}

// flush hands buffered events to the ledger repository, the sink and the
// metrics recorder. Failures are logged and the batch is dropped.
func (s *Simulation) flush(ctx context.Context) {
	if len(s.pending) == 0 {
		return
	}
	batch := s.pending
	s.pending = nil

	if s.deps.Events != nil {
		appendEvents := func(ctx context.Context) error {
			return s.deps.Events.Append(ctx, batch)
		}
		var err error
		if s.deps.TxManager != nil {
			err = s.deps.TxManager.RunInTx(ctx, appendEvents)
		} else {
			err = appendEvents(ctx)
		}
		if err != nil {
			s.logger.Printf("flush harvest events failed tick=%d count=%d: %v", s.tick, len(batch), err)
			if s.deps.Metrics != nil {
				s.deps.Metrics.RecordFlushFailure()
			}
		}
	}
	if s.deps.Sink != nil {
		if err := s.deps.Sink.Write(batch); err != nil {
			s.logger.Printf("write event log failed tick=%d: %v", s.tick, err)
		}
	}
	if s.deps.Metrics != nil {
		for _, e := range batch {
			record(s.deps.Metrics, e)
		}
	}
}

func record(m ports.HarvestMetrics, e ports.HarvestEvent) {
	switch unit.EventKind(e.Kind) {
	case unit.EventExtracted:
		m.RecordExtraction(e.ResourceType, e.Yield)
	case unit.EventCapReached:
		m.RecordCapReached(e.ResourceType)
	case unit.EventCancelled:
		m.RecordCancel()
	}
}

// MaxTickRateHz bounds Run so the tick interval never rounds down to zero.
const MaxTickRateHz = 1000

// Run ticks the world at hz until ctx is cancelled. Rates above
// MaxTickRateHz are clamped.
func (s *Simulation) Run(ctx context.Context, hz int) error {
	if hz <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}
	if hz > MaxTickRateHz {
		hz = MaxTickRateHz
	}
	interval := time.Second / time.Duration(hz)
	dt := interval.Seconds()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Printf("simulation loop stopped: %v", ctx.Err())
			return ctx.Err()
		case <-ticker.C:
			s.Tick(ctx, dt)
		}
	}
}
