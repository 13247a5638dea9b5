package gormrepo

import (
	"context"

	"gridharvest/internal/adapter/repo/gorm/model"
	"gridharvest/internal/app/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventRepo struct {
	db *gorm.DB
}

func NewEventRepo(db *gorm.DB) EventRepo {
	return EventRepo{db: db}
}

// Append inserts a batch. Events already stored under the same event id are
// skipped so a retried flush stays idempotent.
func (r EventRepo) Append(ctx context.Context, events []ports.HarvestEvent) error {
	if len(events) == 0 {
		return nil
	}
	rows := make([]model.HarvestEvent, 0, len(events))
	for _, e := range events {
		rows = append(rows, model.HarvestEvent{
			EventID:      e.EventID,
			BuildID:      e.BuildID,
			Tick:         e.Tick,
			Kind:         e.Kind,
			UnitID:       e.UnitID,
			ResourceID:   e.ResourceID,
			ResourceType: e.ResourceType,
			Amount:       e.Amount,
			Yield:        int32(e.Yield),
			OccurredAt:   e.OccurredAt,
		})
	}
	return getDBFromCtx(ctx, r.db).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "event_id"}}, DoNothing: true}).
		Create(&rows).Error
}

func (r EventRepo) ListByBuild(ctx context.Context, buildID string, limit int) ([]ports.HarvestEvent, error) {
	rows := []model.HarvestEvent{}
	query := getDBFromCtx(ctx, r.db).
		Where(&model.HarvestEvent{BuildID: buildID}).
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{
				{Column: clause.Column{Name: "tick"}, Desc: true},
				{Column: clause.Column{Name: "id"}, Desc: true},
			},
		})
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ports.ErrNotFound
	}

	out := make([]ports.HarvestEvent, 0, len(rows))
	for _, row := range rows {
		out = append(out, ports.HarvestEvent{
			EventID:      row.EventID,
			BuildID:      row.BuildID,
			Tick:         row.Tick,
			Kind:         row.Kind,
			UnitID:       row.UnitID,
			ResourceID:   row.ResourceID,
			ResourceType: row.ResourceType,
			Amount:       row.Amount,
			Yield:        int(row.Yield),
			OccurredAt:   row.OccurredAt,
		})
	}
	return out, nil
}
