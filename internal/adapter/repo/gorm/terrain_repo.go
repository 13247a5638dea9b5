package gormrepo

import (
	"context"
	"errors"
	"strings"
	"time"

	"gridharvest/internal/adapter/repo/gorm/model"
	"gridharvest/internal/app/ports"
	"gridharvest/internal/domain/world"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TerrainRepo caches generated type maps as ASCII layouts keyed by
// (seed, size).
type TerrainRepo struct {
	db *gorm.DB
}

func NewTerrainRepo(db *gorm.DB) TerrainRepo {
	return TerrainRepo{db: db}
}

func (r TerrainRepo) Get(ctx context.Context, seed int64, size int) (world.TypeMap, error) {
	var row model.TerrainMap
	err := getDBFromCtx(ctx, r.db).
		Where(map[string]any{"seed": seed, "size": int32(size)}).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return decodeLayout(row.Layout), nil
}

func (r TerrainRepo) Save(ctx context.Context, seed int64, size int, types world.TypeMap) error {
	row := model.TerrainMap{
		Seed:      seed,
		Size:      int32(size),
		Layout:    encodeLayout(types),
		UpdatedAt: time.Now(),
	}
	return getDBFromCtx(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "seed"}, {Name: "size"}},
		DoUpdates: clause.AssignmentColumns([]string{"layout", "updated_at"}),
	}).Create(&row).Error
}

func encodeLayout(m world.TypeMap) string {
	return strings.Join(world.FormatLayout(m), "\n")
}

func decodeLayout(s string) world.TypeMap {
	return world.ParseLayout(strings.Split(s, "\n")...)
}
