package gormrepo

import (
	"context"
	"time"

	"worldnav/internal/adapter/repo/gorm/model"
	"worldnav/internal/domain/world"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WorldObjectRepo struct {
	db *gorm.DB
}

func NewWorldObjectRepo(db *gorm.DB) WorldObjectRepo {
	return WorldObjectRepo{db: db}
}

func (r WorldObjectRepo) List(ctx context.Context) ([]world.Object, error) {
	var rows []model.WorldObject
	if err := getDBFromCtx(ctx, r.db).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]world.Object, 0, len(rows))
	for _, m := range rows {
		out = append(out, world.Object{
			ID:       m.ObjectID,
			Kind:     world.ObjectKind(m.Kind),
			Label:    m.Label,
			Tile:     world.TileID{X: int(m.X), Y: int(m.Y)},
			Faction:  m.Faction,
			Relation: world.Relation(m.Relation),
			Quest:    m.Quest,
			Hidden:   m.Hidden,
		})
	}
	return out, nil
}

// Objects adapts the repository to the provider port the category
// builder consumes.
func (r WorldObjectRepo) Objects(ctx context.Context) ([]world.Object, error) {
	return r.List(ctx)
}

func (r WorldObjectRepo) Upsert(ctx context.Context, obj world.Object) error {
	if err := obj.Validate(); err != nil {
		return err
	}
	row := model.WorldObject{
		ObjectID:  obj.ID,
		Kind:      string(obj.Kind),
		Label:     obj.Label,
		X:         int32(obj.Tile.X),
		Y:         int32(obj.Tile.Y),
		Faction:   obj.Faction,
		Relation:  string(obj.Relation),
		Quest:     obj.Quest,
		Hidden:    obj.Hidden,
		UpdatedAt: time.Now(),
	}
	return getDBFromCtx(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "object_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"kind", "label", "x", "y", "faction", "relation", "quest", "hidden", "updated_at"}),
	}).Create(&row).Error
}
