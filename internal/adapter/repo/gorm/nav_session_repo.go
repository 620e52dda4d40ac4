package gormrepo

import (
	"context"
	"errors"
	"time"

	"worldnav/internal/adapter/repo/gorm/model"
	"worldnav/internal/app/ports"

	"gorm.io/gorm"
)

type NavSessionRepo struct {
	db *gorm.DB
}

func NewNavSessionRepo(db *gorm.DB) NavSessionRepo {
	return NavSessionRepo{db: db}
}

func (r NavSessionRepo) Get(ctx context.Context, sessionID string) (ports.SessionRecord, error) {
	var m model.NavSession
	if err := getDBFromCtx(ctx, r.db).Where("session_id = ?", sessionID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.SessionRecord{}, ports.ErrNotFound
		}
		return ports.SessionRecord{}, err
	}
	return ports.SessionRecord{
		SessionID:        m.SessionID,
		CategoryIndex:    int(m.CategoryIndex),
		SubcategoryIndex: int(m.SubcategoryIndex),
		ItemIndex:        int(m.ItemIndex),
		InstanceIndex:    int(m.InstanceIndex),
		AutoJump:         m.AutoJump,
		Version:          m.Version,
	}, nil
}

func (r NavSessionRepo) SaveWithVersion(ctx context.Context, rec ports.SessionRecord, expectedVersion int64) error {
	db := getDBFromCtx(ctx, r.db)
	if expectedVersion == 0 {
		m := model.NavSession{
			SessionID:        rec.SessionID,
			CategoryIndex:    int32(rec.CategoryIndex),
			SubcategoryIndex: int32(rec.SubcategoryIndex),
			ItemIndex:        int32(rec.ItemIndex),
			InstanceIndex:    int32(rec.InstanceIndex),
			AutoJump:         rec.AutoJump,
			Version:          rec.Version,
			UpdatedAt:        time.Now(),
		}
		return db.Create(&m).Error
	}

	updates := map[string]any{
		"category_index":    int32(rec.CategoryIndex),
		"subcategory_index": int32(rec.SubcategoryIndex),
		"item_index":        int32(rec.ItemIndex),
		"instance_index":    int32(rec.InstanceIndex),
		"auto_jump":         rec.AutoJump,
		"version":           rec.Version,
		"updated_at":        time.Now(),
	}
	res := db.Model(&model.NavSession{}).
		Where("session_id = ? AND version = ?", rec.SessionID, expectedVersion).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}
