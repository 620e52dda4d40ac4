// Package model holds the row types for the postgres schema. Keep the
// column tags in sync with the migrations; tools/modelgen regenerates
// these from a live database when the schema moves.
package model

import "time"

type WorldChunk struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	ChunkX    int32     `gorm:"column:chunk_x"`
	ChunkY    int32     `gorm:"column:chunk_y"`
	Tiles     []byte    `gorm:"column:tiles"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (WorldChunk) TableName() string { return "world_chunks" }

type WorldObject struct {
	ObjectID  string    `gorm:"column:object_id;primaryKey"`
	Kind      string    `gorm:"column:kind"`
	Label     string    `gorm:"column:label"`
	X         int32     `gorm:"column:x"`
	Y         int32     `gorm:"column:y"`
	Faction   string    `gorm:"column:faction"`
	Relation  string    `gorm:"column:relation"`
	Quest     string    `gorm:"column:quest"`
	Hidden    bool      `gorm:"column:hidden"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (WorldObject) TableName() string { return "world_objects" }

type NavSession struct {
	SessionID        string    `gorm:"column:session_id;primaryKey"`
	CategoryIndex    int32     `gorm:"column:category_index"`
	SubcategoryIndex int32     `gorm:"column:subcategory_index"`
	ItemIndex        int32     `gorm:"column:item_index"`
	InstanceIndex    int32     `gorm:"column:instance_index"`
	AutoJump         bool      `gorm:"column:auto_jump"`
	Version          int64     `gorm:"column:version"`
	UpdatedAt        time.Time `gorm:"column:updated_at"`
}

func (NavSession) TableName() string { return "nav_sessions" }
