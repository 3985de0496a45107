package models

import (
	"time"

	"gorm.io/datatypes"
)

// Activity is an append-only audit record. It deliberately has no
// UpdatedAt/DeletedAt: rows are written once and never mutated.
type Activity struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	UserID     uint           `gorm:"not null" json:"user_id"`
	Action     string         `gorm:"not null" json:"action"`
	EntityType string         `gorm:"not null" json:"entity_type"`
	EntityID   uint           `gorm:"not null" json:"entity_id"`
	Details    datatypes.JSON `json:"details"`
	CreatedAt  time.Time      `json:"created_at"`
}
