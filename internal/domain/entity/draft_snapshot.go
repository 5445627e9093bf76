package entity

import (
	"time"

	"github.com/google/uuid"
)

// DraftSnapshot is the durable key/value slot of an in-progress goods receipt.
// There is one row per location; each save overwrites it.
type DraftSnapshot struct {
	Key        string    `gorm:"primaryKey;size:255" json:"key"`
	LocationID uuid.UUID `gorm:"type:uuid;index" json:"location_id"`
	Payload    string    `gorm:"type:text;not null" json:"payload"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `gorm:"index" json:"updated_at"`
}

// TableName returns the table name for DraftSnapshot
func (DraftSnapshot) TableName() string {
	return "draft_snapshots"
}
