package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Location is a branch or warehouse that receives stock. Drafts, stock levels
// and prices are all scoped to a location.
type Location struct {
	ID        uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	Name      string           `gorm:"size:255;not null" json:"name"`
	Slug      string           `gorm:"size:255;unique;not null" json:"slug"`
	Address   *string          `gorm:"type:text" json:"address,omitempty"`
	Settings  LocationSettings `gorm:"type:jsonb;serializer:json" json:"settings"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	DeletedAt gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	Members []LocationMembership `gorm:"foreignKey:LocationID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new location
func (l *Location) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Location model
func (Location) TableName() string {
	return "locations"
}

// LocationMembership grants a user access to a location's receiving desk.
type LocationMembership struct {
	LocationID uuid.UUID `gorm:"type:uuid;primaryKey" json:"location_id"`
	UserID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	CreatedAt  time.Time `json:"created_at"`

	// Relationships
	Location Location `gorm:"foreignKey:LocationID" json:"-"`
	User     User     `gorm:"foreignKey:UserID" json:"-"`
}

// TableName returns the table name for the LocationMembership model
func (LocationMembership) TableName() string {
	return "location_memberships"
}

// LocationSettings holds per-location receiving preferences
type LocationSettings struct {
	Currency      string `json:"currency,omitempty"`
	Timezone      string `json:"timezone,omitempty"`
	ReceiptPrefix string `json:"receipt_prefix,omitempty"`
}

// Scan implements the sql.Scanner interface for LocationSettings
func (ls *LocationSettings) Scan(value interface{}) error {
	if value == nil {
		*ls = LocationSettings{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan LocationSettings: unsupported type")
	}

	return json.Unmarshal(bytes, ls)
}

// Value implements the driver.Valuer interface for LocationSettings
func (ls LocationSettings) Value() (driver.Value, error) {
	return json.Marshal(ls)
}

// DefaultLocationSettings returns the settings given to new locations
func DefaultLocationSettings() LocationSettings {
	return LocationSettings{
		Currency:      "KES",
		Timezone:      "Africa/Nairobi",
		ReceiptPrefix: "GRN-",
	}
}
