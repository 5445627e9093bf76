package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/investify-receiving/internal/domain/enum"
	"gorm.io/gorm"
)

// Supplier delivers goods to a location
type Supplier struct {
	ID            uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	CreatedBy     *uuid.UUID        `gorm:"type:uuid;index" json:"created_by,omitempty"`
	Name          string            `gorm:"size:255;not null" json:"name"`
	Phone         *string           `gorm:"size:50" json:"phone,omitempty"`
	Email         *string           `gorm:"size:255" json:"email,omitempty"`
	Address       *string           `gorm:"type:text" json:"address,omitempty"`
	KRAPin        *string           `gorm:"size:50;column:kra_pin" json:"kra_pin,omitempty"`
	Type          enum.SupplierType `gorm:"size:50;default:'distributor'" json:"type"`
	AccountNumber *string           `gorm:"size:100" json:"account_number,omitempty"`
	BankName      *string           `gorm:"size:255" json:"bank_name,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
	DeletedAt     gorm.DeletedAt    `gorm:"index" json:"-"`

	// Relationships
	Receipts []GoodsReceipt `gorm:"foreignKey:SupplierID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new supplier
func (s *Supplier) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Supplier model
func (Supplier) TableName() string {
	return "suppliers"
}

// PhoneNumber returns the phone or an empty string
func (s *Supplier) PhoneNumber() string {
	if s.Phone == nil {
		return ""
	}
	return *s.Phone
}
