package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product is a catalog item. Prices and stock live per location in
// ProductLocation.
type Product struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CategoryID *uuid.UUID     `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Name       string         `gorm:"size:255;not null" json:"name"`
	Slug       string         `gorm:"size:255;unique;not null" json:"slug"`
	SKU        string         `gorm:"size:100;unique;not null" json:"sku"`
	Notes      *string        `gorm:"type:text" json:"notes,omitempty"`
	CreatedBy  *uuid.UUID     `gorm:"type:uuid" json:"created_by,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Category  *Category         `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Locations []ProductLocation `gorm:"foreignKey:ProductID" json:"locations,omitempty"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// ProductLocation holds the stock level and price triple of a product at one
// location. Prices are stored in minor currency units.
type ProductLocation struct {
	ProductID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"product_id"`
	LocationID     uuid.UUID `gorm:"type:uuid;primaryKey;index" json:"location_id"`
	Quantity       int64     `gorm:"default:0" json:"quantity"`
	CostPrice      int64     `gorm:"default:0" json:"cost_price"`
	RetailPrice    int64     `gorm:"default:0" json:"retail_price"`
	WholesalePrice int64     `gorm:"default:0" json:"wholesale_price"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Relationships
	Product  Product  `gorm:"foreignKey:ProductID" json:"-"`
	Location Location `gorm:"foreignKey:LocationID" json:"-"`
}

// TableName returns the table name for the ProductLocation model
func (ProductLocation) TableName() string {
	return "product_locations"
}

// Category represents a product category
type Category struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Slug      string         `gorm:"size:255;unique;not null" json:"slug"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Products []Product `gorm:"foreignKey:CategoryID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new category
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Category model
func (Category) TableName() string {
	return "categories"
}
