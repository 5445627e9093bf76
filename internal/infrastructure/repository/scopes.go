package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ctxKey string

// LocationIDKey is the context key for the active location
const LocationIDKey ctxKey = "location_id"

// LocationScope returns a GORM scope that filters by the location in ctx
func LocationScope(ctx context.Context) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		locationID, ok := ctx.Value(LocationIDKey).(uuid.UUID)
		if !ok {
			// no location in context: match nothing rather than everything
			return db.Where("1 = 0")
		}
		return db.Where("location_id = ?", locationID)
	}
}

// WithLocation adds location ID to context
func WithLocation(ctx context.Context, locationID uuid.UUID) context.Context {
	return context.WithValue(ctx, LocationIDKey, locationID)
}

// GetLocationID extracts location ID from context
func GetLocationID(ctx context.Context) (uuid.UUID, bool) {
	locationID, ok := ctx.Value(LocationIDKey).(uuid.UUID)
	return locationID, ok
}
