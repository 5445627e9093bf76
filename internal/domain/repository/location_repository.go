package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/investify-receiving/internal/domain/entity"
)

// LocationRepository defines the interface for location data operations
type LocationRepository interface {
	// GetByID retrieves a location by ID
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Location, error)

	// ListForUser retrieves the locations a user belongs to
	ListForUser(ctx context.Context, userID uuid.UUID) ([]entity.Location, error)

	// AddMember grants a user access to a location
	AddMember(ctx context.Context, membership *entity.LocationMembership) error

	// IsMember checks if a user belongs to a location
	IsMember(ctx context.Context, locationID, userID uuid.UUID) (bool, error)
}
