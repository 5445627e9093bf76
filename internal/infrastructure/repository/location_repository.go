package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/investify-receiving/internal/domain/entity"
	domainRepo "github.com/sangkips/investify-receiving/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type locationRepository struct {
	db *gorm.DB
}

// NewLocationRepository creates a new location repository
func NewLocationRepository(db *gorm.DB) domainRepo.LocationRepository {
	return &locationRepository{db: db}
}

func (r *locationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Location, error) {
	var location entity.Location
	err := r.db.WithContext(ctx).First(&location, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &location, err
}

func (r *locationRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]entity.Location, error) {
	var locations []entity.Location
	err := r.db.WithContext(ctx).
		Joins("JOIN location_memberships ON location_memberships.location_id = locations.id").
		Where("location_memberships.user_id = ?", userID).
		Order("locations.name ASC").
		Find(&locations).Error
	return locations, err
}

// AddMember grants access; adding an existing member is a no-op
func (r *locationRepository) AddMember(ctx context.Context, membership *entity.LocationMembership) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(membership).Error
}

func (r *locationRepository) IsMember(ctx context.Context, locationID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.LocationMembership{}).
		Where("location_id = ? AND user_id = ?", locationID, userID).
		Count(&count).Error
	return count > 0, err
}
