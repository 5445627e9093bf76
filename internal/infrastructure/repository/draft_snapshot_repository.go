package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/investify-receiving/internal/domain/entity"
	domainRepo "github.com/sangkips/investify-receiving/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type draftSnapshotRepository struct {
	db *gorm.DB
}

// NewDraftSnapshotRepository creates a draft store backed by the draft_snapshots table
func NewDraftSnapshotRepository(db *gorm.DB) domainRepo.DraftStore {
	return &draftSnapshotRepository{db: db}
}

func (r *draftSnapshotRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var snapshot entity.DraftSnapshot
	err := r.db.WithContext(ctx).First(&snapshot, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return snapshot.Payload, true, nil
}

// Set overwrites the snapshot stored under key
func (r *draftSnapshotRepository) Set(ctx context.Context, key, value string) error {
	snapshot := &entity.DraftSnapshot{
		Key:        key,
		LocationID: locationFromKey(key),
		Payload:    value,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "location_id", "updated_at"}),
	}).Create(snapshot).Error
}

func (r *draftSnapshotRepository) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Delete(&entity.DraftSnapshot{}, "key = ?", key).Error
}

func (r *draftSnapshotRepository) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("updated_at < ?", cutoff).
		Delete(&entity.DraftSnapshot{})
	return result.RowsAffected, result.Error
}

// locationFromKey reads the location id from the last segment of a draft key
func locationFromKey(key string) uuid.UUID {
	i := strings.LastIndex(key, ":")
	if i < 0 {
		return uuid.Nil
	}
	id, err := uuid.Parse(key[i+1:])
	if err != nil {
		return uuid.Nil
	}
	return id
}
