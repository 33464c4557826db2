package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/squadcheckin/checkin-api/models"
	"github.com/squadcheckin/checkin-api/services"
)

// CheckinRepository is the gorm-backed event log store.
type CheckinRepository struct {
	db *gorm.DB
}

// NewCheckinRepository creates a CheckinRepository.
func NewCheckinRepository(db *gorm.DB) *CheckinRepository {
	return &CheckinRepository{db: db}
}

// FindByUserSince returns the user's check-in at or after since, or nil.
func (r *CheckinRepository) FindByUserSince(ctx context.Context, userID uint, since time.Time) (*models.Checkin, error) {
	var checkin models.Checkin
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND timestamp >= ?", userID, since).
		First(&checkin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &checkin, nil
}

// AnySince reports whether any check-in exists at or after since.
func (r *CheckinRepository) AnySince(ctx context.Context, since time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Checkin{}).
		Where("timestamp >= ?", since).
		Limit(1).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// LastByUser returns the user's most recent check-in, or nil.
func (r *CheckinRepository) LastByUser(ctx context.Context, userID uint) (*models.Checkin, error) {
	var checkin models.Checkin
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC").
		First(&checkin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &checkin, nil
}

// Create inserts a check-in row. The uni_checkins_user_day unique index turns a
// same-day double insert into services.ErrDuplicateDay.
func (r *CheckinRepository) Create(ctx context.Context, checkin *models.Checkin) error {
	err := r.db.WithContext(ctx).Create(checkin).Error
	if err != nil && isDuplicateKey(err) {
		return services.ErrDuplicateDay
	}
	return err
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// MySQL error 1062 without gorm error translation enabled.
	return strings.Contains(err.Error(), "Duplicate entry")
}
