package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/squadcheckin/checkin-api/models"
	"github.com/squadcheckin/checkin-api/services"
)

// RankingRepository is the gorm-backed weekly aggregate store.
type RankingRepository struct {
	db *gorm.DB
}

// NewRankingRepository creates a RankingRepository.
func NewRankingRepository(db *gorm.DB) *RankingRepository {
	return &RankingRepository{db: db}
}

// Find returns the (user, week) aggregate, or nil when absent.
func (r *RankingRepository) Find(ctx context.Context, userID uint, weekID string) (*models.WeeklyRanking, error) {
	var ranking models.WeeklyRanking
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND week_id = ?", userID, weekID).
		First(&ranking).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ranking, nil
}

// AddPoints performs a single atomic increment-or-insert on the aggregate so
// concurrent increments are never lost.
func (r *RankingRepository) AddPoints(ctx context.Context, userID uint, weekID, username, day string, points int, now time.Time) error {
	ranking := models.WeeklyRanking{
		UserID:          userID,
		WeekID:          weekID,
		Username:        username,
		Points:          points,
		LastCheckinDate: day,
		UpdatedAt:       now,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "week_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"points":            gorm.Expr("points + ?", points),
				"last_checkin_date": day,
				"username":          username,
				"updated_at":        now,
			}),
		}).
		Create(&ranking).Error
}

// TopOfWeek returns one week's leaderboard rows, sorted by points descending.
func (r *RankingRepository) TopOfWeek(ctx context.Context, weekID string, limit int) ([]services.RankingEntry, error) {
	var entries []services.RankingEntry
	err := r.db.WithContext(ctx).
		Model(&models.WeeklyRanking{}).
		Select("username, points").
		Where("week_id = ?", weekID).
		Order("points DESC").
		Limit(limit).
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// TopAllTime sums points per username across all weeks.
func (r *RankingRepository) TopAllTime(ctx context.Context, limit int) ([]services.RankingEntry, error) {
	var entries []services.RankingEntry
	err := r.db.WithContext(ctx).
		Model(&models.WeeklyRanking{}).
		Select("username, SUM(points) AS points").
		Group("username").
		Order("points DESC").
		Limit(limit).
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
