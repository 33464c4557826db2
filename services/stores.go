package services

import (
	"context"
	"time"

	"github.com/squadcheckin/checkin-api/models"
)

// CheckinStore persists the append-only check-in event log.
type CheckinStore interface {
	// FindByUserSince returns the user's check-in at or after the given instant,
	// or nil when there is none.
	FindByUserSince(ctx context.Context, userID uint, since time.Time) (*models.Checkin, error)
	// AnySince reports whether any check-in exists system-wide at or after the
	// given instant.
	AnySince(ctx context.Context, since time.Time) (bool, error)
	// LastByUser returns the user's most recent check-in, or nil.
	LastByUser(ctx context.Context, userID uint) (*models.Checkin, error)
	// Create inserts a new check-in. Returns ErrDuplicateDay when the
	// (user, civil day) uniqueness constraint rejects the row.
	Create(ctx context.Context, checkin *models.Checkin) error
}

// RankingStore persists the per-user-per-week aggregates.
type RankingStore interface {
	// Find returns the aggregate for (user, week), or nil when absent.
	Find(ctx context.Context, userID uint, weekID string) (*models.WeeklyRanking, error)
	// AddPoints atomically increments the aggregate's points (inserting the row
	// if missing) and refreshes last-check-in date, username and updated-at.
	AddPoints(ctx context.Context, userID uint, weekID, username, day string, points int, now time.Time) error
	// TopOfWeek returns up to limit (username, points) pairs for one week,
	// sorted by points descending.
	TopOfWeek(ctx context.Context, weekID string, limit int) ([]RankingEntry, error)
	// TopAllTime groups aggregates by username across all weeks, summing
	// points, sorted descending, capped at limit.
	TopAllTime(ctx context.Context, limit int) ([]RankingEntry, error)
}

// RankingEntry is one leaderboard row.
type RankingEntry struct {
	Username string `json:"username"`
	Points   int    `json:"points"`
}
