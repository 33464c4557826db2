package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/squadcheckin/checkin-api/models"
	"github.com/squadcheckin/checkin-api/utils"
)

// Identity is the authenticated user handed in by the HTTP layer. The engine
// never verifies credentials itself.
type Identity struct {
	ID       uint
	Username string
}

// PointsConfig holds the award values. Defaults come from configuration.
type PointsConfig struct {
	FirstOfDay  int
	Regular     int
	StreakBonus int
}

// CheckinResult is the outcome of a successful check-in.
type CheckinResult struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	Username      string `json:"username"`
	PointsAwarded int    `json:"points_awarded"`
	CanCheckin    bool   `json:"can_checkin"`
	Reason        string `json:"reason"`
}

// CheckinStatus is the read-only eligibility probe result.
type CheckinStatus struct {
	CanCheckin          bool
	IsWeekend           bool
	AlreadyCheckedToday bool
	Reason              string
	ExistingCheckinTime string
}

// CheckinService decides eligibility, computes points and records check-ins.
type CheckinService struct {
	checkins CheckinStore
	rankings RankingStore
	points   PointsConfig
	log      *zap.Logger

	// now is swappable for tests.
	now func() time.Time
}

// NewCheckinService wires the engine with its stores and an injected logger.
func NewCheckinService(checkins CheckinStore, rankings RankingStore, points PointsConfig, log *zap.Logger) *CheckinService {
	return &CheckinService{
		checkins: checkins,
		rankings: rankings,
		points:   points,
		log:      log,
		now:      utils.CurrentTime,
	}
}

// CheckIn performs the daily check-in for the authenticated user.
//
// Business outcomes are returned as *WeekendError / *DuplicateCheckinError;
// everything else is a *DatabaseError.
func (s *CheckinService) CheckIn(ctx context.Context, user Identity) (*CheckinResult, error) {
	now := s.now()
	today := utils.StartOfDay(now)

	if utils.IsWeekend(today) {
		return nil, &WeekendError{Date: utils.FormatDay(today)}
	}

	existing, err := s.checkins.FindByUserSince(ctx, user.ID, today)
	if err != nil {
		return nil, &DatabaseError{Code: "DB_CHECKIN_QUERY_ERROR", Err: err}
	}
	if existing != nil {
		return nil, &DuplicateCheckinError{
			Username:    user.Username,
			CheckinTime: utils.FormatTimeBR(existing.Timestamp),
		}
	}

	points, err := s.calculatePoints(ctx, user, today)
	if err != nil {
		return nil, err
	}

	record := &models.Checkin{
		UserID:     user.ID,
		Username:   user.Username,
		CheckinDay: utils.FormatDay(today),
		Timestamp:  now,
	}
	if err := s.checkins.Create(ctx, record); err != nil {
		// Lost the race against a concurrent attempt: the unique index on
		// (user_id, checkin_day) is the authority, report it as a duplicate.
		if errors.Is(err, ErrDuplicateDay) {
			return nil, &DuplicateCheckinError{
				Username:    user.Username,
				CheckinTime: utils.FormatTimeBR(now),
			}
		}
		return nil, &DatabaseError{Code: "DB_CHECKIN_INSERT_ERROR", Err: err}
	}

	weekID := utils.WeekID(today)
	if err := s.rankings.AddPoints(ctx, user.ID, weekID, user.Username, utils.FormatDay(today), points, now); err != nil {
		return nil, &DatabaseError{Code: "DB_RANKING_UPDATE_ERROR", Err: err}
	}

	s.log.Info("checkin recorded",
		zap.String("username", user.Username),
		zap.String("week_id", weekID),
		zap.Int("points_awarded", points),
	)

	return &CheckinResult{
		Success:       true,
		Message:       "Check-in realizado com sucesso!",
		Username:      user.Username,
		PointsAwarded: points,
		CanCheckin:    false,
		Reason:        "checkin_completed",
	}, nil
}

// CanCheckIn replays the eligibility checks without side effects.
func (s *CheckinService) CanCheckIn(ctx context.Context, user Identity) (*CheckinStatus, error) {
	today := utils.StartOfDay(s.now())

	if utils.IsWeekend(today) {
		return &CheckinStatus{IsWeekend: true, Reason: "weekend"}, nil
	}

	existing, err := s.checkins.FindByUserSince(ctx, user.ID, today)
	if err != nil {
		return nil, &DatabaseError{Code: "DB_CHECKIN_QUERY_ERROR", Err: err}
	}
	if existing != nil {
		return &CheckinStatus{
			AlreadyCheckedToday: true,
			Reason:              "already_checked",
			ExistingCheckinTime: utils.FormatTimeBR(existing.Timestamp),
		}, nil
	}

	return &CheckinStatus{CanCheckin: true, Reason: "available"}, nil
}

// LastCheckin returns the user's most recent check-in timestamp, or nil.
func (s *CheckinService) LastCheckin(ctx context.Context, userID uint) (*time.Time, error) {
	last, err := s.checkins.LastByUser(ctx, userID)
	if err != nil {
		return nil, &DatabaseError{Code: "DB_LAST_CHECKIN_ERROR", Err: err}
	}
	if last == nil {
		return nil, nil
	}
	ts := last.Timestamp
	return &ts, nil
}

// calculatePoints computes base points plus the streak bonus. The first
// check-in system-wide of the day earns the larger base award.
func (s *CheckinService) calculatePoints(ctx context.Context, user Identity, today time.Time) (int, error) {
	any, err := s.checkins.AnySince(ctx, today)
	if err != nil {
		return 0, &DatabaseError{Code: "POINTS_CALCULATION_ERROR", Err: err}
	}

	base := s.points.Regular
	if !any {
		base = s.points.FirstOfDay
	}

	bonus := s.streakBonus(ctx, user.ID, today)
	total := base + bonus

	s.log.Debug("points calculated",
		zap.String("username", user.Username),
		zap.Int("base", base),
		zap.Int("streak_bonus", bonus),
		zap.Int("total", total),
	)
	return total, nil
}

// streakBonus awards extra points when the user's last recorded check-in date
// in this week's aggregate is the previous workday (Friday bridges to Monday).
// Failures here degrade to zero bonus instead of aborting the check-in.
func (s *CheckinService) streakBonus(ctx context.Context, userID uint, today time.Time) int {
	prev := utils.PreviousWorkday(today)
	// On Mondays the previous workday belongs to last ISO week, so the
	// aggregate holding its date lives under that week's id.
	weekID := utils.WeekID(prev)

	ranking, err := s.rankings.Find(ctx, userID, weekID)
	if err != nil {
		s.log.Error("streak bonus lookup failed, awarding none",
			zap.Uint("user_id", userID),
			zap.String("week_id", weekID),
			zap.Error(err),
		)
		return 0
	}
	if ranking == nil || ranking.LastCheckinDate == "" {
		return 0
	}

	expected := utils.FormatDay(prev)
	if ranking.LastCheckinDate != expected {
		return 0
	}

	s.log.Info("streak bonus applied",
		zap.Uint("user_id", userID),
		zap.String("last_checkin", ranking.LastCheckinDate),
		zap.String("expected", expected),
	)
	return s.points.StreakBonus
}
