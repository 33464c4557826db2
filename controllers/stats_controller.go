package controllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/squadcheckin/checkin-api/models"
	"github.com/squadcheckin/checkin-api/utils"
)

// StatsController exposes aggregate counters and the health probe.
type StatsController struct {
	db *gorm.DB
}

// NewStatsController creates a new StatsController instance.
func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{db: db}
}

// GetStats returns collection sizes plus today's check-in count.
func (s *StatsController) GetStats(ctx *gin.Context) {
	var userCount int64
	var checkinCount int64
	var rankingCount int64
	var checkinsToday int64

	// Fallback to 0 instead of failing the whole endpoint
	if err := s.db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		userCount = 0
	}
	if err := s.db.Model(&models.Checkin{}).Count(&checkinCount).Error; err != nil {
		checkinCount = 0
	}
	if err := s.db.Model(&models.WeeklyRanking{}).Count(&rankingCount).Error; err != nil {
		rankingCount = 0
	}
	if err := s.db.Model(&models.Checkin{}).
		Where("timestamp >= ?", utils.CurrentDate()).
		Count(&checkinsToday).Error; err != nil {
		checkinsToday = 0
	}

	utils.Success(ctx, gin.H{
		"user_count":     userCount,
		"checkin_count":  checkinCount,
		"ranking_count":  rankingCount,
		"checkins_today": checkinsToday,
	})
}

// Health reports service liveness plus per-table document counts.
func (s *StatsController) Health(ctx *gin.Context) {
	now := utils.CurrentTime()

	dbStatus := "healthy"
	var users, checkins, rankings int64
	if err := s.db.Model(&models.User{}).Count(&users).Error; err != nil {
		dbStatus = "error"
	}
	if err := s.db.Model(&models.Checkin{}).Count(&checkins).Error; err != nil {
		dbStatus = "error"
	}
	if err := s.db.Model(&models.WeeklyRanking{}).Count(&rankings).Error; err != nil {
		dbStatus = "error"
	}

	utils.Success(ctx, gin.H{
		"status":       "ok",
		"timestamp":    now.Format(time.RFC3339),
		"current_date": utils.FormatDay(now),
		"current_week": utils.WeekID(now),
		"timezone":     "UTC-3",
		"database": gin.H{
			"status":   dbStatus,
			"users":    users,
			"checkins": checkins,
			"rankings": rankings,
		},
	})
}
