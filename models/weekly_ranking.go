package models

import "time"

// WeeklyRanking accumulates one user's points inside one ISO week ("2025-W09").
// Points only grow within a week; LastCheckinDate ("2006-01-02") feeds the
// streak-bonus detection on the next check-in.
type WeeklyRanking struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"uniqueIndex:uni_rankings_user_week;not null" json:"user_id"`
	WeekID          string    `gorm:"size:8;index;uniqueIndex:uni_rankings_user_week;not null" json:"week_id"`
	Username        string    `gorm:"size:50;not null" json:"username"`
	Points          int       `gorm:"default:0" json:"points"`
	LastCheckinDate string    `gorm:"size:10" json:"last_checkin_date"`
	UpdatedAt       time.Time `json:"updated_at"`
}
