package models

import "time"

// Checkin is one successful daily check-in. Rows are append-only.
//
// CheckinDay holds the civil date (UTC-3) as "2006-01-02". The composite unique
// index on (user_id, checkin_day) is the authoritative one-per-day guard: two
// concurrent attempts can both pass the application-level existence check, but
// only one insert succeeds.
type Checkin struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"index;uniqueIndex:uni_checkins_user_day;not null" json:"user_id"`
	Username   string    `gorm:"size:50;not null" json:"username"`
	CheckinDay string    `gorm:"size:10;uniqueIndex:uni_checkins_user_day;not null" json:"checkin_day"`
	Timestamp  time.Time `gorm:"index;not null" json:"timestamp"`
	CreatedAt  time.Time `json:"created_at"`
}
