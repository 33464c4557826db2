package utils

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// StartUsernameReconciler launches a background goroutine that periodically
// rewrites denormalized usernames on checkins and weekly_rankings rows that
// drifted from users.username. Check-in and aggregate rows capture the username
// at write time, so a profile-level rename leaves history stale until this job
// catches up. Best-effort; failures are logged and retried next interval.
func StartUsernameReconciler(db *gorm.DB, log *zap.Logger, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}
	go func() {
		for {
			// Sleep first to avoid racing immediately at startup
			time.Sleep(interval)
			reconcileUsernames(db, log)
		}
	}()
}

func reconcileUsernames(db *gorm.DB, log *zap.Logger) {
	for _, table := range []string{"checkins", "weekly_rankings"} {
		res := db.Exec(
			"UPDATE "+table+" t JOIN users u ON u.id = t.user_id SET t.username = u.username WHERE t.username <> u.username",
		)
		if res.Error != nil {
			log.Error("username reconciliation failed",
				zap.String("table", table),
				zap.Error(res.Error),
			)
			continue
		}
		if res.RowsAffected > 0 {
			log.Info("username reconciliation applied",
				zap.String("table", table),
				zap.Int64("rows", res.RowsAffected),
			)
		}
	}
}
