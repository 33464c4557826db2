package main

import (
	"time"

	"github.com/squadcheckin/checkin-api/config"
	"github.com/squadcheckin/checkin-api/models"
	"github.com/squadcheckin/checkin-api/routes"
	"github.com/squadcheckin/checkin-api/utils"
)

func main() {
	cfg := config.Load()

	logger, err := utils.NewLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	db := config.InitDatabase(&models.User{}, &models.Checkin{}, &models.WeeklyRanking{})

	r := routes.SetupRouter(db, logger)

	// Denormalized usernames on checkins and rankings drift after a rename;
	// the reconciler repairs them in the background.
	utils.StartUsernameReconciler(db, logger, time.Duration(cfg.ReconcileIntervalMinutes)*time.Minute)

	sugar := logger.Sugar()
	sugar.Infof("starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r, sugar); err != nil {
		sugar.Fatalf("server stopped with error: %v", err)
	}
}
