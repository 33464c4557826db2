package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/squadcheckin/checkin-api/config"
	"github.com/squadcheckin/checkin-api/controllers"
	"github.com/squadcheckin/checkin-api/middleware"
	"github.com/squadcheckin/checkin-api/repositories"
	"github.com/squadcheckin/checkin-api/services"
	"github.com/squadcheckin/checkin-api/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB, log *zap.Logger) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(utils.RequestLogger(log))
	r.Use(utils.Recovery(log))

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}

	r.Use(cors.New(corsCfg))

	checkinRepo := repositories.NewCheckinRepository(db)
	rankingRepo := repositories.NewRankingRepository(db)

	points := services.PointsConfig{
		FirstOfDay:  cfg.PointsFirstOfDay,
		Regular:     cfg.PointsRegular,
		StreakBonus: cfg.PointsStreakBonus,
	}
	checkinService := services.NewCheckinService(checkinRepo, rankingRepo, points, log)
	rankingService := services.NewRankingService(rankingRepo, log)

	authController := controllers.NewAuthController(db)
	checkinController := controllers.NewCheckinController(checkinService, log)
	rankingController := controllers.NewRankingController(rankingService, log)
	statsController := controllers.NewStatsController(db)

	r.GET("/health", statsController.Health)

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)
	authGroup.GET("/oauth/:provider/login", authController.OAuthRedirect)
	authGroup.GET("/oauth/:provider/callback", authController.OAuthCallback)
	authGroup.POST("/logout", middleware.AuthRequired(), authController.Logout)
	authGroup.GET("/me", middleware.AuthRequired(), authController.Me)
	authGroup.PATCH("/profile", middleware.AuthRequired(), authController.UpdateProfile)

	// The weekly leaderboard is public for dashboards
	api.GET("/ranking/weekly", rankingController.Weekly)
	api.GET("/stats", statsController.GetStats)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired())
	protected.POST("/checkin", checkinController.PerformCheckin)
	protected.GET("/checkin/status", checkinController.Status)
	protected.GET("/ranking/my-status", checkinController.Status)
	protected.GET("/ranking/all-time", rankingController.AllTime)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40400, "route not found")
	})

	return r
}
