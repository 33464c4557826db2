package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/squadcheckin/checkin-api/services"
	"github.com/squadcheckin/checkin-api/utils"
)

// RankingQuery is the read-only leaderboard surface.
type RankingQuery interface {
	Weekly(ctx context.Context) (*services.WeeklyRankingResult, error)
	AllTime(ctx context.Context, username string) (*services.AllTimeRankingResult, error)
}

// RankingController serves the leaderboard endpoints.
type RankingController struct {
	rankings RankingQuery
	log      *zap.Logger
}

// NewRankingController creates a new controller instance.
func NewRankingController(rankings RankingQuery, log *zap.Logger) *RankingController {
	return &RankingController{rankings: rankings, log: log}
}

// Weekly returns the current week's leaderboard. Public, briefly cached.
func (r *RankingController) Weekly(ctx *gin.Context) {
	key := weeklyCacheKey(utils.WeekID(utils.CurrentTime()))
	if b, ok := utils.CacheGetBytes(key); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	result, err := r.rankings.Weekly(ctx.Request.Context())
	if err != nil {
		r.log.Error("weekly ranking query failed", zap.Error(err))
		utils.Error(ctx, http.StatusInternalServerError, 50040, "failed to load weekly ranking")
		return
	}

	wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: result}
	utils.CacheSetJSON(key, wrapper, time.Minute)
	utils.Success(ctx, result)
}

// AllTime returns the cross-week leaderboard with the caller's position.
func (r *RankingController) AllTime(ctx *gin.Context) {
	user, ok := currentIdentity(ctx)
	if !ok {
		return
	}

	result, err := r.rankings.AllTime(ctx.Request.Context(), user.Username)
	if err != nil {
		r.log.Error("all-time ranking query failed",
			zap.String("requested_by", user.Username),
			zap.Error(err),
		)
		utils.Error(ctx, http.StatusInternalServerError, 50041, "failed to load all-time ranking")
		return
	}

	utils.Success(ctx, result)
}

func weeklyCacheKey(weekID string) string {
	return "cache:ranking:weekly:" + weekID
}
