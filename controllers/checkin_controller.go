package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/squadcheckin/checkin-api/middleware"
	"github.com/squadcheckin/checkin-api/services"
	"github.com/squadcheckin/checkin-api/utils"
)

// CheckinEngine is the service surface the HTTP layer consumes.
type CheckinEngine interface {
	CheckIn(ctx context.Context, user services.Identity) (*services.CheckinResult, error)
	CanCheckIn(ctx context.Context, user services.Identity) (*services.CheckinStatus, error)
	LastCheckin(ctx context.Context, userID uint) (*time.Time, error)
}

// CheckinController handles the check-in endpoints.
type CheckinController struct {
	engine CheckinEngine
	log    *zap.Logger
}

// NewCheckinController creates a new controller instance.
func NewCheckinController(engine CheckinEngine, log *zap.Logger) *CheckinController {
	return &CheckinController{engine: engine, log: log}
}

// PerformCheckin records the authenticated user's daily check-in.
//
// Weekend and duplicate attempts are business outcomes and map to 400 with a
// structured error code; only store failures produce a 500.
func (c *CheckinController) PerformCheckin(ctx *gin.Context) {
	user, ok := currentIdentity(ctx)
	if !ok {
		return
	}

	result, err := c.engine.CheckIn(ctx.Request.Context(), user)
	if err != nil {
		var weekendErr *services.WeekendError
		var dupErr *services.DuplicateCheckinError
		switch {
		case errors.As(err, &weekendErr):
			utils.Respond(ctx, http.StatusBadRequest, 40031, weekendErr.Error(), gin.H{
				"error_code":     "WEEKEND_CHECKIN_NOT_ALLOWED",
				"attempted_date": weekendErr.Date,
			})
		case errors.As(err, &dupErr):
			utils.Respond(ctx, http.StatusBadRequest, 40032, dupErr.Error(), gin.H{
				"error_code":            "DUPLICATE_CHECKIN",
				"username":              dupErr.Username,
				"existing_checkin_time": dupErr.CheckinTime,
			})
		default:
			c.log.Error("checkin processing failed",
				zap.String("username", user.Username),
				zap.Error(err),
			)
			utils.Error(ctx, http.StatusInternalServerError, 50030, "failed to process check-in")
		}
		return
	}

	// The weekly leaderboard changed; drop its cached copy.
	utils.CacheDelete(weeklyCacheKey(utils.WeekID(utils.CurrentTime())))

	utils.Respond(ctx, http.StatusCreated, 0, "success", result)
}

// Status reports eligibility and the last check-in without side effects.
// Always 200: weekend and already-checked are states, not errors.
func (c *CheckinController) Status(ctx *gin.Context) {
	user, ok := currentIdentity(ctx)
	if !ok {
		return
	}

	status, err := c.engine.CanCheckIn(ctx.Request.Context(), user)
	if err != nil {
		c.log.Error("checkin status query failed",
			zap.String("username", user.Username),
			zap.Error(err),
		)
		utils.Error(ctx, http.StatusInternalServerError, 50032, "failed to verify check-in status")
		return
	}

	last, err := c.engine.LastCheckin(ctx.Request.Context(), user.ID)
	if err != nil {
		c.log.Error("last checkin query failed",
			zap.String("username", user.Username),
			zap.Error(err),
		)
		utils.Error(ctx, http.StatusInternalServerError, 50033, "failed to load last check-in")
		return
	}

	var lastDate, lastFormatted interface{}
	if last != nil {
		lastDate = utils.FormatDay(*last)
		lastFormatted = utils.FormatDateBR(*last)
	}

	var message string
	switch status.Reason {
	case "weekend":
		message = "Check-ins são permitidos apenas de Segunda a Sexta"
	case "already_checked":
		message = fmt.Sprintf("Você já fez checkin hoje às %s", status.ExistingCheckinTime)
	default:
		message = "Você pode fazer checkin agora"
	}

	utils.Success(ctx, gin.H{
		"can_checkin":           status.CanCheckin,
		"is_weekend":            status.IsWeekend,
		"already_checked_today": status.AlreadyCheckedToday,
		"reason":                status.Reason,
		"message":               message,
		"last_checkin_date":     lastDate,
		"last_checkin_formatted": lastFormatted,
		"today":                 utils.FormatDateBR(utils.CurrentDate()),
	})
}

// currentIdentity pulls the authenticated identity stored by the JWT middleware.
func currentIdentity(ctx *gin.Context) (services.Identity, bool) {
	userID, okID := ctx.Get(middleware.ContextUserIDKey)
	username, okName := ctx.Get(middleware.ContextUsernameKey)
	if !okID || !okName {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		ctx.Abort()
		return services.Identity{}, false
	}

	id, okCast := userID.(uint)
	name, okStr := username.(string)
	if !okCast || !okStr {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		ctx.Abort()
		return services.Identity{}, false
	}

	return services.Identity{ID: id, Username: name}, true
}
