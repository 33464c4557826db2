package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/squadcheckin/checkin-api/middleware"
	"github.com/squadcheckin/checkin-api/services"
)

type fakeEngine struct {
	result    *services.CheckinResult
	err       error
	status    *services.CheckinStatus
	statusErr error
	last      *time.Time
	lastErr   error
}

func (f *fakeEngine) CheckIn(ctx context.Context, user services.Identity) (*services.CheckinResult, error) {
	return f.result, f.err
}

func (f *fakeEngine) CanCheckIn(ctx context.Context, user services.Identity) (*services.CheckinStatus, error) {
	return f.status, f.statusErr
}

func (f *fakeEngine) LastCheckin(ctx context.Context, userID uint) (*time.Time, error) {
	return f.last, f.lastErr
}

func newCheckinTestRouter(engine CheckinEngine) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	authed := func(ctx *gin.Context) {
		ctx.Set(middleware.ContextUserIDKey, uint(1))
		ctx.Set(middleware.ContextUsernameKey, "alice")
	}

	ctrl := NewCheckinController(engine, zap.NewNop())
	r.POST("/api/v1/checkin", authed, ctrl.PerformCheckin)
	r.GET("/api/v1/checkin/status", authed, ctrl.Status)
	// Unauthenticated variant to exercise the identity guard.
	r.POST("/anon/checkin", ctrl.PerformCheckin)
	return r
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestPerformCheckinSuccess(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	engine := &fakeEngine{
		result: &services.CheckinResult{
			Success:       true,
			Message:       "Check-in realizado com sucesso!",
			Username:      "alice",
			PointsAwarded: 12,
			Reason:        "checkin_completed",
		},
	}
	r := newCheckinTestRouter(engine)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkin", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	data := body["data"].(map[string]any)
	assert.Equal(t, true, data["success"])
	assert.Equal(t, float64(12), data["points_awarded"])
	assert.Equal(t, "checkin_completed", data["reason"])
}

func TestPerformCheckinWeekend(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	engine := &fakeEngine{err: &services.WeekendError{Date: "2025-06-21"}}
	r := newCheckinTestRouter(engine)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkin", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	data := body["data"].(map[string]any)
	assert.Equal(t, "WEEKEND_CHECKIN_NOT_ALLOWED", data["error_code"])
	assert.Equal(t, "2025-06-21", data["attempted_date"])
}

func TestPerformCheckinDuplicate(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	engine := &fakeEngine{err: &services.DuplicateCheckinError{
		Username:    "alice",
		CheckinTime: "08:30:00",
	}}
	r := newCheckinTestRouter(engine)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkin", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	data := body["data"].(map[string]any)
	assert.Equal(t, "DUPLICATE_CHECKIN", data["error_code"])
	assert.Equal(t, "08:30:00", data["existing_checkin_time"])
}

func TestPerformCheckinStoreFailure(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	engine := &fakeEngine{err: &services.DatabaseError{Code: "DB_CHECKIN_INSERT_ERROR"}}
	r := newCheckinTestRouter(engine)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkin", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestPerformCheckinUnauthenticated(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r := newCheckinTestRouter(&fakeEngine{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/anon/checkin", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestStatusAlwaysOK(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	engine := &fakeEngine{
		status: &services.CheckinStatus{
			AlreadyCheckedToday: true,
			Reason:              "already_checked",
			ExistingCheckinTime: "09:00:00",
		},
	}
	r := newCheckinTestRouter(engine)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/checkin/status", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	data := body["data"].(map[string]any)
	assert.Equal(t, false, data["can_checkin"])
	assert.Equal(t, true, data["already_checked_today"])
	assert.Equal(t, "already_checked", data["reason"])
	assert.Equal(t, "Você já fez checkin hoje às 09:00:00", data["message"])
	assert.Nil(t, data["last_checkin_date"])
}

func TestStatusWithLastCheckin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	last := time.Date(2025, time.June, 17, 9, 0, 0, 0, time.FixedZone("UTC-3", -3*3600))
	engine := &fakeEngine{
		status: &services.CheckinStatus{CanCheckin: true, Reason: "available"},
		last:   &last,
	}
	r := newCheckinTestRouter(engine)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/checkin/status", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	data := body["data"].(map[string]any)
	assert.Equal(t, true, data["can_checkin"])
	assert.Equal(t, "Você pode fazer checkin agora", data["message"])
	assert.Equal(t, "2025-06-17", data["last_checkin_date"])
	assert.Equal(t, "17/06/2025", data["last_checkin_formatted"])
}
