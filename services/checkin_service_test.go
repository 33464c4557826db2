package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/squadcheckin/checkin-api/models"
	"github.com/squadcheckin/checkin-api/utils"
)

type fakeCheckinStore struct {
	existing  *models.Checkin
	findErr   error
	anyToday  bool
	anyErr    error
	last      *models.Checkin
	lastErr   error
	createErr error
	created   []*models.Checkin
}

func (f *fakeCheckinStore) FindByUserSince(ctx context.Context, userID uint, since time.Time) (*models.Checkin, error) {
	return f.existing, f.findErr
}

func (f *fakeCheckinStore) AnySince(ctx context.Context, since time.Time) (bool, error) {
	return f.anyToday, f.anyErr
}

func (f *fakeCheckinStore) LastByUser(ctx context.Context, userID uint) (*models.Checkin, error) {
	return f.last, f.lastErr
}

func (f *fakeCheckinStore) Create(ctx context.Context, checkin *models.Checkin) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, checkin)
	return nil
}

type fakeRankingStore struct {
	ranking *models.WeeklyRanking
	findErr error

	addErr       error
	addedPoints  int
	addedWeekID  string
	addedDay     string
	addedCalls   int
	weekEntries  []RankingEntry
	totalEntries []RankingEntry
	topErr       error
}

func (f *fakeRankingStore) Find(ctx context.Context, userID uint, weekID string) (*models.WeeklyRanking, error) {
	return f.ranking, f.findErr
}

func (f *fakeRankingStore) AddPoints(ctx context.Context, userID uint, weekID, username, day string, points int, now time.Time) error {
	if f.addErr != nil {
		return f.addErr
	}
	f.addedCalls++
	f.addedPoints = points
	f.addedWeekID = weekID
	f.addedDay = day
	return nil
}

func (f *fakeRankingStore) TopOfWeek(ctx context.Context, weekID string, limit int) ([]RankingEntry, error) {
	return f.weekEntries, f.topErr
}

func (f *fakeRankingStore) TopAllTime(ctx context.Context, limit int) ([]RankingEntry, error) {
	return f.totalEntries, f.topErr
}

var testPoints = PointsConfig{FirstOfDay: 10, Regular: 5, StreakBonus: 2}

func newTestService(checkins *fakeCheckinStore, rankings *fakeRankingStore, at time.Time) *CheckinService {
	svc := NewCheckinService(checkins, rankings, testPoints, zap.NewNop())
	svc.now = func() time.Time { return at }
	return svc
}

// Wednesday June 18, 2025 at 09:15 local.
func midweek() time.Time {
	return time.Date(2025, time.June, 18, 9, 15, 0, 0, utils.SaoPauloTZ)
}

func TestCheckInRejectsWeekend(t *testing.T) {
	saturday := time.Date(2025, time.June, 21, 10, 0, 0, 0, utils.SaoPauloTZ)
	svc := newTestService(&fakeCheckinStore{}, &fakeRankingStore{}, saturday)

	result, err := svc.CheckIn(context.Background(), Identity{ID: 1, Username: "alice"})

	require.Error(t, err)
	assert.Nil(t, result)
	var weekendErr *WeekendError
	require.ErrorAs(t, err, &weekendErr)
	assert.Equal(t, "2025-06-21", weekendErr.Date)
}

func TestCheckInRejectsDuplicate(t *testing.T) {
	existing := &models.Checkin{
		UserID:    1,
		Username:  "alice",
		Timestamp: time.Date(2025, time.June, 18, 8, 30, 0, 0, utils.SaoPauloTZ),
	}
	checkins := &fakeCheckinStore{existing: existing}
	svc := newTestService(checkins, &fakeRankingStore{}, midweek())

	_, err := svc.CheckIn(context.Background(), Identity{ID: 1, Username: "alice"})

	var dupErr *DuplicateCheckinError
	require.ErrorAs(t, err, &dupErr)
	assert.Equal(t, "alice", dupErr.Username)
	assert.Equal(t, "08:30:00", dupErr.CheckinTime)
	assert.Empty(t, checkins.created)
}

func TestCheckInFirstOfDayAward(t *testing.T) {
	checkins := &fakeCheckinStore{anyToday: false}
	rankings := &fakeRankingStore{}
	svc := newTestService(checkins, rankings, midweek())

	result, err := svc.CheckIn(context.Background(), Identity{ID: 1, Username: "alice"})

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 10, result.PointsAwarded)
	assert.Equal(t, "checkin_completed", result.Reason)
	assert.Equal(t, "Check-in realizado com sucesso!", result.Message)
	assert.Equal(t, 10, rankings.addedPoints)
	assert.Equal(t, "2025-W25", rankings.addedWeekID)
	assert.Equal(t, "2025-06-18", rankings.addedDay)
	require.Len(t, checkins.created, 1)
	assert.Equal(t, "2025-06-18", checkins.created[0].CheckinDay)
}

func TestCheckInRegularAward(t *testing.T) {
	checkins := &fakeCheckinStore{anyToday: true}
	rankings := &fakeRankingStore{}
	svc := newTestService(checkins, rankings, midweek())

	result, err := svc.CheckIn(context.Background(), Identity{ID: 2, Username: "bob"})

	require.NoError(t, err)
	assert.Equal(t, 5, result.PointsAwarded)
}

func TestCheckInStreakBonusMidweek(t *testing.T) {
	checkins := &fakeCheckinStore{anyToday: true}
	rankings := &fakeRankingStore{
		ranking: &models.WeeklyRanking{LastCheckinDate: "2025-06-17"}, // Tuesday
	}
	svc := newTestService(checkins, rankings, midweek())

	result, err := svc.CheckIn(context.Background(), Identity{ID: 1, Username: "alice"})

	require.NoError(t, err)
	assert.Equal(t, 7, result.PointsAwarded)
}

func TestCheckInStreakBonusBridgesWeekend(t *testing.T) {
	monday := time.Date(2025, time.June, 23, 9, 0, 0, 0, utils.SaoPauloTZ)
	checkins := &fakeCheckinStore{anyToday: true}
	rankings := &fakeRankingStore{
		ranking: &models.WeeklyRanking{LastCheckinDate: "2025-06-20"}, // Friday
	}
	svc := newTestService(checkins, rankings, monday)

	result, err := svc.CheckIn(context.Background(), Identity{ID: 1, Username: "alice"})

	require.NoError(t, err)
	assert.Equal(t, 7, result.PointsAwarded)
	// The new points land in the new week's aggregate.
	assert.Equal(t, "2025-W26", rankings.addedWeekID)
}

func TestCheckInNoBonusAfterGap(t *testing.T) {
	checkins := &fakeCheckinStore{anyToday: true}
	rankings := &fakeRankingStore{
		ranking: &models.WeeklyRanking{LastCheckinDate: "2025-06-16"}, // Monday, gap on Tuesday
	}
	svc := newTestService(checkins, rankings, midweek())

	result, err := svc.CheckIn(context.Background(), Identity{ID: 1, Username: "alice"})

	require.NoError(t, err)
	assert.Equal(t, 5, result.PointsAwarded)
}

func TestCheckInBonusDegradesOnLookupFailure(t *testing.T) {
	checkins := &fakeCheckinStore{anyToday: true}
	rankings := &fakeRankingStore{findErr: errors.New("connection reset")}
	svc := newTestService(checkins, rankings, midweek())

	result, err := svc.CheckIn(context.Background(), Identity{ID: 1, Username: "alice"})

	require.NoError(t, err)
	assert.Equal(t, 5, result.PointsAwarded)
}

func TestCheckInLostInsertRace(t *testing.T) {
	checkins := &fakeCheckinStore{createErr: ErrDuplicateDay}
	svc := newTestService(checkins, &fakeRankingStore{}, midweek())

	_, err := svc.CheckIn(context.Background(), Identity{ID: 1, Username: "alice"})

	var dupErr *DuplicateCheckinError
	require.ErrorAs(t, err, &dupErr)
}

func TestCheckInInsertFailure(t *testing.T) {
	checkins := &fakeCheckinStore{createErr: errors.New("table is full")}
	svc := newTestService(checkins, &fakeRankingStore{}, midweek())

	_, err := svc.CheckIn(context.Background(), Identity{ID: 1, Username: "alice"})

	var dbErr *DatabaseError
	require.ErrorAs(t, err, &dbErr)
	assert.Equal(t, "DB_CHECKIN_INSERT_ERROR", dbErr.Code)
}

func TestCanCheckInStates(t *testing.T) {
	t.Run("weekend", func(t *testing.T) {
		sunday := time.Date(2025, time.June, 22, 10, 0, 0, 0, utils.SaoPauloTZ)
		svc := newTestService(&fakeCheckinStore{}, &fakeRankingStore{}, sunday)

		status, err := svc.CanCheckIn(context.Background(), Identity{ID: 1, Username: "alice"})
		require.NoError(t, err)
		assert.False(t, status.CanCheckin)
		assert.True(t, status.IsWeekend)
		assert.Equal(t, "weekend", status.Reason)
	})

	t.Run("already checked", func(t *testing.T) {
		existing := &models.Checkin{
			Timestamp: time.Date(2025, time.June, 18, 7, 45, 10, 0, utils.SaoPauloTZ),
		}
		svc := newTestService(&fakeCheckinStore{existing: existing}, &fakeRankingStore{}, midweek())

		status, err := svc.CanCheckIn(context.Background(), Identity{ID: 1, Username: "alice"})
		require.NoError(t, err)
		assert.False(t, status.CanCheckin)
		assert.True(t, status.AlreadyCheckedToday)
		assert.Equal(t, "already_checked", status.Reason)
		assert.Equal(t, "07:45:10", status.ExistingCheckinTime)
	})

	t.Run("available", func(t *testing.T) {
		svc := newTestService(&fakeCheckinStore{}, &fakeRankingStore{}, midweek())

		status, err := svc.CanCheckIn(context.Background(), Identity{ID: 1, Username: "alice"})
		require.NoError(t, err)
		assert.True(t, status.CanCheckin)
		assert.Equal(t, "available", status.Reason)
	})
}

func TestLastCheckin(t *testing.T) {
	ts := time.Date(2025, time.June, 17, 9, 0, 0, 0, utils.SaoPauloTZ)
	svc := newTestService(&fakeCheckinStore{last: &models.Checkin{Timestamp: ts}}, &fakeRankingStore{}, midweek())

	got, err := svc.LastCheckin(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Equal(ts))

	svc = newTestService(&fakeCheckinStore{}, &fakeRankingStore{}, midweek())
	got, err = svc.LastCheckin(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, got)
}
