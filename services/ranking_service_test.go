package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/squadcheckin/checkin-api/utils"
)

func newTestRankingService(store *fakeRankingStore, at time.Time) *RankingService {
	svc := NewRankingService(store, zap.NewNop())
	svc.now = func() time.Time { return at }
	return svc
}

func TestWeeklyRanking(t *testing.T) {
	at := time.Date(2025, time.June, 18, 12, 0, 0, 0, utils.SaoPauloTZ)
	store := &fakeRankingStore{
		weekEntries: []RankingEntry{
			{Username: "alice", Points: 17},
			{Username: "bob", Points: 12},
		},
	}
	svc := newTestRankingService(store, at)

	result, err := svc.Weekly(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "2025-W25", result.WeekID)
	require.Len(t, result.Ranking, 2)
	assert.Equal(t, "alice", result.Ranking[0].Username)
	assert.Equal(t, 17, result.Ranking[0].Points)
}

func TestWeeklyRankingStoreFailure(t *testing.T) {
	store := &fakeRankingStore{topErr: errors.New("gone away")}
	svc := newTestRankingService(store, time.Now())

	_, err := svc.Weekly(context.Background())

	var dbErr *DatabaseError
	require.ErrorAs(t, err, &dbErr)
	assert.Equal(t, "DB_WEEKLY_RANKING_ERROR", dbErr.Code)
}

func TestAllTimeRanking(t *testing.T) {
	at := time.Date(2025, time.June, 18, 12, 0, 0, 0, utils.SaoPauloTZ)
	store := &fakeRankingStore{
		totalEntries: []RankingEntry{
			{Username: "alice", Points: 17},
			{Username: "bob", Points: 12},
			{Username: "carol", Points: 5},
		},
	}
	svc := newTestRankingService(store, at)

	result, err := svc.AllTime(context.Background(), "bob")

	require.NoError(t, err)
	assert.Equal(t, "all_time", result.Type)
	assert.Equal(t, "2025-06-18", result.Date)
	assert.Equal(t, 3, result.TotalParticipants)
	require.NotNil(t, result.UserPosition)
	assert.Equal(t, 2, *result.UserPosition)
}

func TestAllTimeRankingUnrankedUser(t *testing.T) {
	store := &fakeRankingStore{
		totalEntries: []RankingEntry{{Username: "alice", Points: 17}},
	}
	svc := newTestRankingService(store, time.Now())

	result, err := svc.AllTime(context.Background(), "nobody")

	require.NoError(t, err)
	assert.Nil(t, result.UserPosition)
}

func TestAllTimeRankingEmpty(t *testing.T) {
	svc := newTestRankingService(&fakeRankingStore{}, time.Now())

	result, err := svc.AllTime(context.Background(), "alice")

	require.NoError(t, err)
	assert.Equal(t, 0, result.TotalParticipants)
	assert.Nil(t, result.UserPosition)
}
