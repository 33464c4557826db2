package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/squadcheckin/checkin-api/utils"
)

// rankingLimit caps both leaderboards. Positions beyond it are not computed.
const rankingLimit = 100

// WeeklyRankingResult is the current week's leaderboard.
type WeeklyRankingResult struct {
	WeekID  string         `json:"week_id"`
	Ranking []RankingEntry `json:"ranking"`
}

// AllTimeRankingResult aggregates points per username across all weeks.
// UserPosition is the requesting user's 1-based rank, nil when outside the cap.
type AllTimeRankingResult struct {
	Type              string         `json:"type"`
	Date              string         `json:"date"`
	TotalParticipants int            `json:"total_participants"`
	Ranking           []RankingEntry `json:"ranking"`
	UserPosition      *int           `json:"user_position"`
}

// RankingService serves the read-only leaderboard queries.
type RankingService struct {
	rankings RankingStore
	log      *zap.Logger

	now func() time.Time
}

// NewRankingService wires the query layer with its store and logger.
func NewRankingService(rankings RankingStore, log *zap.Logger) *RankingService {
	return &RankingService{
		rankings: rankings,
		log:      log,
		now:      utils.CurrentTime,
	}
}

// Weekly returns the leaderboard scoped to the current ISO week.
func (r *RankingService) Weekly(ctx context.Context) (*WeeklyRankingResult, error) {
	weekID := utils.WeekID(r.now())

	entries, err := r.rankings.TopOfWeek(ctx, weekID, rankingLimit)
	if err != nil {
		return nil, &DatabaseError{Code: "DB_WEEKLY_RANKING_ERROR", Err: err}
	}

	r.log.Info("weekly ranking served",
		zap.String("week_id", weekID),
		zap.Int("participants", len(entries)),
	)
	return &WeeklyRankingResult{WeekID: weekID, Ranking: entries}, nil
}

// AllTime returns the cross-week leaderboard and the requesting user's rank
// when present inside the cap.
func (r *RankingService) AllTime(ctx context.Context, requestingUsername string) (*AllTimeRankingResult, error) {
	entries, err := r.rankings.TopAllTime(ctx, rankingLimit)
	if err != nil {
		return nil, &DatabaseError{Code: "DB_ALL_TIME_RANKING_ERROR", Err: err}
	}

	var position *int
	for idx, entry := range entries {
		if entry.Username == requestingUsername {
			rank := idx + 1
			position = &rank
			break
		}
	}

	r.log.Info("all-time ranking served",
		zap.String("requested_by", requestingUsername),
		zap.Int("participants", len(entries)),
	)

	return &AllTimeRankingResult{
		Type:              "all_time",
		Date:              utils.FormatDay(r.now()),
		TotalParticipants: len(entries),
		Ranking:           entries,
		UserPosition:      position,
	}, nil
}
