package services

import (
	"context"
	"sort"
	"time"

	"github.com/Dias221467/health-o-mania/internal/models"
	"github.com/Dias221467/health-o-mania/internal/repository"
	"github.com/Dias221467/health-o-mania/pkg/logger"
)

// MaxDailyXPDays bounds the DailyXP window.
const MaxDailyXPDays = 90

// ScoreboardService reads the XP ledger and the friend graph.
type ScoreboardService struct {
	userRepo     repository.Users
	activityRepo repository.Activities
	now          func() time.Time
}

func NewScoreboardService(store *repository.Store) *ScoreboardService {
	return &ScoreboardService{
		userRepo:     store.Users,
		activityRepo: store.Activities,
		now:          time.Now,
	}
}

// Leaderboard ranks the user and their friends by level, then XP.
// Users with equal level and XP share a rank.
func (s *ScoreboardService) Leaderboard(ctx context.Context, userID string) ([]models.LeaderboardEntry, error) {
	me, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "Your user profile could not be found.")
	}
	friends, err := s.userRepo.GetByIDs(ctx, me.Friends)
	if err != nil {
		return nil, err
	}

	players := append([]models.User{*me}, friends...)
	sort.SliceStable(players, func(i, j int) bool {
		if players[i].Level != players[j].Level {
			return players[i].Level > players[j].Level
		}
		if players[i].XP != players[j].XP {
			return players[i].XP > players[j].XP
		}
		return players[i].Name < players[j].Name
	})

	board := make([]models.LeaderboardEntry, 0, len(players))
	for i := range players {
		rank := i + 1
		if i > 0 && players[i].Level == players[i-1].Level && players[i].XP == players[i-1].XP {
			rank = board[i-1].Rank
		}
		board = append(board, models.LeaderboardEntry{
			Rank: rank,
			User: players[i].Public(),
			You:  players[i].ID == userID,
		})
	}
	return board, nil
}

// DailyXP sums the XP gained on each of the last days calendar days (UTC),
// oldest first, including days with no XP.
func (s *ScoreboardService) DailyXP(ctx context.Context, userID string, days int) ([]models.DailyXP, error) {
	if days < 1 {
		days = 7
	}
	if days > MaxDailyXPDays {
		days = MaxDailyXPDays
	}

	today := s.now().UTC().Truncate(24 * time.Hour)
	since := today.AddDate(0, 0, -(days - 1))

	events, err := s.activityRepo.ListSince(ctx, userID, since)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Error("Failed to read XP ledger")
		return nil, err
	}

	totals := make(map[string]int, days)
	for _, e := range events {
		totals[e.Timestamp.UTC().Format(time.DateOnly)] += e.XPGained
	}

	out := make([]models.DailyXP, 0, days)
	for d := since; !d.After(today); d = d.AddDate(0, 0, 1) {
		key := d.Format(time.DateOnly)
		out = append(out, models.DailyXP{Date: key, XP: totals[key]})
	}
	return out, nil
}
