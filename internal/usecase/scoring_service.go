package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/weekly-pickem/internal/domain/game"
	"github.com/riskibarqy/weekly-pickem/internal/domain/pick"
	"github.com/riskibarqy/weekly-pickem/internal/domain/scoring"
	"github.com/riskibarqy/weekly-pickem/internal/domain/user"
	"github.com/riskibarqy/weekly-pickem/internal/platform/logging"
	"github.com/riskibarqy/weekly-pickem/internal/platform/metrics"
	"github.com/sourcegraph/conc/pool"
)

const defaultRecomputeWorkers = 4

// ScoreSummary reports one recomputation of a week.
type ScoreSummary struct {
	Season     int
	Week       int
	Users      int
	Scored     int
	Pending    int
	ComputedAt time.Time
}

// ScoreboardRow is one user's season total with the weekly breakdown.
type ScoreboardRow struct {
	User   user.User
	Total  int
	Weekly []scoring.WeeklyScore
}

type ScoringService struct {
	userRepo    user.Repository
	gameRepo    game.Repository
	pickRepo    pick.Repository
	scoringRepo scoring.Repository
	seasonWeeks int
	workers     int
	metrics     *metrics.Recorder
	logger      *logging.Logger
	now         func() time.Time
}

func NewScoringService(
	userRepo user.Repository,
	gameRepo game.Repository,
	pickRepo pick.Repository,
	scoringRepo scoring.Repository,
	seasonWeeks int,
	workers int,
	recorder *metrics.Recorder,
	logger *logging.Logger,
) *ScoringService {
	if logger == nil {
		logger = logging.Default()
	}
	if workers < 1 {
		workers = defaultRecomputeWorkers
	}
	return &ScoringService{
		userRepo:    userRepo,
		gameRepo:    gameRepo,
		pickRepo:    pickRepo,
		scoringRepo: scoringRepo,
		seasonWeeks: seasonWeeks,
		workers:     workers,
		metrics:     recorder,
		logger:      logger,
		now:         time.Now,
	}
}

// CalculateAllWeeklyScores recomputes every user's all-or-nothing score for
// the week. A user is skipped while any game they picked is missing or not
// final. Users without picks score zero. Scores are written in one batch so a
// storage failure leaves the week untouched, and reruns are idempotent.
func (s *ScoringService) CalculateAllWeeklyScores(ctx context.Context, seasonYear, week int) (_ ScoreSummary, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.CalculateAllWeeklyScores", weekAttrs(seasonYear, week)...)
	defer func() { endSpan(span, err) }()

	summary := ScoreSummary{Season: seasonYear, Week: week}
	defer func() { s.metrics.RecordScoringRun(ctx, summary.Scored, summary.Pending, err) }()

	if err := validateWeek(seasonYear, week, s.seasonWeeks); err != nil {
		return summary, err
	}

	users, err := s.userRepo.List(ctx)
	if err != nil {
		return summary, fmt.Errorf("list users: %w", err)
	}
	games, err := s.gameRepo.ListByWeek(ctx, seasonYear, week)
	if err != nil {
		return summary, fmt.Errorf("list games: %w", err)
	}
	picks, err := s.pickRepo.ListByWeek(ctx, seasonYear, week)
	if err != nil {
		return summary, fmt.Errorf("list picks: %w", err)
	}

	gamesByID := make(map[int64]game.Game, len(games))
	for _, g := range games {
		gamesByID[g.ID] = g
	}
	picksByUser := make(map[int64][]pick.Pick, len(users))
	for _, p := range picks {
		picksByUser[p.UserID] = append(picksByUser[p.UserID], p)
	}

	computedAt := s.now().UTC()
	scores := make([]scoring.WeeklyScore, 0, len(users))
	for _, u := range users {
		tally := scoring.TallyPicks(picksByUser[u.ID], gamesByID)
		if !tally.Ready() {
			summary.Pending++
			continue
		}
		scores = append(scores, scoring.WeeklyScore{
			UserID:     u.ID,
			Season:     seasonYear,
			Week:       week,
			Points:     tally.Points(),
			ComputedAt: computedAt,
		})
	}
	summary.Users = len(users)

	if len(scores) > 0 {
		if err := s.scoringRepo.Upsert(ctx, scores); err != nil {
			return ScoreSummary{Season: seasonYear, Week: week, Users: len(users)}, fmt.Errorf("upsert weekly scores: %w", err)
		}
	}
	summary.Scored = len(scores)
	summary.ComputedAt = computedAt

	s.logger.InfoContext(ctx, "weekly scores computed",
		"season", seasonYear,
		"week", week,
		"users", summary.Users,
		"scored", summary.Scored,
		"pending", summary.Pending,
	)
	return summary, nil
}

// RecalculateSeason recomputes the given weeks concurrently, or every week
// when weeks is empty. Summaries come back ordered by week.
func (s *ScoringService) RecalculateSeason(ctx context.Context, seasonYear int, weeks []int) ([]ScoreSummary, error) {
	weeks, err := normalizeWeeks(weeks, s.seasonWeeks)
	if err != nil {
		return nil, err
	}
	if seasonYear <= 0 {
		return nil, fmt.Errorf("%w: season is required", ErrInvalidInput)
	}

	p := pool.NewWithResults[ScoreSummary]().
		WithMaxGoroutines(s.workers).
		WithContext(ctx).
		WithCancelOnError()
	for _, week := range weeks {
		p.Go(func(ctx context.Context) (ScoreSummary, error) {
			return s.CalculateAllWeeklyScores(ctx, seasonYear, week)
		})
	}
	summaries, err := p.Wait()
	if err != nil {
		return nil, err
	}

	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Week < summaries[j].Week })
	return summaries, nil
}

// Scoreboard lists every user with their season total, highest first and
// ties by name.
func (s *ScoringService) Scoreboard(ctx context.Context, seasonYear int) ([]ScoreboardRow, error) {
	if seasonYear <= 0 {
		return nil, fmt.Errorf("%w: season is required", ErrInvalidInput)
	}

	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	scores, err := s.scoringRepo.ListBySeason(ctx, seasonYear)
	if err != nil {
		return nil, fmt.Errorf("list weekly scores: %w", err)
	}

	byUser := make(map[int64][]scoring.WeeklyScore, len(users))
	for _, sc := range scores {
		byUser[sc.UserID] = append(byUser[sc.UserID], sc)
	}

	rows := make([]ScoreboardRow, 0, len(users))
	for _, u := range users {
		weekly := byUser[u.ID]
		sort.Slice(weekly, func(i, j int) bool { return weekly[i].Week < weekly[j].Week })
		total := 0
		for _, w := range weekly {
			total += w.Points
		}
		rows = append(rows, ScoreboardRow{User: u, Total: total, Weekly: weekly})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Total != rows[j].Total {
			return rows[i].Total > rows[j].Total
		}
		return strings.ToLower(rows[i].User.Name) < strings.ToLower(rows[j].User.Name)
	})
	return rows, nil
}

func normalizeWeeks(weeks []int, maxWeek int) ([]int, error) {
	if len(weeks) == 0 {
		out := make([]int, 0, maxWeek)
		for w := 1; w <= maxWeek; w++ {
			out = append(out, w)
		}
		return out, nil
	}

	seen := make(map[int]struct{}, len(weeks))
	out := make([]int, 0, len(weeks))
	for _, w := range weeks {
		if w < 1 || w > maxWeek {
			return nil, fmt.Errorf("%w: week %d outside 1..%d", ErrInvalidInput, w, maxWeek)
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	sort.Ints(out)
	return out, nil
}
