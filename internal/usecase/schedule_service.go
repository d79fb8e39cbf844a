package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/weekly-pickem/internal/domain/game"
	"github.com/riskibarqy/weekly-pickem/internal/domain/team"
	"github.com/riskibarqy/weekly-pickem/internal/platform/logging"
	"github.com/riskibarqy/weekly-pickem/internal/platform/metrics"
)

const defaultScheduleFetchWorkers = 4

// WeekFetch reports one week pulled from the schedule source.
type WeekFetch struct {
	Season   int
	Week     int
	Fetched  int
	Upserted int
	Skipped  int
	Error    string
}

type SeasonFetch struct {
	Season   int
	Workers  int
	Upserted int
	Failed   int
	Weeks    []WeekFetch
}

// ManualGame is one admin-entered matchup.
type ManualGame struct {
	ID        int64
	HomeTeam  string
	AwayTeam  string
	StartTime time.Time
}

type CreateWeekInput struct {
	Season int
	Week   int
	Games  []ManualGame
}

type SetResultInput struct {
	GameID     int64
	WinnerTeam string
	Status     string
	Season     int
	Week       int
}

type SetResultOutput struct {
	Game   game.Game
	Scores *ScoreSummary
}

// CronRun reports one scheduled job tick.
type CronRun struct {
	Season  int
	Week    int
	Games   int
	Skipped bool
	Reason  string
	Scores  *ScoreSummary
}

type ScheduleService struct {
	source   ScheduleSource
	gameRepo game.Repository
	weeks    *WeekService
	scoring  *ScoringService
	workers  int
	metrics  *metrics.Recorder
	logger   *logging.Logger
}

func NewScheduleService(
	source ScheduleSource,
	gameRepo game.Repository,
	weeks *WeekService,
	scoringService *ScoringService,
	workers int,
	recorder *metrics.Recorder,
	logger *logging.Logger,
) *ScheduleService {
	if logger == nil {
		logger = logging.Default()
	}
	if workers < 1 {
		workers = defaultScheduleFetchWorkers
	}
	return &ScheduleService{
		source:   source,
		gameRepo: gameRepo,
		weeks:    weeks,
		scoring:  scoringService,
		workers:  workers,
		metrics:  recorder,
		logger:   logger,
	}
}

// FetchWeek pulls one week from the schedule source and upserts it. Source
// failures are returned wrapped in ErrDependencyUnavailable.
func (s *ScheduleService) FetchWeek(ctx context.Context, seasonYear, week int) (_ WeekFetch, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.FetchWeek", weekAttrs(seasonYear, week)...)
	defer func() { endSpan(span, err) }()

	result := WeekFetch{Season: seasonYear, Week: week}
	if err := validateWeek(seasonYear, week, s.seasonWeeks()); err != nil {
		return result, err
	}
	if s.source == nil {
		return result, fmt.Errorf("%w: schedule source is not configured", ErrDependencyUnavailable)
	}

	start := time.Now()
	external, err := s.source.FetchWeek(ctx, seasonYear, week)
	s.metrics.RecordScheduleFetch(ctx, len(external), time.Since(start), err)
	if err != nil {
		return result, fmt.Errorf("%w: fetch week %d of %d: %v", ErrDependencyUnavailable, week, seasonYear, err)
	}
	result.Fetched = len(external)

	incoming := make([]game.Game, 0, len(external))
	for _, ext := range external {
		g, ok := s.fromExternal(ctx, seasonYear, week, ext)
		if !ok {
			result.Skipped++
			continue
		}
		incoming = append(incoming, g)
	}

	upserted, err := s.mergeAndUpsert(ctx, seasonYear, week, incoming)
	if err != nil {
		return result, err
	}
	result.Upserted = upserted

	s.logger.InfoContext(ctx, "schedule week ingested",
		"season", seasonYear,
		"week", week,
		"fetched", result.Fetched,
		"upserted", result.Upserted,
		"skipped", result.Skipped,
	)
	return result, nil
}

// FetchSeason fetches the given weeks, or every week when weeks is empty, on
// a bounded worker pool. One failing week does not stop the others.
func (s *ScheduleService) FetchSeason(ctx context.Context, seasonYear int, weeks []int) (SeasonFetch, error) {
	if seasonYear <= 0 {
		return SeasonFetch{}, fmt.Errorf("%w: season is required", ErrInvalidInput)
	}
	weeks, err := normalizeWeeks(weeks, s.seasonWeeks())
	if err != nil {
		return SeasonFetch{}, err
	}

	workerCount := min(s.workers, len(weeks))
	result := SeasonFetch{
		Season:  seasonYear,
		Workers: workerCount,
		Weeks:   make([]WeekFetch, 0, len(weeks)),
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return SeasonFetch{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		mu      sync.Mutex
		workers sync.WaitGroup
	)
	for _, week := range weeks {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			row, err := s.FetchWeek(ctx, seasonYear, week)
			if err != nil {
				row.Error = err.Error()
				s.logger.WarnContext(ctx, "schedule week fetch failed", "season", seasonYear, "week", week, "error", err)
			}

			mu.Lock()
			result.Weeks = append(result.Weeks, row)
			mu.Unlock()
		}); err != nil {
			workers.Done()
			workers.Wait()
			return SeasonFetch{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}
	workers.Wait()

	sort.Slice(result.Weeks, func(i, j int) bool { return result.Weeks[i].Week < result.Weeks[j].Week })
	for _, row := range result.Weeks {
		result.Upserted += row.Upserted
		if row.Error != "" {
			result.Failed++
		}
	}
	return result, nil
}

// CreateWeek stores an admin-entered schedule. Every game starts scheduled.
func (s *ScheduleService) CreateWeek(ctx context.Context, input CreateWeekInput) (int, error) {
	maxWeek := s.seasonWeeks()
	if err := validateWeek(input.Season, input.Week, maxWeek); err != nil {
		return 0, err
	}
	if len(input.Games) == 0 {
		return 0, fmt.Errorf("%w: games must not be empty", ErrInvalidInput)
	}

	seen := make(map[int64]struct{}, len(input.Games))
	games := make([]game.Game, 0, len(input.Games))
	for _, item := range input.Games {
		g := game.Game{
			ID:        item.ID,
			Season:    input.Season,
			Week:      input.Week,
			StartTime: item.StartTime.UTC(),
			HomeTeam:  team.Normalize(strings.TrimSpace(item.HomeTeam)),
			AwayTeam:  team.Normalize(strings.TrimSpace(item.AwayTeam)),
			Status:    game.StatusScheduled,
		}
		if err := g.Validate(maxWeek); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if _, dup := seen[g.ID]; dup {
			return 0, fmt.Errorf("%w: duplicate game id %d", ErrInvalidInput, g.ID)
		}
		seen[g.ID] = struct{}{}
		games = append(games, g)
	}

	return s.mergeAndUpsert(ctx, input.Season, input.Week, games)
}

// SetResult records a game's status and winner. Status only moves forward.
// Scores are recomputed when the caller names the season and week.
func (s *ScheduleService) SetResult(ctx context.Context, input SetResultInput) (_ SetResultOutput, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.SetResult", weekAttrs(input.Season, input.Week)...)
	defer func() { endSpan(span, err) }()

	if input.GameID <= 0 {
		return SetResultOutput{}, fmt.Errorf("%w: game id is required", ErrInvalidInput)
	}
	status, ok := game.ParseStatus(input.Status)
	if !ok {
		return SetResultOutput{}, fmt.Errorf("%w: status must be scheduled, in_progress or final", ErrInvalidInput)
	}

	g, found, err := s.gameRepo.GetByID(ctx, input.GameID)
	if err != nil {
		return SetResultOutput{}, fmt.Errorf("get game: %w", err)
	}
	if !found {
		return SetResultOutput{}, fmt.Errorf("%w: game %d", ErrNotFound, input.GameID)
	}
	if status.Before(g.Status) {
		return SetResultOutput{}, fmt.Errorf("%w: game %d is already %s", ErrInvalidInput, g.ID, g.Status)
	}

	winner := ""
	if status == game.StatusFinal {
		side, ok := g.Side(input.WinnerTeam)
		if !ok {
			return SetResultOutput{}, fmt.Errorf("%w: winner %q is not playing in game %d", ErrInvalidInput, input.WinnerTeam, g.ID)
		}
		winner = side
	}

	if err := s.gameRepo.UpdateResult(ctx, g.ID, status, winner); err != nil {
		return SetResultOutput{}, fmt.Errorf("update game result: %w", err)
	}
	g.Status = status
	g.WinnerTeam = winner

	s.logger.InfoContext(ctx, "game result recorded", "game_id", g.ID, "status", status, "winner", winner)

	out := SetResultOutput{Game: g}
	if input.Season > 0 && input.Week > 0 {
		summary, err := s.scoring.CalculateAllWeeklyScores(ctx, input.Season, input.Week)
		if err != nil {
			return out, fmt.Errorf("recalculate scores: %w", err)
		}
		out.Scores = &summary
	}
	return out, nil
}

// RefreshUpcoming pulls the week after the current one. Source failures are
// logged and count as zero games.
func (s *ScheduleService) RefreshUpcoming(ctx context.Context) (CronRun, error) {
	current := s.weeks.Current(ctx)
	run := CronRun{Season: current.Season, Week: current.Week + 1}
	if run.Week > s.seasonWeeks() {
		run.Skipped = true
		run.Reason = "season complete"
		return run, nil
	}

	fetched, err := s.FetchWeek(ctx, run.Season, run.Week)
	if err != nil {
		if !errors.Is(err, ErrDependencyUnavailable) {
			return run, err
		}
		s.logger.WarnContext(ctx, "upcoming schedule unavailable", "season", run.Season, "week", run.Week, "error", err)
		return run, nil
	}
	run.Games = fetched.Upserted
	return run, nil
}

// ResolveCurrent refreshes the current week's results and recomputes its
// scores. Scoring still runs over stored games when the source is down.
func (s *ScheduleService) ResolveCurrent(ctx context.Context) (CronRun, error) {
	current := s.weeks.Current(ctx)
	run := CronRun{Season: current.Season, Week: current.Week}

	fetched, err := s.FetchWeek(ctx, run.Season, run.Week)
	switch {
	case err == nil:
		run.Games = fetched.Upserted
	case errors.Is(err, ErrDependencyUnavailable):
		s.logger.WarnContext(ctx, "current schedule unavailable", "season", run.Season, "week", run.Week, "error", err)
	default:
		return run, err
	}

	summary, err := s.scoring.CalculateAllWeeklyScores(ctx, run.Season, run.Week)
	if err != nil {
		return run, fmt.Errorf("recalculate scores: %w", err)
	}
	run.Scores = &summary
	return run, nil
}

// ListWeek returns the stored games for a week ordered by kickoff, then id.
func (s *ScheduleService) ListWeek(ctx context.Context, seasonYear, week int) ([]game.Game, error) {
	if err := validateWeek(seasonYear, week, s.seasonWeeks()); err != nil {
		return nil, err
	}
	games, err := s.gameRepo.ListByWeek(ctx, seasonYear, week)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	return games, nil
}

func (s *ScheduleService) seasonWeeks() int {
	return s.weeks.Calendar().Weeks()
}

func (s *ScheduleService) fromExternal(ctx context.Context, seasonYear, week int, ext ExternalGame) (game.Game, bool) {
	g := game.Game{
		ID:        ext.ExternalID,
		Season:    seasonYear,
		Week:      week,
		StartTime: ext.KickoffAt.UTC(),
		HomeTeam:  team.Normalize(strings.TrimSpace(ext.HomeTeamName)),
		AwayTeam:  team.Normalize(strings.TrimSpace(ext.AwayTeamName)),
		Status:    ext.State,
	}
	if _, ok := game.ParseStatus(string(g.Status)); !ok {
		g.Status = game.StatusScheduled
	}
	if g.IsFinal() {
		side, ok := g.Side(ext.WinnerName)
		if !ok {
			// Ties and feeds without a flagged winner stay open until resolved.
			g.Status = game.StatusInProgress
		}
		g.WinnerTeam = side
	}

	if err := g.Validate(s.seasonWeeks()); err != nil {
		s.logger.WarnContext(ctx, "skipping schedule event", "season", seasonYear, "week", week, "external_id", ext.ExternalID, "error", err)
		return game.Game{}, false
	}
	return g, true
}

func (s *ScheduleService) mergeAndUpsert(ctx context.Context, seasonYear, week int, incoming []game.Game) (int, error) {
	if len(incoming) == 0 {
		return 0, nil
	}

	existing, err := s.gameRepo.ListByWeek(ctx, seasonYear, week)
	if err != nil {
		return 0, fmt.Errorf("list games: %w", err)
	}
	byID := make(map[int64]game.Game, len(existing))
	for _, g := range existing {
		byID[g.ID] = g
	}

	merged := make([]game.Game, 0, len(incoming))
	for _, g := range incoming {
		if prev, ok := byID[g.ID]; ok {
			g = game.Merge(prev, g)
		}
		merged = append(merged, g)
	}

	if err := s.gameRepo.Upsert(ctx, merged); err != nil {
		return 0, fmt.Errorf("upsert games: %w", err)
	}
	return len(merged), nil
}
