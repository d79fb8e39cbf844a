package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/weekly-pickem/internal/domain/game"
	"github.com/riskibarqy/weekly-pickem/internal/domain/pick"
	"github.com/riskibarqy/weekly-pickem/internal/domain/user"
	"github.com/riskibarqy/weekly-pickem/internal/platform/logging"
)

// ManualPickItem is one free-text admin pick, optionally pinned to a game.
type ManualPickItem struct {
	Team   string
	GameID int64
}

// PickIssue explains why one admin pick was not applied.
type PickIssue struct {
	Input  ManualPickItem
	Reason string
}

type ManualPicksInput struct {
	Season    int
	Week      int
	UserName  string
	Picks     []ManualPickItem
	Overwrite bool
}

type ManualPicksResult struct {
	User        string
	Season      int
	Week        int
	Inserted    int
	Overwritten int
	Issues      []PickIssue
}

// ManualPicksError carries per-item issues when nothing could be resolved.
type ManualPicksError struct {
	Issues []PickIssue
}

func (e *ManualPicksError) Error() string {
	return fmt.Sprintf("%s: no valid picks resolved (%d issues)", ErrInvalidInput, len(e.Issues))
}

func (e *ManualPicksError) Unwrap() error {
	return ErrInvalidInput
}

type ResetWeekResult struct {
	Season        int
	Week          int
	PicksDeleted  int
	ScoresDeleted int
}

// ManualPickService is the admin correction path for picks. Unlike
// PickService it cross-checks teams against the schedule and may replace
// existing picks.
type ManualPickService struct {
	userRepo    user.Repository
	gameRepo    game.Repository
	pickRepo    pick.Repository
	seasonWeeks int
	logger      *logging.Logger
	now         func() time.Time
}

func NewManualPickService(userRepo user.Repository, gameRepo game.Repository, pickRepo pick.Repository, seasonWeeks int, logger *logging.Logger) *ManualPickService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ManualPickService{
		userRepo:    userRepo,
		gameRepo:    gameRepo,
		pickRepo:    pickRepo,
		seasonWeeks: seasonWeeks,
		logger:      logger,
		now:         time.Now,
	}
}

// ResolvePickAgainstSchedule binds a free-text pick to one of the week's
// games and to that game's stored team name. A non-empty reason means the
// item could not be resolved.
func ResolvePickAgainstSchedule(games []game.Game, item ManualPickItem) (pick.Selection, string) {
	rawTeam := strings.TrimSpace(item.Team)

	if item.GameID != 0 {
		var match *game.Game
		for i := range games {
			if games[i].ID == item.GameID {
				match = &games[i]
				break
			}
		}
		if match == nil {
			return pick.Selection{}, fmt.Sprintf("gameId %d not found for week", item.GameID)
		}
		if rawTeam == "" {
			return pick.Selection{}, "team is required when using gameId"
		}
		side, ok := match.Side(rawTeam)
		if !ok {
			return pick.Selection{}, fmt.Sprintf("team '%s' not playing in specified game", rawTeam)
		}
		return pick.Selection{GameID: match.ID, PickedTeam: side}, ""
	}

	if rawTeam == "" {
		return pick.Selection{}, "team is required"
	}
	var (
		found   pick.Selection
		matches int
	)
	for _, g := range games {
		if side, ok := g.Side(rawTeam); ok {
			found = pick.Selection{GameID: g.ID, PickedTeam: side}
			matches++
		}
	}
	switch matches {
	case 0:
		return pick.Selection{}, fmt.Sprintf("no game found for team '%s' in week", rawTeam)
	case 1:
		return found, ""
	default:
		return pick.Selection{}, fmt.Sprintf("team '%s' matches multiple games in week, pass gameId", rawTeam)
	}
}

func (s *ManualPickService) Import(ctx context.Context, input ManualPicksInput) (_ ManualPicksResult, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ManualPickService.Import", weekAttrs(input.Season, input.Week)...)
	defer func() { endSpan(span, err) }()

	if err := validateWeek(input.Season, input.Week, s.seasonWeeks); err != nil {
		return ManualPicksResult{}, err
	}
	name := strings.TrimSpace(input.UserName)
	if name == "" {
		return ManualPicksResult{}, fmt.Errorf("%w: user name is required", ErrInvalidInput)
	}
	if len(input.Picks) == 0 {
		return ManualPicksResult{}, fmt.Errorf("%w: picks must be a non-empty list", ErrInvalidInput)
	}

	u, ok, err := s.userRepo.GetByName(ctx, name)
	if err != nil {
		return ManualPicksResult{}, fmt.Errorf("get user: %w", err)
	}
	if !ok {
		return ManualPicksResult{}, fmt.Errorf("%w: user '%s'", ErrNotFound, name)
	}

	games, err := s.gameRepo.ListByWeek(ctx, input.Season, input.Week)
	if err != nil {
		return ManualPicksResult{}, fmt.Errorf("list games: %w", err)
	}
	if len(games) == 0 {
		return ManualPicksResult{}, fmt.Errorf("%w: no games for season=%d week=%d", ErrNotFound, input.Season, input.Week)
	}

	var issues []PickIssue
	resolved := make([]pick.Selection, 0, len(input.Picks))
	seen := make(map[int64]struct{}, len(input.Picks))
	for _, item := range input.Picks {
		sel, reason := ResolvePickAgainstSchedule(games, item)
		if reason != "" {
			issues = append(issues, PickIssue{Input: item, Reason: reason})
			continue
		}
		if _, dup := seen[sel.GameID]; dup {
			issues = append(issues, PickIssue{Input: item, Reason: "duplicate game in request"})
			continue
		}
		seen[sel.GameID] = struct{}{}
		resolved = append(resolved, sel)
	}
	if len(resolved) == 0 {
		return ManualPicksResult{}, &ManualPicksError{Issues: issues}
	}

	result := ManualPicksResult{User: u.Name, Season: input.Season, Week: input.Week}

	if !input.Overwrite {
		existing, err := s.pickRepo.ListByUserWeek(ctx, u.ID, input.Season, input.Week)
		if err != nil {
			return ManualPicksResult{}, fmt.Errorf("list existing picks: %w", err)
		}
		taken := make(map[int64]struct{}, len(existing))
		for _, p := range existing {
			taken[p.GameID] = struct{}{}
		}
		kept := resolved[:0]
		skipped := 0
		for _, sel := range resolved {
			if _, ok := taken[sel.GameID]; ok {
				skipped++
				continue
			}
			kept = append(kept, sel)
		}
		resolved = kept
		if skipped > 0 {
			issues = append(issues, PickIssue{Reason: fmt.Sprintf("%d picks already existed for this user/week", skipped)})
		}
	}

	rows := s.toPicks(u.ID, input.Season, input.Week, resolved)
	switch {
	case input.Overwrite:
		removed, err := s.pickRepo.ReplaceForUserWeek(ctx, u.ID, input.Season, input.Week, rows)
		if err != nil {
			return ManualPicksResult{}, fmt.Errorf("replace picks: %w", err)
		}
		result.Overwritten = removed
	case len(rows) > 0:
		if err := s.pickRepo.Insert(ctx, rows); err != nil {
			return ManualPicksResult{}, fmt.Errorf("insert picks: %w", err)
		}
	}

	result.Inserted = len(rows)
	result.Issues = issues
	s.logger.InfoContext(ctx, "manual picks imported",
		"user", u.Name,
		"season", input.Season,
		"week", input.Week,
		"inserted", result.Inserted,
		"overwritten", result.Overwritten,
		"issues", len(issues),
	)
	return result, nil
}

// ResetWeek deletes every pick and weekly score of the week.
func (s *ManualPickService) ResetWeek(ctx context.Context, seasonYear, week int) (ResetWeekResult, error) {
	if err := validateWeek(seasonYear, week, s.seasonWeeks); err != nil {
		return ResetWeekResult{}, err
	}

	reset, err := s.pickRepo.ResetWeek(ctx, seasonYear, week)
	if err != nil {
		return ResetWeekResult{}, fmt.Errorf("reset week: %w", err)
	}

	s.logger.WarnContext(ctx, "week reset", "season", seasonYear, "week", week, "picks", reset.Picks, "scores", reset.Scores)
	return ResetWeekResult{Season: seasonYear, Week: week, PicksDeleted: reset.Picks, ScoresDeleted: reset.Scores}, nil
}

func (s *ManualPickService) toPicks(userID int64, seasonYear, week int, selections []pick.Selection) []pick.Pick {
	createdAt := s.now().UTC()
	out := make([]pick.Pick, 0, len(selections))
	for _, sel := range selections {
		out = append(out, pick.Pick{
			UserID:     userID,
			GameID:     sel.GameID,
			PickedTeam: sel.PickedTeam,
			Season:     seasonYear,
			Week:       week,
			CreatedAt:  createdAt,
		})
	}
	return out
}
