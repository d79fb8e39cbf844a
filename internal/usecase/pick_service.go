package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/weekly-pickem/internal/domain/pick"
	"github.com/riskibarqy/weekly-pickem/internal/domain/user"
	"github.com/riskibarqy/weekly-pickem/internal/platform/logging"
	"github.com/riskibarqy/weekly-pickem/internal/platform/metrics"
)

type SubmitPicksInput struct {
	UserID int64
	Season int
	Week   int
	Picks  []pick.Selection
}

// UserPicks groups one user's picks for a week.
type UserPicks struct {
	User  user.User
	Picks []pick.Pick
}

type PickService struct {
	pickRepo    pick.Repository
	userRepo    user.Repository
	weeks       *WeekService
	seasonWeeks int
	metrics     *metrics.Recorder
	logger      *logging.Logger
	now         func() time.Time
}

func NewPickService(pickRepo pick.Repository, userRepo user.Repository, weeks *WeekService, recorder *metrics.Recorder, logger *logging.Logger) *PickService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PickService{
		pickRepo:    pickRepo,
		userRepo:    userRepo,
		weeks:       weeks,
		seasonWeeks: weeks.Calendar().Weeks(),
		metrics:     recorder,
		logger:      logger,
		now:         time.Now,
	}
}

// Submit records a user's picks for a week in one all-or-nothing batch.
// Checks run in order: session, input, lock window, prior submission.
func (s *PickService) Submit(ctx context.Context, input SubmitPicksInput) (_ []pick.Pick, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.Submit", weekAttrs(input.Season, input.Week)...)
	defer func() { endSpan(span, err) }()
	defer func() {
		result := metrics.ResultOK
		if err != nil {
			result = metrics.ResultRejected
		}
		s.metrics.RecordPickSubmission(ctx, result)
	}()

	if input.UserID <= 0 {
		return nil, fmt.Errorf("%w: sign in to submit picks", ErrUnauthorized)
	}
	if err := validateWeek(input.Season, input.Week, s.seasonWeeks); err != nil {
		return nil, err
	}
	if len(input.Picks) == 0 {
		return nil, fmt.Errorf("%w: picks must be a non-empty list", ErrInvalidInput)
	}
	seen := make(map[int64]struct{}, len(input.Picks))
	for i, sel := range input.Picks {
		if sel.GameID <= 0 {
			return nil, fmt.Errorf("%w: picks[%d].gameId must be > 0", ErrInvalidInput, i)
		}
		if strings.TrimSpace(sel.PickedTeam) == "" {
			return nil, fmt.Errorf("%w: picks[%d].pickedTeam is required", ErrInvalidInput, i)
		}
		if _, dup := seen[sel.GameID]; dup {
			return nil, fmt.Errorf("%w: game %d picked more than once", ErrInvalidInput, sel.GameID)
		}
		seen[sel.GameID] = struct{}{}
	}

	if s.weeks.IsLocked(ctx, input.Season, input.Week) {
		return nil, fmt.Errorf("%w: season=%d week=%d", ErrLocked, input.Season, input.Week)
	}

	existing, err := s.pickRepo.ListByUserWeek(ctx, input.UserID, input.Season, input.Week)
	if err != nil {
		return nil, fmt.Errorf("list existing picks: %w", err)
	}
	if len(existing) > 0 {
		return nil, fmt.Errorf("%w: picks already submitted for season=%d week=%d", ErrConflict, input.Season, input.Week)
	}

	createdAt := s.now().UTC()
	rows := make([]pick.Pick, 0, len(input.Picks))
	for _, sel := range input.Picks {
		rows = append(rows, pick.Pick{
			UserID:     input.UserID,
			GameID:     sel.GameID,
			PickedTeam: sel.PickedTeam,
			Season:     input.Season,
			Week:       input.Week,
			CreatedAt:  createdAt,
		})
	}

	if err := s.pickRepo.Insert(ctx, rows); err != nil {
		if errors.Is(err, pick.ErrDuplicate) {
			return nil, fmt.Errorf("%w: picks already submitted for season=%d week=%d", ErrConflict, input.Season, input.Week)
		}
		return nil, fmt.Errorf("insert picks: %w", err)
	}

	s.logger.InfoContext(ctx, "picks submitted", "user_id", input.UserID, "season", input.Season, "week", input.Week, "count", len(rows))
	return rows, nil
}

func (s *PickService) ListMine(ctx context.Context, userID int64, seasonYear, week int) ([]pick.Pick, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("%w: sign in to view picks", ErrUnauthorized)
	}
	if err := validateWeek(seasonYear, week, s.seasonWeeks); err != nil {
		return nil, err
	}

	picks, err := s.pickRepo.ListByUserWeek(ctx, userID, seasonYear, week)
	if err != nil {
		return nil, fmt.Errorf("list picks: %w", err)
	}
	return picks, nil
}

// ListAll returns everyone's picks for the week, grouped by user and ordered
// by name. The viewer must have submitted their own picks first.
func (s *PickService) ListAll(ctx context.Context, viewerID int64, seasonYear, week int) ([]UserPicks, error) {
	mine, err := s.ListMine(ctx, viewerID, seasonYear, week)
	if err != nil {
		return nil, err
	}
	if len(mine) == 0 {
		return nil, fmt.Errorf("%w: submit your picks first to view others", ErrForbidden)
	}

	picks, err := s.pickRepo.ListByWeek(ctx, seasonYear, week)
	if err != nil {
		return nil, fmt.Errorf("list week picks: %w", err)
	}
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	byUser := make(map[int64][]pick.Pick, len(users))
	for _, p := range picks {
		byUser[p.UserID] = append(byUser[p.UserID], p)
	}

	out := make([]UserPicks, 0, len(byUser))
	for _, u := range users {
		if rows, ok := byUser[u.ID]; ok {
			out = append(out, UserPicks{User: u, Picks: rows})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].User.Name) < strings.ToLower(out[j].User.Name)
	})
	return out, nil
}

func validateWeek(seasonYear, week, maxWeek int) error {
	if seasonYear <= 0 {
		return fmt.Errorf("%w: season is required", ErrInvalidInput)
	}
	if week < 1 || week > maxWeek {
		return fmt.Errorf("%w: week must be between 1 and %d", ErrInvalidInput, maxWeek)
	}
	return nil
}
