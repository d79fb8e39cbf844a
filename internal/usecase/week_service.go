package usecase

import (
	"context"
	"time"

	"github.com/riskibarqy/weekly-pickem/internal/domain/game"
	"github.com/riskibarqy/weekly-pickem/internal/domain/season"
	"github.com/riskibarqy/weekly-pickem/internal/platform/logging"
)

// CurrentWeek is the active week together with its pick deadline.
type CurrentWeek struct {
	Season   int
	Week     int
	LockTime time.Time
	Locked   bool
}

// WeekService answers which week is current and when its picks lock. Stored
// kickoffs drive the answer when present; the calendar covers the rest.
// Storage failures degrade to the calendar instead of failing the caller.
type WeekService struct {
	gameRepo      game.Repository
	calendar      season.Calendar
	locksDisabled bool
	logger        *logging.Logger
	now           func() time.Time
}

func NewWeekService(gameRepo game.Repository, calendar season.Calendar, locksDisabled bool, logger *logging.Logger) *WeekService {
	if logger == nil {
		logger = logging.Default()
	}
	return &WeekService{
		gameRepo:      gameRepo,
		calendar:      calendar,
		locksDisabled: locksDisabled,
		logger:        logger,
		now:           time.Now,
	}
}

func (s *WeekService) Calendar() season.Calendar {
	return s.calendar
}

func (s *WeekService) Current(ctx context.Context) season.Week {
	ctx, span := startUsecaseSpan(ctx, "usecase.WeekService.Current")
	defer span.End()

	now := s.now()
	latest, ok, err := s.gameRepo.LatestSeason(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "latest season lookup failed, using calendar week", "error", err)
		return s.calendar.FallbackWeek(now)
	}
	if !ok {
		return s.calendar.FallbackWeek(now)
	}

	kickoffs, err := s.gameRepo.FirstKickoffs(ctx, latest)
	if err != nil {
		s.logger.WarnContext(ctx, "first kickoff lookup failed, using calendar week", "season", latest, "error", err)
		return s.calendar.FallbackWeek(now)
	}
	return s.calendar.CurrentFromKickoffs(latest, kickoffs, now)
}

// LockTime is Thursday 20:00 local of the week holding the week's first
// stored kickoff, or the calendar estimate when the week has no games.
func (s *WeekService) LockTime(ctx context.Context, seasonYear, week int) time.Time {
	kickoffs, err := s.gameRepo.FirstKickoffs(ctx, seasonYear)
	if err != nil {
		s.logger.WarnContext(ctx, "first kickoff lookup failed, using calendar lock", "season", seasonYear, "week", week, "error", err)
		return s.calendar.FallbackLockAt(seasonYear, week)
	}
	for _, k := range kickoffs {
		if k.Week == week {
			return s.calendar.LockAt(k.FirstKickoff)
		}
	}
	return s.calendar.FallbackLockAt(seasonYear, week)
}

func (s *WeekService) IsLocked(ctx context.Context, seasonYear, week int) bool {
	if s.locksDisabled {
		return false
	}
	return !s.now().Before(s.LockTime(ctx, seasonYear, week))
}

func (s *WeekService) CurrentWithLock(ctx context.Context) CurrentWeek {
	wk := s.Current(ctx)
	return CurrentWeek{
		Season:   wk.Season,
		Week:     wk.Week,
		LockTime: s.LockTime(ctx, wk.Season, wk.Week),
		Locked:   s.IsLocked(ctx, wk.Season, wk.Week),
	}
}
