package usecase

import (
	"context"
	"sync"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/riskibarqy/weekly-pickem/internal/domain/game"
	"github.com/riskibarqy/weekly-pickem/internal/domain/season"
	"github.com/riskibarqy/weekly-pickem/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/weekly-pickem/internal/platform/logging"
)

const testSeason = 2025

var eastern = mustLocation("America/New_York")

func mustLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// et builds a wall time in the league zone during the test season.
func et(month time.Month, day, hour, minute int) time.Time {
	return time.Date(testSeason, month, day, hour, minute, 0, 0, eastern)
}

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func scheduledGame(id int64, week int, kickoff time.Time, home, away string) game.Game {
	return game.Game{
		ID:        id,
		Season:    testSeason,
		Week:      week,
		StartTime: kickoff.UTC(),
		HomeTeam:  home,
		AwayTeam:  away,
		Status:    game.StatusScheduled,
	}
}

// weekOneGames kick off Thursday Sep 4 2025, so picks lock Sep 4 20:00 ET.
func weekOneGames() []game.Game {
	return []game.Game{
		scheduledGame(101, 1, et(time.September, 4, 20, 20), "Eagles", "Cowboys"),
		scheduledGame(102, 1, et(time.September, 7, 13, 0), "Jets", "Steelers"),
		scheduledGame(103, 1, et(time.September, 7, 16, 25), "Broncos", "Titans"),
	}
}

func weekTwoGames() []game.Game {
	return []game.Game{
		scheduledGame(201, 2, et(time.September, 11, 20, 15), "Packers", "Commanders"),
	}
}

type pickemFixture struct {
	users   *memory.UserRepository
	games   *memory.GameRepository
	picks   *memory.PickRepository
	scores  *memory.ScoringRepository
	weeks   *WeekService
	pick    *PickService
	scoring *ScoringService
	manual  *ManualPickService
	odds    *OddsService
	auth    *AuthService
}

// newPickemFixture wires every service over fresh memory repositories with
// the clock pinned at now. The roster is Alice, Bob, Cara, Dana (ids 1..4).
func newPickemFixture(t *testing.T, now time.Time, games ...game.Game) *pickemFixture {
	t.Helper()

	scores := memory.NewScoringRepository()
	fx := &pickemFixture{
		users:  memory.NewUserRepository("Alice", "Bob", "Cara", "Dana"),
		games:  memory.NewGameRepository(games...),
		picks:  memory.NewPickRepository(scores),
		scores: scores,
	}
	logger := logging.NewNop()
	calendar := season.NewCalendar(eastern, season.DefaultWeeks)

	fx.weeks = NewWeekService(fx.games, calendar, false, logger)
	fx.weeks.now = fixedNow(now)
	fx.pick = NewPickService(fx.picks, fx.users, fx.weeks, nil, logger)
	fx.pick.now = fixedNow(now)
	fx.scoring = NewScoringService(fx.users, fx.games, fx.picks, fx.scores, calendar.Weeks(), 2, nil, logger)
	fx.scoring.now = fixedNow(now)
	fx.manual = NewManualPickService(fx.users, fx.games, fx.picks, calendar.Weeks(), logger)
	fx.manual.now = fixedNow(now)
	fx.odds = NewOddsService(fx.users, fx.picks, fx.scores, fx.weeks)
	fx.auth = NewAuthService(fx.users)
	return fx
}

func (fx *pickemFixture) schedule(source ScheduleSource) *ScheduleService {
	return NewScheduleService(source, fx.games, fx.weeks, fx.scoring, 2, nil, logging.NewNop())
}

func (fx *pickemFixture) setFinal(t *testing.T, id int64, winner string) {
	t.Helper()
	if err := fx.games.UpdateResult(context.Background(), id, game.StatusFinal, winner); err != nil {
		t.Fatalf("set game %d final: %v", id, err)
	}
}

type fakeScheduleSource struct {
	mu    sync.Mutex
	weeks map[int][]ExternalGame
	fail  map[int]error
	calls []int
}

func (f *fakeScheduleSource) FetchWeek(_ context.Context, _ int, week int) ([]ExternalGame, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, week)
	if err := f.fail[week]; err != nil {
		return nil, err
	}
	return f.weeks[week], nil
}
