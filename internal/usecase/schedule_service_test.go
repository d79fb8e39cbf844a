package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/weekly-pickem/internal/domain/game"
	"github.com/riskibarqy/weekly-pickem/internal/domain/pick"
)

func externalGame(id int64, kickoff time.Time, home, away string, state game.Status, winner string) ExternalGame {
	return ExternalGame{
		ExternalID:   id,
		Season:       testSeason,
		KickoffAt:    kickoff,
		HomeTeamName: home,
		AwayTeamName: away,
		State:        state,
		WinnerName:   winner,
	}
}

func TestScheduleServiceFetchWeek_NormalizesAndSkipsInvalid(t *testing.T) {
	t.Parallel()

	fx := newPickemFixture(t, beforeWeekOneLock)
	source := &fakeScheduleSource{weeks: map[int][]ExternalGame{
		1: {
			externalGame(101, et(time.September, 4, 20, 20), "eagles", " COWBOYS ", game.StatusFinal, "EAGLES"),
			externalGame(102, et(time.September, 7, 13, 0), "Jets", "Steelers", game.StatusFinal, ""),
			externalGame(103, et(time.September, 7, 16, 25), "Broncos", "broncos", game.StatusScheduled, ""),
			externalGame(104, et(time.September, 7, 16, 25), "Chiefs", "Chargers", game.Status("postponed"), ""),
		},
	}}
	svc := fx.schedule(source)
	ctx := context.Background()

	result, err := svc.FetchWeek(ctx, testSeason, 1)
	if err != nil {
		t.Fatalf("fetch week: %v", err)
	}
	if result.Fetched != 4 || result.Upserted != 3 || result.Skipped != 1 {
		t.Fatalf("unexpected fetch result: %+v", result)
	}

	games, _ := fx.games.ListByWeek(ctx, testSeason, 1)
	byID := make(map[int64]game.Game, len(games))
	for _, g := range games {
		byID[g.ID] = g
	}
	if g := byID[101]; g.HomeTeam != "Eagles" || g.AwayTeam != "Cowboys" || !g.IsFinal() || g.WinnerTeam != "Eagles" {
		t.Fatalf("unexpected game 101: %+v", g)
	}
	if g := byID[102]; g.Status != game.StatusInProgress || g.WinnerTeam != "" {
		t.Fatalf("final without winner must stay open: %+v", g)
	}
	if g := byID[104]; g.Status != game.StatusScheduled {
		t.Fatalf("unknown state must map to scheduled: %+v", g)
	}
	if _, ok := byID[103]; ok {
		t.Fatalf("game with identical teams must be skipped")
	}
}

func TestScheduleServiceFetchWeek_KeepsStoredResult(t *testing.T) {
	t.Parallel()

	fx := newPickemFixture(t, beforeWeekOneLock, weekOneGames()...)
	fx.setFinal(t, 101, "Cowboys")
	moved := et(time.September, 4, 20, 30)
	source := &fakeScheduleSource{weeks: map[int][]ExternalGame{
		1: {externalGame(101, moved, "Eagles", "Cowboys", game.StatusScheduled, "")},
	}}

	if _, err := fx.schedule(source).FetchWeek(context.Background(), testSeason, 1); err != nil {
		t.Fatalf("fetch week: %v", err)
	}

	g, _, _ := fx.games.GetByID(context.Background(), 101)
	if !g.IsFinal() || g.WinnerTeam != "Cowboys" {
		t.Fatalf("stale feed must not reopen a final game: %+v", g)
	}
	if !g.StartTime.Equal(moved) {
		t.Fatalf("schedule fields must follow the feed: got=%s want=%s", g.StartTime, moved)
	}
}

func TestScheduleServiceFetchWeek_SourceFailure(t *testing.T) {
	t.Parallel()

	fx := newPickemFixture(t, beforeWeekOneLock)
	source := &fakeScheduleSource{fail: map[int]error{1: errors.New("503 from upstream")}}

	_, err := fx.schedule(source).FetchWeek(context.Background(), testSeason, 1)
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
	if _, err := fx.schedule(nil).FetchWeek(context.Background(), testSeason, 1); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable without a source, got %v", err)
	}
}

func TestScheduleServiceFetchSeason_ContinuesPastFailures(t *testing.T) {
	t.Parallel()

	fx := newPickemFixture(t, beforeWeekOneLock)
	source := &fakeScheduleSource{
		weeks: map[int][]ExternalGame{
			1: {externalGame(101, et(time.September, 4, 20, 20), "Eagles", "Cowboys", game.StatusScheduled, "")},
			3: {
				externalGame(301, et(time.September, 18, 20, 15), "Bills", "Dolphins", game.StatusScheduled, ""),
				externalGame(302, et(time.September, 21, 13, 0), "Lions", "Ravens", game.StatusScheduled, ""),
			},
		},
		fail: map[int]error{2: errors.New("timeout")},
	}

	result, err := fx.schedule(source).FetchSeason(context.Background(), testSeason, []int{3, 1, 2})
	if err != nil {
		t.Fatalf("fetch season: %v", err)
	}
	if result.Upserted != 3 || result.Failed != 1 || len(result.Weeks) != 3 {
		t.Fatalf("unexpected season result: %+v", result)
	}
	for i, row := range result.Weeks {
		if row.Week != i+1 {
			t.Fatalf("weeks must be ordered: %+v", result.Weeks)
		}
	}
	if result.Weeks[1].Error == "" {
		t.Fatalf("week 2 must carry its error")
	}
}

func TestScheduleServiceSetResult(t *testing.T) {
	t.Parallel()

	fx := newPickemFixture(t, beforeWeekOneLock, weekOneGames()...)
	svc := fx.schedule(nil)
	ctx := context.Background()
	if err := fx.picks.Insert(ctx, []pick.Pick{{UserID: 1, GameID: 101, PickedTeam: "Eagles", Season: testSeason, Week: 1}}); err != nil {
		t.Fatalf("seed pick: %v", err)
	}

	out, err := svc.SetResult(ctx, SetResultInput{GameID: 101, WinnerTeam: "eagles", Status: "FINAL", Season: testSeason, Week: 1})
	if err != nil {
		t.Fatalf("set result: %v", err)
	}
	if out.Game.WinnerTeam != "Eagles" || !out.Game.IsFinal() {
		t.Fatalf("winner must be stored as the game's own team name: %+v", out.Game)
	}
	if out.Scores == nil || out.Scores.Scored == 0 {
		t.Fatalf("expected scores recomputed: %+v", out.Scores)
	}
	if got := pointsByUser(t, fx); got[1] != 1 {
		t.Fatalf("unexpected alice points: %v", got)
	}

	cases := []struct {
		name   string
		input  SetResultInput
		target error
	}{
		{name: "status moves backwards", input: SetResultInput{GameID: 101, Status: "scheduled"}, target: ErrInvalidInput},
		{name: "winner not playing", input: SetResultInput{GameID: 102, Status: "final", WinnerTeam: "Eagles"}, target: ErrInvalidInput},
		{name: "unknown status", input: SetResultInput{GameID: 102, Status: "halftime"}, target: ErrInvalidInput},
		{name: "unknown game", input: SetResultInput{GameID: 999, Status: "final", WinnerTeam: "Eagles"}, target: ErrNotFound},
		{name: "missing game id", input: SetResultInput{Status: "final"}, target: ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.SetResult(ctx, tc.input); !errors.Is(err, tc.target) {
				t.Fatalf("unexpected error: got=%v want=%v", err, tc.target)
			}
		})
	}
}

func TestScheduleServiceCreateWeek(t *testing.T) {
	t.Parallel()

	fx := newPickemFixture(t, beforeWeekOneLock)
	svc := fx.schedule(nil)
	ctx := context.Background()

	n, err := svc.CreateWeek(ctx, CreateWeekInput{
		Season: testSeason,
		Week:   2,
		Games: []ManualGame{
			{ID: 201, HomeTeam: " packers", AwayTeam: "COMMANDERS", StartTime: et(time.September, 11, 20, 15)},
		},
	})
	if err != nil {
		t.Fatalf("create week: %v", err)
	}
	if n != 1 {
		t.Fatalf("unexpected stored count: %d", n)
	}
	g, ok, _ := fx.games.GetByID(ctx, 201)
	if !ok || g.HomeTeam != "Packers" || g.AwayTeam != "Commanders" || g.Status != game.StatusScheduled {
		t.Fatalf("unexpected stored game: %+v", g)
	}

	_, err = svc.CreateWeek(ctx, CreateWeekInput{
		Season: testSeason,
		Week:   2,
		Games: []ManualGame{
			{ID: 202, HomeTeam: "Bills", AwayTeam: "Jets", StartTime: et(time.September, 14, 13, 0)},
			{ID: 202, HomeTeam: "Rams", AwayTeam: "Titans", StartTime: et(time.September, 14, 16, 5)},
		},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for duplicate ids, got %v", err)
	}
}

func TestScheduleServiceRefreshUpcoming_SkipsAfterLastWeek(t *testing.T) {
	t.Parallel()

	fx := newPickemFixture(t, et(time.December, 31, 12, 0))
	source := &fakeScheduleSource{}

	run, err := fx.schedule(source).RefreshUpcoming(context.Background())
	if err != nil {
		t.Fatalf("refresh upcoming: %v", err)
	}
	if !run.Skipped || run.Week != 19 {
		t.Fatalf("expected skipped run past week 18: %+v", run)
	}
	if len(source.calls) != 0 {
		t.Fatalf("source must not be called: %v", source.calls)
	}
}

func TestScheduleServiceRefreshUpcoming_FetchesNextWeek(t *testing.T) {
	t.Parallel()

	fx := newPickemFixture(t, beforeWeekOneLock, weekOneGames()...)
	source := &fakeScheduleSource{weeks: map[int][]ExternalGame{
		2: {externalGame(201, et(time.September, 11, 20, 15), "Packers", "Commanders", game.StatusScheduled, "")},
	}}

	run, err := fx.schedule(source).RefreshUpcoming(context.Background())
	if err != nil {
		t.Fatalf("refresh upcoming: %v", err)
	}
	if run.Week != 2 || run.Games != 1 {
		t.Fatalf("unexpected run: %+v", run)
	}
}

func TestScheduleServiceResolveCurrent_ScoresWhenSourceDown(t *testing.T) {
	t.Parallel()

	fx := newPickemFixture(t, et(time.September, 8, 12, 0), weekOneGames()...)
	fx.setFinal(t, 101, "Eagles")
	fx.setFinal(t, 102, "Jets")
	fx.setFinal(t, 103, "Broncos")
	seedWeekOnePicks(t, fx)
	source := &fakeScheduleSource{fail: map[int]error{1: errors.New("connection reset")}}

	run, err := fx.schedule(source).ResolveCurrent(context.Background())
	if err != nil {
		t.Fatalf("resolve current: %v", err)
	}
	if run.Week != 1 || run.Scores == nil || run.Scores.Scored != 4 {
		t.Fatalf("unexpected run: %+v", run)
	}
}
