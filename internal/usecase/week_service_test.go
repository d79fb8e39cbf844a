package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/weekly-pickem/internal/domain/season"
	gamemock "github.com/riskibarqy/weekly-pickem/internal/mocks/domain/game"
	"github.com/riskibarqy/weekly-pickem/internal/platform/logging"
	"github.com/stretchr/testify/mock"
)

func TestWeekServiceCurrent_CalendarFallbackWithoutGames(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		now  time.Time
		want season.Week
	}{
		{name: "before anchor clamps to week one", now: et(time.August, 20, 12, 0), want: season.Week{Season: testSeason, Week: 1}},
		{name: "second calendar week", now: et(time.September, 10, 12, 0), want: season.Week{Season: testSeason, Week: 2}},
		{name: "late december clamps to last week", now: et(time.December, 31, 12, 0), want: season.Week{Season: testSeason, Week: 18}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fx := newPickemFixture(t, tc.now)
			if got := fx.weeks.Current(context.Background()); got != tc.want {
				t.Fatalf("unexpected current week: got=%+v want=%+v", got, tc.want)
			}
		})
	}
}

func TestWeekServiceCurrent_FollowsStoredKickoffs(t *testing.T) {
	t.Parallel()

	games := append(weekOneGames(), weekTwoGames()...)
	cases := []struct {
		name string
		now  time.Time
		want int
	}{
		{name: "before any window opens", now: et(time.August, 25, 9, 0), want: 1},
		{name: "inside week one window", now: et(time.September, 3, 12, 0), want: 1},
		{name: "week two opens tuesday morning", now: et(time.September, 9, 7, 0), want: 2},
		{name: "just before week two opens", now: et(time.September, 9, 6, 59), want: 1},
		{name: "long after last stored week", now: et(time.November, 1, 12, 0), want: 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fx := newPickemFixture(t, tc.now, games...)
			got := fx.weeks.Current(context.Background())
			if got.Season != testSeason || got.Week != tc.want {
				t.Fatalf("unexpected current week: got=%+v want week=%d", got, tc.want)
			}
		})
	}
}

func TestWeekServiceLockTime(t *testing.T) {
	t.Parallel()

	fx := newPickemFixture(t, et(time.September, 3, 12, 0), weekOneGames()...)
	ctx := context.Background()

	if got, want := fx.weeks.LockTime(ctx, testSeason, 1), et(time.September, 4, 20, 0); !got.Equal(want) {
		t.Fatalf("unexpected week 1 lock: got=%s want=%s", got, want)
	}
	// Week 5 has no games: the calendar window starts Monday Sep 29.
	if got, want := fx.weeks.LockTime(ctx, testSeason, 5), et(time.October, 2, 20, 0); !got.Equal(want) {
		t.Fatalf("unexpected week 5 fallback lock: got=%s want=%s", got, want)
	}
}

func TestWeekServiceIsLocked_FlipsOnceAtDeadline(t *testing.T) {
	t.Parallel()

	lock := et(time.September, 4, 20, 0)
	cases := []struct {
		now  time.Time
		want bool
	}{
		{now: lock.Add(-time.Second), want: false},
		{now: lock, want: true},
		{now: lock.Add(time.Hour), want: true},
		{now: lock.Add(30 * 24 * time.Hour), want: true},
	}
	for _, tc := range cases {
		fx := newPickemFixture(t, tc.now, weekOneGames()...)
		if got := fx.weeks.IsLocked(context.Background(), testSeason, 1); got != tc.want {
			t.Fatalf("IsLocked at %s: got=%v want=%v", tc.now, got, tc.want)
		}
	}
}

func TestWeekServiceIsLocked_DisabledNeverLocks(t *testing.T) {
	t.Parallel()

	fx := newPickemFixture(t, et(time.December, 1, 12, 0), weekOneGames()...)
	svc := NewWeekService(fx.games, fx.weeks.Calendar(), true, logging.NewNop())
	svc.now = fx.weeks.now

	if svc.IsLocked(context.Background(), testSeason, 1) {
		t.Fatalf("expected locks disabled")
	}
	if svc.CurrentWithLock(context.Background()).Locked {
		t.Fatalf("expected current week unlocked when locks are disabled")
	}
}

func TestWeekServiceCurrent_StorageFailureUsesCalendarUsingMockery(t *testing.T) {
	t.Parallel()

	repo := gamemock.NewRepository(t)
	repo.On("LatestSeason", mock.Anything).Return(0, false, errors.New("connection refused")).Once()
	repo.On("FirstKickoffs", mock.Anything, testSeason).Return(nil, errors.New("connection refused")).Once()

	svc := NewWeekService(repo, season.NewCalendar(eastern, season.DefaultWeeks), false, logging.NewNop())
	svc.now = fixedNow(et(time.September, 10, 12, 0))

	got := svc.Current(context.Background())
	if got.Season != testSeason || got.Week != 2 {
		t.Fatalf("unexpected current week: got=%+v want week=2", got)
	}

	lock := svc.LockTime(context.Background(), testSeason, 1)
	if want := et(time.September, 4, 20, 0); !lock.Equal(want) {
		t.Fatalf("unexpected fallback lock: got=%s want=%s", lock, want)
	}
}
