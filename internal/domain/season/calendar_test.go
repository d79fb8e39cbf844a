package season

import (
	"testing"
	"time"

	"github.com/riskibarqy/weekly-pickem/internal/domain/game"
)

func newYork(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}
	return loc
}

func TestFallbackWeek(t *testing.T) {
	loc := newYork(t)
	cal := NewCalendar(loc, 18)

	cases := []struct {
		name string
		now  time.Time
		want Week
	}{
		{name: "before anchor clamps to week one", now: time.Date(2025, 8, 15, 12, 0, 0, 0, loc), want: Week{Season: 2025, Week: 1}},
		{name: "anchor day", now: time.Date(2025, 9, 1, 0, 0, 0, 0, loc), want: Week{Season: 2025, Week: 1}},
		{name: "day seven is still week one", now: time.Date(2025, 9, 7, 23, 59, 0, 0, loc), want: Week{Season: 2025, Week: 1}},
		{name: "day eight is week two", now: time.Date(2025, 9, 8, 0, 0, 0, 0, loc), want: Week{Season: 2025, Week: 2}},
		{name: "across dst change", now: time.Date(2025, 11, 10, 0, 0, 0, 0, loc), want: Week{Season: 2025, Week: 11}},
		{name: "late season clamps to last week", now: time.Date(2025, 12, 31, 12, 0, 0, 0, loc), want: Week{Season: 2025, Week: 18}},
		{name: "utc instant uses local year", now: time.Date(2026, 1, 1, 3, 0, 0, 0, time.UTC), want: Week{Season: 2025, Week: 18}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := cal.FallbackWeek(tc.now); got != tc.want {
				t.Fatalf("FallbackWeek(%s) = %+v, want %+v", tc.now, got, tc.want)
			}
		})
	}
}

func TestOpenAndLockFromKickoff(t *testing.T) {
	loc := newYork(t)
	cal := NewCalendar(loc, 18)

	// Thursday 20:20 EDT, stored as Friday UTC.
	kickoff := time.Date(2025, 9, 5, 0, 20, 0, 0, time.UTC)

	wantOpen := time.Date(2025, 9, 2, 7, 0, 0, 0, loc)
	if got := cal.OpenAt(kickoff); !got.Equal(wantOpen) {
		t.Fatalf("OpenAt = %s, want %s", got, wantOpen)
	}
	wantLock := time.Date(2025, 9, 4, 20, 0, 0, 0, loc)
	if got := cal.LockAt(kickoff); !got.Equal(wantLock) {
		t.Fatalf("LockAt = %s, want %s", got, wantLock)
	}

	sunday := time.Date(2025, 9, 7, 13, 0, 0, 0, loc)
	if got := cal.LockAt(sunday); !got.Equal(wantLock) {
		t.Fatalf("Sunday kickoff should lock on the same Thursday, got %s", got)
	}
}

func TestStartOfWeekIsMonday(t *testing.T) {
	loc := newYork(t)
	cal := NewCalendar(loc, 18)

	monday := time.Date(2025, 9, 8, 0, 0, 0, 0, loc)
	for d := 0; d < 7; d++ {
		at := monday.AddDate(0, 0, d).Add(15 * time.Hour)
		if got := cal.StartOfWeek(at); !got.Equal(monday) {
			t.Fatalf("StartOfWeek(%s) = %s, want %s", at, got, monday)
		}
	}
}

func TestFallbackLockAt(t *testing.T) {
	loc := newYork(t)
	cal := NewCalendar(loc, 18)

	cases := []struct {
		season, week int
		want         time.Time
	}{
		{season: 2025, week: 1, want: time.Date(2025, 9, 4, 20, 0, 0, 0, loc)},
		{season: 2025, week: 2, want: time.Date(2025, 9, 11, 20, 0, 0, 0, loc)},
		{season: 2024, week: 1, want: time.Date(2024, 9, 5, 20, 0, 0, 0, loc)},
		{season: 2026, week: 1, want: time.Date(2026, 9, 3, 20, 0, 0, 0, loc)},
		{season: 2025, week: 0, want: time.Date(2025, 9, 4, 20, 0, 0, 0, loc)},
	}
	for _, tc := range cases {
		got := cal.FallbackLockAt(tc.season, tc.week)
		if !got.Equal(tc.want) {
			t.Fatalf("FallbackLockAt(%d, %d) = %s, want %s", tc.season, tc.week, got, tc.want)
		}
		if got.Weekday() != time.Thursday {
			t.Fatalf("fallback lock must be a Thursday, got %s", got.Weekday())
		}
	}
}

func TestCurrentFromKickoffs(t *testing.T) {
	loc := newYork(t)
	cal := NewCalendar(loc, 18)

	kickoffs := []game.WeekKickoff{
		{Week: 1, FirstKickoff: time.Date(2025, 9, 4, 20, 20, 0, 0, loc)},
		{Week: 2, FirstKickoff: time.Date(2025, 9, 11, 20, 15, 0, 0, loc)},
		{Week: 3, FirstKickoff: time.Date(2025, 9, 18, 20, 15, 0, 0, loc)},
	}

	cases := []struct {
		name string
		now  time.Time
		want int
	}{
		{name: "before first open defaults to first week", now: time.Date(2025, 8, 20, 9, 0, 0, 0, loc), want: 1},
		{name: "week one open", now: time.Date(2025, 9, 2, 7, 0, 0, 0, loc), want: 1},
		{name: "monday still previous week", now: time.Date(2025, 9, 8, 23, 0, 0, 0, loc), want: 1},
		{name: "tuesday opens week two", now: time.Date(2025, 9, 9, 7, 0, 0, 0, loc), want: 2},
		{name: "after last open stays on last stored week", now: time.Date(2025, 10, 30, 9, 0, 0, 0, loc), want: 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := cal.CurrentFromKickoffs(2025, kickoffs, tc.now)
			if got.Season != 2025 || got.Week != tc.want {
				t.Fatalf("CurrentFromKickoffs = %+v, want week %d", got, tc.want)
			}
		})
	}
}

func TestCurrentFromKickoffsWithoutDataFallsBack(t *testing.T) {
	loc := newYork(t)
	cal := NewCalendar(loc, 18)

	now := time.Date(2025, 9, 10, 12, 0, 0, 0, loc)
	if got := cal.CurrentFromKickoffs(2025, nil, now); got != cal.FallbackWeek(now) {
		t.Fatalf("expected fallback week, got %+v", got)
	}
}
