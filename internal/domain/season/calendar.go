package season

import (
	"math"
	"time"

	"github.com/riskibarqy/weekly-pickem/internal/domain/game"
)

const (
	DefaultWeeks    = 18
	DefaultTimezone = "America/New_York"

	openHour = 7
	lockHour = 20
	week     = 7 * 24 * time.Hour
)

// Week identifies one week of one season.
type Week struct {
	Season int
	Week   int
}

// Calendar does the league's week arithmetic in its time zone of record.
// Weeks run Monday to Sunday local time. Picks open Tuesday 07:00 and lock
// Thursday 20:00 of the week holding a week's first kickoff.
type Calendar struct {
	loc   *time.Location
	weeks int
}

func NewCalendar(loc *time.Location, weeks int) Calendar {
	if loc == nil {
		loc = time.UTC
	}
	if weeks < 1 {
		weeks = DefaultWeeks
	}
	return Calendar{loc: loc, weeks: weeks}
}

func (c Calendar) Location() *time.Location {
	return c.loc
}

func (c Calendar) Weeks() int {
	return c.weeks
}

// Anchor is September 1 00:00 local of season.
func (c Calendar) Anchor(season int) time.Time {
	return time.Date(season, time.September, 1, 0, 0, 0, 0, c.loc)
}

// FallbackWeek derives the week from the calendar alone: the season is the
// local year and week 1 starts at the anchor.
func (c Calendar) FallbackWeek(now time.Time) Week {
	local := now.In(c.loc)
	anchor := c.Anchor(local.Year())
	elapsed := wallClock(local).Sub(wallClock(anchor))
	n := int(math.Floor(float64(elapsed)/float64(week))) + 1
	return Week{Season: local.Year(), Week: clamp(n, 1, c.weeks)}
}

// StartOfWeek is Monday 00:00 local of the week holding t.
func (c Calendar) StartOfWeek(t time.Time) time.Time {
	local := t.In(c.loc)
	back := (int(local.Weekday()) + 6) % 7
	return time.Date(local.Year(), local.Month(), local.Day()-back, 0, 0, 0, 0, c.loc)
}

// OpenAt is Tuesday 07:00 local of the week holding firstKickoff.
func (c Calendar) OpenAt(firstKickoff time.Time) time.Time {
	return c.weekdayAt(c.StartOfWeek(firstKickoff), 1, openHour)
}

// LockAt is Thursday 20:00 local of the week holding firstKickoff.
func (c Calendar) LockAt(firstKickoff time.Time) time.Time {
	return c.weekdayAt(c.StartOfWeek(firstKickoff), 3, lockHour)
}

// FallbackLockAt is 20:00 local on the first Thursday on or after the start
// of the anchor-based window of week.
func (c Calendar) FallbackLockAt(season, wk int) time.Time {
	wk = clamp(wk, 1, c.weeks)
	anchor := c.Anchor(season)
	start := time.Date(anchor.Year(), anchor.Month(), anchor.Day()+(wk-1)*7, 0, 0, 0, 0, c.loc)
	ahead := (int(time.Thursday) - int(start.Weekday()) + 7) % 7
	return c.weekdayAt(start, ahead, lockHour)
}

// CurrentFromKickoffs picks the greatest week whose open time has passed.
// Before any week opens the first stored week is current. Without kickoffs
// the calendar fallback applies.
func (c Calendar) CurrentFromKickoffs(season int, kickoffs []game.WeekKickoff, now time.Time) Week {
	if len(kickoffs) == 0 {
		return c.FallbackWeek(now)
	}

	current := kickoffs[0].Week
	for _, k := range kickoffs {
		if k.Week < current {
			current = k.Week
		}
	}

	best := 0
	for _, k := range kickoffs {
		if !now.Before(c.OpenAt(k.FirstKickoff)) && k.Week > best {
			best = k.Week
		}
	}
	if best > 0 {
		current = best
	}
	return Week{Season: season, Week: current}
}

func (c Calendar) weekdayAt(day time.Time, offsetDays, hour int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day()+offsetDays, hour, 0, 0, 0, c.loc)
}

// wallClock reinterprets t's local wall time as UTC so that differences are
// measured in calendar time across DST changes.
func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
