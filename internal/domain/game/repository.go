package game

import (
	"context"
	"time"
)

// WeekKickoff is the earliest kickoff stored for one week of a season.
type WeekKickoff struct {
	Week         int
	FirstKickoff time.Time
}

// Repository describes game persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, id int64) (Game, bool, error)
	// ListByWeek returns games ordered by start time, then id.
	ListByWeek(ctx context.Context, season, week int) ([]Game, error)
	LatestSeason(ctx context.Context) (int, bool, error)
	// FirstKickoffs returns one entry per stored week, ordered by week.
	FirstKickoffs(ctx context.Context, season int) ([]WeekKickoff, error)
	// Upsert inserts or replaces games keyed by id. A stored status never
	// moves backwards; see Merge.
	Upsert(ctx context.Context, games []Game) error
	UpdateResult(ctx context.Context, id int64, status Status, winner string) error
}
