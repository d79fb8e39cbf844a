package usecase

import (
	"context"
	"time"

	"github.com/riskibarqy/weekly-pickem/internal/domain/game"
)

// ExternalGame is one event as reported by the schedule source.
type ExternalGame struct {
	ExternalID   int64
	Season       int
	Week         int
	KickoffAt    time.Time
	HomeTeamName string
	AwayTeamName string
	State        game.Status
	WinnerName   string
}

// ScheduleSource returns the games of one regular season week. It may return
// an empty list.
type ScheduleSource interface {
	FetchWeek(ctx context.Context, season, week int) ([]ExternalGame, error)
}
