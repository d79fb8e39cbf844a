package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/weekly-pickem/internal/domain/game"
)

type gameTableModel struct {
	ID         int64          `db:"id"`
	Season     int            `db:"season"`
	Week       int            `db:"week"`
	StartTime  time.Time      `db:"start_time"`
	HomeTeam   string         `db:"home_team"`
	AwayTeam   string         `db:"away_team"`
	Status     string         `db:"status"`
	WinnerTeam sql.NullString `db:"winner_team"`
	CreatedAt  time.Time      `db:"created_at,readonly"`
	UpdatedAt  time.Time      `db:"updated_at,readonly"`
}

type weekKickoffModel struct {
	Week         int       `db:"week"`
	FirstKickoff time.Time `db:"first_kickoff"`
}

func gameFromRow(row gameTableModel) game.Game {
	status, ok := game.ParseStatus(row.Status)
	if !ok {
		status = game.StatusScheduled
	}
	return game.Game{
		ID:         row.ID,
		Season:     row.Season,
		Week:       row.Week,
		StartTime:  row.StartTime.UTC(),
		HomeTeam:   row.HomeTeam,
		AwayTeam:   row.AwayTeam,
		Status:     status,
		WinnerTeam: row.WinnerTeam.String,
	}
}

func gameToRow(g game.Game) gameTableModel {
	return gameTableModel{
		ID:         g.ID,
		Season:     g.Season,
		Week:       g.Week,
		StartTime:  g.StartTime.UTC(),
		HomeTeam:   g.HomeTeam,
		AwayTeam:   g.AwayTeam,
		Status:     string(g.Status),
		WinnerTeam: nullableString(g.WinnerTeam),
	}
}
