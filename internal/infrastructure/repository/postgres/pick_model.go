package postgres

import (
	"time"

	"github.com/riskibarqy/weekly-pickem/internal/domain/pick"
)

type pickTableModel struct {
	UserID     int64     `db:"user_id"`
	GameID     int64     `db:"game_id"`
	PickedTeam string    `db:"picked_team"`
	Season     int       `db:"season"`
	Week       int       `db:"week"`
	CreatedAt  time.Time `db:"created_at,readonly"`
}

func pickFromRow(row pickTableModel) pick.Pick {
	return pick.Pick{
		UserID:     row.UserID,
		GameID:     row.GameID,
		PickedTeam: row.PickedTeam,
		Season:     row.Season,
		Week:       row.Week,
		CreatedAt:  row.CreatedAt.UTC(),
	}
}

func pickModels(picks []pick.Pick) []any {
	out := make([]any, 0, len(picks))
	for _, p := range picks {
		out = append(out, pickTableModel{
			UserID:     p.UserID,
			GameID:     p.GameID,
			PickedTeam: p.PickedTeam,
			Season:     p.Season,
			Week:       p.Week,
		})
	}
	return out
}
