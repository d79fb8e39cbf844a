package postgres

import "time"

type weeklyScoreTableModel struct {
	UserID     int64     `db:"user_id"`
	Season     int       `db:"season"`
	Week       int       `db:"week"`
	Points     int       `db:"points"`
	ComputedAt time.Time `db:"computed_at"`
}
