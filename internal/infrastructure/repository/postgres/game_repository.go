package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/weekly-pickem/internal/domain/game"
	qb "github.com/riskibarqy/weekly-pickem/internal/platform/querybuilder"
)

var gameColumns = []string{"id", "season", "week", "start_time", "home_team", "away_team", "status", "winner_team", "created_at", "updated_at"}

type GameRepository struct {
	db *sqlx.DB
}

func NewGameRepository(db *sqlx.DB) *GameRepository {
	return &GameRepository{db: db}
}

func (r *GameRepository) GetByID(ctx context.Context, id int64) (game.Game, bool, error) {
	query, args, err := qb.Select(gameColumns...).
		From("games").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return game.Game{}, false, fmt.Errorf("build get game query: %w", err)
	}

	var row gameTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return game.Game{}, false, nil
		}
		return game.Game{}, false, fmt.Errorf("get game: %w", err)
	}
	return gameFromRow(row), true, nil
}

func (r *GameRepository) ListByWeek(ctx context.Context, season, week int) ([]game.Game, error) {
	query, args, err := qb.Select(gameColumns...).
		From("games").
		Where(
			qb.Eq("season", season),
			qb.Eq("week", week),
		).
		OrderBy("start_time ASC", "id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list games query: %w", err)
	}

	var rows []gameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list games season=%d week=%d: %w", season, week, err)
	}

	out := make([]game.Game, 0, len(rows))
	for _, row := range rows {
		out = append(out, gameFromRow(row))
	}
	return out, nil
}

func (r *GameRepository) LatestSeason(ctx context.Context) (int, bool, error) {
	query, args, err := qb.Select("MAX(season)").From("games").ToSQL()
	if err != nil {
		return 0, false, fmt.Errorf("build latest season query: %w", err)
	}

	var latest sql.NullInt64
	if err := r.db.GetContext(ctx, &latest, query, args...); err != nil {
		return 0, false, fmt.Errorf("get latest season: %w", err)
	}
	if !latest.Valid {
		return 0, false, nil
	}
	return int(latest.Int64), true, nil
}

func (r *GameRepository) FirstKickoffs(ctx context.Context, season int) ([]game.WeekKickoff, error) {
	query, args, err := qb.Select("week", "MIN(start_time) AS first_kickoff").
		From("games").
		Where(qb.Eq("season", season)).
		GroupBy("week").
		OrderBy("week").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build first kickoffs query: %w", err)
	}

	var rows []weekKickoffModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list first kickoffs season=%d: %w", season, err)
	}

	out := make([]game.WeekKickoff, 0, len(rows))
	for _, row := range rows {
		out = append(out, game.WeekKickoff{Week: row.Week, FirstKickoff: row.FirstKickoff.UTC()})
	}
	return out, nil
}

// statusRegresses is true when the incoming row would move a stored game
// backwards, e.g. a feed read taken before an admin finalized the game.
const statusRegresses = `((games.status = 'final' AND EXCLUDED.status <> 'final')
        OR (games.status = 'in_progress' AND EXCLUDED.status = 'scheduled'))`

const gameUpsertConflict = `ON CONFLICT (id)
DO UPDATE SET
    season = EXCLUDED.season,
    week = EXCLUDED.week,
    start_time = EXCLUDED.start_time,
    home_team = EXCLUDED.home_team,
    away_team = EXCLUDED.away_team,
    status = CASE WHEN ` + statusRegresses + ` THEN games.status ELSE EXCLUDED.status END,
    winner_team = CASE
        WHEN ` + statusRegresses + ` THEN games.winner_team
        WHEN EXCLUDED.status = 'final' THEN COALESCE(EXCLUDED.winner_team, games.winner_team)
        ELSE NULL
    END,
    updated_at = NOW()`

// Upsert writes games in one statement. Repeated ids keep the last copy, and
// a stored status never moves backwards.
func (r *GameRepository) Upsert(ctx context.Context, games []game.Game) error {
	if len(games) == 0 {
		return nil
	}

	query, args, err := buildGameUpsert(games)
	if err != nil {
		return fmt.Errorf("build upsert games query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert games: %w", err)
	}
	return nil
}

func buildGameUpsert(games []game.Game) (string, []any, error) {
	index := make(map[int64]int, len(games))
	models := make([]any, 0, len(games))
	for _, g := range games {
		row := gameToRow(g)
		if i, ok := index[g.ID]; ok {
			models[i] = row
			continue
		}
		index[g.ID] = len(models)
		models = append(models, row)
	}

	return qb.InsertModels("games", models, gameUpsertConflict)
}

func (r *GameRepository) UpdateResult(ctx context.Context, id int64, status game.Status, winner string) error {
	query, args, err := qb.Update("games").
		Set("status", string(status)).
		Set("winner_team", nullableString(winner)).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update game result query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update game result id=%d: %w", id, err)
	}
	if rowsAffected(res) == 0 {
		return fmt.Errorf("update game result id=%d: %w", id, sql.ErrNoRows)
	}
	return nil
}
