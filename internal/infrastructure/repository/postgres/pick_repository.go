package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/weekly-pickem/internal/domain/pick"
	qb "github.com/riskibarqy/weekly-pickem/internal/platform/querybuilder"
)

var pickColumns = []string{"user_id", "game_id", "picked_team", "season", "week", "created_at"}

type PickRepository struct {
	db *sqlx.DB
}

func NewPickRepository(db *sqlx.DB) *PickRepository {
	return &PickRepository{db: db}
}

func (r *PickRepository) ListByUserWeek(ctx context.Context, userID int64, season, week int) ([]pick.Pick, error) {
	query, args, err := qb.Select(pickColumns...).
		From("picks").
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("season", season),
			qb.Eq("week", week),
		).
		OrderBy("game_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list user picks query: %w", err)
	}
	return r.list(ctx, query, args)
}

func (r *PickRepository) ListByWeek(ctx context.Context, season, week int) ([]pick.Pick, error) {
	query, args, err := qb.Select(pickColumns...).
		From("picks").
		Where(
			qb.Eq("season", season),
			qb.Eq("week", week),
		).
		OrderBy("user_id", "game_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list week picks query: %w", err)
	}
	return r.list(ctx, query, args)
}

func (r *PickRepository) CountThroughWeek(ctx context.Context, season, week int) (int, error) {
	query, args, err := qb.Select("COUNT(1)").
		From("picks").
		Where(
			qb.Eq("season", season),
			qb.Lte("week", week),
		).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count picks query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count picks season=%d week<=%d: %w", season, week, err)
	}
	return count, nil
}

func (r *PickRepository) Insert(ctx context.Context, picks []pick.Pick) error {
	if len(picks) == 0 {
		return nil
	}

	query, args, err := qb.InsertModels("picks", pickModels(picks), "")
	if err != nil {
		return fmt.Errorf("build insert picks query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return pick.ErrDuplicate
		}
		return fmt.Errorf("insert picks: %w", err)
	}
	return nil
}

func (r *PickRepository) ReplaceForUserWeek(ctx context.Context, userID int64, season, week int, picks []pick.Pick) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx replace picks: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	clearQuery, clearArgs, err := qb.DeleteFrom("picks").
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("season", season),
			qb.Eq("week", week),
		).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build clear picks query: %w", err)
	}
	res, err := tx.ExecContext(ctx, clearQuery, clearArgs...)
	if err != nil {
		return 0, fmt.Errorf("clear picks user=%d season=%d week=%d: %w", userID, season, week, err)
	}
	removed := rowsAffected(res)

	if len(picks) > 0 {
		query, args, err := qb.InsertModels("picks", pickModels(picks), "")
		if err != nil {
			return 0, fmt.Errorf("build insert picks query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			if isUniqueViolation(err) {
				return 0, pick.ErrDuplicate
			}
			return 0, fmt.Errorf("insert picks: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit replace picks tx: %w", err)
	}
	return removed, nil
}

// ResetWeek clears weekly_scores alongside picks since scores without their
// picks would survive into the scoreboard.
func (r *PickRepository) ResetWeek(ctx context.Context, season, week int) (pick.WeekReset, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return pick.WeekReset{}, fmt.Errorf("begin tx reset week: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var out pick.WeekReset
	for _, target := range []struct {
		table string
		count *int
	}{
		{table: "weekly_scores", count: &out.Scores},
		{table: "picks", count: &out.Picks},
	} {
		query, args, err := qb.DeleteFrom(target.table).
			Where(
				qb.Eq("season", season),
				qb.Eq("week", week),
			).
			ToSQL()
		if err != nil {
			return pick.WeekReset{}, fmt.Errorf("build delete %s query: %w", target.table, err)
		}
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return pick.WeekReset{}, fmt.Errorf("delete %s season=%d week=%d: %w", target.table, season, week, err)
		}
		*target.count = rowsAffected(res)
	}

	if err := tx.Commit(); err != nil {
		return pick.WeekReset{}, fmt.Errorf("commit reset week tx: %w", err)
	}
	return out, nil
}

func (r *PickRepository) list(ctx context.Context, query string, args []any) ([]pick.Pick, error) {
	var rows []pickTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list picks: %w", err)
	}

	out := make([]pick.Pick, 0, len(rows))
	for _, row := range rows {
		out = append(out, pickFromRow(row))
	}
	return out, nil
}
