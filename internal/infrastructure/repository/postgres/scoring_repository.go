package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/weekly-pickem/internal/domain/scoring"
	qb "github.com/riskibarqy/weekly-pickem/internal/platform/querybuilder"
)

type ScoringRepository struct {
	db *sqlx.DB
}

func NewScoringRepository(db *sqlx.DB) *ScoringRepository {
	return &ScoringRepository{db: db}
}

func (r *ScoringRepository) Upsert(ctx context.Context, scores []scoring.WeeklyScore) error {
	if len(scores) == 0 {
		return nil
	}

	models := make([]any, 0, len(scores))
	for _, s := range scores {
		models = append(models, weeklyScoreTableModel{
			UserID:     s.UserID,
			Season:     s.Season,
			Week:       s.Week,
			Points:     s.Points,
			ComputedAt: s.ComputedAt.UTC(),
		})
	}

	query, args, err := qb.InsertModels("weekly_scores", models, `ON CONFLICT (user_id, season, week)
DO UPDATE SET
    points = EXCLUDED.points,
    computed_at = EXCLUDED.computed_at`)
	if err != nil {
		return fmt.Errorf("build upsert weekly scores query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert weekly scores: %w", err)
	}
	return nil
}

func (r *ScoringRepository) ListBySeason(ctx context.Context, season int) ([]scoring.WeeklyScore, error) {
	query, args, err := qb.Select("user_id", "season", "week", "points", "computed_at").
		From("weekly_scores").
		Where(qb.Eq("season", season)).
		OrderBy("user_id", "week").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list weekly scores query: %w", err)
	}

	var rows []weeklyScoreTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list weekly scores season=%d: %w", season, err)
	}

	out := make([]scoring.WeeklyScore, 0, len(rows))
	for _, row := range rows {
		out = append(out, scoring.WeeklyScore{
			UserID:     row.UserID,
			Season:     row.Season,
			Week:       row.Week,
			Points:     row.Points,
			ComputedAt: row.ComputedAt.UTC(),
		})
	}
	return out, nil
}
