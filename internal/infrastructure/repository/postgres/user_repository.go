package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/weekly-pickem/internal/domain/user"
	qb "github.com/riskibarqy/weekly-pickem/internal/platform/querybuilder"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) List(ctx context.Context) ([]user.User, error) {
	query, args, err := qb.Select("id", "name", "created_at").
		From("users").
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list users query: %w", err)
	}

	var rows []userTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	out := make([]user.User, 0, len(rows))
	for _, row := range rows {
		out = append(out, user.User{ID: row.ID, Name: row.Name})
	}
	return out, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (user.User, bool, error) {
	query, args, err := qb.Select("id", "name", "created_at").
		From("users").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return user.User{}, false, fmt.Errorf("build get user query: %w", err)
	}
	return r.getOne(ctx, query, args)
}

func (r *UserRepository) GetByName(ctx context.Context, name string) (user.User, bool, error) {
	query, args, err := qb.Select("id", "name", "created_at").
		From("users").
		Where(qb.Expr("LOWER(name) = LOWER(?)", strings.TrimSpace(name))).
		ToSQL()
	if err != nil {
		return user.User{}, false, fmt.Errorf("build get user by name query: %w", err)
	}
	return r.getOne(ctx, query, args)
}

// EnsureNames seeds the roster in one transaction. Names already present,
// in any casing, are left alone.
func (r *UserRepository) EnsureNames(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed users tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO users (name)
VALUES (:name)
ON CONFLICT ((LOWER(name))) DO NOTHING`, map[string]any{"name": name})
		if err != nil {
			return fmt.Errorf("bind seed user %s query: %w", name, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed user %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed users tx: %w", err)
	}
	return nil
}

func (r *UserRepository) getOne(ctx context.Context, query string, args []any) (user.User, bool, error) {
	var row userTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return user.User{}, false, nil
		}
		return user.User{}, false, fmt.Errorf("get user: %w", err)
	}
	return user.User{ID: row.ID, Name: row.Name}, true, nil
}
