package app

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/weekly-pickem/internal/config"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

// Statements longer than this are cut on db spans. The scoreboard rollup is
// the longest query we run and fits comfortably.
const spanStatementLimit = 512

// pgTarget is DB_URL after the service has tagged it with its own
// application_name.
type pgTarget struct {
	dsn      string
	database string
}

// resolvePGTarget accepts both postgres:// URLs and key=value DSNs. Only URLs
// get an application_name added, and only when the operator left it unset.
func resolvePGTarget(raw, applicationName string) pgTarget {
	raw = strings.TrimSpace(raw)
	target := pgTarget{dsn: raw}

	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		target.database = keywordValue(raw, "dbname")
		return target
	}

	target.database = strings.Trim(u.Path, "/ ")
	if name := strings.TrimSpace(applicationName); name != "" {
		q := u.Query()
		if q.Get("application_name") == "" {
			q.Set("application_name", name)
			u.RawQuery = q.Encode()
			target.dsn = u.String()
		}
	}
	return target
}

func keywordValue(dsn, key string) string {
	prefix := key + "="
	for _, field := range strings.Fields(dsn) {
		if value, ok := strings.CutPrefix(field, prefix); ok {
			return strings.Trim(value, `"'`)
		}
	}
	return ""
}

// spanStatement folds a query onto a single line for the db.statement
// attribute.
func spanStatement(query string) string {
	query = strings.TrimSuffix(strings.TrimSpace(query), ";")
	folded := strings.Join(strings.Fields(query), " ")
	if len(folded) > spanStatementLimit {
		return folded[:spanStatementLimit] + "..."
	}
	return folded
}

func openDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	target := resolvePGTarget(cfg.DBURL, cfg.ServiceName)

	db, err := otelsqlx.Open("postgres", target.dsn,
		otelsql.WithDBName(target.database),
		otelsql.WithQueryFormatter(spanStatement),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database %q: %w", target.database, err)
	}
	return db, nil
}
