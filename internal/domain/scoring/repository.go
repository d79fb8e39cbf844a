package scoring

import "context"

// Repository describes weekly score persistence needs from use cases.
type Repository interface {
	// Upsert writes scores keyed by (user, season, week), all or none.
	Upsert(ctx context.Context, scores []WeeklyScore) error
	// ListBySeason returns scores ordered by user id, then week.
	ListBySeason(ctx context.Context, season int) ([]WeeklyScore, error)
}
