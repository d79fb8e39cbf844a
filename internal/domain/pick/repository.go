package pick

import "context"

// Repository describes pick persistence needs from use cases.
type Repository interface {
	// ListByUserWeek returns picks ordered by game id.
	ListByUserWeek(ctx context.Context, userID int64, season, week int) ([]Pick, error)
	// ListByWeek returns picks ordered by user id, then game id.
	ListByWeek(ctx context.Context, season, week int) ([]Pick, error)
	// CountThroughWeek counts picks of the season in weeks 1..week.
	CountThroughWeek(ctx context.Context, season, week int) (int, error)
	// Insert stores every pick or none of them. Key conflicts return ErrDuplicate.
	Insert(ctx context.Context, picks []Pick) error
	// ReplaceForUserWeek atomically deletes the user's picks for the week and
	// inserts picks, returning the number deleted.
	ReplaceForUserWeek(ctx context.Context, userID int64, season, week int, picks []Pick) (int, error)
	// ResetWeek deletes every pick of the week together with the weekly
	// scores computed from them. Either both go or neither does.
	ResetWeek(ctx context.Context, season, week int) (WeekReset, error)
}

// WeekReset counts the rows ResetWeek removed.
type WeekReset struct {
	Picks  int
	Scores int
}
