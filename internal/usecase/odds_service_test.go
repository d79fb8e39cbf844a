package usecase

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/riskibarqy/weekly-pickem/internal/domain/scoring"
)

func TestOddsServiceTitleOdds(t *testing.T) {
	t.Parallel()

	fx := newPickemFixture(t, et(time.September, 17, 12, 0))
	ctx := context.Background()
	if err := fx.scores.Upsert(ctx, []scoring.WeeklyScore{
		{UserID: 1, Season: testSeason, Week: 1, Points: 3},
		{UserID: 2, Season: testSeason, Week: 1, Points: 1},
		{UserID: 2, Season: testSeason, Week: 2, Points: 1},
	}); err != nil {
		t.Fatalf("seed scores: %v", err)
	}

	got, err := fx.odds.TitleOdds(ctx, 0, 0)
	if err != nil {
		t.Fatalf("title odds: %v", err)
	}
	if got.Season != testSeason || got.Week != 3 {
		t.Fatalf("zero season and week must default to the current week: %+v", got)
	}
	if got.RemainingWeeks != 16 {
		t.Fatalf("unexpected remaining weeks: %d", got.RemainingWeeks)
	}
	if len(got.Odds) != 4 || got.Odds[0].Name != "Alice" || got.Odds[0].Margin != 1 {
		t.Fatalf("unexpected leader: %+v", got.Odds)
	}

	sum := 0.0
	for i, e := range got.Odds {
		sum += e.OddsPercent
		if i > 0 && e.OddsPercent > got.Odds[i-1].OddsPercent {
			t.Fatalf("odds must be sorted descending: %+v", got.Odds)
		}
	}
	if math.Abs(sum-100) > 1e-9 {
		t.Fatalf("odds must sum to 100, got %f", sum)
	}
}

func TestOddsServiceTitleOdds_RejectsWeekOutOfRange(t *testing.T) {
	t.Parallel()

	fx := newPickemFixture(t, beforeWeekOneLock)
	if _, err := fx.odds.TitleOdds(context.Background(), testSeason, 19); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
