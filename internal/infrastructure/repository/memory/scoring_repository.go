package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/weekly-pickem/internal/domain/scoring"
)

type scoreKey struct {
	userID int64
	season int
	week   int
}

type ScoringRepository struct {
	mu    sync.RWMutex
	items map[scoreKey]scoring.WeeklyScore
}

func NewScoringRepository() *ScoringRepository {
	return &ScoringRepository{items: make(map[scoreKey]scoring.WeeklyScore)}
}

func (r *ScoringRepository) Upsert(_ context.Context, scores []scoring.WeeklyScore) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range scores {
		r.items[scoreKey{userID: s.UserID, season: s.Season, week: s.Week}] = s
	}
	return nil
}

func (r *ScoringRepository) ListBySeason(_ context.Context, season int) ([]scoring.WeeklyScore, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]scoring.WeeklyScore, 0)
	for _, s := range r.items {
		if s.Season == season {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UserID != out[j].UserID {
			return out[i].UserID < out[j].UserID
		}
		return out[i].Week < out[j].Week
	})
	return out, nil
}

// deleteWeek is called by PickRepository.ResetWeek while it holds its own
// lock, so picks are always locked before scores.
func (r *ScoringRepository) deleteWeek(season, week int) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for key := range r.items {
		if key.season == season && key.week == week {
			delete(r.items, key)
			removed++
		}
	}
	return removed
}
