package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/weekly-pickem/internal/domain/pick"
)

type pickKey struct {
	userID int64
	gameID int64
}

type PickRepository struct {
	mu     sync.RWMutex
	items  map[pickKey]pick.Pick
	scores *ScoringRepository
	now    func() time.Time
}

// NewPickRepository keeps picks in memory. scores, when set, is cleared
// together with picks on ResetWeek.
func NewPickRepository(scores *ScoringRepository) *PickRepository {
	return &PickRepository{
		items:  make(map[pickKey]pick.Pick),
		scores: scores,
		now:    time.Now,
	}
}

func (r *PickRepository) ListByUserWeek(_ context.Context, userID int64, season, week int) ([]pick.Pick, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.filter(func(p pick.Pick) bool {
		return p.UserID == userID && p.Season == season && p.Week == week
	}), nil
}

func (r *PickRepository) ListByWeek(_ context.Context, season, week int) ([]pick.Pick, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.filter(func(p pick.Pick) bool {
		return p.Season == season && p.Week == week
	}), nil
}

func (r *PickRepository) CountThroughWeek(_ context.Context, season, week int) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.filter(func(p pick.Pick) bool {
		return p.Season == season && p.Week <= week
	})), nil
}

func (r *PickRepository) Insert(_ context.Context, picks []pick.Pick) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.insertLocked(picks)
}

func (r *PickRepository) ReplaceForUserWeek(_ context.Context, userID int64, season, week int, picks []pick.Pick) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := make(map[pickKey]pick.Pick)
	for key, p := range r.items {
		if p.UserID == userID && p.Season == season && p.Week == week {
			removed[key] = p
			delete(r.items, key)
		}
	}
	if err := r.insertLocked(picks); err != nil {
		for key, p := range removed {
			r.items[key] = p
		}
		return 0, err
	}
	return len(removed), nil
}

func (r *PickRepository) ResetWeek(_ context.Context, season, week int) (pick.WeekReset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out pick.WeekReset
	for key, p := range r.items {
		if p.Season == season && p.Week == week {
			delete(r.items, key)
			out.Picks++
		}
	}
	if r.scores != nil {
		out.Scores = r.scores.deleteWeek(season, week)
	}
	return out, nil
}

func (r *PickRepository) insertLocked(picks []pick.Pick) error {
	batch := make(map[pickKey]struct{}, len(picks))
	for _, p := range picks {
		key := pickKey{userID: p.UserID, gameID: p.GameID}
		if _, exists := r.items[key]; exists {
			return pick.ErrDuplicate
		}
		if _, dup := batch[key]; dup {
			return pick.ErrDuplicate
		}
		batch[key] = struct{}{}
	}

	createdAt := r.now().UTC()
	for _, p := range picks {
		if p.CreatedAt.IsZero() {
			p.CreatedAt = createdAt
		}
		r.items[pickKey{userID: p.UserID, gameID: p.GameID}] = p
	}
	return nil
}

func (r *PickRepository) filter(keep func(pick.Pick) bool) []pick.Pick {
	out := make([]pick.Pick, 0)
	for _, p := range r.items {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UserID != out[j].UserID {
			return out[i].UserID < out[j].UserID
		}
		return out[i].GameID < out[j].GameID
	})
	return out
}
