package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riskibarqy/weekly-pickem/internal/domain/game"
)

type GameRepository struct {
	mu    sync.RWMutex
	items map[int64]game.Game
}

func NewGameRepository(games ...game.Game) *GameRepository {
	items := make(map[int64]game.Game, len(games))
	for _, g := range games {
		items[g.ID] = g
	}
	return &GameRepository{items: items}
}

func (r *GameRepository) GetByID(_ context.Context, id int64) (game.Game, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.items[id]
	return g, ok, nil
}

func (r *GameRepository) ListByWeek(_ context.Context, season, week int) ([]game.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]game.Game, 0)
	for _, g := range r.items {
		if g.Season == season && g.Week == week {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartTime.Equal(out[j].StartTime) {
			return out[i].StartTime.Before(out[j].StartTime)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *GameRepository) LatestSeason(_ context.Context) (int, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	latest, found := 0, false
	for _, g := range r.items {
		if !found || g.Season > latest {
			latest, found = g.Season, true
		}
	}
	return latest, found, nil
}

func (r *GameRepository) FirstKickoffs(_ context.Context, season int) ([]game.WeekKickoff, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	firsts := make(map[int]game.WeekKickoff)
	for _, g := range r.items {
		if g.Season != season {
			continue
		}
		current, ok := firsts[g.Week]
		if !ok || g.StartTime.Before(current.FirstKickoff) {
			firsts[g.Week] = game.WeekKickoff{Week: g.Week, FirstKickoff: g.StartTime}
		}
	}

	out := make([]game.WeekKickoff, 0, len(firsts))
	for _, k := range firsts {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Week < out[j].Week })
	return out, nil
}

func (r *GameRepository) Upsert(_ context.Context, games []game.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, g := range games {
		if prev, ok := r.items[g.ID]; ok {
			g = game.Merge(prev, g)
		}
		r.items[g.ID] = g
	}
	return nil
}

func (r *GameRepository) UpdateResult(_ context.Context, id int64, status game.Status, winner string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.items[id]
	if !ok {
		return fmt.Errorf("game %d not found", id)
	}
	g.Status = status
	g.WinnerTeam = winner
	r.items[id] = g
	return nil
}
