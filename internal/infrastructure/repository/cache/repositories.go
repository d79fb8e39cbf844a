package cache

import (
	"context"
	"strconv"

	"github.com/riskibarqy/weekly-pickem/internal/domain/game"
	"github.com/riskibarqy/weekly-pickem/internal/domain/user"
	basecache "github.com/riskibarqy/weekly-pickem/internal/platform/cache"
)

const (
	gamePrefix = "game:"
	userPrefix = "user:"
)

// GameRepository caches game reads. Any write drops every cached game entry
// because week lists, kickoffs and the latest season all derive from games.
type GameRepository struct {
	next  game.Repository
	cache *basecache.Store
}

func NewGameRepository(next game.Repository, cache *basecache.Store) *GameRepository {
	return &GameRepository{next: next, cache: cache}
}

func (r *GameRepository) GetByID(ctx context.Context, id int64) (game.Game, bool, error) {
	key := gamePrefix + "id:" + strconv.FormatInt(id, 10)
	cached, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) (cachedGameByID, error) {
		item, exists, err := r.next.GetByID(ctx, id)
		if err != nil {
			return cachedGameByID{}, err
		}
		return cachedGameByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return game.Game{}, false, err
	}
	return cached.value, cached.exists, nil
}

func (r *GameRepository) ListByWeek(ctx context.Context, season, week int) ([]game.Game, error) {
	key := gamePrefix + "week:" + strconv.Itoa(season) + ":" + strconv.Itoa(week)
	items, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) ([]game.Game, error) {
		items, err := r.next.ListByWeek(ctx, season, week)
		if err != nil {
			return nil, err
		}
		return append([]game.Game(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]game.Game(nil), items...), nil
}

func (r *GameRepository) LatestSeason(ctx context.Context) (int, bool, error) {
	cached, err := basecache.Load(ctx, r.cache, gamePrefix+"latest", func(ctx context.Context) (cachedLatestSeason, error) {
		season, exists, err := r.next.LatestSeason(ctx)
		if err != nil {
			return cachedLatestSeason{}, err
		}
		return cachedLatestSeason{season: season, exists: exists}, nil
	})
	if err != nil {
		return 0, false, err
	}
	return cached.season, cached.exists, nil
}

func (r *GameRepository) FirstKickoffs(ctx context.Context, season int) ([]game.WeekKickoff, error) {
	key := gamePrefix + "kickoffs:" + strconv.Itoa(season)
	items, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) ([]game.WeekKickoff, error) {
		items, err := r.next.FirstKickoffs(ctx, season)
		if err != nil {
			return nil, err
		}
		return append([]game.WeekKickoff(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]game.WeekKickoff(nil), items...), nil
}

func (r *GameRepository) Upsert(ctx context.Context, games []game.Game) error {
	defer r.cache.DeletePrefix(ctx, gamePrefix)
	return r.next.Upsert(ctx, games)
}

func (r *GameRepository) UpdateResult(ctx context.Context, id int64, status game.Status, winner string) error {
	defer r.cache.DeletePrefix(ctx, gamePrefix)
	return r.next.UpdateResult(ctx, id, status, winner)
}

type cachedGameByID struct {
	value  game.Game
	exists bool
}

type cachedLatestSeason struct {
	season int
	exists bool
}

// UserRepository caches roster reads. Names are matched by the underlying
// repository so lookups by name are not cached.
type UserRepository struct {
	next  user.Repository
	cache *basecache.Store
}

func NewUserRepository(next user.Repository, cache *basecache.Store) *UserRepository {
	return &UserRepository{next: next, cache: cache}
}

func (r *UserRepository) List(ctx context.Context) ([]user.User, error) {
	items, err := basecache.Load(ctx, r.cache, userPrefix+"list", func(ctx context.Context) ([]user.User, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]user.User(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]user.User(nil), items...), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (user.User, bool, error) {
	key := userPrefix + "id:" + strconv.FormatInt(id, 10)
	cached, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) (cachedUserByID, error) {
		item, exists, err := r.next.GetByID(ctx, id)
		if err != nil {
			return cachedUserByID{}, err
		}
		return cachedUserByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return user.User{}, false, err
	}
	return cached.value, cached.exists, nil
}

func (r *UserRepository) GetByName(ctx context.Context, name string) (user.User, bool, error) {
	return r.next.GetByName(ctx, name)
}

func (r *UserRepository) EnsureNames(ctx context.Context, names []string) error {
	defer r.cache.DeletePrefix(ctx, userPrefix)
	return r.next.EnsureNames(ctx, names)
}

type cachedUserByID struct {
	value  user.User
	exists bool
}
