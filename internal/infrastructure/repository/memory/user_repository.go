package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/riskibarqy/weekly-pickem/internal/domain/user"
)

type UserRepository struct {
	mu     sync.RWMutex
	items  map[int64]user.User
	orders []int64
	nextID int64
}

func NewUserRepository(names ...string) *UserRepository {
	r := &UserRepository{items: make(map[int64]user.User, len(names))}
	_ = r.EnsureNames(context.Background(), names)
	return r
}

func (r *UserRepository) List(_ context.Context) ([]user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]user.User, 0, len(r.orders))
	for _, id := range r.orders {
		out = append(out, r.items[id])
	}
	return out, nil
}

func (r *UserRepository) GetByID(_ context.Context, id int64) (user.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.items[id]
	return u, ok, nil
}

func (r *UserRepository) GetByName(_ context.Context, name string) (user.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.findByName(name)
}

func (r *UserRepository) EnsureNames(_ context.Context, names []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok, _ := r.findByName(name); ok {
			continue
		}
		r.nextID++
		r.items[r.nextID] = user.User{ID: r.nextID, Name: name}
		r.orders = append(r.orders, r.nextID)
	}
	return nil
}

func (r *UserRepository) findByName(name string) (user.User, bool, error) {
	name = strings.TrimSpace(name)
	for _, id := range r.orders {
		if strings.EqualFold(r.items[id].Name, name) {
			return r.items[id], true, nil
		}
	}
	return user.User{}, false, nil
}
