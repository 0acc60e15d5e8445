package memory

import (
	"context"
	"sort"

	"github.com/jackwardell/partypeople/internal/domain/user"
)

type UserRepository struct {
	store *Store
}

func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) List(_ context.Context) ([]user.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]user.User, 0, len(r.store.users))
	for _, item := range r.store.users {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *UserRepository) GetByID(_ context.Context, userID int64) (user.User, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	item, ok := r.store.users[userID]
	return item, ok, nil
}

func (r *UserRepository) GetByTeamID(_ context.Context, teamID int64) (user.User, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.ownerLocked(teamID)
}

func (r *UserRepository) GetByTeamName(_ context.Context, teamName string) (user.User, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, t := range r.store.teams {
		if t.Name == teamName {
			return r.ownerLocked(t.ID)
		}
	}
	return user.User{}, false, nil
}

func (r *UserRepository) Upsert(_ context.Context, users []user.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, item := range users {
		r.store.users[item.ID] = item
	}
	return nil
}

func (r *UserRepository) ownerLocked(teamID int64) (user.User, bool, error) {
	userID, ok := r.store.ownerIDLocked(teamID)
	if !ok {
		return user.User{}, false, nil
	}
	item, ok := r.store.users[userID]
	return item, ok, nil
}
