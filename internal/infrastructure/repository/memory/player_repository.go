package memory

import (
	"context"
	"sort"

	"github.com/jackwardell/partypeople/internal/domain/player"
)

type PlayerRepository struct {
	store *Store
}

func NewPlayerRepository(store *Store) *PlayerRepository {
	return &PlayerRepository{store: store}
}

// List orders players by team, then by id.
func (r *PlayerRepository) List(_ context.Context) ([]player.Player, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]player.Player, 0, len(r.store.players))
	for _, item := range r.store.players {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TeamID != out[j].TeamID {
			return out[i].TeamID < out[j].TeamID
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *PlayerRepository) Upsert(_ context.Context, players []player.Player) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, item := range players {
		r.store.players[item.ID] = item
	}
	return nil
}
