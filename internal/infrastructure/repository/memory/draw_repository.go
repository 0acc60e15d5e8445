package memory

import (
	"context"

	"github.com/jackwardell/partypeople/internal/domain/draw"
)

type DrawRepository struct {
	store *Store
}

func NewDrawRepository(store *Store) *DrawRepository {
	return &DrawRepository{store: store}
}

// List returns draws in insertion order.
func (r *DrawRepository) List(_ context.Context) ([]draw.Draw, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return append([]draw.Draw{}, r.store.draws...), nil
}

// Upsert appends draws not already recorded. Existing pairs keep their position.
func (r *DrawRepository) Upsert(_ context.Context, draws []draw.Draw) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	seen := make(map[draw.Draw]struct{}, len(r.store.draws))
	for _, d := range r.store.draws {
		seen[d] = struct{}{}
	}
	for _, d := range draws {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		r.store.draws = append(r.store.draws, d)
	}
	return nil
}
