package memory

import (
	"context"
	"sort"

	"github.com/jackwardell/partypeople/internal/domain/team"
)

type TeamRepository struct {
	store *Store
}

func NewTeamRepository(store *Store) *TeamRepository {
	return &TeamRepository{store: store}
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]team.Team, 0, len(r.store.teams))
	for _, item := range r.store.teams {
		out = append(out, item)
	}
	sortTeams(out)
	return out, nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID int64) (team.Team, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	item, ok := r.store.teams[teamID]
	return item, ok, nil
}

func (r *TeamRepository) ListByUser(_ context.Context, userID int64) ([]team.Team, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	ids := r.store.teamIDsByUserLocked(userID)
	out := make([]team.Team, 0, len(ids))
	for id := range ids {
		if item, ok := r.store.teams[id]; ok {
			out = append(out, item)
		}
	}
	sortTeams(out)
	return out, nil
}

func (r *TeamRepository) Upsert(_ context.Context, teams []team.Team) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, item := range teams {
		r.store.teams[item.ID] = item
	}
	return nil
}

func sortTeams(items []team.Team) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].ID < items[j].ID
	})
}
