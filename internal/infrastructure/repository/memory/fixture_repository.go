package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jackwardell/partypeople/internal/domain/fixture"
)

type FixtureRepository struct {
	store *Store
}

func NewFixtureRepository(store *Store) *FixtureRepository {
	return &FixtureRepository{store: store}
}

func (r *FixtureRepository) ListFinished(_ context.Context) ([]fixture.Fixture, error) {
	return r.filter(func(f fixture.Fixture) bool {
		return f.Phase() == fixture.PhaseFinished
	}), nil
}

func (r *FixtureRepository) ListByDate(_ context.Context, day time.Time) ([]fixture.Fixture, error) {
	y, m, d := day.Date()
	date := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return r.filter(func(f fixture.Fixture) bool {
		return f.KickOffDate().Equal(date)
	}), nil
}

func (r *FixtureRepository) GetByID(_ context.Context, fixtureID int64) (fixture.Fixture, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	item, ok := r.store.fixtures[fixtureID]
	return item, ok, nil
}

func (r *FixtureRepository) ListIDsByUser(_ context.Context, userID int64) ([]int64, error) {
	r.store.mu.RLock()
	teamIDs := r.store.teamIDsByUserLocked(userID)
	r.store.mu.RUnlock()

	if len(teamIDs) == 0 {
		return []int64{}, nil
	}

	items := r.filter(func(f fixture.Fixture) bool {
		_, home := teamIDs[f.HomeTeamID]
		_, away := teamIDs[f.AwayTeamID]
		return home || away
	})
	out := make([]int64, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out, nil
}

func (r *FixtureRepository) Upsert(_ context.Context, fixtures []fixture.Fixture) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, item := range fixtures {
		r.store.fixtures[item.ID] = item
	}
	return nil
}

func (r *FixtureRepository) filter(keep func(fixture.Fixture) bool) []fixture.Fixture {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]fixture.Fixture, 0)
	for _, item := range r.store.fixtures {
		if keep(item) {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].KickOff.Equal(out[j].KickOff) {
			return out[i].KickOff.Before(out[j].KickOff)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
