package cache

import (
	"context"
	"strconv"

	"github.com/jackwardell/partypeople/internal/domain/team"
	"github.com/jackwardell/partypeople/internal/domain/user"
	basecache "github.com/jackwardell/partypeople/internal/platform/cache"
)

const (
	teamPrefix = "team:"
	userPrefix = "user:"
)

type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	return loadSlice(ctx, r.cache, teamPrefix+"list", r.next.List)
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID int64) (team.Team, bool, error) {
	return loadOne(ctx, r.cache, teamPrefix+"id:"+strconv.FormatInt(teamID, 10), func(ctx context.Context) (team.Team, bool, error) {
		return r.next.GetByID(ctx, teamID)
	})
}

func (r *TeamRepository) ListByUser(ctx context.Context, userID int64) ([]team.Team, error) {
	return loadSlice(ctx, r.cache, teamPrefix+"user:"+strconv.FormatInt(userID, 10), func(ctx context.Context) ([]team.Team, error) {
		return r.next.ListByUser(ctx, userID)
	})
}

func (r *TeamRepository) Upsert(ctx context.Context, teams []team.Team) error {
	if err := r.next.Upsert(ctx, teams); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, teamPrefix)
	r.cache.DeletePrefix(ctx, userPrefix)
	return nil
}

type UserRepository struct {
	next  user.Repository
	cache *basecache.Store
}

func NewUserRepository(next user.Repository, cache *basecache.Store) *UserRepository {
	return &UserRepository{next: next, cache: cache}
}

func (r *UserRepository) List(ctx context.Context) ([]user.User, error) {
	return loadSlice(ctx, r.cache, userPrefix+"list", r.next.List)
}

func (r *UserRepository) GetByID(ctx context.Context, userID int64) (user.User, bool, error) {
	return loadOne(ctx, r.cache, userPrefix+"id:"+strconv.FormatInt(userID, 10), func(ctx context.Context) (user.User, bool, error) {
		return r.next.GetByID(ctx, userID)
	})
}

func (r *UserRepository) GetByTeamID(ctx context.Context, teamID int64) (user.User, bool, error) {
	return loadOne(ctx, r.cache, userPrefix+"team:"+strconv.FormatInt(teamID, 10), func(ctx context.Context) (user.User, bool, error) {
		return r.next.GetByTeamID(ctx, teamID)
	})
}

func (r *UserRepository) GetByTeamName(ctx context.Context, teamName string) (user.User, bool, error) {
	return loadOne(ctx, r.cache, userPrefix+"team-name:"+teamName, func(ctx context.Context) (user.User, bool, error) {
		return r.next.GetByTeamName(ctx, teamName)
	})
}

// Upsert drops team keys too: ListByUser joins through users.
func (r *UserRepository) Upsert(ctx context.Context, users []user.User) error {
	if err := r.next.Upsert(ctx, users); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, userPrefix)
	r.cache.DeletePrefix(ctx, teamPrefix)
	return nil
}

type cachedByID[T any] struct {
	value  T
	exists bool
}

func loadOne[T any](ctx context.Context, cache *basecache.Store, key string, load func(context.Context) (T, bool, error)) (T, bool, error) {
	v, err := cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return cachedByID[T]{value: item, exists: exists}, nil
	})
	if err != nil {
		var zero T
		return zero, false, err
	}

	cached, _ := v.(cachedByID[T])
	return cached.value, cached.exists, nil
}

func loadSlice[T any](ctx context.Context, cache *basecache.Store, key string, load func(context.Context) ([]T, error)) ([]T, error) {
	v, err := cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return append([]T(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]T)
	return append([]T(nil), items...), nil
}
