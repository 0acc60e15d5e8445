package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jackwardell/partypeople/internal/config"
	"github.com/jackwardell/partypeople/internal/domain/draw"
	"github.com/jackwardell/partypeople/internal/domain/fixture"
	"github.com/jackwardell/partypeople/internal/domain/player"
	"github.com/jackwardell/partypeople/internal/domain/team"
	"github.com/jackwardell/partypeople/internal/domain/user"
	cacherepo "github.com/jackwardell/partypeople/internal/infrastructure/repository/cache"
	"github.com/jackwardell/partypeople/internal/infrastructure/repository/memory"
	"github.com/jackwardell/partypeople/internal/infrastructure/repository/postgres"
	"github.com/jackwardell/partypeople/internal/platform/cache"
	"github.com/jackwardell/partypeople/internal/usecase"
)

type repositories struct {
	teams    team.Repository
	players  player.Repository
	fixtures fixture.Repository
	draws    draw.Repository
	users    user.Repository
	// flusher is nil when read caching is off.
	flusher usecase.CacheFlusher
	db      *sqlx.DB
}

func openRepositories(cfg config.Config) (repositories, error) {
	var repos repositories

	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		store := memory.NewStore()
		repos.teams = memory.NewTeamRepository(store)
		repos.players = memory.NewPlayerRepository(store)
		repos.fixtures = memory.NewFixtureRepository(store)
		repos.draws = memory.NewDrawRepository(store)
		repos.users = memory.NewUserRepository(store)
	case config.StorageDriverPostgres:
		db, err := openPostgres(cfg)
		if err != nil {
			return repositories{}, err
		}
		repos.db = db
		repos.teams = postgres.NewTeamRepository(db)
		repos.players = postgres.NewPlayerRepository(db)
		repos.fixtures = postgres.NewFixtureRepository(db)
		repos.draws = postgres.NewDrawRepository(db)
		repos.users = postgres.NewUserRepository(db)
	default:
		return repositories{}, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}

	if cfg.CacheEnabled {
		store := cache.NewStore(cfg.CacheTTL, nil)
		repos.teams = cacherepo.NewTeamRepository(repos.teams, store)
		repos.users = cacherepo.NewUserRepository(repos.users, store)
		repos.flusher = store
	}

	return repos, nil
}

func (r repositories) close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}
