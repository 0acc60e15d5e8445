package usecase

import (
	"context"
	"fmt"
	"sync"

	crerr "github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/pool"

	"github.com/jackwardell/partypeople/internal/domain/draw"
	"github.com/jackwardell/partypeople/internal/domain/fixture"
	"github.com/jackwardell/partypeople/internal/domain/player"
	"github.com/jackwardell/partypeople/internal/domain/team"
	"github.com/jackwardell/partypeople/internal/domain/user"
	"github.com/jackwardell/partypeople/internal/platform/logging"
)

// FootballProvider fetches tournament data for the configured league and season.
type FootballProvider interface {
	FetchTeams(ctx context.Context) ([]team.Team, error)
	FetchFixtures(ctx context.Context) ([]fixture.Fixture, error)
	FetchPlayers(ctx context.Context) ([]player.Player, error)
}

// MemberSource lists the chat members taking part.
type MemberSource interface {
	FetchMembers(ctx context.Context) ([]user.User, error)
}

// DrawSource yields the team assignments.
type DrawSource interface {
	LoadDraws(ctx context.Context) ([]draw.Draw, error)
}

// CacheFlusher drops cached reads once fresh data is written.
type CacheFlusher interface {
	Flush(ctx context.Context)
}

type IngestionConfig struct {
	Workers         int
	PlayerChunkSize int
}

type IngestResult struct {
	Users    int `json:"users"`
	Teams    int `json:"teams"`
	Draws    int `json:"draws"`
	Fixtures int `json:"fixtures"`
	Players  int `json:"players"`
}

type IngestionService struct {
	provider    FootballProvider
	members     MemberSource
	draws       DrawSource
	userRepo    user.Repository
	teamRepo    team.Repository
	drawRepo    draw.Repository
	fixtureRepo fixture.Repository
	playerRepo  player.Repository
	cache       CacheFlusher
	cfg         IngestionConfig
	logger      *logging.Logger
}

func NewIngestionService(
	provider FootballProvider,
	members MemberSource,
	draws DrawSource,
	userRepo user.Repository,
	teamRepo team.Repository,
	drawRepo draw.Repository,
	fixtureRepo fixture.Repository,
	playerRepo player.Repository,
	cache CacheFlusher,
	cfg IngestionConfig,
	logger *logging.Logger,
) *IngestionService {
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.PlayerChunkSize <= 0 {
		cfg.PlayerChunkSize = 200
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &IngestionService{
		provider:    provider,
		members:     members,
		draws:       draws,
		userRepo:    userRepo,
		teamRepo:    teamRepo,
		drawRepo:    drawRepo,
		fixtureRepo: fixtureRepo,
		playerRepo:  playerRepo,
		cache:       cache,
		cfg:         cfg,
		logger:      logger,
	}
}

// Ingest refreshes everything: users and teams first, then draws that reference
// them, then fixtures and players.
func (s *IngestionService) Ingest(ctx context.Context) (IngestResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.Ingest")
	defer span.End()

	if err := s.ready(); err != nil {
		return IngestResult{}, err
	}

	var result IngestResult
	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		n, err := s.ingestUsers(ctx)
		result.Users = n
		return err
	})
	p.Go(func(ctx context.Context) error {
		n, err := s.ingestTeams(ctx)
		result.Teams = n
		return err
	})
	if err := p.Wait(); err != nil {
		return result, err
	}

	n, err := s.ingestDraws(ctx)
	if err != nil {
		return result, err
	}
	result.Draws = n

	matchData, err := s.IngestMatchData(ctx)
	result.Fixtures, result.Players = matchData.Fixtures, matchData.Players
	if err != nil {
		return result, err
	}

	s.logger.InfoContext(ctx, "ingestion finished",
		"users", result.Users,
		"teams", result.Teams,
		"draws", result.Draws,
		"fixtures", result.Fixtures,
		"players", result.Players,
	)
	return result, nil
}

// IngestMatchData refreshes fixtures and players only.
func (s *IngestionService) IngestMatchData(ctx context.Context) (IngestResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.IngestMatchData")
	defer span.End()

	if err := s.ready(); err != nil {
		return IngestResult{}, err
	}

	var result IngestResult
	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		n, err := s.ingestFixtures(ctx)
		result.Fixtures = n
		return err
	})
	p.Go(func(ctx context.Context) error {
		n, err := s.ingestPlayers(ctx)
		result.Players = n
		return err
	})
	err := p.Wait()

	if s.cache != nil {
		s.cache.Flush(ctx)
	}
	if err != nil {
		return result, err
	}
	return result, nil
}

// RegisterUser records a chat member seen outside the member listing.
func (s *IngestionService) RegisterUser(ctx context.Context, u user.User) error {
	if err := u.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.userRepo.Upsert(ctx, []user.User{u}); err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}

func (s *IngestionService) ready() error {
	if s.provider == nil || s.members == nil || s.draws == nil {
		return fmt.Errorf("%w: ingestion sources are not configured", ErrDependencyUnavailable)
	}
	return nil
}

func (s *IngestionService) ingestUsers(ctx context.Context) (int, error) {
	users, err := s.members.FetchMembers(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch members: %w", err)
	}
	users = keepValid(users, user.User.Validate)
	if len(users) == 0 {
		return 0, nil
	}
	if err := s.userRepo.Upsert(ctx, users); err != nil {
		return 0, fmt.Errorf("upsert users: %w", err)
	}
	return len(users), nil
}

func (s *IngestionService) ingestTeams(ctx context.Context) (int, error) {
	teams, err := s.provider.FetchTeams(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch teams: %w", err)
	}
	teams = keepValid(teams, team.Team.Validate)
	if len(teams) == 0 {
		return 0, nil
	}
	if err := s.teamRepo.Upsert(ctx, teams); err != nil {
		return 0, fmt.Errorf("upsert teams: %w", err)
	}
	return len(teams), nil
}

func (s *IngestionService) ingestDraws(ctx context.Context) (int, error) {
	draws, err := s.draws.LoadDraws(ctx)
	if err != nil {
		return 0, fmt.Errorf("load draws: %w", err)
	}
	for _, d := range draws {
		if err := d.Validate(); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}
	if len(draws) == 0 {
		return 0, nil
	}
	if err := s.drawRepo.Upsert(ctx, draws); err != nil {
		return 0, fmt.Errorf("upsert draws: %w", err)
	}
	return len(draws), nil
}

func (s *IngestionService) ingestFixtures(ctx context.Context) (int, error) {
	fixtures, err := s.provider.FetchFixtures(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch fixtures: %w", err)
	}
	fixtures = keepValid(fixtures, fixture.Fixture.Validate)
	if len(fixtures) == 0 {
		return 0, nil
	}
	if err := s.fixtureRepo.Upsert(ctx, fixtures); err != nil {
		return 0, fmt.Errorf("upsert fixtures: %w", err)
	}
	return len(fixtures), nil
}

// ingestPlayers writes players in chunks on a bounded worker pool.
func (s *IngestionService) ingestPlayers(ctx context.Context) (int, error) {
	players, err := s.provider.FetchPlayers(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch players: %w", err)
	}
	players = keepValid(players, player.Player.Validate)
	if len(players) == 0 {
		return 0, nil
	}

	workers, err := ants.NewPool(s.cfg.Workers)
	if err != nil {
		return 0, fmt.Errorf("create worker pool: %w", err)
	}
	defer workers.Release()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		joinErr error
	)
	for start := 0; start < len(players); start += s.cfg.PlayerChunkSize {
		chunk := players[start:min(start+s.cfg.PlayerChunkSize, len(players))]
		wg.Add(1)
		if err := workers.Submit(func() {
			defer wg.Done()
			if err := s.playerRepo.Upsert(ctx, chunk); err != nil {
				mu.Lock()
				joinErr = crerr.CombineErrors(joinErr, err)
				mu.Unlock()
			}
		}); err != nil {
			wg.Done()
			wg.Wait()
			return 0, fmt.Errorf("submit player chunk to worker pool: %w", err)
		}
	}
	wg.Wait()

	if joinErr != nil {
		return 0, fmt.Errorf("upsert players: %w", joinErr)
	}
	return len(players), nil
}

// keepValid drops rows failing validation.
func keepValid[T any](items []T, validate func(T) error) []T {
	out := items[:0:0]
	for _, item := range items {
		if validate(item) == nil {
			out = append(out, item)
		}
	}
	return out
}
