package usecase

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/jackwardell/partypeople/internal/domain/digest"
	"github.com/jackwardell/partypeople/internal/domain/draw"
	"github.com/jackwardell/partypeople/internal/domain/fixture"
	"github.com/jackwardell/partypeople/internal/domain/player"
	"github.com/jackwardell/partypeople/internal/domain/sweepstake"
	"github.com/jackwardell/partypeople/internal/domain/team"
	"github.com/jackwardell/partypeople/internal/domain/user"
	"github.com/jackwardell/partypeople/internal/platform/logging"
)

type SweepstakeService struct {
	teamRepo    team.Repository
	playerRepo  player.Repository
	fixtureRepo fixture.Repository
	drawRepo    draw.Repository
	userRepo    user.Repository
	prizes      sweepstake.Prizes
	logger      *logging.Logger
}

func NewSweepstakeService(
	teamRepo team.Repository,
	playerRepo player.Repository,
	fixtureRepo fixture.Repository,
	drawRepo draw.Repository,
	userRepo user.Repository,
	prizes sweepstake.Prizes,
	logger *logging.Logger,
) *SweepstakeService {
	if prizes == nil {
		prizes = sweepstake.DefaultPrizes()
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &SweepstakeService{
		teamRepo:    teamRepo,
		playerRepo:  playerRepo,
		fixtureRepo: fixtureRepo,
		drawRepo:    drawRepo,
		userRepo:    userRepo,
		prizes:      prizes,
		logger:      logger,
	}
}

// SweepstakeContext snapshots every table the engine reads, then computes all categories.
func (s *SweepstakeService) SweepstakeContext(ctx context.Context) (digest.SweepstakeContext, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SweepstakeService.SweepstakeContext")
	defer span.End()

	snapshot, err := s.snapshot(ctx)
	if err != nil {
		return digest.SweepstakeContext{}, err
	}

	categories, err := sweepstake.Compute(snapshot, s.prizes)
	if err != nil {
		if errors.Is(err, sweepstake.ErrOwnerNotFound) {
			err = fmt.Errorf("%w: %w", ErrEntryNotFound, err)
		}
		s.logger.WarnContext(ctx, "compute sweepstake categories failed", "error", err)
		return digest.SweepstakeContext{}, fmt.Errorf("compute sweepstake: %w", err)
	}

	return digest.SweepstakeContext{Categories: categories}, nil
}

func (s *SweepstakeService) snapshot(ctx context.Context) (sweepstake.Snapshot, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return sweepstake.Snapshot{}, fmt.Errorf("list teams: %w", err)
	}
	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return sweepstake.Snapshot{}, fmt.Errorf("list players: %w", err)
	}
	fixtures, err := s.fixtureRepo.ListFinished(ctx)
	if err != nil {
		return sweepstake.Snapshot{}, fmt.Errorf("list finished fixtures: %w", err)
	}
	draws, err := s.drawRepo.List(ctx)
	if err != nil {
		return sweepstake.Snapshot{}, fmt.Errorf("list draws: %w", err)
	}
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return sweepstake.Snapshot{}, fmt.Errorf("list users: %w", err)
	}

	slices.SortStableFunc(teams, func(a, b team.Team) int { return strings.Compare(a.Name, b.Name) })
	slices.SortStableFunc(players, func(a, b player.Player) int { return cmp.Compare(a.TeamID, b.TeamID) })
	slices.SortStableFunc(fixtures, func(a, b fixture.Fixture) int { return a.KickOff.Compare(b.KickOff) })

	return sweepstake.Snapshot{
		Teams:            teams,
		Players:          players,
		FinishedFixtures: fixtures,
		Owners:           sweepstake.NewOwnerIndex(draws, users),
	}, nil
}
