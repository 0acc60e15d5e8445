package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackwardell/partypeople/internal/domain/digest"
	"github.com/jackwardell/partypeople/internal/domain/fixture"
	"github.com/jackwardell/partypeople/internal/domain/team"
	"github.com/jackwardell/partypeople/internal/domain/user"
	"github.com/jackwardell/partypeople/internal/platform/logging"
)

// DigestService builds the per-fixture, per-date and per-user message contexts.
type DigestService struct {
	teamRepo    team.Repository
	fixtureRepo fixture.Repository
	userRepo    user.Repository
	calendar    digest.Calendar
	insult      func() string
	logger      *logging.Logger
}

func NewDigestService(
	teamRepo team.Repository,
	fixtureRepo fixture.Repository,
	userRepo user.Repository,
	calendar digest.Calendar,
	insult func() string,
	logger *logging.Logger,
) *DigestService {
	if insult == nil {
		insult = digest.RandomInsult
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &DigestService{
		teamRepo:    teamRepo,
		fixtureRepo: fixtureRepo,
		userRepo:    userRepo,
		calendar:    digest.NewCalendar(calendar.Clock, calendar.Location),
		insult:      insult,
		logger:      logger,
	}
}

// Today is the current civil date used for relative day commands.
func (s *DigestService) Today() time.Time {
	return s.calendar.Today()
}

func (s *DigestService) FixtureContext(ctx context.Context, fixtureID int64) (digest.FixtureContext, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DigestService.FixtureContext")
	defer span.End()

	if fixtureID <= 0 {
		return digest.FixtureContext{}, fmt.Errorf("%w: fixture id is required", ErrInvalidInput)
	}

	f, exists, err := s.fixtureRepo.GetByID(ctx, fixtureID)
	if err != nil {
		return digest.FixtureContext{}, fmt.Errorf("get fixture: %w", err)
	}
	if !exists {
		return digest.FixtureContext{}, fmt.Errorf("%w: fixture=%d", ErrEntryNotFound, fixtureID)
	}

	return s.fixtureContext(ctx, f)
}

func (s *DigestService) DateContext(ctx context.Context, day time.Time) (digest.DateContext, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DigestService.DateContext")
	defer span.End()

	fixtures, err := s.fixtureRepo.ListByDate(ctx, day)
	if err != nil {
		return digest.DateContext{}, fmt.Errorf("list fixtures by date: %w", err)
	}

	contexts := make([]digest.FixtureContext, 0, len(fixtures))
	for _, f := range fixtures {
		fc, err := s.fixtureContext(ctx, f)
		if err != nil {
			return digest.DateContext{}, err
		}
		contexts = append(contexts, fc)
	}

	return digest.NewDateContext(day, contexts, s.calendar), nil
}

func (s *DigestService) UserContext(ctx context.Context, userID int64) (digest.UserContext, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DigestService.UserContext")
	defer span.End()

	if userID <= 0 {
		return digest.UserContext{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	u, exists, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return digest.UserContext{}, fmt.Errorf("get user: %w", err)
	}
	if !exists {
		return digest.UserContext{}, fmt.Errorf("%w: %w: user=%d", ErrUserNotFound, ErrEntryNotFound, userID)
	}

	teams, err := s.teamRepo.ListByUser(ctx, userID)
	if err != nil {
		return digest.UserContext{}, fmt.Errorf("list teams by user: %w", err)
	}

	fixtureIDs, err := s.fixtureRepo.ListIDsByUser(ctx, userID)
	if err != nil {
		return digest.UserContext{}, fmt.Errorf("list fixture ids by user: %w", err)
	}

	contexts := make([]digest.FixtureContext, 0, len(fixtureIDs))
	for _, id := range fixtureIDs {
		fc, err := s.FixtureContext(ctx, id)
		if err != nil {
			return digest.UserContext{}, err
		}
		contexts = append(contexts, fc)
	}

	return digest.NewUserContext(u, teams, contexts, s.insult()), nil
}

// WhoHas resolves the participant who drew the named team.
func (s *DigestService) WhoHas(ctx context.Context, teamName string) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DigestService.WhoHas")
	defer span.End()

	teamName = strings.TrimSpace(teamName)
	if teamName == "" {
		return user.User{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}

	u, exists, err := s.userRepo.GetByTeamName(ctx, teamName)
	if err != nil {
		return user.User{}, fmt.Errorf("get user by team name: %w", err)
	}
	if !exists {
		return user.User{}, fmt.Errorf("%w: team=%s", ErrEntryNotFound, teamName)
	}
	return u, nil
}

func (s *DigestService) fixtureContext(ctx context.Context, f fixture.Fixture) (digest.FixtureContext, error) {
	homeTeam, err := s.team(ctx, f.HomeTeamID)
	if err != nil {
		return digest.FixtureContext{}, err
	}
	awayTeam, err := s.team(ctx, f.AwayTeamID)
	if err != nil {
		return digest.FixtureContext{}, err
	}
	homeUser, err := s.owner(ctx, f.HomeTeamID)
	if err != nil {
		return digest.FixtureContext{}, err
	}
	awayUser, err := s.owner(ctx, f.AwayTeamID)
	if err != nil {
		return digest.FixtureContext{}, err
	}

	return digest.NewFixtureContext(f, homeTeam, awayTeam, homeUser, awayUser, s.calendar), nil
}

func (s *DigestService) team(ctx context.Context, teamID int64) (team.Team, error) {
	t, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%d", ErrEntryNotFound, teamID)
	}
	return t, nil
}

func (s *DigestService) owner(ctx context.Context, teamID int64) (user.User, error) {
	u, exists, err := s.userRepo.GetByTeamID(ctx, teamID)
	if err != nil {
		return user.User{}, fmt.Errorf("get owning user: %w", err)
	}
	if !exists {
		s.logger.WarnContext(ctx, "team has no owner", "team_id", teamID)
		return user.User{}, fmt.Errorf("%w: owner of team=%d", ErrEntryNotFound, teamID)
	}
	return u, nil
}
