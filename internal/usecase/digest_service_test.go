package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/stretchr/testify/mock"

	"github.com/jackwardell/partypeople/internal/domain/digest"
	"github.com/jackwardell/partypeople/internal/domain/fixture"
	"github.com/jackwardell/partypeople/internal/domain/team"
	"github.com/jackwardell/partypeople/internal/domain/user"
	fixturemock "github.com/jackwardell/partypeople/internal/mocks/domain/fixture"
	teammock "github.com/jackwardell/partypeople/internal/mocks/domain/team"
	usermock "github.com/jackwardell/partypeople/internal/mocks/domain/user"
	"github.com/jackwardell/partypeople/internal/platform/logging"
)

var (
	england  = team.Team{ID: 10, Name: "England", Code: "ENG"}
	serbia   = team.Team{ID: 14, Name: "Serbia", Code: "SRB"}
	jack     = user.User{ID: 1001, FirstName: "Jack"}
	sam      = user.User{ID: 1002, FirstName: "Sam"}
	matchNow = time.Date(2024, 6, 16, 8, 0, 0, 0, time.UTC)
)

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func testCalendar() digest.Calendar {
	clk := clock.NewMock()
	clk.Set(matchNow)
	return digest.NewCalendar(clk, time.UTC)
}

func serbiaEngland() fixture.Fixture {
	return fixture.Fixture{
		ID:         1145510,
		Status:     fixture.StatusFullTime,
		HomeTeamID: serbia.ID,
		AwayTeamID: england.ID,
		HomeGoals:  intPtr(0),
		AwayGoals:  intPtr(1),
		HomeWinner: boolPtr(false),
		AwayWinner: boolPtr(true),
		KickOff:    time.Date(2024, 6, 16, 19, 0, 0, 0, time.UTC),
		VenueCity:  "Gelsenkirchen",
		VenueName:  "Arena AufSchalke",
		Round:      "Group Stage - 1",
	}
}

type digestMocks struct {
	teams    *teammock.Repository
	fixtures *fixturemock.Repository
	users    *usermock.Repository
}

func newDigestService(t *testing.T) (*DigestService, digestMocks) {
	t.Helper()
	m := digestMocks{
		teams:    teammock.NewRepository(t),
		fixtures: fixturemock.NewRepository(t),
		users:    usermock.NewRepository(t),
	}
	svc := NewDigestService(m.teams, m.fixtures, m.users, testCalendar(), func() string { return "muppet" }, logging.NewNop())
	return svc, m
}

func (m digestMocks) expectFixtureJoins(f fixture.Fixture, home, away team.Team, homeUser, awayUser user.User) {
	m.teams.On("GetByID", mock.Anything, f.HomeTeamID).Return(home, true, nil)
	m.teams.On("GetByID", mock.Anything, f.AwayTeamID).Return(away, true, nil)
	m.users.On("GetByTeamID", mock.Anything, f.HomeTeamID).Return(homeUser, true, nil)
	m.users.On("GetByTeamID", mock.Anything, f.AwayTeamID).Return(awayUser, true, nil)
}

func TestDigestService_FixtureContext_RoundTrip(t *testing.T) {
	t.Parallel()

	svc, m := newDigestService(t)
	f := serbiaEngland()
	f.HomeGoals, f.AwayGoals = intPtr(3), intPtr(1)
	f.HomeWinner, f.AwayWinner = boolPtr(true), boolPtr(false)

	m.fixtures.On("GetByID", mock.Anything, f.ID).Return(f, true, nil).Once()
	m.expectFixtureJoins(f, serbia, england, sam, jack)

	fc, err := svc.FixtureContext(context.Background(), f.ID)
	if err != nil {
		t.Fatalf("fixture context: %v", err)
	}
	if fc.WinningTeam.ID != serbia.ID || fc.LosingTeam.ID != england.ID {
		t.Fatalf("unexpected winner/loser: %+v %+v", fc.WinningTeam, fc.LosingTeam)
	}
	if *fc.WinningTeamGoals != 3 || *fc.LosingTeamGoals != 1 {
		t.Fatalf("unexpected goals: %d-%d", *fc.WinningTeamGoals, *fc.LosingTeamGoals)
	}
	if fc.WinningUser.ID != sam.ID {
		t.Fatalf("unexpected winning user: %+v", fc.WinningUser)
	}
}

func TestDigestService_FixtureContext_NotFound(t *testing.T) {
	t.Parallel()

	svc, m := newDigestService(t)
	m.fixtures.On("GetByID", mock.Anything, int64(42)).Return(fixture.Fixture{}, false, nil).Once()

	if _, err := svc.FixtureContext(context.Background(), 42); !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
	if _, err := svc.FixtureContext(context.Background(), 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestDigestService_FixtureContext_MissingOwner(t *testing.T) {
	t.Parallel()

	svc, m := newDigestService(t)
	f := serbiaEngland()
	m.fixtures.On("GetByID", mock.Anything, f.ID).Return(f, true, nil).Once()
	m.teams.On("GetByID", mock.Anything, serbia.ID).Return(serbia, true, nil)
	m.teams.On("GetByID", mock.Anything, england.ID).Return(england, true, nil)
	m.users.On("GetByTeamID", mock.Anything, serbia.ID).Return(user.User{}, false, nil)

	if _, err := svc.FixtureContext(context.Background(), f.ID); !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestDigestService_DateContext(t *testing.T) {
	t.Parallel()

	t.Run("no fixtures today", func(t *testing.T) {
		svc, m := newDigestService(t)
		today := svc.Today()
		m.fixtures.On("ListByDate", mock.Anything, today).Return([]fixture.Fixture{}, nil).Once()

		dc, err := svc.DateContext(context.Background(), today)
		if err != nil {
			t.Fatalf("date context: %v", err)
		}
		if got := dc.Message(); got != "No fixtures Today" {
			t.Fatalf("unexpected message: %q", got)
		}
	})

	t.Run("repository error", func(t *testing.T) {
		svc, m := newDigestService(t)
		errBoom := errors.New("boom")
		m.fixtures.On("ListByDate", mock.Anything, mock.Anything).Return(nil, errBoom).Once()

		if _, err := svc.DateContext(context.Background(), matchNow); !errors.Is(err, errBoom) {
			t.Fatalf("expected wrapped repository error, got %v", err)
		}
	})

	t.Run("fixtures joined", func(t *testing.T) {
		svc, m := newDigestService(t)
		f := serbiaEngland()
		m.fixtures.On("ListByDate", mock.Anything, mock.Anything).Return([]fixture.Fixture{f}, nil).Once()
		m.expectFixtureJoins(f, serbia, england, sam, jack)

		dc, err := svc.DateContext(context.Background(), matchNow)
		if err != nil {
			t.Fatalf("date context: %v", err)
		}
		if len(dc.Fixtures) != 1 || dc.Fixtures[0].HomeUser.ID != sam.ID {
			t.Fatalf("unexpected fixtures: %+v", dc.Fixtures)
		}
	})
}

func TestDigestService_UserContext(t *testing.T) {
	t.Parallel()

	svc, m := newDigestService(t)
	f := serbiaEngland()
	m.users.On("GetByID", mock.Anything, jack.ID).Return(jack, true, nil).Once()
	m.teams.On("ListByUser", mock.Anything, jack.ID).Return([]team.Team{england}, nil).Once()
	m.fixtures.On("ListIDsByUser", mock.Anything, jack.ID).Return([]int64{f.ID}, nil).Once()
	m.fixtures.On("GetByID", mock.Anything, f.ID).Return(f, true, nil).Once()
	m.expectFixtureJoins(f, serbia, england, sam, jack)

	uc, err := svc.UserContext(context.Background(), jack.ID)
	if err != nil {
		t.Fatalf("user context: %v", err)
	}
	if len(uc.Finished()) != 1 || len(uc.NotStarted()) != 0 {
		t.Fatalf("unexpected partitions: %+v", uc.Fixtures)
	}
	if got := uc.MatchesMessage(); got != "You have no matches you absolute muppet" {
		t.Fatalf("unexpected matches message: %q", got)
	}
	if got := uc.TeamsMessage(); got != "You have: "+england.FlagNameFlag() {
		t.Fatalf("unexpected teams message: %q", got)
	}
}

func TestDigestService_UserContext_UnknownUser(t *testing.T) {
	t.Parallel()

	svc, m := newDigestService(t)
	m.users.On("GetByID", mock.Anything, int64(7)).Return(user.User{}, false, nil).Once()

	_, err := svc.UserContext(context.Background(), 7)
	if !errors.Is(err, ErrEntryNotFound) || !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrEntryNotFound and ErrUserNotFound, got %v", err)
	}
}

func TestDigestService_WhoHas(t *testing.T) {
	t.Parallel()

	svc, m := newDigestService(t)
	m.users.On("GetByTeamName", mock.Anything, "England").Return(jack, true, nil).Once()
	m.users.On("GetByTeamName", mock.Anything, "Narnia").Return(user.User{}, false, nil).Once()

	got, err := svc.WhoHas(context.Background(), "  England ")
	if err != nil || got.ID != jack.ID {
		t.Fatalf("expected Jack, got %+v err=%v", got, err)
	}
	if _, err := svc.WhoHas(context.Background(), "Narnia"); !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
	if _, err := svc.WhoHas(context.Background(), " "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
