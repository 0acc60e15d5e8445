package sweepstake

import (
	"errors"
	"testing"
	"time"

	"github.com/jackwardell/partypeople/internal/domain/draw"
	"github.com/jackwardell/partypeople/internal/domain/fixture"
	"github.com/jackwardell/partypeople/internal/domain/player"
	"github.com/jackwardell/partypeople/internal/domain/team"
	"github.com/jackwardell/partypeople/internal/domain/user"
)

var (
	austria = team.Team{ID: 1, Name: "Austria", Code: "AUT"}
	belgium = team.Team{ID: 2, Name: "Belgium", Code: "BEL"}
	croatia = team.Team{ID: 3, Name: "Croatia", Code: "CRO"}
)

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func testSnapshot() Snapshot {
	users := []user.User{
		{ID: 101, FirstName: "Alice"},
		{ID: 102, FirstName: "Bob"},
		{ID: 103, FirstName: "Cara"},
	}
	draws := []draw.Draw{
		{UserID: 101, TeamID: austria.ID},
		{UserID: 102, TeamID: belgium.ID},
		{UserID: 103, TeamID: croatia.ID},
	}
	return Snapshot{
		Teams:  []team.Team{austria, belgium, croatia},
		Owners: NewOwnerIndex(draws, users),
	}
}

var kickOffBase = time.Date(2024, 6, 14, 19, 0, 0, 0, time.UTC)

// result builds a finished fixture; the winner flags follow the score.
func result(id int64, home, away team.Team, hg, ag int) fixture.Fixture {
	return fixture.Fixture{
		ID:         id,
		Status:     fixture.StatusFullTime,
		HomeTeamID: home.ID,
		AwayTeamID: away.ID,
		HomeTeam:   home.Name,
		AwayTeam:   away.Name,
		HomeGoals:  intPtr(hg),
		AwayGoals:  intPtr(ag),
		HomeWinner: boolPtr(hg > ag),
		AwayWinner: boolPtr(ag > hg),
		KickOff:    kickOffBase.Add(time.Duration(id) * 24 * time.Hour),
	}
}

func TestWorstTeam_Singleton(t *testing.T) {
	s := testSnapshot()
	s.FinishedFixtures = []fixture.Fixture{
		result(1, austria, belgium, 3, 0),
		result(2, croatia, belgium, 2, 1),
	}

	got, err := WorstTeam(s, 5)
	if err != nil {
		t.Fatalf("WorstTeam error: %v", err)
	}
	if got.Team == nil || got.Team.ID != belgium.ID {
		t.Fatalf("expected Belgium, got %+v", got.Team)
	}
	if got.User == nil || got.User.ID != 102 {
		t.Fatalf("expected Bob as owner, got %+v", got.User)
	}
	if got.Data != "Lost 2 games and conceded 5 goals" {
		t.Fatalf("unexpected data: %q", got.Data)
	}
	if got.PrizeMoney != 5 || got.Kind != KindWorstTeam {
		t.Fatalf("unexpected category: %+v", got)
	}
}

func TestWorstTeam_Ambiguous(t *testing.T) {
	t.Run("tied on both measures", func(t *testing.T) {
		s := testSnapshot()
		s.Teams = []team.Team{austria, belgium}
		s.FinishedFixtures = []fixture.Fixture{
			result(1, austria, belgium, 1, 0),
			result(2, belgium, austria, 1, 0),
		}
		if _, err := WorstTeam(s, 5); !errors.Is(err, ErrAmbiguousResult) {
			t.Fatalf("expected ErrAmbiguousResult, got %v", err)
		}
	})

	t.Run("leaders differ", func(t *testing.T) {
		s := testSnapshot()
		s.FinishedFixtures = []fixture.Fixture{
			result(1, austria, belgium, 0, 1),
			result(2, austria, croatia, 0, 1),
			result(3, belgium, croatia, 0, 5),
		}
		if _, err := WorstTeam(s, 5); !errors.Is(err, ErrAmbiguousResult) {
			t.Fatalf("expected ErrAmbiguousResult, got %v", err)
		}
	})
}

func TestWorstTeam_SkipsFixturesWithUnknownTeams(t *testing.T) {
	s := testSnapshot()
	ghost := team.Team{ID: 99, Name: "Ghost"}
	s.FinishedFixtures = []fixture.Fixture{
		result(1, ghost, austria, 9, 0),
		result(2, belgium, croatia, 2, 0),
	}

	got, err := WorstTeam(s, 5)
	if err != nil {
		t.Fatalf("WorstTeam error: %v", err)
	}
	if got.Team.ID != croatia.ID {
		t.Fatalf("expected Croatia, got %s", got.Team.Name)
	}
}

func TestFilthiestTeam(t *testing.T) {
	s := testSnapshot()
	s.Players = []player.Player{
		{ID: 1, TeamID: austria.ID, YellowCards: intPtr(2)},
		{ID: 2, TeamID: belgium.ID, RedCards: intPtr(1)},
		{ID: 3, TeamID: croatia.ID, YellowCards: intPtr(1)},
		{ID: 4, TeamID: 99, RedCards: intPtr(10)},
	}

	got, err := FilthiestTeam(s, 10)
	if err != nil {
		t.Fatalf("FilthiestTeam error: %v", err)
	}
	if got.Team.ID != belgium.ID {
		t.Fatalf("expected Belgium, got %s", got.Team.Name)
	}
	if got.Data != "Players given 0 yellow cards, 0 yellows then reds and 1 red cards" {
		t.Fatalf("unexpected data: %q", got.Data)
	}
}

func TestFilthiestTeam_TieKeepsTeamOrder(t *testing.T) {
	s := testSnapshot()
	s.Players = []player.Player{
		{ID: 1, TeamID: croatia.ID, YellowThenRedCards: intPtr(1)},
		{ID: 2, TeamID: austria.ID, YellowCards: intPtr(2)},
	}

	got, err := FilthiestTeam(s, 10)
	if err != nil {
		t.Fatalf("FilthiestTeam error: %v", err)
	}
	if got.Team.ID != austria.ID {
		t.Fatalf("expected Austria on tie, got %s", got.Team.Name)
	}
}

func TestFilthiestTeam_ExtraCardsNeverDemoteLeader(t *testing.T) {
	base := testSnapshot()
	base.Players = []player.Player{
		{ID: 1, TeamID: austria.ID, YellowCards: intPtr(1)},
		{ID: 2, TeamID: belgium.ID, YellowCards: intPtr(3)},
	}
	first, err := FilthiestTeam(base, 10)
	if err != nil {
		t.Fatalf("FilthiestTeam error: %v", err)
	}

	for _, extra := range []player.Player{
		{ID: 10, TeamID: belgium.ID, YellowCards: intPtr(1)},
		{ID: 11, TeamID: belgium.ID, YellowThenRedCards: intPtr(1)},
		{ID: 12, TeamID: belgium.ID, RedCards: intPtr(1)},
	} {
		s := base
		s.Players = append(append([]player.Player(nil), base.Players...), extra)
		got, err := FilthiestTeam(s, 10)
		if err != nil {
			t.Fatalf("FilthiestTeam error: %v", err)
		}
		if got.Team.ID != first.Team.ID {
			t.Fatalf("leader changed from %s to %s after extra cards", first.Team.Name, got.Team.Name)
		}
	}
}

func TestFilthiestTeam_RedCardsOnlyMoveTeamUp(t *testing.T) {
	base := testSnapshot()
	base.Players = []player.Player{
		{ID: 1, TeamID: austria.ID, YellowCards: intPtr(1)},
		{ID: 2, TeamID: belgium.ID, YellowCards: intPtr(3)},
	}

	leading := false
	for reds := 0; reds <= 3; reds++ {
		s := base
		s.Players = append([]player.Player(nil), base.Players...)
		for i := 0; i < reds; i++ {
			s.Players = append(s.Players, player.Player{ID: int64(100 + i), TeamID: austria.ID, RedCards: intPtr(1)})
		}

		got, err := FilthiestTeam(s, 10)
		if err != nil {
			t.Fatalf("FilthiestTeam error: %v", err)
		}
		isAustria := got.Team.ID == austria.ID
		if leading && !isAustria {
			t.Fatalf("Austria lost the lead after %d red cards", reds)
		}
		leading = isAustria

		if reds == 0 && isAustria {
			t.Fatalf("expected Belgium to lead before any red cards")
		}
	}

	if !leading {
		t.Fatalf("expected Austria to overtake Belgium with red cards")
	}
}

func TestBiggestLoss_GreedyScan(t *testing.T) {
	s := testSnapshot()
	uruguay := team.Team{ID: 4, Name: "Uruguay", Code: "URU"}
	s.Teams = append(s.Teams, uruguay)
	s.Owners = NewOwnerIndex(
		[]draw.Draw{{UserID: 101, TeamID: austria.ID}, {UserID: 102, TeamID: belgium.ID}, {UserID: 103, TeamID: croatia.ID}, {UserID: 101, TeamID: uruguay.ID}},
		[]user.User{{ID: 101, FirstName: "Alice"}, {ID: 102, FirstName: "Bob"}, {ID: 103, FirstName: "Cara"}},
	)
	s.FinishedFixtures = []fixture.Fixture{
		result(1, austria, uruguay, 0, 3),
		result(2, uruguay, belgium, 4, 2),
		result(3, croatia, uruguay, 1, 4),
	}

	got, err := BiggestLoss(s, 5)
	if err != nil {
		t.Fatalf("BiggestLoss error: %v", err)
	}
	if got.Team.ID != croatia.ID {
		t.Fatalf("expected Croatia, got %s", got.Team.Name)
	}
	if got.Data != "Uruguay thrashed Croatia 4-1" {
		t.Fatalf("unexpected data: %q", got.Data)
	}
}

func TestBiggestLoss_NoDefeats(t *testing.T) {
	s := testSnapshot()
	s.FinishedFixtures = []fixture.Fixture{result(1, austria, belgium, 1, 1)}
	if _, err := BiggestLoss(s, 5); !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
}

func TestGoalscorers(t *testing.T) {
	s := testSnapshot()
	s.Players = []player.Player{
		{ID: 1, FirstName: "Old", LastName: "Timer", TeamID: austria.ID, DateOfBirth: date(1983, 3, 1), Goals: intPtr(1)},
		{ID: 2, FirstName: "Young", LastName: "Gun", TeamID: belgium.ID, DateOfBirth: date(2005, 5, 20), Goals: intPtr(2)},
		{ID: 3, FirstName: "No", LastName: "Goals", TeamID: croatia.ID, DateOfBirth: date(2008, 1, 1), Goals: intPtr(0)},
		{ID: 4, FirstName: "Nil", LastName: "Goals", TeamID: croatia.ID, DateOfBirth: date(1970, 1, 1)},
	}

	youngest, err := YoungestGoalscorer(s, 5)
	if err != nil {
		t.Fatalf("YoungestGoalscorer error: %v", err)
	}
	if youngest.Data != "Young Gun born on 2005-05-20 is a goalscorer" || youngest.Team.ID != belgium.ID {
		t.Fatalf("unexpected youngest: %+v", youngest)
	}

	oldest, err := OldestGoalscorer(s, 5)
	if err != nil {
		t.Fatalf("OldestGoalscorer error: %v", err)
	}
	if oldest.Data != "Old Timer born on 1983-03-01 is a goalscorer" || oldest.User.ID != 101 {
		t.Fatalf("unexpected oldest: %+v", oldest)
	}
}

func TestGoalscorers_TieKeepsFirst(t *testing.T) {
	s := testSnapshot()
	dob := date(2000, 1, 1)
	s.Players = []player.Player{
		{ID: 1, FirstName: "First", LastName: "Seen", TeamID: austria.ID, DateOfBirth: dob, Goals: intPtr(1)},
		{ID: 2, FirstName: "Second", LastName: "Seen", TeamID: belgium.ID, DateOfBirth: dob, Goals: intPtr(1)},
	}
	for _, fn := range []func(Snapshot, int) (Category, error){YoungestGoalscorer, OldestGoalscorer} {
		got, err := fn(s, 5)
		if err != nil {
			t.Fatalf("goalscorer error: %v", err)
		}
		if got.Team.ID != austria.ID {
			t.Fatalf("expected first encountered player to win tie, got team %s", got.Team.Name)
		}
	}
}

func TestGoalscorers_NoneScored(t *testing.T) {
	s := testSnapshot()
	s.Players = []player.Player{{ID: 1, TeamID: austria.ID, DateOfBirth: date(2000, 1, 1)}}
	if _, err := YoungestGoalscorer(s, 5); !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
}

func TestOwnerNotFound(t *testing.T) {
	s := testSnapshot()
	s.Owners = NewOwnerIndex(nil, nil)
	s.FinishedFixtures = []fixture.Fixture{result(1, austria, belgium, 3, 0)}

	if _, err := WorstTeam(s, 5); !errors.Is(err, ErrOwnerNotFound) {
		t.Fatalf("expected ErrOwnerNotFound, got %v", err)
	}
}

func TestNewOwnerIndex_FirstDrawWins(t *testing.T) {
	idx := NewOwnerIndex(
		[]draw.Draw{{UserID: 1, TeamID: 10}, {UserID: 2, TeamID: 10}, {UserID: 3, TeamID: 11}},
		[]user.User{{ID: 1, FirstName: "A"}, {ID: 2, FirstName: "B"}},
	)
	owner, err := idx.Owner(10)
	if err != nil || owner.ID != 1 {
		t.Fatalf("expected first draw owner, got %+v err=%v", owner, err)
	}
	if _, err := idx.Owner(11); !errors.Is(err, ErrOwnerNotFound) {
		t.Fatalf("expected unknown user draw to be dropped, got %v", err)
	}
}

func TestCompute(t *testing.T) {
	s := testSnapshot()
	s.FinishedFixtures = []fixture.Fixture{
		result(1, austria, belgium, 3, 0),
		result(2, croatia, belgium, 2, 1),
	}
	s.Players = []player.Player{
		{ID: 1, FirstName: "Marko", LastName: "Arnautovic", TeamID: austria.ID, DateOfBirth: date(1989, 4, 19), Goals: intPtr(2), YellowCards: intPtr(1)},
		{ID: 2, FirstName: "Luka", LastName: "Modric", TeamID: croatia.ID, DateOfBirth: date(1985, 9, 9), Goals: intPtr(1)},
	}

	got, err := Compute(s, DefaultPrizes())
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}

	kinds := Kinds()
	if len(got) != len(kinds) {
		t.Fatalf("expected %d categories, got %d", len(kinds), len(got))
	}
	wantPrizes := []int{20, 10, 5, 10, 5, 5, 5}
	for i, c := range got {
		if c.Kind != kinds[i] {
			t.Fatalf("category %d kind=%s want %s", i, c.Kind, kinds[i])
		}
		if c.PrizeMoney != wantPrizes[i] {
			t.Fatalf("category %s prize=%d want %d", c.Kind, c.PrizeMoney, wantPrizes[i])
		}
	}
	if got[0].Team != nil || got[0].User != nil {
		t.Fatalf("expected first place placeholder, got %+v", got[0])
	}
}

func TestWorstTeam_NoTeams(t *testing.T) {
	if _, err := WorstTeam(Snapshot{}, 5); !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
}

func TestCompute_AbortsOnFirstError(t *testing.T) {
	s := testSnapshot()
	if _, err := Compute(s, DefaultPrizes()); !errors.Is(err, ErrAmbiguousResult) {
		t.Fatalf("expected worst team ambiguity to abort, got %v", err)
	}
}

func TestPrizesWithOverrides(t *testing.T) {
	prizes, err := PrizesWithOverrides(map[string]int64{"First": 50, "oldest": 0})
	if err != nil {
		t.Fatalf("PrizesWithOverrides error: %v", err)
	}
	if prizes.For(KindFirstPlace) != 50 || prizes.For(KindOldestGoalscorer) != 0 || prizes.For(KindSecondPlace) != 10 {
		t.Fatalf("unexpected prizes: %v", prizes)
	}

	if _, err := PrizesWithOverrides(map[string]int64{"wooden_spoon": 1}); !errors.Is(err, ErrUnknownPrizeKind) {
		t.Fatalf("expected ErrUnknownPrizeKind, got %v", err)
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
