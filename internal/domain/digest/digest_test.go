package digest

import (
	"strings"
	"testing"
	"time"

	"github.com/itbasis/go-clock"

	"github.com/jackwardell/partypeople/internal/domain/fixture"
	"github.com/jackwardell/partypeople/internal/domain/sweepstake"
	"github.com/jackwardell/partypeople/internal/domain/team"
	"github.com/jackwardell/partypeople/internal/domain/user"
)

var (
	spain = team.Team{ID: 9, Name: "Spain", Code: "ESP"}
	italy = team.Team{ID: 768, Name: "Italy", Code: "ITA"}
	alice = user.User{ID: 101, FirstName: "Alice"}
	bob   = user.User{ID: 102, FirstName: "Bob"}
)

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func testCalendar(now time.Time) Calendar {
	clk := clock.NewMock()
	clk.Set(now)
	return NewCalendar(clk, time.UTC)
}

var matchDay = time.Date(2024, 6, 20, 9, 0, 0, 0, time.UTC)

func spainItaly(status fixture.Status, hg, ag *int, homeWon, awayWon *bool) fixture.Fixture {
	return fixture.Fixture{
		ID:         1145532,
		Status:     status,
		HomeTeamID: spain.ID,
		AwayTeamID: italy.ID,
		HomeTeam:   spain.Name,
		AwayTeam:   italy.Name,
		HomeGoals:  hg,
		AwayGoals:  ag,
		HomeWinner: homeWon,
		AwayWinner: awayWon,
		KickOff:    time.Date(2024, 6, 20, 19, 0, 0, 0, time.UTC),
		VenueCity:  "Gelsenkirchen",
		VenueName:  "Arena AufSchalke",
		Round:      "Group Stage - 2",
	}
}

func TestNewFixtureContext_HomeWinRoundTrip(t *testing.T) {
	f := spainItaly(fixture.StatusFullTime, intPtr(3), intPtr(1), boolPtr(true), boolPtr(false))
	fc := NewFixtureContext(f, spain, italy, alice, bob, testCalendar(matchDay))

	if fc.WinningTeam == nil || fc.WinningTeam.ID != spain.ID {
		t.Fatalf("expected Spain to win, got %+v", fc.WinningTeam)
	}
	if fc.LosingTeam == nil || fc.LosingTeam.ID != italy.ID {
		t.Fatalf("expected Italy to lose, got %+v", fc.LosingTeam)
	}
	if fc.WinningUser.ID != alice.ID || fc.LosingUser.ID != bob.ID {
		t.Fatalf("unexpected users: winner=%+v loser=%+v", fc.WinningUser, fc.LosingUser)
	}
	if *fc.WinningTeamGoals != 3 || *fc.LosingTeamGoals != 1 {
		t.Fatalf("unexpected goals: %d-%d", *fc.WinningTeamGoals, *fc.LosingTeamGoals)
	}
}

func TestNewFixtureContext_AwayWinMatchesGoalsByTeam(t *testing.T) {
	f := spainItaly(fixture.StatusFullTime, intPtr(0), intPtr(2), boolPtr(false), boolPtr(true))
	fc := NewFixtureContext(f, spain, italy, alice, bob, testCalendar(matchDay))

	if fc.WinningTeam.ID != italy.ID || *fc.WinningTeamGoals != 2 || *fc.LosingTeamGoals != 0 {
		t.Fatalf("unexpected result: winner=%s %d-%d", fc.WinningTeam.Name, *fc.WinningTeamGoals, *fc.LosingTeamGoals)
	}
}

func TestNewFixtureContext_UndecidedLeavesWinnerUnset(t *testing.T) {
	for name, f := range map[string]fixture.Fixture{
		"flags false": spainItaly(fixture.StatusFullTime, intPtr(1), intPtr(1), boolPtr(false), boolPtr(false)),
		"flags nil":   spainItaly(fixture.StatusNotStarted, nil, nil, nil, nil),
	} {
		fc := NewFixtureContext(f, spain, italy, alice, bob, testCalendar(matchDay))
		if fc.WinningTeam != nil || fc.LosingTeam != nil || fc.WinningUser != nil || fc.WinningTeamGoals != nil {
			t.Fatalf("%s: expected no winner fields, got %+v", name, fc)
		}
	}
}

func TestFixtureContext_NotStartedMessage(t *testing.T) {
	f := spainItaly(fixture.StatusNotStarted, nil, nil, nil, nil)
	fc := NewFixtureContext(f, spain, italy, alice, bob, testCalendar(matchDay))

	want := "🤝 Teams: Spain (ESP) 🇪🇸 play Italy (ITA) 🇮🇹\n" +
		"🏟️ Stadium: Arena AufSchalke in Gelsenkirchen 🧑‍🤝‍🧑\n" +
		"🦵 Kick Off: 19:00:00 Today ⏱️\n" +
		"🔢 Round: Group Stage - 2 💫\n" +
		"⚔️ Rivals: [Alice](tg://user?id=101) vs. [Bob](tg://user?id=102) 😈"
	if got := fc.Message(); got != want {
		t.Fatalf("unexpected message:\nwant: %q\ngot:  %q", want, got)
	}
	if fc.Message() != fc.Message() {
		t.Fatalf("rendering must be idempotent")
	}

	tomorrow := NewFixtureContext(f, spain, italy, alice, bob, testCalendar(matchDay.AddDate(0, 0, -1)))
	if !strings.Contains(tomorrow.Message(), "19:00:00 Tomorrow") {
		t.Fatalf("expected Tomorrow label, got %q", tomorrow.Message())
	}
	later := NewFixtureContext(f, spain, italy, alice, bob, testCalendar(matchDay.AddDate(0, 0, -5)))
	if !strings.Contains(later.Message(), "19:00:00 Thu Jun 20") {
		t.Fatalf("expected weekday label, got %q", later.Message())
	}
}

func TestFixtureContext_KickOffUsesDisplayLocation(t *testing.T) {
	london, err := time.LoadLocation("Europe/London")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	clk := clock.NewMock()
	clk.Set(matchDay)
	f := spainItaly(fixture.StatusNotStarted, nil, nil, nil, nil)
	fc := NewFixtureContext(f, spain, italy, alice, bob, NewCalendar(clk, london))

	if !strings.Contains(fc.Message(), "20:00:00 Today") {
		t.Fatalf("expected BST kick off, got %q", fc.Message())
	}
}

func TestCalendar_TodayIsUTCDate(t *testing.T) {
	auckland := time.FixedZone("NZST", 12*60*60)
	clk := clock.NewMock()
	clk.Set(time.Date(2024, 6, 20, 13, 0, 0, 0, time.UTC))
	cal := NewCalendar(clk, auckland)

	if got, want := cal.Today(), time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Fatalf("Today()=%s want %s", got, want)
	}

	f := spainItaly(fixture.StatusNotStarted, nil, nil, nil, nil)
	f.KickOff = time.Date(2024, 6, 20, 19, 0, 0, 0, time.UTC)
	fc := NewFixtureContext(f, spain, italy, alice, bob, cal)
	if !strings.Contains(fc.Message(), "07:00:00 Today") {
		t.Fatalf("expected local clock time with UTC day label, got %q", fc.Message())
	}
}

func TestFixtureContext_UnclassifiedRendersAsNotStarted(t *testing.T) {
	f := spainItaly(fixture.StatusPostponed, nil, nil, nil, nil)
	fc := NewFixtureContext(f, spain, italy, alice, bob, testCalendar(matchDay))
	if fc.Message() != fc.NotStartedMessage() {
		t.Fatalf("expected postponed fixture to use not-started template")
	}
}

func TestFixtureContext_InProgressMessage(t *testing.T) {
	f := spainItaly(fixture.StatusSecondHalf, intPtr(1), intPtr(0), nil, nil)
	fc := NewFixtureContext(f, spain, italy, alice, bob, testCalendar(matchDay))

	want := "🤝 Teams: Spain 🇪🇸 are playing Italy 🇮🇹 now\n" +
		"🏟️ Score: 1-0 🧑‍🤝‍🧑\n" +
		"🔢 Round: Group Stage - 2 💫\n" +
		"⚔️ Rivals: [Alice](tg://user?id=101) vs. [Bob](tg://user?id=102) 😈"
	if got := fc.Message(); got != want {
		t.Fatalf("unexpected message:\nwant: %q\ngot:  %q", want, got)
	}
}

func TestFixtureContext_FinishedMessage(t *testing.T) {
	f := spainItaly(fixture.StatusFullTime, intPtr(0), intPtr(1), boolPtr(false), boolPtr(true))
	fc := NewFixtureContext(f, spain, italy, alice, bob, testCalendar(matchDay))

	want := "🏆 Teams: Italy 🇮🇹 beat Spain 🇪🇸 ✨\n" +
		"🏟️ Score: 1-0 🧑‍🤝‍🧑\n" +
		"🔢 Round: Group Stage - 2 💫\n" +
		"🎉 Well done [Bob](tg://user?id=102) and get rekt [Alice](tg://user?id=101) 💀"
	if got := fc.Message(); got != want {
		t.Fatalf("unexpected message:\nwant: %q\ngot:  %q", want, got)
	}
}

func TestFixtureContext_FinishedOnPenalties(t *testing.T) {
	f := spainItaly(fixture.StatusAfterPenalties, intPtr(1), intPtr(1), boolPtr(false), boolPtr(true))
	f.PenaltiesHome, f.PenaltiesAway = intPtr(3), intPtr(5)
	fc := NewFixtureContext(f, spain, italy, alice, bob, testCalendar(matchDay))

	msg := fc.Message()
	if !strings.HasPrefix(msg, "🏆 Teams: Italy 🇮🇹 drew with Spain 🇪🇸 ✨\n") {
		t.Fatalf("expected drew with framing, got %q", msg)
	}
	if !strings.Contains(msg, "🥅 Penalties: 5-3 🎯\n") {
		t.Fatalf("expected winner-first penalties line, got %q", msg)
	}
	if !strings.Contains(msg, "Well done [Bob](tg://user?id=102)") {
		t.Fatalf("expected shoot-out winner to be congratulated, got %q", msg)
	}
}

func TestFixtureContext_FinishedDraw(t *testing.T) {
	f := spainItaly(fixture.StatusFullTime, intPtr(2), intPtr(2), boolPtr(false), boolPtr(false))
	fc := NewFixtureContext(f, spain, italy, alice, bob, testCalendar(matchDay))

	want := "🏆 Teams: Spain 🇪🇸 drew with Italy 🇮🇹 ✨\n" +
		"🏟️ Score: 2-2 🧑‍🤝‍🧑\n" +
		"🔢 Round: Group Stage - 2 💫\n" +
		"🤝 Honours even between [Alice](tg://user?id=101) and [Bob](tg://user?id=102) 🙃"
	if got := fc.Message(); got != want {
		t.Fatalf("unexpected message:\nwant: %q\ngot:  %q", want, got)
	}
}

func TestDateContext_EmptyToday(t *testing.T) {
	cal := testCalendar(matchDay)
	dc := NewDateContext(cal.Today(), nil, cal)

	if got := dc.Message(); got != "No fixtures Today" {
		t.Fatalf("unexpected message: %q", got)
	}
	if dc.MorningMessage() != "No fixtures Today" || dc.EveningMessage() != "No fixtures Today" {
		t.Fatalf("expected placeholder for morning and evening messages")
	}

	tomorrow := NewDateContext(cal.Today().AddDate(0, 0, 1), nil, cal)
	if got := tomorrow.Message(); got != "No fixtures Tomorrow" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestDateContext_FiltersAndOrdersByKickOff(t *testing.T) {
	cal := testCalendar(matchDay)
	late := spainItaly(fixture.StatusNotStarted, nil, nil, nil, nil)
	late.ID = 3
	early := late
	early.ID = 2
	early.KickOff = time.Date(2024, 6, 20, 13, 0, 0, 0, time.UTC)
	otherDay := late
	otherDay.ID = 4
	otherDay.KickOff = time.Date(2024, 6, 21, 0, 30, 0, 0, time.UTC)

	fcs := []FixtureContext{
		NewFixtureContext(late, spain, italy, alice, bob, cal),
		NewFixtureContext(otherDay, spain, italy, alice, bob, cal),
		NewFixtureContext(early, spain, italy, alice, bob, cal),
	}
	dc := NewDateContext(time.Date(2024, 6, 20, 23, 59, 0, 0, time.UTC), fcs, cal)

	if len(dc.Fixtures) != 2 || dc.Fixtures[0].Fixture.ID != 2 || dc.Fixtures[1].Fixture.ID != 3 {
		t.Fatalf("unexpected fixtures: %+v", dc.Fixtures)
	}
	parts := strings.Split(dc.Message(), "\n\n")
	if len(parts) != 2 || !strings.Contains(parts[0], "13:00:00") {
		t.Fatalf("unexpected message parts: %q", parts)
	}
}

func TestDateContext_EveningMessage(t *testing.T) {
	cal := testCalendar(matchDay)
	done := spainItaly(fixture.StatusFullTime, intPtr(1), intPtr(0), boolPtr(true), boolPtr(false))
	pending := spainItaly(fixture.StatusNotStarted, nil, nil, nil, nil)
	pending.ID = 2
	pending.KickOff = pending.KickOff.Add(2 * time.Hour)

	dc := NewDateContext(matchDay, []FixtureContext{
		NewFixtureContext(done, spain, italy, alice, bob, cal),
		NewFixtureContext(pending, spain, italy, alice, bob, cal),
	}, cal)

	parts := strings.Split(dc.EveningMessage(), "\n\n")
	if len(parts) != 2 || !strings.HasPrefix(parts[0], "🏆 Teams: Spain") || !strings.HasPrefix(parts[1], "🤝 Teams: Spain (ESP)") {
		t.Fatalf("unexpected evening message: %q", parts)
	}
	for _, part := range strings.Split(dc.MorningMessage(), "\n\n") {
		if !strings.HasPrefix(part, "🤝 Teams:") {
			t.Fatalf("expected previews only in morning message, got %q", part)
		}
	}
}

func TestUserContext(t *testing.T) {
	cal := testCalendar(matchDay)
	germany := team.Team{ID: 25, Name: "Germany", Code: "GER"}

	upcoming := spainItaly(fixture.StatusNotStarted, nil, nil, nil, nil)
	live := spainItaly(fixture.StatusFirstHalf, intPtr(0), intPtr(0), nil, nil)
	live.ID = 2
	live.KickOff = upcoming.KickOff.Add(-time.Hour)
	done := spainItaly(fixture.StatusFullTime, intPtr(1), intPtr(0), boolPtr(true), boolPtr(false))
	done.ID = 3
	done.KickOff = upcoming.KickOff.AddDate(0, 0, -4)

	fcs := []FixtureContext{
		NewFixtureContext(upcoming, spain, italy, alice, bob, cal),
		NewFixtureContext(done, spain, italy, alice, bob, cal),
		NewFixtureContext(live, spain, italy, alice, bob, cal),
		NewFixtureContext(upcoming, spain, italy, alice, bob, cal),
	}
	uc := NewUserContext(alice, []team.Team{spain, germany}, fcs, "muppet")

	if len(uc.Fixtures) != 3 || uc.Fixtures[0].Fixture.ID != 3 {
		t.Fatalf("expected deduplicated fixtures in kick off order, got %+v", uc.Fixtures)
	}
	if len(uc.NotStarted()) != 1 || len(uc.InProgress()) != 1 || len(uc.Finished()) != 1 {
		t.Fatalf("unexpected partitions: ns=%d ip=%d fin=%d", len(uc.NotStarted()), len(uc.InProgress()), len(uc.Finished()))
	}
	if got := uc.TeamsMessage(); got != "You have: 🇩🇪 Germany 🇩🇪 & 🇪🇸 Spain 🇪🇸" {
		t.Fatalf("unexpected teams message: %q", got)
	}
	if got := uc.MatchesMessage(); !strings.HasPrefix(got, "You have:\n🤝 Teams: Spain (ESP)") {
		t.Fatalf("unexpected matches message: %q", got)
	}
	if got := uc.LiveMatchesMessage(); !strings.HasPrefix(got, "You are playing:\n🤝 Teams: Spain 🇪🇸 are playing") {
		t.Fatalf("unexpected live matches message: %q", got)
	}
	if got := uc.PastMatchesMessage(); !strings.HasPrefix(got, "You played:\n🏆 Teams: Spain 🇪🇸 beat Italy") {
		t.Fatalf("unexpected past matches message: %q", got)
	}
}

func TestUserContext_EmptyUsesFixedInsult(t *testing.T) {
	uc := NewUserContext(bob, nil, nil, "plank")

	if got := uc.TeamsMessage(); got != "You have no teams you absolute plank" {
		t.Fatalf("unexpected teams message: %q", got)
	}
	for _, got := range []string{uc.MatchesMessage(), uc.LiveMatchesMessage(), uc.PastMatchesMessage()} {
		if got != "You have no matches you absolute plank" {
			t.Fatalf("unexpected empty message: %q", got)
		}
	}
	if uc.TeamsMessage() != uc.TeamsMessage() {
		t.Fatalf("rendering must be idempotent")
	}
}

func TestCategoryMessage(t *testing.T) {
	placeholder := sweepstake.Category{Kind: sweepstake.KindFirstPlace, PrizeMoney: 20}
	want := "🏆 First place 🏆\n🎁 Prize: £20 💰\n👥 Participant: TBD 🎉\n🤝 Team: TBD \n"
	if got := CategoryMessage(placeholder); got != want {
		t.Fatalf("unexpected placeholder:\nwant: %q\ngot:  %q", want, got)
	}

	worst := sweepstake.Category{
		Kind:       sweepstake.KindWorstTeam,
		PrizeMoney: 5,
		Team:       &italy,
		User:       &bob,
		Data:       "Lost 3 games and conceded 7 goals",
	}
	want = "🏆 Worst team 🏆\n🎁 Prize: £5 💰\n👥 Participant: [Bob](tg://user?id=102) 🎉\n" +
		"🤝 Team: Italy 🇮🇹\n📊 Data: Lost 3 games and conceded 7 goals ℹ️\n"
	if got := CategoryMessage(worst); got != want {
		t.Fatalf("unexpected category:\nwant: %q\ngot:  %q", want, got)
	}

	sc := SweepstakeContext{Categories: []sweepstake.Category{placeholder, worst}}
	if got := sc.Message(); got != CategoryMessage(placeholder)+"\n"+CategoryMessage(worst) {
		t.Fatalf("unexpected sweepstake message: %q", got)
	}
}

func TestCalendar_DayLabel(t *testing.T) {
	cal := testCalendar(time.Date(2024, 6, 30, 23, 30, 0, 0, time.UTC))
	cases := map[time.Time]string{
		time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC): "Today",
		time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC): "Tomorrow",
		time.Date(2024, 6, 29, 0, 0, 0, 0, time.UTC): "Sat Jun 29",
		time.Date(2024, 7, 2, 0, 0, 0, 0, time.UTC):  "Tue Jul 02",
	}
	for day, want := range cases {
		if got := cal.DayLabel(day); got != want {
			t.Fatalf("DayLabel(%s)=%q want %q", day.Format(time.DateOnly), got, want)
		}
	}
}

func TestRandomInsult(t *testing.T) {
	known := map[string]bool{}
	for _, insult := range Insults() {
		known[insult] = true
	}
	for i := 0; i < 20; i++ {
		if got := RandomInsult(); !known[got] {
			t.Fatalf("unexpected insult %q", got)
		}
	}
}
