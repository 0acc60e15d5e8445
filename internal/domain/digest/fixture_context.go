package digest

import (
	"fmt"
	"strings"

	"github.com/jackwardell/partypeople/internal/domain/fixture"
	"github.com/jackwardell/partypeople/internal/domain/team"
	"github.com/jackwardell/partypeople/internal/domain/user"
)

// FixtureContext is one fixture joined with both teams and their owners.
// The winning and losing fields are set only when the fixture is decided.
type FixtureContext struct {
	Fixture  fixture.Fixture
	HomeTeam team.Team
	AwayTeam team.Team
	HomeUser user.User
	AwayUser user.User

	WinningTeam      *team.Team
	LosingTeam       *team.Team
	WinningUser      *user.User
	LosingUser       *user.User
	WinningTeamGoals *int
	LosingTeamGoals  *int

	calendar Calendar
}

func NewFixtureContext(f fixture.Fixture, homeTeam, awayTeam team.Team, homeUser, awayUser user.User, cal Calendar) FixtureContext {
	fc := FixtureContext{
		Fixture:  f,
		HomeTeam: homeTeam,
		AwayTeam: awayTeam,
		HomeUser: homeUser,
		AwayUser: awayUser,
		calendar: cal.normalized(),
	}
	if !f.Decided() {
		return fc
	}

	winTeam, loseTeam, winUser, loseUser := awayTeam, homeTeam, awayUser, homeUser
	if f.HomeWon() {
		winTeam, loseTeam, winUser, loseUser = homeTeam, awayTeam, homeUser, awayUser
	}
	fc.WinningTeam, fc.LosingTeam = &winTeam, &loseTeam
	fc.WinningUser, fc.LosingUser = &winUser, &loseUser
	fc.WinningTeamGoals = f.GoalsFor(fc.WinningTeam.ID)
	fc.LosingTeamGoals = f.GoalsFor(fc.LosingTeam.ID)
	return fc
}

func (fc FixtureContext) Phase() fixture.Phase {
	return fc.Fixture.Phase()
}

// Message picks the template from the fixture phase. Unclassified statuses
// render as not started.
func (fc FixtureContext) Message() string {
	switch fc.Phase() {
	case fixture.PhaseFinished:
		return fc.FinishedMessage()
	case fixture.PhaseInProgress:
		return fc.InProgressMessage()
	default:
		return fc.NotStartedMessage()
	}
}

func (fc FixtureContext) NotStartedMessage() string {
	kickOffTime, kickOffDay := fc.calendar.kickOff(fc.Fixture.KickOff)
	return fmt.Sprintf(
		"🤝 Teams: %s (%s) %s play %s (%s) %s\n"+
			"🏟️ Stadium: %s in %s 🧑‍🤝‍🧑\n"+
			"🦵 Kick Off: %s %s ⏱️\n"+
			"🔢 Round: %s 💫\n"+
			"⚔️ Rivals: %s vs. %s 😈",
		fc.HomeTeam.Name, fc.HomeTeam.Code, fc.HomeTeam.Flag(),
		fc.AwayTeam.Name, fc.AwayTeam.Code, fc.AwayTeam.Flag(),
		fc.Fixture.VenueName, fc.Fixture.VenueCity,
		kickOffTime, kickOffDay,
		fc.Fixture.Round,
		fc.HomeUser.Tag(), fc.AwayUser.Tag(),
	)
}

func (fc FixtureContext) InProgressMessage() string {
	return fmt.Sprintf(
		"🤝 Teams: %s %s are playing %s %s now\n"+
			"🏟️ Score: %d-%d 🧑‍🤝‍🧑\n"+
			"🔢 Round: %s 💫\n"+
			"⚔️ Rivals: %s vs. %s 😈",
		fc.HomeTeam.Name, fc.HomeTeam.Flag(),
		fc.AwayTeam.Name, fc.AwayTeam.Flag(),
		fc.Fixture.ForceHomeGoals(), fc.Fixture.ForceAwayGoals(),
		fc.Fixture.Round,
		fc.HomeUser.Tag(), fc.AwayUser.Tag(),
	)
}

func (fc FixtureContext) FinishedMessage() string {
	var b strings.Builder
	if fc.WinningTeam == nil {
		fmt.Fprintf(&b, "🏆 Teams: %s %s drew with %s %s ✨\n", fc.HomeTeam.Name, fc.HomeTeam.Flag(), fc.AwayTeam.Name, fc.AwayTeam.Flag())
		fmt.Fprintf(&b, "🏟️ Score: %d-%d 🧑‍🤝‍🧑\n", fc.Fixture.ForceHomeGoals(), fc.Fixture.ForceAwayGoals())
		if fc.Fixture.HasPenalties() {
			fmt.Fprintf(&b, "🥅 Penalties: %d-%d 🎯\n", *fc.Fixture.PenaltiesHome, *fc.Fixture.PenaltiesAway)
		}
		fmt.Fprintf(&b, "🔢 Round: %s 💫\n", fc.Fixture.Round)
		fmt.Fprintf(&b, "🤝 Honours even between %s and %s 🙃", fc.HomeUser.Tag(), fc.AwayUser.Tag())
		return b.String()
	}

	winnerGoals, loserGoals := deref(fc.WinningTeamGoals), deref(fc.LosingTeamGoals)
	fmt.Fprintf(&b, "🏆 Teams: %s %s %s %s %s ✨\n",
		fc.WinningTeam.Name, fc.WinningTeam.Flag(), verb(winnerGoals, loserGoals), fc.LosingTeam.Name, fc.LosingTeam.Flag())
	fmt.Fprintf(&b, "🏟️ Score: %d-%d 🧑‍🤝‍🧑\n", winnerGoals, loserGoals)
	if fc.Fixture.HasPenalties() {
		fmt.Fprintf(&b, "🥅 Penalties: %d-%d 🎯\n",
			deref(fc.Fixture.PenaltiesFor(fc.WinningTeam.ID)), deref(fc.Fixture.PenaltiesFor(fc.LosingTeam.ID)))
	}
	fmt.Fprintf(&b, "🔢 Round: %s 💫\n", fc.Fixture.Round)
	fmt.Fprintf(&b, "🎉 Well done %s and get rekt %s 💀", fc.WinningUser.Tag(), fc.LosingUser.Tag())
	return b.String()
}

// verb compares goals rather than winner flags so shoot-outs read "drew with"
// and awarded results read "lost to".
func verb(winnerGoals, loserGoals int) string {
	switch {
	case winnerGoals > loserGoals:
		return "beat"
	case winnerGoals == loserGoals:
		return "drew with"
	default:
		return "lost to"
	}
}

func deref(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
