package digest

import (
	"slices"
	"strings"

	"github.com/jackwardell/partypeople/internal/domain/fixture"
	"github.com/jackwardell/partypeople/internal/domain/team"
	"github.com/jackwardell/partypeople/internal/domain/user"
)

// UserContext is one participant with their drawn teams and those teams' fixtures.
type UserContext struct {
	User     user.User
	Teams    []team.Team
	Fixtures []FixtureContext

	insult string
}

// NewUserContext orders teams by name and fixtures by kick off, dropping
// repeated fixtures. The insult is fixed here so every render is identical.
func NewUserContext(u user.User, teams []team.Team, fixtures []FixtureContext, insult string) UserContext {
	sortedTeams := slices.Clone(teams)
	slices.SortStableFunc(sortedTeams, func(a, b team.Team) int {
		return strings.Compare(a.Name, b.Name)
	})

	seen := make(map[int64]struct{}, len(fixtures))
	unique := make([]FixtureContext, 0, len(fixtures))
	for _, fc := range fixtures {
		if _, dup := seen[fc.Fixture.ID]; dup {
			continue
		}
		seen[fc.Fixture.ID] = struct{}{}
		unique = append(unique, fc)
	}
	slices.SortStableFunc(unique, func(a, b FixtureContext) int {
		return a.Fixture.KickOff.Compare(b.Fixture.KickOff)
	})

	return UserContext{User: u, Teams: sortedTeams, Fixtures: unique, insult: insult}
}

func (uc UserContext) Insult() string {
	return uc.insult
}

func (uc UserContext) NotStarted() []FixtureContext {
	return uc.inPhase(fixture.PhaseNotStarted)
}

func (uc UserContext) InProgress() []FixtureContext {
	return uc.inPhase(fixture.PhaseInProgress)
}

func (uc UserContext) Finished() []FixtureContext {
	return uc.inPhase(fixture.PhaseFinished)
}

func (uc UserContext) inPhase(phase fixture.Phase) []FixtureContext {
	out := make([]FixtureContext, 0, len(uc.Fixtures))
	for _, fc := range uc.Fixtures {
		if fc.Phase() == phase {
			out = append(out, fc)
		}
	}
	return out
}

func (uc UserContext) TeamsMessage() string {
	if len(uc.Teams) == 0 {
		return "You have no teams you absolute " + uc.insult
	}
	names := make([]string, 0, len(uc.Teams))
	for _, t := range uc.Teams {
		names = append(names, t.FlagNameFlag())
	}
	return "You have: " + strings.Join(names, " & ")
}

func (uc UserContext) MatchesMessage() string {
	return uc.fixturesMessage("You have:\n", uc.NotStarted(), FixtureContext.NotStartedMessage)
}

func (uc UserContext) LiveMatchesMessage() string {
	return uc.fixturesMessage("You are playing:\n", uc.InProgress(), FixtureContext.InProgressMessage)
}

func (uc UserContext) PastMatchesMessage() string {
	return uc.fixturesMessage("You played:\n", uc.Finished(), FixtureContext.FinishedMessage)
}

func (uc UserContext) fixturesMessage(header string, fixtures []FixtureContext, fn func(FixtureContext) string) string {
	if len(fixtures) == 0 {
		return "You have no matches you absolute " + uc.insult
	}
	return header + joinFixtures(fixtures, fn)
}
