package sweepstake

import (
	"fmt"

	"github.com/jackwardell/partypeople/internal/domain/draw"
	"github.com/jackwardell/partypeople/internal/domain/fixture"
	"github.com/jackwardell/partypeople/internal/domain/player"
	"github.com/jackwardell/partypeople/internal/domain/team"
	"github.com/jackwardell/partypeople/internal/domain/user"
)

// Snapshot is the read-only input every category is computed from.
// Teams are ordered by name, players by team id and fixtures by kick off.
type Snapshot struct {
	Teams            []team.Team
	Players          []player.Player
	FinishedFixtures []fixture.Fixture
	Owners           OwnerIndex
}

// OwnerIndex resolves the user who drew a team.
type OwnerIndex struct {
	byTeam map[int64]user.User
}

// NewOwnerIndex joins draws to users. Draws naming an unknown user are dropped;
// the first draw for a team wins.
func NewOwnerIndex(draws []draw.Draw, users []user.User) OwnerIndex {
	usersByID := make(map[int64]user.User, len(users))
	for _, u := range users {
		usersByID[u.ID] = u
	}

	byTeam := make(map[int64]user.User, len(draws))
	for _, d := range draws {
		if _, taken := byTeam[d.TeamID]; taken {
			continue
		}
		if u, ok := usersByID[d.UserID]; ok {
			byTeam[d.TeamID] = u
		}
	}
	return OwnerIndex{byTeam: byTeam}
}

func (o OwnerIndex) Owner(teamID int64) (user.User, error) {
	u, ok := o.byTeam[teamID]
	if !ok {
		return user.User{}, fmt.Errorf("%w: team %d", ErrOwnerNotFound, teamID)
	}
	return u, nil
}

func (s Snapshot) teamsByID() map[int64]team.Team {
	out := make(map[int64]team.Team, len(s.Teams))
	for _, t := range s.Teams {
		out[t.ID] = t
	}
	return out
}

// knownFixtures drops fixtures referencing a team outside the snapshot.
func (s Snapshot) knownFixtures(teams map[int64]team.Team) []fixture.Fixture {
	out := make([]fixture.Fixture, 0, len(s.FinishedFixtures))
	for _, f := range s.FinishedFixtures {
		_, homeOK := teams[f.HomeTeamID]
		_, awayOK := teams[f.AwayTeamID]
		if homeOK && awayOK {
			out = append(out, f)
		}
	}
	return out
}
