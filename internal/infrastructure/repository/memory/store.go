package memory

import (
	"sync"

	"github.com/jackwardell/partypeople/internal/domain/draw"
	"github.com/jackwardell/partypeople/internal/domain/fixture"
	"github.com/jackwardell/partypeople/internal/domain/player"
	"github.com/jackwardell/partypeople/internal/domain/team"
	"github.com/jackwardell/partypeople/internal/domain/user"
)

// Store holds every table behind one lock so joins see a consistent view.
// Repositories built on the same Store share its rows.
type Store struct {
	mu       sync.RWMutex
	teams    map[int64]team.Team
	players  map[int64]player.Player
	fixtures map[int64]fixture.Fixture
	users    map[int64]user.User
	draws    []draw.Draw
}

func NewStore() *Store {
	return &Store{
		teams:    make(map[int64]team.Team),
		players:  make(map[int64]player.Player),
		fixtures: make(map[int64]fixture.Fixture),
		users:    make(map[int64]user.User),
	}
}

// ownerIDLocked returns the user of the first draw naming the team.
func (s *Store) ownerIDLocked(teamID int64) (int64, bool) {
	for _, d := range s.draws {
		if d.TeamID == teamID {
			return d.UserID, true
		}
	}
	return 0, false
}

func (s *Store) teamIDsByUserLocked(userID int64) map[int64]struct{} {
	out := make(map[int64]struct{})
	for _, d := range s.draws {
		if d.UserID == userID {
			out[d.TeamID] = struct{}{}
		}
	}
	return out
}
