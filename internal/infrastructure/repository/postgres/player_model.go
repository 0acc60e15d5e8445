package postgres

import (
	"time"

	"github.com/jackwardell/partypeople/internal/domain/player"
)

var playerColumns = []string{
	"p.id", "p.first_name", "p.last_name", "p.date_of_birth", "p.team_id",
	"p.yellow_cards", "p.yellow_then_red_cards", "p.red_cards", "p.goals",
}

type playerTableModel struct {
	ID                 int64     `db:"id"`
	FirstName          string    `db:"first_name"`
	LastName           string    `db:"last_name"`
	DateOfBirth        time.Time `db:"date_of_birth"`
	TeamID             int64     `db:"team_id"`
	YellowCards        *int      `db:"yellow_cards"`
	YellowThenRedCards *int      `db:"yellow_then_red_cards"`
	RedCards           *int      `db:"red_cards"`
	Goals              *int      `db:"goals"`
}

func newPlayerTableModel(p player.Player) playerTableModel {
	return playerTableModel{
		ID:                 p.ID,
		FirstName:          p.FirstName,
		LastName:           p.LastName,
		DateOfBirth:        p.DateOfBirth,
		TeamID:             p.TeamID,
		YellowCards:        p.YellowCards,
		YellowThenRedCards: p.YellowThenRedCards,
		RedCards:           p.RedCards,
		Goals:              p.Goals,
	}
}

func (m playerTableModel) toDomain() player.Player {
	y, mo, d := m.DateOfBirth.Date()
	return player.Player{
		ID:                 m.ID,
		FirstName:          m.FirstName,
		LastName:           m.LastName,
		DateOfBirth:        time.Date(y, mo, d, 0, 0, 0, 0, time.UTC),
		TeamID:             m.TeamID,
		YellowCards:        m.YellowCards,
		YellowThenRedCards: m.YellowThenRedCards,
		RedCards:           m.RedCards,
		Goals:              m.Goals,
	}
}

const playerUpsertSuffix = `ON CONFLICT (id)
DO UPDATE SET
    first_name = EXCLUDED.first_name,
    last_name = EXCLUDED.last_name,
    date_of_birth = EXCLUDED.date_of_birth,
    team_id = EXCLUDED.team_id,
    yellow_cards = EXCLUDED.yellow_cards,
    yellow_then_red_cards = EXCLUDED.yellow_then_red_cards,
    red_cards = EXCLUDED.red_cards,
    goals = EXCLUDED.goals,
    updated_at = NOW()`
