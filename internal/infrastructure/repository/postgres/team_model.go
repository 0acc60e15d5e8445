package postgres

import "github.com/jackwardell/partypeople/internal/domain/team"

var teamColumns = []string{"t.id", "t.name", "t.code"}

type teamTableModel struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
	Code string `db:"code"`
}

func newTeamTableModel(t team.Team) teamTableModel {
	return teamTableModel{ID: t.ID, Name: t.Name, Code: t.Code}
}

func (m teamTableModel) toDomain() team.Team {
	return team.Team{ID: m.ID, Name: m.Name, Code: m.Code}
}

const teamUpsertSuffix = `ON CONFLICT (id)
DO UPDATE SET
    name = EXCLUDED.name,
    code = EXCLUDED.code,
    updated_at = NOW()`
