package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jackwardell/partypeople/internal/domain/team"
	qb "github.com/jackwardell/partypeople/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	query, args, err := qb.Select(teamColumns...).From("teams t").OrderBy("t.name", "t.id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams query: %w", err)
	}
	return r.selectTeams(ctx, query, args)
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID int64) (team.Team, bool, error) {
	query, args, err := qb.Select(teamColumns...).From("teams t").Where(qb.Eq("t.id", teamID)).Limit(1).ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build select team by id query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("select team by id=%d: %w", teamID, err)
	}
	return row.toDomain(), true, nil
}

func (r *TeamRepository) ListByUser(ctx context.Context, userID int64) ([]team.Team, error) {
	query, args, err := teamsByUserQuery(userID)
	if err != nil {
		return nil, fmt.Errorf("build select teams by user query: %w", err)
	}
	return r.selectTeams(ctx, query, args)
}

func (r *TeamRepository) Upsert(ctx context.Context, teams []team.Team) error {
	rows := make([]teamTableModel, 0, len(teams))
	for _, t := range teams {
		rows = append(rows, newTeamTableModel(t))
	}
	rows = dedupeBy(rows, func(m teamTableModel) int64 { return m.ID })
	return upsertRows(ctx, r.db, "teams", rows, teamUpsertSuffix)
}

func (r *TeamRepository) selectTeams(ctx context.Context, query string, args []any) ([]team.Team, error) {
	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func teamsByUserQuery(userID int64) (string, []any, error) {
	return qb.Select(teamColumns...).
		Distinct().
		From("teams t").
		Join("draws d ON d.team_id = t.id").
		Where(qb.Eq("d.user_id", userID)).
		OrderBy("t.name", "t.id").
		ToSQL()
}
