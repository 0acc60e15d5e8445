package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jackwardell/partypeople/internal/domain/user"
	qb "github.com/jackwardell/partypeople/internal/platform/querybuilder"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) List(ctx context.Context) ([]user.User, error) {
	query, args, err := qb.Select(userColumns...).From("users u").OrderBy("u.id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select users query: %w", err)
	}

	var rows []userTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}

	out := make([]user.User, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *UserRepository) GetByID(ctx context.Context, userID int64) (user.User, bool, error) {
	return r.getOne(ctx, "user id", qb.Eq("u.id", userID))
}

// GetByTeamID resolves the user of the earliest draw naming the team.
func (r *UserRepository) GetByTeamID(ctx context.Context, teamID int64) (user.User, bool, error) {
	return r.getOne(ctx, "owner by team", qb.Expr("u.id = (SELECT d.user_id FROM draws d WHERE d.team_id = ? ORDER BY d.id LIMIT 1)", teamID))
}

func (r *UserRepository) GetByTeamName(ctx context.Context, teamName string) (user.User, bool, error) {
	return r.getOne(ctx, "owner by team name", ownerByTeamNameCondition(teamName))
}

func (r *UserRepository) Upsert(ctx context.Context, users []user.User) error {
	rows := make([]userTableModel, 0, len(users))
	for _, u := range users {
		rows = append(rows, newUserTableModel(u))
	}
	rows = dedupeBy(rows, func(m userTableModel) int64 { return m.ID })
	return upsertRows(ctx, r.db, "users", rows, userUpsertSuffix)
}

func (r *UserRepository) getOne(ctx context.Context, lookup string, cond qb.Condition) (user.User, bool, error) {
	query, args, err := qb.Select(userColumns...).From("users u").Where(cond).Limit(1).ToSQL()
	if err != nil {
		return user.User{}, false, fmt.Errorf("build select %s query: %w", lookup, err)
	}

	var row userTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return user.User{}, false, nil
		}
		return user.User{}, false, fmt.Errorf("select %s: %w", lookup, err)
	}
	return row.toDomain(), true, nil
}

func ownerByTeamNameCondition(teamName string) qb.Condition {
	return qb.Expr(`u.id = (
    SELECT d.user_id FROM draws d
    JOIN teams t ON t.id = d.team_id
    WHERE t.name = ?
    ORDER BY d.id
    LIMIT 1)`, teamName)
}
