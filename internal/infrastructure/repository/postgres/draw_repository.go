package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jackwardell/partypeople/internal/domain/draw"
	qb "github.com/jackwardell/partypeople/internal/platform/querybuilder"
)

type drawTableModel struct {
	UserID int64 `db:"user_id"`
	TeamID int64 `db:"team_id"`
}

type DrawRepository struct {
	db *sqlx.DB
}

func NewDrawRepository(db *sqlx.DB) *DrawRepository {
	return &DrawRepository{db: db}
}

// List returns draws in the order they were first recorded.
func (r *DrawRepository) List(ctx context.Context) ([]draw.Draw, error) {
	query, args, err := qb.Select("d.user_id", "d.team_id").From("draws d").OrderBy("d.id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select draws query: %w", err)
	}

	var rows []drawTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select draws: %w", err)
	}

	out := make([]draw.Draw, 0, len(rows))
	for _, row := range rows {
		out = append(out, draw.Draw{UserID: row.UserID, TeamID: row.TeamID})
	}
	return out, nil
}

func (r *DrawRepository) Upsert(ctx context.Context, draws []draw.Draw) error {
	rows := make([]drawTableModel, 0, len(draws))
	for _, d := range draws {
		rows = append(rows, drawTableModel{UserID: d.UserID, TeamID: d.TeamID})
	}
	rows = dedupeBy(rows, func(m drawTableModel) drawTableModel { return m })
	return upsertRows(ctx, r.db, "draws", rows, `ON CONFLICT (user_id, team_id) DO NOTHING`)
}
