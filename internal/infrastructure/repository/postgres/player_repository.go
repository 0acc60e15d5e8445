package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jackwardell/partypeople/internal/domain/player"
	qb "github.com/jackwardell/partypeople/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	query, args, err := qb.Select(playerColumns...).From("players p").OrderBy("p.team_id", "p.id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *PlayerRepository) Upsert(ctx context.Context, players []player.Player) error {
	rows := make([]playerTableModel, 0, len(players))
	for _, p := range players {
		rows = append(rows, newPlayerTableModel(p))
	}
	rows = dedupeBy(rows, func(m playerTableModel) int64 { return m.ID })
	return upsertRows(ctx, r.db, "players", rows, playerUpsertSuffix)
}
