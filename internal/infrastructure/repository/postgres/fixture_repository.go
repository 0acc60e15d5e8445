package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jackwardell/partypeople/internal/domain/fixture"
	qb "github.com/jackwardell/partypeople/internal/platform/querybuilder"
)

type FixtureRepository struct {
	db *sqlx.DB
}

func NewFixtureRepository(db *sqlx.DB) *FixtureRepository {
	return &FixtureRepository{db: db}
}

func (r *FixtureRepository) ListFinished(ctx context.Context) ([]fixture.Fixture, error) {
	query, args, err := finishedFixturesQuery()
	if err != nil {
		return nil, fmt.Errorf("build select finished fixtures query: %w", err)
	}
	return r.selectFixtures(ctx, query, args)
}

func (r *FixtureRepository) ListByDate(ctx context.Context, day time.Time) ([]fixture.Fixture, error) {
	query, args, err := fixturesByDateQuery(day)
	if err != nil {
		return nil, fmt.Errorf("build select fixtures by date query: %w", err)
	}
	return r.selectFixtures(ctx, query, args)
}

func (r *FixtureRepository) GetByID(ctx context.Context, fixtureID int64) (fixture.Fixture, bool, error) {
	query, args, err := selectFixtures().Where(qb.Eq("f.id", fixtureID)).Limit(1).ToSQL()
	if err != nil {
		return fixture.Fixture{}, false, fmt.Errorf("build select fixture by id query: %w", err)
	}

	var row fixtureTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return fixture.Fixture{}, false, nil
		}
		return fixture.Fixture{}, false, fmt.Errorf("select fixture by id=%d: %w", fixtureID, err)
	}
	return row.toDomain(), true, nil
}

func (r *FixtureRepository) ListIDsByUser(ctx context.Context, userID int64) ([]int64, error) {
	query, args, err := fixtureIDsByUserQuery(userID)
	if err != nil {
		return nil, fmt.Errorf("build select fixture ids by user query: %w", err)
	}

	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("select fixture ids by user=%d: %w", userID, err)
	}
	if ids == nil {
		ids = []int64{}
	}
	return ids, nil
}

func (r *FixtureRepository) Upsert(ctx context.Context, fixtures []fixture.Fixture) error {
	rows := make([]fixtureInsertModel, 0, len(fixtures))
	for _, f := range fixtures {
		rows = append(rows, newFixtureInsertModel(f))
	}
	rows = dedupeBy(rows, func(m fixtureInsertModel) int64 { return m.ID })
	return upsertRows(ctx, r.db, "fixtures", rows, fixtureUpsertSuffix)
}

func (r *FixtureRepository) selectFixtures(ctx context.Context, query string, args []any) ([]fixture.Fixture, error) {
	var rows []fixtureTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select fixtures: %w", err)
	}

	out := make([]fixture.Fixture, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func selectFixtures() *qb.SelectBuilder {
	return qb.Select(fixtureColumns...).
		From("fixtures f").
		LeftJoin("teams ht ON ht.id = f.home_team_id").
		LeftJoin("teams awt ON awt.id = f.away_team_id")
}

func finishedFixturesQuery() (string, []any, error) {
	finished := fixture.FinishedStatuses()
	statuses := make([]any, 0, len(finished))
	for _, s := range finished {
		statuses = append(statuses, string(s))
	}
	return selectFixtures().Where(qb.In("f.status", statuses)).OrderBy("f.kick_off", "f.id").ToSQL()
}

// fixturesByDateQuery matches the UTC calendar day of day.
func fixturesByDateQuery(day time.Time) (string, []any, error) {
	y, m, d := day.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return selectFixtures().
		Where(qb.Expr("f.kick_off >= ? AND f.kick_off < ?", start, start.AddDate(0, 0, 1))).
		OrderBy("f.kick_off", "f.id").
		ToSQL()
}

func fixtureIDsByUserQuery(userID int64) (string, []any, error) {
	return qb.Select("f.id").
		From("fixtures f").
		Where(qb.Expr("EXISTS (SELECT 1 FROM draws d WHERE d.user_id = ? AND d.team_id IN (f.home_team_id, f.away_team_id))", userID)).
		OrderBy("f.kick_off", "f.id").
		ToSQL()
}
