package postgres

import (
	"time"

	"github.com/jackwardell/partypeople/internal/domain/fixture"
)

var fixtureColumns = []string{
	"f.id", "f.status", "f.home_team_id", "f.away_team_id",
	"COALESCE(ht.name, '') AS home_team", "COALESCE(awt.name, '') AS away_team",
	"f.home_goals", "f.away_goals", "f.home_winner", "f.away_winner", "f.kick_off",
	"f.venue_city", "f.venue_name", "f.round",
	"f.half_time_home", "f.half_time_away", "f.full_time_home", "f.full_time_away",
	"f.extra_time_home", "f.extra_time_away", "f.penalties_home", "f.penalties_away",
}

type fixtureInsertModel struct {
	ID            int64     `db:"id"`
	Status        string    `db:"status"`
	HomeTeamID    int64     `db:"home_team_id"`
	AwayTeamID    int64     `db:"away_team_id"`
	HomeGoals     *int      `db:"home_goals"`
	AwayGoals     *int      `db:"away_goals"`
	HomeWinner    *bool     `db:"home_winner"`
	AwayWinner    *bool     `db:"away_winner"`
	KickOff       time.Time `db:"kick_off"`
	VenueCity     string    `db:"venue_city"`
	VenueName     string    `db:"venue_name"`
	Round         string    `db:"round"`
	HalfTimeHome  *int      `db:"half_time_home"`
	HalfTimeAway  *int      `db:"half_time_away"`
	FullTimeHome  *int      `db:"full_time_home"`
	FullTimeAway  *int      `db:"full_time_away"`
	ExtraTimeHome *int      `db:"extra_time_home"`
	ExtraTimeAway *int      `db:"extra_time_away"`
	PenaltiesHome *int      `db:"penalties_home"`
	PenaltiesAway *int      `db:"penalties_away"`
}

// fixtureTableModel is a fixtures row joined with both team names.
type fixtureTableModel struct {
	fixtureInsertModel
	HomeTeam string `db:"home_team"`
	AwayTeam string `db:"away_team"`
}

func newFixtureInsertModel(f fixture.Fixture) fixtureInsertModel {
	return fixtureInsertModel{
		ID:            f.ID,
		Status:        string(f.Status),
		HomeTeamID:    f.HomeTeamID,
		AwayTeamID:    f.AwayTeamID,
		HomeGoals:     f.HomeGoals,
		AwayGoals:     f.AwayGoals,
		HomeWinner:    f.HomeWinner,
		AwayWinner:    f.AwayWinner,
		KickOff:       f.KickOff.UTC(),
		VenueCity:     f.VenueCity,
		VenueName:     f.VenueName,
		Round:         f.Round,
		HalfTimeHome:  f.HalfTimeHome,
		HalfTimeAway:  f.HalfTimeAway,
		FullTimeHome:  f.FullTimeHome,
		FullTimeAway:  f.FullTimeAway,
		ExtraTimeHome: f.ExtraTimeHome,
		ExtraTimeAway: f.ExtraTimeAway,
		PenaltiesHome: f.PenaltiesHome,
		PenaltiesAway: f.PenaltiesAway,
	}
}

func (m fixtureTableModel) toDomain() fixture.Fixture {
	return fixture.Fixture{
		ID:            m.ID,
		Status:        fixture.Status(m.Status),
		HomeTeamID:    m.HomeTeamID,
		AwayTeamID:    m.AwayTeamID,
		HomeTeam:      m.HomeTeam,
		AwayTeam:      m.AwayTeam,
		HomeGoals:     m.HomeGoals,
		AwayGoals:     m.AwayGoals,
		HomeWinner:    m.HomeWinner,
		AwayWinner:    m.AwayWinner,
		KickOff:       m.KickOff.UTC(),
		VenueCity:     m.VenueCity,
		VenueName:     m.VenueName,
		Round:         m.Round,
		HalfTimeHome:  m.HalfTimeHome,
		HalfTimeAway:  m.HalfTimeAway,
		FullTimeHome:  m.FullTimeHome,
		FullTimeAway:  m.FullTimeAway,
		ExtraTimeHome: m.ExtraTimeHome,
		ExtraTimeAway: m.ExtraTimeAway,
		PenaltiesHome: m.PenaltiesHome,
		PenaltiesAway: m.PenaltiesAway,
	}
}

const fixtureUpsertSuffix = `ON CONFLICT (id)
DO UPDATE SET
    status = EXCLUDED.status,
    home_team_id = EXCLUDED.home_team_id,
    away_team_id = EXCLUDED.away_team_id,
    home_goals = EXCLUDED.home_goals,
    away_goals = EXCLUDED.away_goals,
    home_winner = EXCLUDED.home_winner,
    away_winner = EXCLUDED.away_winner,
    kick_off = EXCLUDED.kick_off,
    venue_city = EXCLUDED.venue_city,
    venue_name = EXCLUDED.venue_name,
    round = EXCLUDED.round,
    half_time_home = EXCLUDED.half_time_home,
    half_time_away = EXCLUDED.half_time_away,
    full_time_home = EXCLUDED.full_time_home,
    full_time_away = EXCLUDED.full_time_away,
    extra_time_home = EXCLUDED.extra_time_home,
    extra_time_away = EXCLUDED.extra_time_away,
    penalties_home = EXCLUDED.penalties_home,
    penalties_away = EXCLUDED.penalties_away,
    updated_at = NOW()`
