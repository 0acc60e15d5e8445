package fixture

import (
	"context"
	"time"
)

// Repository describes fixture persistence needs from use cases.
type Repository interface {
	// ListFinished returns fixtures in PhaseFinished ordered by kick off.
	ListFinished(ctx context.Context) ([]Fixture, error)
	// ListByDate returns fixtures kicking off on the UTC date of day, ordered by kick off.
	ListByDate(ctx context.Context, day time.Time) ([]Fixture, error)
	GetByID(ctx context.Context, fixtureID int64) (Fixture, bool, error)
	// ListIDsByUser returns distinct ids of fixtures involving any team drawn by the user, in kick off order.
	ListIDsByUser(ctx context.Context, userID int64) ([]int64, error)
	Upsert(ctx context.Context, fixtures []Fixture) error
}
