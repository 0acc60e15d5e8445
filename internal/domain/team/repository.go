package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Team, error)
	GetByID(ctx context.Context, teamID int64) (Team, bool, error)
	ListByUser(ctx context.Context, userID int64) ([]Team, error)
	Upsert(ctx context.Context, teams []Team) error
}
