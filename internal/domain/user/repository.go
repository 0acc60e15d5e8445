package user

import "context"

// Repository describes user persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]User, error)
	GetByID(ctx context.Context, userID int64) (User, bool, error)
	// GetByTeamID resolves the user who drew the team.
	GetByTeamID(ctx context.Context, teamID int64) (User, bool, error)
	GetByTeamName(ctx context.Context, teamName string) (User, bool, error)
	Upsert(ctx context.Context, users []User) error
}
