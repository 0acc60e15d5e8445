package draw

import "context"

// Repository describes draw persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Draw, error)
	Upsert(ctx context.Context, draws []Draw) error
}
