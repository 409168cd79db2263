package sale

import "context"

// Repository defines the interface for sale data access.
type Repository interface {
	Create(ctx context.Context, s *Sale) error
	GetByID(ctx context.Context, id string) (*Sale, error)
	ListByOwnerID(ctx context.Context, ownerID int64) ([]*Sale, error)
	Update(ctx context.Context, s *Sale) error
	Delete(ctx context.Context, id string) error

	// ListOwnerIDs returns the distinct owners that have at least one
	// sale on the books. Used by the scheduled overdue sweep.
	ListOwnerIDs(ctx context.Context) ([]int64, error)
}
